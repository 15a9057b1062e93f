// Package scene holds the fixed set of triangles, their derived emitter
// list, the spatial index over them, and the sky/ground default emission
// used when a ray escapes the scene entirely.
package scene

import (
	"github.com/hxa7241/minilight-go/internal/geom"
	"github.com/hxa7241/minilight-go/internal/rng"
	"github.com/hxa7241/minilight-go/internal/spatial"
	"github.com/hxa7241/minilight-go/internal/vec3"
)

// Scene is immutable once built: safe for concurrent readers, which the
// optional parallel driver extension relies on.
type Scene struct {
	Triangles       []geom.Triangle
	Index           *spatial.Index
	emitterIndices  []int32
	SkyEmission     vec3.Vector3
	GroundReflection vec3.Vector3
}

// New builds a Scene: clamps sky/ground inputs per the model-file
// conditioning rules, collects emitters (triangles with non-zero
// emitivity and positive area), and constructs the spatial index.
func New(eyePosition vec3.Vector3, triangles []geom.Triangle, skyEmission, groundReflection vec3.Vector3) *Scene {
	s := &Scene{
		Triangles:        triangles,
		SkyEmission:      clampNonNegative(skyEmission),
		GroundReflection: groundReflection.Clamped(vec3.Zero, vec3.One),
	}
	for i, tri := range triangles {
		if !tri.Emitivity.IsZero() && tri.Area() > 0 {
			s.emitterIndices = append(s.emitterIndices, int32(i))
		}
	}
	s.Index = spatial.Build(eyePosition, triangles)
	return s
}

func clampNonNegative(v vec3.Vector3) vec3.Vector3 {
	max := vec3.Vector3{X: 1e300, Y: 1e300, Z: 1e300}
	return v.Clamped(vec3.Zero, max)
}

// EmittersCount returns the number of triangles eligible for emitter
// sampling.
func (s *Scene) EmittersCount() int {
	return len(s.emitterIndices)
}

// SampleEmitter uniformly picks one emitter triangle and a uniformly
// sampled point on its surface. ok is false if the scene has no emitters.
func (s *Scene) SampleEmitter(r *rng.Random) (position vec3.Vector3, triangleIndex int32, ok bool) {
	if len(s.emitterIndices) == 0 {
		return vec3.Vector3{}, -1, false
	}
	i := int(r.Real64() * float64(len(s.emitterIndices)))
	if i >= len(s.emitterIndices) {
		i = len(s.emitterIndices) - 1
	}
	idx := s.emitterIndices[i]
	return s.Triangles[idx].SamplePoint(r), idx, true
}

// DefaultEmission returns the radiance of a ray that escapes the scene,
// chosen between sky and ground by the sign of backDirection's Y
// component (the ray's back-direction, pointing toward its origin).
func (s *Scene) DefaultEmission(backDirection vec3.Vector3) vec3.Vector3 {
	if backDirection.Y < 0 {
		return s.SkyEmission
	}
	return s.SkyEmission.MultiplyVec(s.GroundReflection)
}

// Intersect finds the nearest triangle hit by a ray, excluding lastHit.
func (s *Scene) Intersect(rayOrigin, rayDirection vec3.Vector3, lastHit int32) (int32, vec3.Vector3, bool) {
	return s.Index.Intersect(rayOrigin, rayDirection, lastHit)
}
