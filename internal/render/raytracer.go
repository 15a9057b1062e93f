package render

import (
	"github.com/hxa7241/minilight-go/internal/geom"
	"github.com/hxa7241/minilight-go/internal/rng"
	"github.com/hxa7241/minilight-go/internal/scene"
	"github.com/hxa7241/minilight-go/internal/vec3"
)

// MaxRecursionDepth is a hard safety cap on the path-tracing recursion,
// distinct from (and far looser than) the Russian-roulette termination
// that dominates in practice; it only guards against the degenerate case
// of a near-1 reflectivity chain producing pathological recursion.
const MaxRecursionDepth = 1000

// RayTracer estimates radiance along rays through a Scene by unbiased
// Monte-Carlo path tracing: one explicit emitter sample per bounce plus
// recursive, Russian-roulette-terminated indirect bounces.
type RayTracer struct {
	Scene *scene.Scene
}

// NewRayTracer binds a RayTracer to the scene it will trace rays against.
func NewRayTracer(s *scene.Scene) *RayTracer {
	return &RayTracer{Scene: s}
}

// Radiance estimates the radiance arriving at rayOrigin from along
// rayDirection. lastHit excludes the ray's own originating triangle from
// the intersection test (pass -1 for a primary ray with no such triangle).
func (rt *RayTracer) Radiance(rayOrigin, rayDirection vec3.Vector3, r *rng.Random, lastHit int32) vec3.Vector3 {
	return rt.radiance(rayOrigin, rayDirection, r, lastHit, 0)
}

func (rt *RayTracer) radiance(rayOrigin, rayDirection vec3.Vector3, r *rng.Random, lastHit int32, depth int) vec3.Vector3 {
	rayBackDirection := rayDirection.Negate()

	hitIndex, hitPosition, hit := rt.Scene.Intersect(rayOrigin, rayDirection, lastHit)
	if !hit {
		return rt.Scene.DefaultEmission(rayBackDirection)
	}

	surfacePoint := geom.SurfacePoint{
		TriangleIndex: hitIndex,
		Triangle:      rt.Scene.Triangles[hitIndex],
		Position:      hitPosition,
	}

	// local emission only counts for the first hit along a path: an
	// indirect bounce's emission is already captured by explicit emitter
	// sampling at the previous vertex, and double-counting it here would
	// bias the estimate.
	localEmission := vec3.Zero
	if lastHit < 0 {
		localEmission = surfacePoint.Emission(rayOrigin, rayBackDirection, false)
	}

	emitterSample := rt.sampleEmitter(rayBackDirection, surfacePoint, r)

	recursedReflection := vec3.Zero
	if depth < MaxRecursionDepth {
		if nextDirection, color, ok := surfacePoint.NextDirection(r, rayBackDirection); ok {
			recursed := rt.radiance(surfacePoint.Position, nextDirection, r, surfacePoint.TriangleIndex, depth+1)
			recursedReflection = recursed.MultiplyVec(color)
		}
	}

	return localEmission.Add(emitterSample).Add(recursedReflection)
}

// sampleEmitter takes one shadow-ray sample toward a randomly chosen
// emitter, returning the reflected contribution (zero if the sample is
// occluded by anything other than the emitter itself).
func (rt *RayTracer) sampleEmitter(rayBackDirection vec3.Vector3, surfacePoint geom.SurfacePoint, r *rng.Random) vec3.Vector3 {
	emitterPosition, emitterIndex, ok := rt.Scene.SampleEmitter(r)
	if !ok {
		return vec3.Zero
	}

	emitVector := emitterPosition.Subtract(surfacePoint.Position)
	emitDirection := emitVector.Unitize()

	hitIndex, _, hit := rt.Scene.Intersect(surfacePoint.Position, emitDirection, surfacePoint.TriangleIndex)

	// unshadowed if the shadow ray hits nothing, or hits exactly the
	// emitter we sampled (a near-boundary self-hit on the emitter itself
	// is not occlusion).
	if hit && hitIndex != emitterIndex {
		return vec3.Zero
	}

	emitterSurface := geom.SurfacePoint{
		TriangleIndex: emitterIndex,
		Triangle:      rt.Scene.Triangles[emitterIndex],
		Position:      emitterPosition,
	}
	backEmitDirection := emitDirection.Negate()
	emissionIn := emitterSurface.Emission(surfacePoint.Position, backEmitDirection, true)
	emissionAll := emissionIn.MultiplyScalar(float64(rt.Scene.EmittersCount()))

	return surfacePoint.Reflection(emitDirection, emissionAll, rayBackDirection)
}
