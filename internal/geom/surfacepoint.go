package geom

import (
	"math"

	"github.com/hxa7241/minilight-go/internal/rng"
	"github.com/hxa7241/minilight-go/internal/vec3"
)

const pi = 3.14159265358979

// SurfacePoint is a point of intersection between a ray and a triangle,
// carrying enough context to evaluate emission, reflection, and the next
// bounce direction.
type SurfacePoint struct {
	TriangleIndex int32
	Triangle      Triangle
	Position      vec3.Vector3
}

// Emission returns the radiance emitted from this point toward toPosition,
// along outDirection. If isSolidAngle is true the result is scaled by the
// solid angle subtended by the triangle as seen from toPosition; otherwise
// it is the point's raw emitivity (used for the ray's own first-hit term).
// Either way it is zero when outDirection is behind the triangle's face.
func (s SurfacePoint) Emission(toPosition, outDirection vec3.Vector3, isSolidAngle bool) vec3.Vector3 {
	ray := toPosition.Subtract(s.Position)
	distance2 := ray.Dot(ray)
	normal := s.Triangle.Normal()
	cosOut := outDirection.Dot(normal)
	area := s.Triangle.Area()

	var solidAngle float64
	if cosOut > 0 {
		if isSolidAngle {
			d2 := distance2
			if d2 < 1e-6 {
				d2 = 1e-6
			}
			solidAngle = (cosOut * area) / d2
		} else {
			solidAngle = 1
		}
	}

	return s.Triangle.Emitivity.MultiplyScalar(solidAngle)
}

// Reflection evaluates the ideal-diffuse BRDF: inRadiance arriving from
// inDirection, scattered toward outDirection.
func (s SurfacePoint) Reflection(inDirection, inRadiance, outDirection vec3.Vector3) vec3.Vector3 {
	normal := s.Triangle.Normal()
	inDot := inDirection.Dot(normal)
	outDot := outDirection.Dot(normal)

	isSameSide := !((inDot < 0) != (outDot < 0))
	if !isSameSide {
		return vec3.Zero
	}

	r := inRadiance.MultiplyVec(s.Triangle.Reflectivity)
	return r.MultiplyScalar(math.Abs(inDot) / pi)
}

// NextDirection cosine-importance-samples a diffuse bounce direction,
// using Russian roulette (keyed to mean reflectivity) to decide whether
// the ray survives. inDirection is the incoming ray's back-direction
// (pointing away from the direction of travel). On survival it returns
// the sampled direction, a color factor that divides out the roulette
// bias, and ok=true.
func (s SurfacePoint) NextDirection(r *rng.Random, inDirection vec3.Vector3) (outDirection, color vec3.Vector3, ok bool) {
	reflectivityMean := s.Triangle.Reflectivity.Dot(vec3.One) / 3.0
	isAlive := r.Real64() < reflectivityMean
	if !isAlive {
		return vec3.Zero, vec3.Zero, false
	}

	angle := pi * 2.0 * r.Real64()
	sr2 := math.Sqrt(r.Real64())

	x := math.Cos(angle) * sr2
	y := math.Sin(angle) * sr2
	z := math.Sqrt(1.0 - sr2*sr2)

	tangent := s.Triangle.Tangent()
	normal := s.Triangle.Normal()
	if normal.Dot(inDirection) < 0 {
		normal = normal.Negate()
	}
	cotangent := normal.Cross(tangent)

	outDirection = tangent.MultiplyScalar(x).
		Add(cotangent.MultiplyScalar(y)).
		Add(normal.MultiplyScalar(z))

	color = s.Triangle.Reflectivity.MultiplyScalar(1.0 / reflectivityMean)

	return outDirection, color, !outDirection.IsZero()
}
