// Package geom implements the renderer's single primitive type (a
// textureless, vertex-explicit triangle carrying reflectivity and
// emitivity) and the SurfacePoint that represents a ray/triangle hit.
package geom

import (
	"math"

	"github.com/hxa7241/minilight-go/internal/rng"
	"github.com/hxa7241/minilight-go/internal/vec3"
)

// Epsilon bounds the determinant test in Moller-Trumbore intersection;
// the barycentric coordinates are checked against exactly 0 and 1.
const Epsilon = 1.0 / 1048576.0

// Tolerance is the general spatial fuzz (about 1mm at 1-unit-per-metre
// scale) used for bounding-box inflation and the octree's minimum cell
// size.
const Tolerance = 1.0 / 1024.0

// Triangle is an explicit, non-vertex-shared triangle with a diffuse
// material: reflectivity in [0,1] per channel, emitivity >= 0 per channel.
type Triangle struct {
	V0, V1, V2   vec3.Vector3
	Reflectivity vec3.Vector3
	Emitivity    vec3.Vector3

	normal  vec3.Vector3
	tangent vec3.Vector3
	area    float64
}

// New constructs a Triangle, precomputing its normal, tangent and area.
// Reflectivity and emitivity are clamped to their valid ranges.
func New(v0, v1, v2, reflectivity, emitivity vec3.Vector3) Triangle {
	t := Triangle{
		V0:           v0,
		V1:           v1,
		V2:           v2,
		Reflectivity: reflectivity.Clamped(vec3.Zero, vec3.One),
		Emitivity:    emitivity.Clamped(vec3.Zero, vec3.Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}),
	}
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	normalV := edge1.Cross(edge2)
	t.normal = normalV.Unitize()
	t.tangent = edge1.Unitize()
	t.area = normalV.Length() * 0.5
	return t
}

// Normal returns the triangle's unitized face normal.
func (t Triangle) Normal() vec3.Vector3 { return t.normal }

// Tangent returns the triangle's unitized first-edge tangent.
func (t Triangle) Tangent() vec3.Vector3 { return t.tangent }

// Area returns the triangle's surface area.
func (t Triangle) Area() float64 { return t.area }

// Bound returns the triangle's axis-aligned bounding box, inflated by
// Tolerance on every face so that axis-aligned triangles still have a
// non-degenerate extent.
func (t Triangle) Bound() [6]float64 {
	var b [6]float64
	for axis := 0; axis < 3; axis++ {
		lo := math.Min(component(t.V0, axis), math.Min(component(t.V1, axis), component(t.V2, axis)))
		hi := math.Max(component(t.V0, axis), math.Max(component(t.V1, axis), component(t.V2, axis)))
		b[axis] = lo - Tolerance
		b[axis+3] = hi + Tolerance
	}
	return b
}

func component(v vec3.Vector3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Intersect computes the Moller-Trumbore ray/triangle intersection,
// returning the forward hit distance and true if the ray hits the
// triangle at a non-negative parameter.
func (t Triangle) Intersect(rayOrigin, rayDirection vec3.Vector3) (distance float64, ok bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	pvec := rayDirection.Cross(edge2)
	det := edge1.Dot(pvec)
	if det > -Epsilon && det < Epsilon {
		return 0, false
	}
	invDet := 1.0 / det

	tvec := rayOrigin.Subtract(t.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	qvec := tvec.Cross(edge1)
	v := rayDirection.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := edge2.Dot(qvec) * invDet
	if dist < 0 {
		return 0, false
	}
	return dist, true
}

// SamplePoint draws a uniformly distributed point on the triangle's
// surface via the standard barycentric square-root parameterization.
func (t Triangle) SamplePoint(r *rng.Random) vec3.Vector3 {
	sr1 := math.Sqrt(r.Real64())
	r2 := r.Real64()
	c0 := 1 - sr1
	c1 := (1 - r2) * sr1

	p := t.V0.Add(t.V1.Subtract(t.V0).MultiplyScalar(c0))
	p = p.Add(t.V2.Subtract(t.V0).MultiplyScalar(c1))
	return p
}
