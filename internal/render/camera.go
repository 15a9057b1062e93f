package render

import (
	"math"

	"github.com/hxa7241/minilight-go/internal/rng"
	"github.com/hxa7241/minilight-go/internal/vec3"
)

// ViewAngleMin and ViewAngleMax bound the camera's field of view, in
// degrees, as read from the model file.
const (
	ViewAngleMin = 10.0
	ViewAngleMax = 160.0
)

var worldUp = vec3.New(0, 1, 0)

// Camera holds a view frame (position, forward/right/up) and the field
// of view, and samples one ray per pixel per frame.
type Camera struct {
	Position    vec3.Vector3
	forward     vec3.Vector3
	right       vec3.Vector3
	up          vec3.Vector3
	viewAngleRad float64
}

// NewCamera builds a camera frame from a position, a view direction
// (unitized, defaulting to +Z if degenerate), and a view angle in degrees
// (clamped to [ViewAngleMin, ViewAngleMax]).
func NewCamera(position, viewDirection vec3.Vector3, viewAngleDegrees float64) Camera {
	forward := viewDirection.Unitize()
	if forward.IsZero() {
		forward = vec3.New(0, 0, 1)
	}

	angle := viewAngleDegrees
	if angle < ViewAngleMin {
		angle = ViewAngleMin
	} else if angle > ViewAngleMax {
		angle = ViewAngleMax
	}

	uxv := worldUp.Cross(forward)
	right := uxv.Unitize()
	var up vec3.Vector3
	if !right.IsZero() {
		up = forward.Cross(right).Unitize()
	} else {
		// forward is colinear with world up: pick an arbitrary stable frame
		z := vec3.New(0, 0, -1)
		if forward.Y < 0 {
			z = vec3.New(0, 0, 1)
		}
		right = z.Cross(forward).Unitize()
		up = z
	}

	return Camera{
		Position:     position,
		forward:      forward,
		right:        right,
		up:           up,
		viewAngleRad: angle * math.Pi / 180.0,
	}
}

// Sample produces the ray for pixel (x, y) of a width x height image,
// jittered within the pixel by (r1, r2) in [0,1) for antialiasing.
func (c Camera) Sample(x, y, width, height int, r1, r2 float64) (origin, direction vec3.Vector3) {
	tanView := math.Tan(c.viewAngleRad / 2.0)

	cx := ((float64(x)+r1)*2.0/float64(width) - 1.0) * tanView
	cy := ((float64(y)+r2)*2.0/float64(height) - 1.0) * tanView * (float64(height) / float64(width))

	dir := c.forward.Add(c.right.MultiplyScalar(cx)).Add(c.up.MultiplyScalar(cy))
	return c.Position, dir.Unitize()
}

// FrameInto renders one sample of every pixel into img, using r as the
// shared random stream for both pixel jitter and the path tracer.
func (c Camera) FrameInto(rt *RayTracer, r *rng.Random, img Accumulator) {
	for y := img.Height() - 1; y >= 0; y-- {
		for x := img.Width() - 1; x >= 0; x-- {
			origin, direction := c.Sample(x, y, img.Width(), img.Height(), r.Real64(), r.Real64())
			radiance := rt.Radiance(origin, direction, r, -1)
			img.AddToPixel(x, y, radiance)
		}
	}
}

// Accumulator is the minimal surface Camera.FrameInto needs from an
// image buffer, kept here to avoid render depending on image's full API.
type Accumulator interface {
	Width() int
	Height() int
	AddToPixel(x, y int, radiance vec3.Vector3)
}
