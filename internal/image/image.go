// Package image implements the renderer's radiance accumulator and its
// Radiance RGBE (shared-exponent) serialization format.
package image

import "github.com/hxa7241/minilight-go/internal/vec3"

// DimMax bounds image width/height as read from the model file.
const DimMax = 4000

// Image accumulates per-pixel radiance across progressive iterations and
// serializes the running mean as a Radiance RGBE file.
type Image struct {
	width, height int
	pixels        []vec3.Vector3
}

// New allocates an accumulator of the given dimensions, each clamped to
// [1, DimMax].
func New(width, height int) *Image {
	width = clampDim(width)
	height = clampDim(height)
	return &Image{
		width:  width,
		height: height,
		pixels: make([]vec3.Vector3, width*height),
	}
}

func clampDim(d int) int {
	if d < 1 {
		return 1
	}
	if d > DimMax {
		return DimMax
	}
	return d
}

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

// AddToPixel accumulates radiance into pixel (x, y), where y=0 is the
// bottom row in world/view space; storage keeps row 0 at the top, so the
// flip happens here rather than in the camera.
func (img *Image) AddToPixel(x, y int, radiance vec3.Vector3) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return
	}
	index := x + (img.height-1-y)*img.width
	img.pixels[index] = img.pixels[index].Add(radiance)
}

// Mean returns the running average radiance at storage pixel index i,
// given the number of iterations accumulated so far.
func (img *Image) Mean(i, iterations int) vec3.Vector3 {
	divider := 1.0
	if iterations > 0 {
		divider = 1.0 / float64(iterations)
	}
	return img.pixels[i].MultiplyScalar(divider)
}

// Pixels exposes the raw accumulation buffer, in top-left-first storage
// order, for the RGBE/merge codecs.
func (img *Image) Pixels() []vec3.Vector3 {
	return img.pixels
}

// SetPixels overwrites the raw accumulation buffer (used when decoding an
// existing RGBE file, e.g. by cmd/mlmerge).
func (img *Image) SetPixels(p []vec3.Vector3) {
	img.pixels = p
}
