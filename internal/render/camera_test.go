package render

import (
	"math"
	"testing"

	"github.com/hxa7241/minilight-go/internal/vec3"
)

func TestViewAngleClamped(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"too narrow", 1, ViewAngleMin},
		{"too wide", 179, ViewAngleMax},
		{"within range", 45, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(vec3.Zero, vec3.New(0, 0, 1), tt.input)
			got := c.viewAngleRad * 180.0 / math.Pi
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("view angle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDegenerateViewDirectionDefaultsToZ(t *testing.T) {
	c := NewCamera(vec3.Zero, vec3.Zero, 45)
	if c.forward != vec3.New(0, 0, 1) {
		t.Fatalf("forward = %v, want +Z default", c.forward)
	}
}

func TestViewDirectionColinearWithUpStillProducesOrthonormalFrame(t *testing.T) {
	c := NewCamera(vec3.Zero, vec3.New(0, 1, 0), 45)
	if c.right.IsZero() || c.up.IsZero() {
		t.Fatalf("degenerate frame for up-aligned view direction: right=%v up=%v", c.right, c.up)
	}
	if math.Abs(c.right.Dot(c.forward)) > 1e-9 {
		t.Fatalf("right not orthogonal to forward: %v . %v", c.right, c.forward)
	}
}

func TestSampleCentersOnViewDirection(t *testing.T) {
	c := NewCamera(vec3.Zero, vec3.New(0, 0, 1), 45)
	_, dir := c.Sample(100, 75, 200, 150, 0, 0)
	if dir.Subtract(vec3.New(0, 0, 1)).Length() > 1e-9 {
		t.Fatalf("central pixel direction = %v, want forward", dir)
	}
}
