package image

import (
	"bytes"
	"math"
	"testing"

	"github.com/hxa7241/minilight-go/internal/vec3"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		c    vec3.Vector3
	}{
		{"mid gray", vec3.New(0.5, 0.5, 0.5)},
		{"bright red", vec3.New(100, 1, 0.5)},
		{"dim", vec3.New(0.001, 0.002, 0.0015)},
		{"zero", vec3.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rgbe := EncodePixel(tt.c)
			got := DecodePixel(rgbe)

			m := tt.c.Largest()
			if m < 1e-9 {
				if got != vec3.Zero {
					t.Fatalf("decode of zero-encoded pixel = %v, want zero", got)
				}
				return
			}
			// error bounded by one mantissa step at this exponent
			_, exp := math.Frexp(m)
			step := math.Ldexp(1.0, exp-8)
			if math.Abs(got.X-tt.c.X) > step || math.Abs(got.Y-tt.c.Y) > step || math.Abs(got.Z-tt.c.Z) > step {
				t.Fatalf("round trip error too large: in=%v out=%v step=%v", tt.c, got, step)
			}
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	img := New(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.AddToPixel(x, y, vec3.New(float64(x)/4, float64(y)/3, 0.5))
		}
	}

	var buf bytes.Buffer
	if err := WriteRGBE(&buf, img, 1); err != nil {
		t.Fatalf("WriteRGBE failed: %v", err)
	}

	pixels, width, height, iterations, err := ReadRGBE(&buf)
	if err != nil {
		t.Fatalf("ReadRGBE failed: %v", err)
	}
	if width != 4 || height != 3 {
		t.Fatalf("dimensions = %dx%d, want 4x3", width, height)
	}
	if iterations != 1 {
		t.Fatalf("iterations = %d, want 1", iterations)
	}
	if len(pixels) != 12 {
		t.Fatalf("pixel count = %d, want 12", len(pixels))
	}
}

func TestRejectsUnrecognisedHeader(t *testing.T) {
	_, _, _, _, err := ReadRGBE(bytes.NewBufferString("not an rgbe file\n"))
	if err == nil {
		t.Fatalf("expected error for unrecognised header")
	}
}
