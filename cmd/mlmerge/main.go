// Command mlmerge averages several Radiance RGBE renders of the same
// scene and dimensions into a single merged RGBE file. Peripheral to the
// core renderer: useful for combining independent runs (e.g. different
// seeds) into a lower-noise image, but its algorithm is out of the
// core's scope.
package main

import (
	"fmt"
	"os"

	"github.com/hxa7241/minilight-go/internal/image"
	"github.com/hxa7241/minilight-go/internal/vec3"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "*** mlmerge failed:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: mlmerge <out.rgbe> <in1.rgbe> <in2.rgbe> [...]")
	}
	outPath := args[0]
	inPaths := args[1:]

	var merged []vec3.Vector3
	var width, height, totalIterations int

	for i, path := range inPaths {
		pixels, w, h, iterations, err := readRGBE(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if i == 0 {
			width, height = w, h
			merged = make([]vec3.Vector3, len(pixels))
		} else if w != width || h != height {
			return fmt.Errorf("%s has dimensions %dx%d, expected %dx%d", path, w, h, width, height)
		}
		for j, p := range pixels {
			// undo the source file's own running-mean division so
			// iteration counts add linearly across inputs
			merged[j] = merged[j].Add(p.MultiplyScalar(float64(iterations)))
		}
		totalIterations += iterations
	}

	// merged already holds iteration-weighted sums; WriteRGBE divides by
	// totalIterations to recover the combined running mean.
	out := image.New(width, height)
	out.SetPixels(merged)

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return image.WriteRGBE(f, out, totalIterations)
}

func readRGBE(path string) ([]vec3.Vector3, int, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	defer f.Close()
	return image.ReadRGBE(f)
}
