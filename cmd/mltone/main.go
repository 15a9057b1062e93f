// Command mltone tone-maps a Radiance RGBE render to an 8-bit ASCII PPM
// image using a single global Reinhard operator. Peripheral to the core
// renderer: its algorithm is explicitly out of scope for the path tracer
// itself.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/hxa7241/minilight-go/internal/image"
	"github.com/hxa7241/minilight-go/internal/vec3"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "*** mltone failed:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("mltone", flag.ContinueOnError)
	exposure := fs.Float64("exposure", 1.0, "linear exposure scale applied before tone mapping")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: mltone [-exposure=1.0] <in.rgbe> <out.ppm>")
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	pixels, width, height, _, err := image.ReadRGBE(in)
	in.Close()
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return writePPM(out, pixels, width, height, *exposure)
}

// reinhard applies a global L/(1+L) tone-mapping operator on luminance,
// scaling chrominance proportionally so hue is preserved.
func reinhard(c vec3.Vector3, exposure float64) vec3.Vector3 {
	c = c.MultiplyScalar(exposure)
	luminance := 0.2126*c.X + 0.7152*c.Y + 0.0722*c.Z
	if luminance <= 0 {
		return vec3.Zero
	}
	scaled := luminance / (1.0 + luminance)
	return c.MultiplyScalar(scaled / luminance)
}

func writePPM(w *os.File, pixels []vec3.Vector3, width, height int, exposure float64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height)
	for _, c := range pixels {
		mapped := reinhard(c, exposure).Clamped(vec3.Zero, vec3.One)
		// the renderer works in linear light throughout; gamma-correct to
		// sRGB here, at the one place the image becomes display-referred
		gamma := colorful.LinearRgb(mapped.X, mapped.Y, mapped.Z).Clamped()
		r := int(math.Round(gamma.R * 255))
		g := int(math.Round(gamma.G * 255))
		b := int(math.Round(gamma.B * 255))
		fmt.Fprintf(bw, "%d %d %d\n", r, g, b)
	}
	return bw.Flush()
}
