package image

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hxa7241/minilight-go/internal/vec3"
)

const softwareURI = "http://www.hxa.name/minilight"

// WriteRGBE serializes img's running mean at the given iteration count as
// a Radiance RGBE file.
func WriteRGBE(w io.Writer, img *Image, iterations int) error {
	bw := bufio.NewWriter(w)

	header := fmt.Sprintf("#?RADIANCE\nFORMAT=32-bit_rgbe\nSOFTWARE=%s\nITERATION=%d\n\n-Y %d +X %d\n",
		softwareURI, iterations, img.Height(), img.Width())
	if _, err := bw.WriteString(header); err != nil {
		return errors.Wrap(err, "write rgbe header")
	}

	for i := range img.pixels {
		rgbe := EncodePixel(img.Mean(i, iterations))
		if _, err := bw.Write(rgbe[:]); err != nil {
			return errors.Wrap(err, "write rgbe pixel")
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flush rgbe output")
	}
	return nil
}

// EncodePixel converts a linear-radiance triple (clamped to >= 0 per
// channel) to its 4-byte shared-exponent RGBE encoding.
func EncodePixel(c vec3.Vector3) [4]byte {
	c = c.Clamped(vec3.Zero, vec3.Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64})

	m := c.Largest()
	if m < 1e-9 {
		return [4]byte{0, 0, 0, 0}
	}

	mantissa, exponent := math.Frexp(m)
	scale := mantissa * 256.0 / m

	var out [4]byte
	out[0] = byte(math.Floor(c.X * scale))
	out[1] = byte(math.Floor(c.Y * scale))
	out[2] = byte(math.Floor(c.Z * scale))
	out[3] = byte(exponent + 128)
	return out
}

// DecodePixel reverses EncodePixel, recovering the radiance triple from
// its 4-byte RGBE encoding.
func DecodePixel(rgbe [4]byte) vec3.Vector3 {
	if rgbe[3] == 0 {
		return vec3.Zero
	}
	a := math.Ldexp(1.0, int(rgbe[3])-(128+8))
	return vec3.New(
		(float64(rgbe[0])+0.5)*a,
		(float64(rgbe[1])+0.5)*a,
		(float64(rgbe[2])+0.5)*a,
	)
}

// ReadRGBE parses a Radiance RGBE file, returning its pixel buffer (in
// top-left-first storage order), dimensions, and recorded iteration count.
func ReadRGBE(r io.Reader) (pixels []vec3.Vector3, width, height, iterations int, err error) {
	br := bufio.NewReader(r)

	firstLine, err := br.ReadString('\n')
	if err != nil {
		return nil, 0, 0, 0, errors.Wrap(err, "read rgbe identifier line")
	}
	if !strings.HasPrefix(firstLine, "#?RADIANCE") && !strings.HasPrefix(firstLine, "#?RGBE") {
		return nil, 0, 0, 0, errors.New("not a recognised RGBE file")
	}

	for {
		line, lerr := br.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			break
		}
		if strings.HasPrefix(trimmed, "ITERATION=") {
			iterations, _ = strconv.Atoi(strings.TrimPrefix(trimmed, "ITERATION="))
		}
		if lerr != nil {
			return nil, 0, 0, 0, errors.Wrap(lerr, "read rgbe header")
		}
	}

	dimLine, err := br.ReadString('\n')
	if err != nil {
		return nil, 0, 0, 0, errors.Wrap(err, "read rgbe dimension line")
	}
	if _, serr := fmt.Sscanf(dimLine, "-Y %d +X %d", &height, &width); serr != nil {
		return nil, 0, 0, 0, errors.Wrap(serr, "parse rgbe dimension line")
	}
	if width <= 0 || height <= 0 {
		return nil, 0, 0, 0, errors.New("invalid rgbe dimensions")
	}

	pixels = make([]vec3.Vector3, width*height)
	var buf [4]byte
	for i := range pixels {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, 0, 0, 0, errors.Wrap(err, "read rgbe pixel")
		}
		pixels[i] = DecodePixel(buf)
	}

	return pixels, width, height, iterations, nil
}
