// Package model parses the MiniLight model-file grammar: a small,
// whitespace-insensitive ASCII text format describing render iteration
// count, image dimensions, camera, sky/ground colors, and triangles.
package model

import (
	"bufio"
	"io"
	"strconv"

	"github.com/hxa7241/minilight-go/internal/vec3"
)

const formatID = "#MiniLight"

// Scene is the raw, clamped result of parsing a model file: everything
// needed to construct a render.Camera, a scene.Scene, and an image.Image.
type Scene struct {
	Iterations       int
	Width, Height    int
	Eye              vec3.Vector3
	ViewDirection    vec3.Vector3
	ViewAngleDegrees float64
	SkyEmission      vec3.Vector3
	GroundReflection vec3.Vector3
	Triangles        []Triangle
}

// Triangle is a raw, unclamped triangle record as read from the file;
// geom.New performs the actual reflectivity/emitivity clamping.
type Triangle struct {
	V0, V1, V2   vec3.Vector3
	Reflectivity vec3.Vector3
	Emitivity    vec3.Vector3
}

const maxTriangles = 1 << 24

// tokenizer scans the model file word-by-word, splitting on whitespace
// and the grammar's literal parens, mirroring the field-at-a-time
// scanning idiom used elsewhere in the retrieved pack's text-format
// loaders.
type tokenizer struct {
	scanner *bufio.Scanner
	peeked  *string
}

func newTokenizer(r io.Reader) *tokenizer {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	s.Split(splitWords)
	return &tokenizer{scanner: s}
}

// splitWords is a bufio.SplitFunc that treats '(' and ')' as standalone
// tokens and otherwise splits on ASCII whitespace.
func splitWords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSpace(data[start]) {
		start++
	}
	if start >= len(data) {
		if atEOF {
			return len(data), nil, nil
		}
		return start, nil, nil
	}
	if data[start] == '(' || data[start] == ')' {
		return start + 1, data[start : start+1], nil
	}
	end := start
	for end < len(data) && !isSpace(data[end]) && data[end] != '(' && data[end] != ')' {
		end++
	}
	if end == len(data) && !atEOF {
		return start, nil, nil
	}
	return end, data[start:end], nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func (t *tokenizer) next() (string, bool) {
	if t.peeked != nil {
		w := *t.peeked
		t.peeked = nil
		return w, true
	}
	if !t.scanner.Scan() {
		return "", false
	}
	return t.scanner.Text(), true
}

// pushback returns w to be re-read by the next call to next().
func (t *tokenizer) pushback(w string) {
	t.peeked = &w
}

func (t *tokenizer) word() (string, error) {
	w, ok := t.next()
	if !ok {
		if err := t.scanner.Err(); err != nil {
			return "", wrapErr(ErrorKindReadIO, err, "read model file")
		}
		return "", newErr(ErrorKindTruncated, "unexpected end of model file")
	}
	return w, nil
}

func (t *tokenizer) expect(literal string) error {
	w, err := t.word()
	if err != nil {
		return err
	}
	if w != literal {
		return newErr(ErrorKindInvalidFormat, "expected '"+literal+"', got '"+w+"'")
	}
	return nil
}

func (t *tokenizer) int() (int, error) {
	w, err := t.word()
	if err != nil {
		return 0, err
	}
	v, perr := strconv.Atoi(w)
	if perr != nil {
		return 0, newErr(ErrorKindInvalidFormat, "expected integer, got '"+w+"'")
	}
	return v, nil
}

func (t *tokenizer) real() (float64, error) {
	w, err := t.word()
	if err != nil {
		return 0, err
	}
	v, perr := strconv.ParseFloat(w, 64)
	if perr != nil {
		return 0, newErr(ErrorKindInvalidFormat, "expected real number, got '"+w+"'")
	}
	return v, nil
}

func (t *tokenizer) vector() (vec3.Vector3, error) {
	if err := t.expect("("); err != nil {
		return vec3.Vector3{}, err
	}
	x, err := t.real()
	if err != nil {
		return vec3.Vector3{}, err
	}
	y, err := t.real()
	if err != nil {
		return vec3.Vector3{}, err
	}
	z, err := t.real()
	if err != nil {
		return vec3.Vector3{}, err
	}
	if err := t.expect(")"); err != nil {
		return vec3.Vector3{}, err
	}
	return vec3.New(x, y, z), nil
}

// Load parses a model file from r, clamping iterations, image size, view
// angle, sky emission and ground reflection. Triangle records are
// returned unclamped; geom.New clamps their reflectivity and emitivity.
func Load(r io.Reader) (*Scene, error) {
	tok := newTokenizer(r)

	id, err := tok.word()
	if err != nil {
		return nil, err
	}
	if id != formatID {
		return nil, newErr(ErrorKindUnrecognisedFormat, "missing "+formatID+" identifier")
	}

	s := &Scene{}

	iterations, err := tok.int()
	if err != nil {
		return nil, err
	}
	s.Iterations = clampMin(iterations, 0)

	width, err := tok.int()
	if err != nil {
		return nil, err
	}
	height, err := tok.int()
	if err != nil {
		return nil, err
	}
	s.Width = clampRange(width, 1, 4000)
	s.Height = clampRange(height, 1, 4000)

	eye, err := tok.vector()
	if err != nil {
		return nil, err
	}
	s.Eye = eye

	viewDirection, err := tok.vector()
	if err != nil {
		return nil, err
	}
	s.ViewDirection = viewDirection

	viewAngle, err := tok.real()
	if err != nil {
		return nil, err
	}
	s.ViewAngleDegrees = clampRangeF(viewAngle, 10, 160)

	sky, err := tok.vector()
	if err != nil {
		return nil, err
	}
	s.SkyEmission = sky.Clamped(vec3.Zero, vec3.Vector3{X: 1e300, Y: 1e300, Z: 1e300})

	ground, err := tok.vector()
	if err != nil {
		return nil, err
	}
	s.GroundReflection = ground.Clamped(vec3.Zero, vec3.One)

	for {
		w, more := tok.next()
		if !more {
			break
		}
		tok.pushback(w)

		if len(s.Triangles) >= maxTriangles {
			return nil, newErr(ErrorKindInvalidFormat, "triangle count exceeds maximum")
		}

		tri, terr := tok.triangle()
		if terr != nil {
			return nil, terr
		}
		s.Triangles = append(s.Triangles, tri)
	}

	return s, nil
}

func (t *tokenizer) triangle() (Triangle, error) {
	v0, err := t.vector()
	if err != nil {
		return Triangle{}, err
	}
	v1, err := t.vector()
	if err != nil {
		return Triangle{}, err
	}
	v2, err := t.vector()
	if err != nil {
		return Triangle{}, err
	}
	refl, err := t.vector()
	if err != nil {
		return Triangle{}, err
	}
	emit, err := t.vector()
	if err != nil {
		return Triangle{}, err
	}
	return Triangle{V0: v0, V1: v1, V2: v2, Reflectivity: refl, Emitivity: emit}, nil
}

func clampMin(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}

func clampRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampRangeF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
