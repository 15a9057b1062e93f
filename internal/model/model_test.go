package model

import (
	"strings"
	"testing"
)

const validModel = `#MiniLight

100

200 150
(0 0.75 -2) (0 0 1) 45

(3626 5572 5802) (0.1 0.09 0.07)

(0 0 0) (0 1 0) (1 1 0)  (0.7 0.7 0.7) (0 0 0)
`

func TestLoadValidModel(t *testing.T) {
	s, err := Load(strings.NewReader(validModel))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Iterations != 100 {
		t.Fatalf("Iterations = %d, want 100", s.Iterations)
	}
	if s.Width != 200 || s.Height != 150 {
		t.Fatalf("dimensions = %dx%d, want 200x150", s.Width, s.Height)
	}
	if s.ViewAngleDegrees != 45 {
		t.Fatalf("ViewAngleDegrees = %v, want 45", s.ViewAngleDegrees)
	}
	if len(s.Triangles) != 1 {
		t.Fatalf("Triangles = %d, want 1", len(s.Triangles))
	}
}

func TestLoadClampsOutOfRangeFields(t *testing.T) {
	tests := []struct {
		name  string
		model string
		check func(t *testing.T, s *Scene)
	}{
		{
			name: "negative iterations clamp to zero",
			model: `#MiniLight
-5
200 150
(0 0 0) (0 0 1) 45
(0 0 0) (0 0 0)
`,
			check: func(t *testing.T, s *Scene) {
				if s.Iterations != 0 {
					t.Fatalf("Iterations = %d, want 0", s.Iterations)
				}
			},
		},
		{
			name: "view angle clamps to max",
			model: `#MiniLight
1
200 150
(0 0 0) (0 0 1) 500
(0 0 0) (0 0 0)
`,
			check: func(t *testing.T, s *Scene) {
				if s.ViewAngleDegrees != 160 {
					t.Fatalf("ViewAngleDegrees = %v, want 160", s.ViewAngleDegrees)
				}
			},
		},
		{
			name: "width/height clamp to image max",
			model: `#MiniLight
1
99999 0
(0 0 0) (0 0 1) 45
(0 0 0) (0 0 0)
`,
			check: func(t *testing.T, s *Scene) {
				if s.Width != 4000 {
					t.Fatalf("Width = %d, want 4000", s.Width)
				}
				if s.Height != 1 {
					t.Fatalf("Height = %d, want 1", s.Height)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(strings.NewReader(tt.model))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			tt.check(t, s)
		})
	}
}

func TestLoadRejectsUnrecognisedFormat(t *testing.T) {
	_, err := Load(strings.NewReader("#NotMiniLight\n1\n"))
	if KindOf(err) != ErrorKindUnrecognisedFormat {
		t.Fatalf("KindOf(err) = %v, want ErrorKindUnrecognisedFormat", KindOf(err))
	}
}

func TestLoadTruncatedFileReturnsTruncatedKind(t *testing.T) {
	_, err := Load(strings.NewReader("#MiniLight\n100\n200 150\n(0 0 0) (0 0 1)"))
	if KindOf(err) != ErrorKindTruncated {
		t.Fatalf("KindOf(err) = %v, want ErrorKindTruncated", KindOf(err))
	}
}

func TestLoadInvalidSyntaxReturnsInvalidFormatKind(t *testing.T) {
	_, err := Load(strings.NewReader("#MiniLight\nnotanumber\n200 150\n"))
	if KindOf(err) != ErrorKindInvalidFormat {
		t.Fatalf("KindOf(err) = %v, want ErrorKindInvalidFormat", KindOf(err))
	}
}
