package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantPath  string
		wantWork  int
		wantErr   bool
	}{
		{"model path only", []string{"scene.ml.txt"}, "scene.ml.txt", 1, false},
		{"with workers flag", []string{"-workers=4", "scene.ml.txt"}, "scene.ml.txt", 4, false},
		{"no args", []string{}, "", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if cfg.ModelPath != tt.wantPath {
				t.Fatalf("ModelPath = %q, want %q", cfg.ModelPath, tt.wantPath)
			}
			if cfg.Workers != tt.wantWork {
				t.Fatalf("Workers = %d, want %d", cfg.Workers, tt.wantWork)
			}
		})
	}
}

const miniScene = `#MiniLight

4

4 4
(0 0 0) (0 0 -1) 45

(1 1 1) (0 0 0)

(-2 -2 -2) (2 -2 -2) (-2 2 -2)  (0.5 0.5 0.5) (0 0 0)
`

func TestEndToEndRenderProducesOutputFile(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "scene.ml.txt")
	if err := os.WriteFile(modelPath, []byte(miniScene), 0o644); err != nil {
		t.Fatalf("failed to write test model: %v", err)
	}

	exitCode := run([]string{modelPath})
	if exitCode != 0 {
		t.Fatalf("run() exit code = %d, want 0", exitCode)
	}

	matches, err := filepath.Glob(modelPath + ".*.rgbe")
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected exactly one output file, got %v", matches)
	}
}

func TestTruncatedModelFileFailsCleanly(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "bad.ml.txt")
	if err := os.WriteFile(modelPath, []byte("#MiniLight\n4\n4 4\n(0 0 0) (0 0 -1)"), 0o644); err != nil {
		t.Fatalf("failed to write test model: %v", err)
	}

	exitCode := run([]string{modelPath})
	if exitCode == 0 {
		t.Fatalf("expected nonzero exit code for truncated model")
	}

	matches, _ := filepath.Glob(modelPath + ".*.rgbe")
	if len(matches) != 0 {
		t.Fatalf("expected no output file for a failed render, got %v", matches)
	}
}
