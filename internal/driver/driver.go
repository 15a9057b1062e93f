// Package driver runs the progressive-refinement render loop: repeated
// camera frames accumulated into an image, snapshotted to disk on a
// doubling schedule, with graceful SIGINT handling.
package driver

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/hxa7241/minilight-go/internal/image"
	"github.com/hxa7241/minilight-go/internal/model"
	"github.com/hxa7241/minilight-go/internal/render"
	"github.com/hxa7241/minilight-go/internal/rng"
)

// Options configures a single render run.
type Options struct {
	Iterations int
	ImagePath  string
	Logger     render.Logger
	// OnIteration is an optional progress callback invoked after each
	// completed frame.
	OnIteration func(frameNo int)
	// FrameRenderer, if set, replaces the default single-threaded
	// cam.FrameInto call for each frame — used to opt into
	// RunParallelFrame. It receives a per-frame seed derived from the
	// frame number so repeated frames still draw independent samples.
	FrameRenderer func(frameSeed uint32)
}

// Stats reports counters from a completed (or interrupted) run.
type Stats struct {
	IterationsCompleted int
	SnapshotsWritten    int
}

// shouldSnapshot matches the reference schedule: power-of-two frame
// numbers, plus the final iteration, so I/O cost halves as convergence
// slows while still guaranteeing a snapshot at the very end.
func shouldSnapshot(frameNo, iterations int) bool {
	return (frameNo&(frameNo-1)) == 0 || frameNo == iterations
}

// Run executes the progressive render loop to completion (or until ctx is
// cancelled, e.g. by a SIGINT handler registered by the caller).
func Run(ctx context.Context, cam render.Camera, rt *render.RayTracer, r *rng.Random, img *image.Image, opts Options) (Stats, error) {
	stats := Stats{}

	for frameNo := 1; frameNo <= opts.Iterations; frameNo++ {
		select {
		case <-ctx.Done():
			return stats, nil
		default:
		}

		if opts.Logger != nil {
			opts.Logger.Printf("\riteration: %d", frameNo)
		}

		if opts.FrameRenderer != nil {
			opts.FrameRenderer(uint32(frameNo) ^ r.Id())
		} else {
			cam.FrameInto(rt, r, img)
		}
		stats.IterationsCompleted = frameNo

		if opts.OnIteration != nil {
			opts.OnIteration(frameNo)
		}

		if shouldSnapshot(frameNo, opts.Iterations) {
			if err := writeSnapshot(opts.ImagePath, img, frameNo); err != nil {
				return stats, err
			}
			stats.SnapshotsWritten++
		}
	}

	return stats, nil
}

func writeSnapshot(path string, img *image.Image, frameNo int) error {
	f, err := os.Create(path)
	if err != nil {
		return &model.LoadError{Kind: model.ErrorKindFile, Err: errors.Wrap(err, "open output image")}
	}

	if err := image.WriteRGBE(f, img, frameNo); err != nil {
		f.Close()
		return &model.LoadError{Kind: model.ErrorKindWriteIO, Err: errors.Wrap(err, "write output image")}
	}
	if err := f.Close(); err != nil {
		return &model.LoadError{Kind: model.ErrorKindWriteIO, Err: errors.Wrap(err, "close output image")}
	}
	return nil
}
