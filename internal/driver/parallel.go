package driver

import (
	"sync"

	"github.com/hxa7241/minilight-go/internal/image"
	"github.com/hxa7241/minilight-go/internal/render"
	"github.com/hxa7241/minilight-go/internal/rng"
)

// RunParallelFrame renders one iteration's worth of samples across
// workers goroutines, tiling the image into row bands. Scene and the
// spatial index inside rt are immutable and safely shared; each worker
// gets its own Random stream seeded by baseSeed^workerIndex, and
// accumulates into its own image shard which is summed into img under a
// single combine step once every worker's band is done.
//
// Determinism across different worker counts is not guaranteed: row
// ordering and per-worker seeding both change the exact sequence of
// Random draws relative to the single-threaded path.
func RunParallelFrame(cam render.Camera, rt *render.RayTracer, baseSeed uint32, workers int, img *image.Image) {
	if workers < 2 {
		r := rng.New(baseSeed)
		cam.FrameInto(rt, r, img)
		return
	}

	width, height := img.Width(), img.Height()
	shards := make([]*image.Image, workers)
	for w := range shards {
		shards[w] = image.New(width, height)
	}

	rowsPerWorker := (height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		w := w
		yStart := w * rowsPerWorker
		yEnd := yStart + rowsPerWorker
		if yEnd > height {
			yEnd = height
		}
		if yStart >= yEnd {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			r := rng.New(baseSeed ^ uint32(w))
			for y := yStart; y < yEnd; y++ {
				for x := width - 1; x >= 0; x-- {
					origin, direction := cam.Sample(x, y, width, height, r.Real64(), r.Real64())
					radiance := rt.Radiance(origin, direction, r, -1)
					shards[w].AddToPixel(x, y, radiance)
				}
			}
		}()
	}
	wg.Wait()

	for _, shard := range shards {
		combine(img, shard)
	}
}

func combine(dst, src *image.Image) {
	dstPixels := dst.Pixels()
	srcPixels := src.Pixels()
	for i := range dstPixels {
		dstPixels[i] = dstPixels[i].Add(srcPixels[i])
	}
}
