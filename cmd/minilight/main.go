// Command minilight renders a model file into a progressively refined
// Radiance RGBE image.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hxa7241/minilight-go/internal/driver"
	"github.com/hxa7241/minilight-go/internal/geom"
	"github.com/hxa7241/minilight-go/internal/image"
	"github.com/hxa7241/minilight-go/internal/model"
	"github.com/hxa7241/minilight-go/internal/render"
	"github.com/hxa7241/minilight-go/internal/rng"
	"github.com/hxa7241/minilight-go/internal/scene"
)

const (
	title = "MiniLight Go"
	url   = "https://github.com/hxa7241/minilight-go"
)

const usageText = `usage:
  minilight [flags] modelFilePathName

The model text file format is:
  #MiniLight

  iterations

  imagewidth imageheight
  viewposition viewdirection viewangle

  skyemission groundreflection

  vertex0 vertex1 vertex2 reflectivity emitivity
  vertex0 vertex1 vertex2 reflectivity emitivity
  ...

- where iterations and image values are integers, viewangle is a real,
and all other values are three parenthesised reals. The file must end
with a newline.
`

// Config holds the parsed CLI arguments.
type Config struct {
	ModelPath string
	Workers   int
	SeedMode  string
	Help      bool
}

func parseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("minilight", flag.ContinueOnError)
	var cfg Config
	fs.IntVar(&cfg.Workers, "workers", 1, "tile-parallel render workers per frame (1 = reference single-threaded path)")
	fs.StringVar(&cfg.SeedMode, "seed", "fixed", "random seed source: fixed|time")
	fs.BoolVar(&cfg.Help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() >= 1 {
		cfg.ModelPath = fs.Arg(0)
	}
	return cfg, nil
}

func showHelp() {
	fmt.Printf("\n  %s\n\n  %s\n\n%s\n", title, url, usageText)
}

type stdoutLogger struct{}

func (stdoutLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "-?" || args[0] == "--help" {
		showHelp()
		return 0
	}

	cfg, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "*** execution failed: ", err)
		return 1
	}
	if cfg.Help || cfg.ModelPath == "" {
		showHelp()
		return 0
	}

	fmt.Printf("\n  %s - %s\n\n", title, url)

	if err := renderModel(cfg); err != nil {
		if kind := model.KindOf(err); kind != model.ErrorKindNone {
			fmt.Fprintf(os.Stderr, "\n*** execution failed:  %s\n", kind)
		} else {
			fmt.Fprintf(os.Stderr, "\n*** execution failed:  %v\n", err)
		}
		return 1
	}
	return 0
}

func renderModel(cfg Config) error {
	modelFile, err := os.Open(cfg.ModelPath)
	if err != nil {
		return &model.LoadError{Kind: model.ErrorKindFile, Err: err}
	}
	defer modelFile.Close()

	m, err := model.Load(modelFile)
	if err != nil {
		return err
	}

	seed := rng.Seed
	if cfg.SeedMode == "time" {
		seed = uint32(time.Now().UnixNano())
	}
	r := rng.New(seed)

	imagePath := fmt.Sprintf("%s.%08X.rgbe", cfg.ModelPath, r.Id())

	triangles := make([]geom.Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		triangles[i] = geom.New(t.V0, t.V1, t.V2, t.Reflectivity, t.Emitivity)
	}
	sc := scene.New(m.Eye, triangles, m.SkyEmission, m.GroundReflection)
	cam := render.NewCamera(m.Eye, m.ViewDirection, m.ViewAngleDegrees)
	rt := render.NewRayTracer(sc)
	img := image.New(m.Width, m.Height)

	fmt.Printf("output: %s\n", imagePath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	go func() {
		if _, ok := <-sigCh; ok {
			fmt.Println("\ninterrupted")
			cancel()
		}
	}()

	opts := driver.Options{
		Iterations: m.Iterations,
		ImagePath:  imagePath,
		Logger:     stdoutLogger{},
	}
	if cfg.Workers > 1 {
		opts.FrameRenderer = func(workerSeed uint32) {
			driver.RunParallelFrame(cam, rt, workerSeed, cfg.Workers, img)
		}
	}

	_, err = driver.Run(ctx, cam, rt, r, img, opts)
	if err != nil {
		return err
	}

	fmt.Println("\nfinished")
	return nil
}
