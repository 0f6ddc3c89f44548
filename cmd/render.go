package cmd

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"os/signal"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"
)

// RenderFrame renders a single frame of a preset scene and writes it to disk.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	name := ctx.String("scene")
	seed := ctx.Int64("seed")

	sc, err := scene.Create(name, scene.Options{
		TexturePath: ctx.String("texture"),
		Seed:        seed,
	})
	if err != nil {
		return err
	}

	// Flags left at zero keep the preset's own settings
	sc.MergeSamplingConfig(scene.SamplingConfig{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
	})

	if err := sc.Preprocess(rand.New(rand.NewSource(seed))); err != nil {
		return err
	}

	r, err := sc.NewRenderer(ctx.Int("workers"), seed)
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := r.Render(renderCtx)
	if err != nil {
		return xerrors.Errorf("while rendering scene %q: %w", name, err)
	}

	out := ctx.String("out")
	if err := renderer.SaveImage(out, img); err != nil {
		return err
	}

	displayFrameStats(stats)
	logger.Noticef("frame written to %s", out)
	return nil
}

func displayFrameStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	stats.WriteTable(&buf)
	logger.Noticef("frame statistics (%.0f samples/s, average luminance %.3f)\n%s",
		stats.SamplesPerSecond(), stats.AverageLuminance, buf.String())
}
