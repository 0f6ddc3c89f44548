package renderer

import (
	"context"
	"image"
	"runtime"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

var logger = log.New("renderer")

// Config controls image size, sampling and parallelism
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int   // Maximum ray bounces
	NumWorkers      int   // 0 means runtime.NumCPU()
	Seed            int64 // Worker i seeds its random source with Seed+i
}

// Renderer turns a world and camera into an image
type Renderer struct {
	world      geometry.Hittable
	camera     *Camera
	background integrator.Background
	integrator integrator.Integrator
	config     Config
}

// NewRenderer creates a renderer using the path tracing integrator
func NewRenderer(world geometry.Hittable, camera *Camera, background integrator.Background, config Config) (*Renderer, error) {
	switch {
	case world == nil || camera == nil || background == nil:
		return nil, xerrors.Errorf("renderer needs a world, camera and background: %w", core.ErrInvalidConfig)
	case config.Width <= 0 || config.Height <= 0:
		return nil, xerrors.Errorf("image size %dx%d must be positive: %w", config.Width, config.Height, core.ErrInvalidConfig)
	case config.SamplesPerPixel <= 0:
		return nil, xerrors.Errorf("samples per pixel %d must be positive: %w", config.SamplesPerPixel, core.ErrInvalidConfig)
	case config.MaxDepth < 0:
		return nil, xerrors.Errorf("max depth %d must not be negative: %w", config.MaxDepth, core.ErrInvalidConfig)
	}

	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}

	return &Renderer{
		world:      world,
		camera:     camera,
		background: background,
		integrator: integrator.NewPathTracingIntegrator(),
		config:     config,
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (r *Renderer) SetIntegrator(i integrator.Integrator) {
	r.integrator = i
}

// Config returns the effective configuration
func (r *Renderer) Config() Config {
	return r.config
}

// Render traces the full image. Columns are split evenly across workers,
// each worker streams finished columns to a single collector which is the
// only writer of the output image.
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	cfg := r.config
	ranges := partitionColumns(cfg.Width, cfg.NumWorkers)
	workers := make([]*worker, len(ranges))
	for i, cols := range ranges {
		workers[i] = newWorker(i, cols, cfg.Seed, r)
	}

	logger.Noticef("rendering %dx%d @ %d spp (depth %d) with %d workers", cfg.Width, cfg.Height, cfg.SamplesPerPixel, cfg.MaxDepth, len(workers))
	start := time.Now()

	results := make(chan ColumnResult, len(workers))
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		w := w
		g.Go(func() error {
			return w.run(gctx, results)
		})
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- g.Wait()
		close(results)
	}()

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	progressStep := max(cfg.Width/10, 1)
	done := 0
	for result := range results {
		for y, sum := range result.Sums {
			img.SetRGBA(result.X, y, ToneMap(sum, cfg.SamplesPerPixel))
		}
		done++
		if done%progressStep == 0 || done == cfg.Width {
			logger.Infof("columns: %d/%d (%.0f%%)", done, cfg.Width, 100*float64(done)/float64(cfg.Width))
		}
	}

	stats := RenderStats{
		Width:           cfg.Width,
		Height:          cfg.Height,
		SamplesPerPixel: cfg.SamplesPerPixel,
		MaxDepth:        cfg.MaxDepth,
		Workers:         len(workers),
		Columns:         done,
		Duration:        time.Since(start),
	}
	if err := <-waitErr; err != nil {
		return nil, stats, xerrors.Errorf("while rendering columns: %w", err)
	}

	for _, w := range workers {
		stats.WorkerStats = append(stats.WorkerStats, w.stats)
		stats.TotalSamples += w.stats.Samples
	}
	stats.AverageLuminance = AverageLuminance(img)

	logger.Noticef("rendered %d samples in %s", stats.TotalSamples, stats.Duration)
	return img, stats, nil
}
