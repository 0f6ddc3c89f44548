package renderer

import (
	"context"
	"math/rand"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ColumnResult carries the accumulated radiance of one image column from a
// worker to the collector. Sums[y] holds the sample sum for row y (top down).
type ColumnResult struct {
	X        int
	WorkerID int
	Sums     []core.Vec3
}

// columnRange is the half-open span of columns [Start, End) owned by a worker
type columnRange struct {
	Start, End int
}

// partitionColumns splits width columns across n workers. Worker i owns
// [i*width/n, (i+1)*width/n), so spans differ in size by at most one.
func partitionColumns(width, n int) []columnRange {
	if n > width {
		n = width
	}
	if n < 1 {
		n = 1
	}
	ranges := make([]columnRange, n)
	for i := 0; i < n; i++ {
		ranges[i] = columnRange{Start: i * width / n, End: (i + 1) * width / n}
	}
	return ranges
}

// worker renders a fixed span of columns with its own random source
type worker struct {
	ID      int
	columns columnRange
	random  *rand.Rand
	r       *Renderer
	stats   WorkerStats
}

func newWorker(id int, columns columnRange, seed int64, r *Renderer) *worker {
	return &worker{
		ID:      id,
		columns: columns,
		random:  rand.New(rand.NewSource(seed + int64(id))),
		r:       r,
		stats:   WorkerStats{ID: id, FirstColumn: columns.Start, Columns: columns.End - columns.Start},
	}
}

// run renders every owned column and pushes it onto results. The context is
// checked between columns.
func (w *worker) run(ctx context.Context, results chan<- ColumnResult) error {
	start := time.Now()
	defer func() { w.stats.Duration = time.Since(start) }()

	for x := w.columns.Start; x < w.columns.End; x++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		result := ColumnResult{X: x, WorkerID: w.ID, Sums: w.renderColumn(x)}

		select {
		case results <- result:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// renderColumn accumulates SamplesPerPixel integrator samples for each pixel in column x
func (w *worker) renderColumn(x int) []core.Vec3 {
	cfg := w.r.config
	sums := make([]core.Vec3, cfg.Height)

	xDenom := float64(max(cfg.Width-1, 1))
	yDenom := float64(max(cfg.Height-1, 1))

	for y := 0; y < cfg.Height; y++ {
		var sum core.Vec3
		row := float64(cfg.Height - 1 - y)
		for sample := 0; sample < cfg.SamplesPerPixel; sample++ {
			s := (float64(x) + w.random.Float64()) / xDenom
			t := (row + w.random.Float64()) / yDenom
			ray := w.r.camera.GetRay(s, t, w.random)
			sum = sum.Add(w.r.integrator.RayColor(ray, w.r.background, w.r.world, cfg.MaxDepth, w.random))
		}
		sums[y] = sum
	}

	w.stats.Samples += cfg.Height * cfg.SamplesPerPixel
	return sums
}
