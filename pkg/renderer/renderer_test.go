package renderer

import (
	"bytes"
	"context"
	"image/color"
	"math"
	"runtime"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/xerrors"
)

func newTestRenderer(t *testing.T, world geometry.Hittable, background integrator.Background, config Config) *Renderer {
	t.Helper()
	camera, err := NewCamera(defaultCameraConfig())
	if err != nil {
		t.Fatalf("Unexpected camera error: %v", err)
	}
	r, err := NewRenderer(world, camera, background, config)
	if err != nil {
		t.Fatalf("Unexpected renderer error: %v", err)
	}
	return r
}

func sphereWorld() geometry.Hittable {
	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, -101, 0), 100, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.2)),
	)
}

func TestPartitionColumns(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		workers  int
		expected []columnRange
	}{
		{"even split", 8, 4, []columnRange{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"uneven split", 10, 3, []columnRange{{0, 3}, {3, 6}, {6, 10}}},
		{"more workers than columns", 2, 8, []columnRange{{0, 1}, {1, 2}}},
		{"single worker", 5, 1, []columnRange{{0, 5}}},
		{"zero workers", 3, 0, []columnRange{{0, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := partitionColumns(tt.width, tt.workers)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Partition mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToneMap(t *testing.T) {
	tests := []struct {
		name     string
		sum      core.Vec3
		samples  int
		expected color.RGBA
	}{
		{"black", core.Vec3{}, 4, color.RGBA{0, 0, 0, 255}},
		{"quarter is gamma corrected to half", core.NewVec3(1, 1, 1), 4, color.RGBA{128, 128, 128, 255}},
		{"overexposed clamps to 255", core.NewVec3(40, 8, 4), 4, color.RGBA{255, 255, 255, 255}},
		{"nan is black", core.NewVec3(math.NaN(), 1, 1), 1, color.RGBA{0, 255, 255, 255}},
		{"negative is black", core.NewVec3(-1, 0, 0), 1, color.RGBA{0, 0, 0, 255}},
		{"infinity clamps", core.NewVec3(math.Inf(1), 0, 0), 1, color.RGBA{255, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToneMap(tt.sum, tt.samples); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNewRendererInvalidConfig(t *testing.T) {
	camera, _ := NewCamera(defaultCameraConfig())
	valid := Config{Width: 4, Height: 4, SamplesPerPixel: 1, MaxDepth: 5}

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero samples", func(c *Config) { c.SamplesPerPixel = 0 }},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.modify(&config)
			_, err := NewRenderer(sphereWorld(), camera, integrator.NewSkyBackground(), config)
			if !xerrors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if _, err := NewRenderer(nil, camera, integrator.NewSkyBackground(), valid); !xerrors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil world, got %v", err)
	}

	r, err := NewRenderer(sphereWorld(), camera, integrator.NewSkyBackground(), valid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if r.Config().NumWorkers != runtime.NumCPU() {
		t.Errorf("Expected default of %d workers, got %d", runtime.NumCPU(), r.Config().NumWorkers)
	}
}

func TestRenderEmissionOnly(t *testing.T) {
	// A light wall filling the view with radiance 0.25 tone maps to 128 everywhere
	wall := geometry.NewXYRect(-100, 100, -100, 100, 0, material.NewDiffuseLight(core.NewVec3(0.25, 0.25, 0.25)))
	r := newTestRenderer(t, wall, integrator.NewSolidBackground(core.Vec3{}), Config{
		Width: 12, Height: 6, SamplesPerPixel: 3, MaxDepth: 5, NumWorkers: 4, Seed: 42,
	})

	img, stats, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := color.RGBA{128, 128, 128, 255}
	for y := 0; y < 6; y++ {
		for x := 0; x < 12; x++ {
			if got := img.RGBAAt(x, y); got != expected {
				t.Fatalf("Pixel (%d, %d): expected %v, got %v", x, y, expected, got)
			}
		}
	}

	if stats.Columns != 12 || stats.Workers != 4 || stats.TotalSamples != 12*6*3 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if math.Abs(stats.AverageLuminance-128.0/255.0) > 1e-9 {
		t.Errorf("Expected average luminance %v, got %v", 128.0/255.0, stats.AverageLuminance)
	}
}

func TestRenderDeterministic(t *testing.T) {
	config := Config{Width: 16, Height: 8, SamplesPerPixel: 4, MaxDepth: 8, NumWorkers: 3, Seed: 7}

	a, _, err := newTestRenderer(t, sphereWorld(), integrator.NewSkyBackground(), config).Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, _, err := newTestRenderer(t, sphereWorld(), integrator.NewSkyBackground(), config).Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Errorf("Expected identical images for identical seed and worker count")
	}
}

func TestRenderWorkerStats(t *testing.T) {
	config := Config{Width: 10, Height: 4, SamplesPerPixel: 2, MaxDepth: 4, NumWorkers: 3, Seed: 1}
	_, stats, err := newTestRenderer(t, sphereWorld(), integrator.NewSkyBackground(), config).Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(stats.WorkerStats) != 3 {
		t.Fatalf("Expected 3 worker stats, got %d", len(stats.WorkerStats))
	}
	columns, samples, next := 0, 0, 0
	for _, ws := range stats.WorkerStats {
		if ws.FirstColumn != next {
			t.Errorf("Worker %d: expected first column %d, got %d", ws.ID, next, ws.FirstColumn)
		}
		next = ws.FirstColumn + ws.Columns
		columns += ws.Columns
		samples += ws.Samples
	}
	if columns != 10 || samples != 10*4*2 || stats.TotalSamples != samples {
		t.Errorf("Expected 10 columns and 80 samples, got %d columns and %d samples (total %d)", columns, samples, stats.TotalSamples)
	}

	var buf bytes.Buffer
	stats.WriteTable(&buf)
	out := buf.String()
	for _, want := range []string{"Worker", "% of frame", "TOTAL", "10x4 @ 2 spp", "80"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderSingleSphereCenterPixel(t *testing.T) {
	// Unit Lambertian sphere, sky background, 1 sample at depth 1: the center
	// pixel absorbs, so it is darker than the background behind it
	world := geometry.NewSphere(core.Vec3{}, 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	background := integrator.NewSkyBackground()
	r := newTestRenderer(t, world, background, Config{
		Width: 21, Height: 11, SamplesPerPixel: 1, MaxDepth: 1, NumWorkers: 2, Seed: 42,
	})

	img, _, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	center := img.RGBAAt(10, 5)
	sky := ToneMap(background.Color(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0)), 1)
	if !(center.R < sky.R || center.G < sky.G || center.B < sky.B) {
		t.Errorf("Expected center pixel %v darker than background %v in some channel", center, sky)
	}

	corner := img.RGBAAt(0, 0)
	if corner.B <= center.B {
		t.Errorf("Expected sky corner %v brighter than sphere center %v", corner, center)
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRenderer(t, sphereWorld(), integrator.NewSkyBackground(), Config{
		Width: 8, Height: 8, SamplesPerPixel: 1, MaxDepth: 2, NumWorkers: 2,
	})
	if _, _, err := r.Render(ctx); !xerrors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
