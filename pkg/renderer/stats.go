package renderer

import (
	"fmt"
	"image"
	"io"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width            int
	Height           int
	SamplesPerPixel  int
	MaxDepth         int
	Workers          int           // Number of column workers
	Columns          int           // Columns delivered to the collector
	TotalSamples     int           // Camera rays traced across all workers
	Duration         time.Duration // Wall time of the render
	AverageLuminance float64       // Mean luminance of the tone mapped image
	WorkerStats      []WorkerStats
}

// WorkerStats describes the share of the frame rendered by one worker
type WorkerStats struct {
	ID          int
	FirstColumn int
	Columns     int
	Samples     int
	Duration    time.Duration
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// WriteTable renders a per-worker breakdown with a totals footer
func (s RenderStats) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Columns", "% of frame", "Samples", "Render time"})
	for _, ws := range s.WorkerStats {
		percent := 0.0
		if s.Width > 0 {
			percent = 100 * float64(ws.Columns) / float64(s.Width)
		}
		table.Append([]string{
			fmt.Sprintf("%d", ws.ID),
			fmt.Sprintf("%d-%d", ws.FirstColumn, ws.FirstColumn+ws.Columns-1),
			fmt.Sprintf("%02.1f %%", percent),
			fmt.Sprintf("%d", ws.Samples),
			ws.Duration.String(),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", s.Columns),
		fmt.Sprintf("%dx%d @ %d spp", s.Width, s.Height, s.SamplesPerPixel),
		fmt.Sprintf("%d", s.TotalSamples),
		s.Duration.String(),
	})
	table.Render()
}

// AverageLuminance returns the mean luminance of an image in [0, 1]
func AverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := core.NewVec3(float64(r), float64(g), float64(b)).Multiply(1.0 / 0xffff)
			total += c.Luminance()
		}
	}
	return total / float64(pixels)
}
