package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"golang.org/x/image/bmp"
	"golang.org/x/xerrors"
)

func writeTestImage(t *testing.T, path string, encode func(*os.File, image.Image) error) {
	t.Helper()

	// 2x2 image: white red / green blue
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
}

func TestLoadImage(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		format string
		encode func(*os.File, image.Image) error
	}{
		{
			name:   "PNG",
			file:   "test.png",
			format: "png",
			encode: func(f *os.File, img image.Image) error { return png.Encode(f, img) },
		},
		{
			name:   "BMP",
			file:   "test.bmp",
			format: "bmp",
			encode: func(f *os.File, img image.Image) error { return bmp.Encode(f, img) },
		},
	}

	expected := []core.Vec3{
		core.NewVec3(1, 1, 1), core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1),
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeTestImage(t, path, tt.encode)

			data, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if data.Width != 2 || data.Height != 2 {
				t.Fatalf("Expected 2x2 image, got %dx%d", data.Width, data.Height)
			}
			if data.Format != tt.format {
				t.Errorf("Expected format %q, got %q", tt.format, data.Format)
			}
			for i, want := range expected {
				if got := data.Pixels[i]; got.Subtract(want).Length() > 1e-6 {
					t.Errorf("Pixel %d: expected %v, got %v", i, want, got)
				}
			}
		})
	}
}

func TestLoadImage_Missing(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !xerrors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestLoadImageWithOptions_Downsamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.png")
	big := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			big.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, big); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	data, err := LoadImageWithOptions(path, LoadOptions{MaxDimension: 16})
	if err != nil {
		t.Fatalf("LoadImageWithOptions failed: %v", err)
	}
	if data.Width != 16 || data.Height != 8 {
		t.Errorf("Expected 16x8 after downsampling, got %dx%d", data.Width, data.Height)
	}
}
