package material

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCheckerTexture(t *testing.T) {
	even := core.NewVec3(0.2, 0.3, 0.1)
	odd := core.NewVec3(0.9, 0.9, 0.9)
	checker := NewCheckerColors(even, odd)

	tests := []struct {
		name     string
		p        core.Vec3
		expected core.Vec3
	}{
		// sin(1)^3 > 0
		{"all positive", core.NewVec3(0.1, 0.1, 0.1), even},
		// sin(-1)*sin(1)*sin(1) < 0
		{"one negative", core.NewVec3(-0.1, 0.1, 0.1), odd},
		{"two negative", core.NewVec3(-0.1, -0.1, 0.1), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Evaluate(0, 0, tt.p); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPerlin_Deterministic(t *testing.T) {
	a := NewPerlin(rand.New(rand.NewSource(42)))
	b := NewPerlin(rand.New(rand.NewSource(42)))

	p := core.NewVec3(1.3, -2.7, 0.4)
	if a.Noise(p) != b.Noise(p) {
		t.Error("Expected identical noise from identical seeds")
	}
}

func TestPerlin_Range(t *testing.T) {
	perlin := NewPerlin(rand.New(rand.NewSource(42)))
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		p := core.RandomVec3(random, -50, 50)
		n := perlin.Noise(p)
		if math.IsNaN(n) || n < -1.5 || n > 1.5 {
			t.Fatalf("Noise out of range at %v: %v", p, n)
		}
		if turb := perlin.Turbulence(p, 7); turb < 0 {
			t.Fatalf("Turbulence negative at %v: %v", p, turb)
		}
	}

	// Gradient noise vanishes at lattice points
	if n := perlin.Noise(core.NewVec3(3, -4, 5)); math.Abs(n) > 1e-12 {
		t.Errorf("Expected zero noise at lattice point, got %v", n)
	}
}

func TestNoiseTexture_Range(t *testing.T) {
	texture := NewNoiseTexture(NewPerlin(rand.New(rand.NewSource(42))), 4)
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		c := texture.Evaluate(0, 0, core.RandomVec3(random, -10, 10))
		if c.X < 0 || c.X > 1 || c.X != c.Y || c.Y != c.Z {
			t.Fatalf("Expected grey in [0,1], got %v", c)
		}
	}
}

func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	pixels := []core.Vec3{
		core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), // Row 0 (top in image coords)
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), // Row 1 (bottom in image coords)
	}
	texture := NewImageTexture(2, 2, pixels)

	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"bottom left", 0.1, 0.1, black},
		{"bottom right", 0.9, 0.1, white},
		{"top left", 0.1, 0.9, white},
		{"top right", 0.9, 0.9, black},
		{"u clamped above", 1.5, 0.9, black},
		{"v clamped below", 0.1, -3, black},
		{"exact corner", 1, 1, black},
		{"exact origin", 0, 0, black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.u, tt.v, core.Vec3{}); !got.Equals(tt.expected) {
				t.Errorf("UV(%v,%v): expected %v, got %v", tt.u, tt.v, tt.expected, got)
			}
		})
	}
}

func TestImageTexture_Empty(t *testing.T) {
	var texture *ImageTexture
	if got := texture.Evaluate(0.5, 0.5, core.Vec3{}); !got.Equals(core.NewVec3(0, 1, 1)) {
		t.Errorf("Expected cyan for missing texture, got %v", got)
	}
	if got := NewImageTexture(0, 0, nil).Evaluate(0.5, 0.5, core.Vec3{}); !got.Equals(core.NewVec3(0, 1, 1)) {
		t.Errorf("Expected cyan for empty texture, got %v", got)
	}
}

func TestLoadImageTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	texture, err := LoadImageTexture(path)
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}
	if got := texture.Evaluate(0.5, 0.5, core.Vec3{}); !got.Equals(core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected red, got %v", got)
	}

	if _, err := LoadImageTexture(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("Expected error for missing texture file")
	}
}
