package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Evaluate returns color at surface coordinates (u, v) and 3D point p.
	// UV is used for image textures, point for procedural textures.
	Evaluate(u, v float64, p core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(u, v float64, p core.Vec3) core.Vec3 {
	return s.Color
}

// DefaultCheckerScale is the spatial frequency used by the book scenes
const DefaultCheckerScale = 10.0

// CheckerTexture alternates between two textures in a 3D checker pattern
type CheckerTexture struct {
	Even  Texture
	Odd   Texture
	Scale float64
}

// NewCheckerTexture creates a checker texture from two textures
func NewCheckerTexture(even, odd Texture, scale float64) *CheckerTexture {
	return &CheckerTexture{Even: even, Odd: odd, Scale: scale}
}

// NewCheckerColors creates a checker texture from two solid colors at the default scale
func NewCheckerColors(even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(NewSolidColor(even), NewSolidColor(odd), DefaultCheckerScale)
}

// Evaluate picks Odd where the product of sines is negative
func (c *CheckerTexture) Evaluate(u, v float64, p core.Vec3) core.Vec3 {
	sines := math.Sin(c.Scale*p.X) * math.Sin(c.Scale*p.Y) * math.Sin(c.Scale*p.Z)
	if sines < 0 {
		return c.Odd.Evaluate(u, v, p)
	}
	return c.Even.Evaluate(u, v, p)
}

// NoiseTexture is a marble-like grey pattern driven by Perlin turbulence
type NoiseTexture struct {
	Noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a noise texture over the given Perlin generator
func NewNoiseTexture(noise *Perlin, scale float64) *NoiseTexture {
	return &NoiseTexture{Noise: noise, Scale: scale}
}

// Evaluate returns a grey level in [0,1]
func (n *NoiseTexture) Evaluate(u, v float64, p core.Vec3) core.Vec3 {
	grey := 0.5 * (1 + math.Sin(n.Scale*p.Z+10*n.Noise.Turbulence(p, defaultTurbulenceDepth)))
	return core.NewVec3(grey, grey, grey)
}
