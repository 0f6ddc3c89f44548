package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ToneMap converts a per-pixel radiance sum to an 8-bit color: average over
// samples, gamma 2 correction, clamp to [0, 0.999] and scale by 256.
// NaN and negative components map to black.
func ToneMap(sum core.Vec3, samples int) color.RGBA {
	scale := 1.0
	if samples > 0 {
		scale = 1.0 / float64(samples)
	}
	return color.RGBA{
		R: toByte(sum.X * scale),
		G: toByte(sum.Y * scale),
		B: toByte(sum.Z * scale),
		A: 255,
	}
}

func toByte(c float64) uint8 {
	if math.IsNaN(c) || c < 0 {
		return 0
	}
	c = math.Min(math.Sqrt(c), 0.999)
	return uint8(256 * c)
}
