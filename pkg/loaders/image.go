package loaders

import (
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"golang.org/x/image/draw"
	"golang.org/x/xerrors"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major from the top, channels in [0,1]
	Format string     // Decoder that read the file
}

// LoadOptions controls how an image is read into memory
type LoadOptions struct {
	// MaxDimension, when positive, downsamples images whose larger side
	// exceeds it, keeping the aspect ratio
	MaxDimension int
}

// LoadImage loads a PNG, JPEG, BMP, TIFF or WebP image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	return LoadImageWithOptions(filename, LoadOptions{})
}

// LoadImageWithOptions is LoadImage with optional downsampling
func LoadImageWithOptions(filename string, opts LoadOptions) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, xerrors.Errorf("while opening image %q: %w", filename, err)
	}
	defer file.Close()

	// Format is sniffed from the file header
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, xerrors.Errorf("while decoding image %q: %w", filename, err)
	}

	data := FromImage(resize(img, opts.MaxDimension))
	data.Format = format
	return data, nil
}

// FromImage converts any decoded image into linear [0,1] colors
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Normalise the pixel layout once so the loop below reads a flat buffer
	rgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := rgba.PixOffset(x, y)
			pixels[y*width+x] = core.NewVec3(
				float64(rgba.Pix[offset])/255.0,
				float64(rgba.Pix[offset+1])/255.0,
				float64(rgba.Pix[offset+2])/255.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

func resize(img image.Image, maxDimension int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxDimension <= 0 || (w <= maxDimension && h <= maxDimension) {
		return img
	}

	scale := float64(maxDimension) / float64(max(w, h))
	dw := max(1, int(float64(w)*scale))
	dh := max(1, int(float64(h)*scale))

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
