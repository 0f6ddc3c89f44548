package renderer

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/xerrors"
)

// SaveImage writes img to path, picking the encoder from the file extension
// (.png, .bmp, .tif or .tiff). Missing parent directories are created.
func SaveImage(path string, img image.Image) error {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return xerrors.Errorf("while creating output directory %q: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("while creating %q: %w", path, err)
	}

	if err := encode(f, img); err != nil {
		_ = f.Close()
		return xerrors.Errorf("while encoding %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return xerrors.Errorf("while closing %q: %w", path, err)
	}

	logger.Infof("wrote %s", path)
	return nil
}

type encodeFunc func(f *os.File, img image.Image) error

func encoderFor(path string) (encodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return func(f *os.File, img image.Image) error { return png.Encode(f, img) }, nil
	case ".bmp":
		return func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }, nil
	case ".tif", ".tiff":
		return func(f *os.File, img image.Image) error {
			return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, xerrors.Errorf("output file %q: %w", path, core.ErrUnsupportedFormat)
	}
}
