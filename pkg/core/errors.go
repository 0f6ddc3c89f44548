package core

import "golang.org/x/xerrors"

var (
	// ErrNoBoundingBox is returned when a BVH is built over an object with no bounding box.
	ErrNoBoundingBox = xerrors.New("core: object has no bounding box")

	// ErrEmptyScene is returned when an acceleration structure is built over zero objects.
	ErrEmptyScene = xerrors.New("core: scene contains no objects")

	// ErrInvalidConfig is returned when render or camera settings are unusable.
	ErrInvalidConfig = xerrors.New("core: invalid configuration")

	// ErrUnsupportedFormat is returned for image files with an unknown extension.
	ErrUnsupportedFormat = xerrors.New("core: unsupported image format")
)
