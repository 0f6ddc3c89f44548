package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"golang.org/x/xerrors"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Objects        *geometry.HittableList // Top level objects in the scene
	World          geometry.Hittable      // Acceleration structure, set by Preprocess
	CameraConfig   renderer.CameraConfig
	Camera         *renderer.Camera // Set by Preprocess
	Background     integrator.Background
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Options tune preset construction
type Options struct {
	TexturePath string // Image used by the earth-textured presets
	Seed        int64  // Seed for randomly placed objects and noise
}

const (
	defaultWidth    = 400
	defaultSPP      = 50
	defaultMaxDepth = 50
)

// newScene fills in the defaults shared by all presets
func newScene(name string, camera renderer.CameraConfig, background integrator.Background) *Scene {
	if camera.Up == (core.Vec3{}) {
		camera.Up = core.NewVec3(0, 1, 0)
	}
	return &Scene{
		Name:         name,
		Objects:      geometry.NewHittableList(),
		CameraConfig: camera,
		Background:   background,
		SamplingConfig: SamplingConfig{
			Width:           defaultWidth,
			Height:          int(math.Round(defaultWidth / camera.AspectRatio)),
			SamplesPerPixel: defaultSPP,
			MaxDepth:        defaultMaxDepth,
		},
	}
}

// Add appends objects to the top level of the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	for _, o := range objects {
		s.Objects.Add(o)
	}
}

// MergeSamplingConfig overrides the preset's sampling settings with the
// non-zero fields of override. A width without a height keeps the preset's
// aspect ratio; giving both makes the camera follow the new frame shape.
func (s *Scene) MergeSamplingConfig(override SamplingConfig) {
	switch {
	case override.Width > 0 && override.Height > 0:
		s.SamplingConfig.Width = override.Width
		s.SamplingConfig.Height = override.Height
		s.CameraConfig.AspectRatio = float64(override.Width) / float64(override.Height)
	case override.Width > 0:
		s.SamplingConfig.Width = override.Width
		s.SamplingConfig.Height = max(int(math.Round(float64(override.Width)/s.CameraConfig.AspectRatio)), 1)
	case override.Height > 0:
		s.SamplingConfig.Height = override.Height
		s.SamplingConfig.Width = max(int(math.Round(float64(override.Height)*s.CameraConfig.AspectRatio)), 1)
	}
	if override.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = override.MaxDepth
	}
}

// Preprocess prepares the scene for rendering: it builds the BVH over the
// top level objects for the camera's shutter interval and creates the camera.
func (s *Scene) Preprocess(random *rand.Rand) error {
	bvh, err := geometry.NewBVHFromList(s.Objects, s.CameraConfig.Time0, s.CameraConfig.Time1, random)
	if err != nil {
		return xerrors.Errorf("while building BVH for scene %q: %w", s.Name, err)
	}
	s.World = bvh

	camera, err := renderer.NewCamera(s.CameraConfig)
	if err != nil {
		return xerrors.Errorf("while creating camera for scene %q: %w", s.Name, err)
	}
	s.Camera = camera

	stats := bvh.Stats()
	logger.Infof("scene %q: %d objects, %d BVH nodes, depth %d", s.Name, s.Objects.Len(), stats.Nodes, stats.MaxDepth)
	return nil
}

// RendererConfig maps the sampling settings onto a render configuration
func (s *Scene) RendererConfig(numWorkers int, seed int64) renderer.Config {
	return renderer.Config{
		Width:           s.SamplingConfig.Width,
		Height:          s.SamplingConfig.Height,
		SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		MaxDepth:        s.SamplingConfig.MaxDepth,
		NumWorkers:      numWorkers,
		Seed:            seed,
	}
}

// NewRenderer creates a renderer for a preprocessed scene
func (s *Scene) NewRenderer(numWorkers int, seed int64) (*renderer.Renderer, error) {
	if s.World == nil || s.Camera == nil {
		return nil, xerrors.Errorf("scene %q has not been preprocessed: %w", s.Name, core.ErrInvalidConfig)
	}
	return renderer.NewRenderer(s.World, s.Camera, s.Background, s.RendererConfig(numWorkers, seed))
}
