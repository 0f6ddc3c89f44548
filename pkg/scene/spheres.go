package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"golang.org/x/xerrors"
)

// daylight is the flat sky color of the outdoor presets
var daylight = core.NewVec3(0.70, 0.80, 1.00)

// outdoorCamera looks at the origin from (13,2,3), the framing shared by the
// sphere presets
func outdoorCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		FocusDistance: 10,
		Time1:         1,
	}
}

func checkerGround() material.Texture {
	return material.NewCheckerColors(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
}

// NewRandomSpheresScene creates a field of small random spheres around three
// large ones on a checkered ground. Diffuse spheres bounce during the shutter.
func NewRandomSpheresScene(opts Options, random *rand.Rand) (*Scene, error) {
	camera := outdoorCamera()
	camera.AspectRatio = 3.0 / 2.0
	camera.Aperture = 0.1
	s := newScene("random-spheres", camera, integrator.NewSolidBackground(daylight))

	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checkerGround())))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(random, 0, 1).MultiplyVec(core.RandomVec3(random, 0, 1))
				center1 := center.Add(core.NewVec3(0, core.RandomFloat(random, 0, 0.5), 0))
				s.Add(geometry.NewMovingSphere(center, center1, 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(random, 0.5, 1)
				fuzz := core.RandomFloat(random, 0, 0.5)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)
	s.SamplingConfig.Width = 600
	s.SamplingConfig.Height = 400
	return s, nil
}

// NewTwoSpheresScene stacks two large checkered spheres
func NewTwoSpheresScene(opts Options, random *rand.Rand) (*Scene, error) {
	s := newScene("two-spheres", outdoorCamera(), integrator.NewSolidBackground(daylight))
	checker := material.NewTexturedLambertian(checkerGround())
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)
	return s, nil
}

// NewTwoPerlinSpheresScene places a marbled sphere on a marbled ground
func NewTwoPerlinSpheresScene(opts Options, random *rand.Rand) (*Scene, error) {
	s := newScene("two-perlin-spheres", outdoorCamera(), integrator.NewSolidBackground(daylight))
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(material.NewPerlin(random), 4))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
	return s, nil
}

// NewEarthScene wraps an image texture around a single globe
func NewEarthScene(opts Options, random *rand.Rand) (*Scene, error) {
	texture, err := earthTexture(opts)
	if err != nil {
		return nil, err
	}
	s := newScene("earth", outdoorCamera(), integrator.NewSolidBackground(daylight))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(texture)))
	return s, nil
}

// NewSingleSphereScene is one diffuse unit sphere under a gradient sky
func NewSingleSphereScene(opts Options, random *rand.Rand) (*Scene, error) {
	s := newScene("single-sphere", renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		VFov:        40,
		AspectRatio: 16.0 / 9.0,
	}, integrator.NewSkyBackground())
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	return s, nil
}

// earthTexture loads the texture image named by opts. Without a path the
// texture is left empty and renders as solid cyan.
func earthTexture(opts Options) (material.Texture, error) {
	if opts.TexturePath == "" {
		logger.Warning("no texture image given, earth texture renders as cyan")
		return material.NewImageTexture(0, 0, nil), nil
	}
	texture, err := material.LoadImageTexture(opts.TexturePath)
	if err != nil {
		return nil, xerrors.Errorf("while loading earth texture: %w", err)
	}
	return texture, nil
}
