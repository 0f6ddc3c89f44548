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

const (
	groundBoxesPerSide = 20
	clusterSpheres     = 1000
)

// NewFinalScene combines every primitive, material and texture: a field of
// boxes, a moving sphere, glass, metal, subsurface fog, global mist, an
// earth globe, a marbled sphere and a rotated cluster of small spheres.
func NewFinalScene(opts Options, random *rand.Rand) (*Scene, error) {
	s := newScene("final", renderer.CameraConfig{
		Center:        core.NewVec3(478, 278, -600),
		LookAt:        core.NewVec3(278, 278, 0),
		VFov:          40,
		AspectRatio:   1.0,
		FocusDistance: 10,
		Time1:         1,
	}, integrator.NewSolidBackground(black))

	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	boxes := make([]geometry.Hittable, 0, groundBoxesPerSide*groundBoxesPerSide)
	for i := 0; i < groundBoxesPerSide; i++ {
		for j := 0; j < groundBoxesPerSide; j++ {
			const w = 100.0
			x0 := -1000 + float64(i)*w
			z0 := -1000 + float64(j)*w
			y1 := core.RandomFloat(random, 1, 101)
			boxes = append(boxes, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	groundBVH, err := geometry.NewBVHNode(boxes, 0, 1, random)
	if err != nil {
		return nil, xerrors.Errorf("while building ground boxes: %w", err)
	}
	s.Add(groundBVH)

	s.Add(geometry.NewXZRect(123, 423, 147, 412, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7))))

	center0 := core.NewVec3(400, 400, 200)
	center1 := center0.Add(core.NewVec3(30, 0, 0))
	s.Add(geometry.NewMovingSphere(center0, center1, 0, 1, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	s.Add(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass shell filled with blue fog
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Add(boundary, geometry.NewConstantMedium(boundary, 0.02, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin mist over everything
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	s.Add(geometry.NewConstantMedium(mist, 0.0001, core.NewVec3(1, 1, 1)))

	texture, err := earthTexture(opts)
	if err != nil {
		return nil, err
	}
	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(texture)))

	marble := material.NewNoiseTexture(material.NewPerlin(random), 0.1)
	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(marble)))

	whiteMat := material.NewLambertian(white)
	cluster := make([]geometry.Hittable, clusterSpheres)
	for i := range cluster {
		cluster[i] = geometry.NewSphere(core.RandomVec3(random, 0, 165), 10, whiteMat)
	}
	clusterBVH, err := geometry.NewBVHNode(cluster, 0, 1, random)
	if err != nil {
		return nil, xerrors.Errorf("while building sphere cluster: %w", err)
	}
	s.Add(geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)))

	s.SamplingConfig.Height = s.SamplingConfig.Width
	s.SamplingConfig.SamplesPerPixel = 100
	return s, nil
}
