package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

var (
	red   = core.NewVec3(0.65, 0.05, 0.05)
	white = core.NewVec3(0.73, 0.73, 0.73)
	green = core.NewVec3(0.12, 0.45, 0.15)
	black = core.Vec3{}
)

// NewSimpleLightScene lights two marbled spheres with a single rect light
func NewSimpleLightScene(opts Options, random *rand.Rand) (*Scene, error) {
	s := newScene("simple-light", renderer.CameraConfig{
		Center:        core.NewVec3(26, 3, 6),
		LookAt:        core.NewVec3(0, 2, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		FocusDistance: 10,
		Time1:         1,
	}, integrator.NewSolidBackground(black))

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(material.NewPerlin(random), 4))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewXYRect(3, 5, 1, 3, -2, material.NewDiffuseLight(core.NewVec3(4, 4, 4))),
	)
	s.SamplingConfig.SamplesPerPixel = 400
	return s, nil
}

func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(278, 278, -800), // Outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),
		VFov:          40,
		AspectRatio:   1.0,
		FocusDistance: 10,
		Time1:         1,
	}
}

// addCornellWalls adds the five walls of the box and a ceiling light spanning
// [x0,x1] x [z0,z1]
func addCornellWalls(s *Scene, light material.Material, x0, x1, z0, z1 float64) {
	whiteWall := material.NewLambertian(white)
	s.Add(
		geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, material.NewLambertian(green)), // left
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, material.NewLambertian(red)),         // right
		geometry.NewXZRect(x0, x1, z0, z1, boxSize-1, light),
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, whiteWall),       // floor
		geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, whiteWall), // ceiling
		geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, whiteWall), // back
	)
}

// cornellBlocks returns the tall and short boxes, rotated and placed
func cornellBlocks(mat material.Material) (tall, short geometry.Hittable) {
	tall = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat)
	tall = geometry.NewTranslate(geometry.NewRotateY(tall, 15), core.NewVec3(265, 0, 295))

	short = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat)
	short = geometry.NewTranslate(geometry.NewRotateY(short, -18), core.NewVec3(130, 0, 65))
	return tall, short
}

// NewCornellBoxScene creates the classic Cornell box with two rotated blocks
func NewCornellBoxScene(opts Options, random *rand.Rand) (*Scene, error) {
	s := newScene("cornell-box", cornellCamera(), integrator.NewSolidBackground(black))
	addCornellWalls(s, material.NewDiffuseLight(core.NewVec3(15, 15, 15)), 213, 343, 227, 332)

	tall, short := cornellBlocks(material.NewLambertian(white))
	s.Add(tall, short)

	s.SamplingConfig.Width = 600
	s.SamplingConfig.Height = 600
	s.SamplingConfig.SamplesPerPixel = 200
	return s, nil
}

// NewCornellSmokeScene replaces the Cornell blocks with dark and light fog
func NewCornellSmokeScene(opts Options, random *rand.Rand) (*Scene, error) {
	s := newScene("cornell-smoke", cornellCamera(), integrator.NewSolidBackground(black))
	addCornellWalls(s, material.NewDiffuseLight(core.NewVec3(7, 7, 7)), 113, 443, 127, 432)

	tall, short := cornellBlocks(material.NewLambertian(white))
	s.Add(
		geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	s.SamplingConfig.Height = s.SamplingConfig.Width
	s.SamplingConfig.SamplesPerPixel = 200
	return s, nil
}
