package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// shadowAcneEpsilon keeps a scattered ray from re-hitting the surface it left
const shadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct{}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor computes the color for a single ray. Each bounce adds the hit
// material's emission to its attenuated scattered contribution; escaped rays
// take the background color.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, background Background, world geometry.Hittable, depth int, random *rand.Rand) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, shadowAcneEpsilon, math.Inf(1), random)
	if !isHit {
		return background.Color(ray)
	}

	colorEmitted := material.EmittedLight(hit.Material, hit.U, hit.V, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, hit, random)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	colorScattered := scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, background, world, depth-1, random))
	return colorEmitted.Add(colorScattered)
}
