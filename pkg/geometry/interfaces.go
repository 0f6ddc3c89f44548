package geometry

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect
type Hittable interface {
	// Hit returns the closest intersection with t in [tMin, tMax].
	// random is only consumed by stochastic primitives such as participating media.
	Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*material.HitRecord, bool)

	// BoundingBox returns a box enclosing the object over the time interval
	// [time0, time1], or false if the object is unbounded.
	BoundingBox(time0, time1 float64) (core.AABB, bool)
}
