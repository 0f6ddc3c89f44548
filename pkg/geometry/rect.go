package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// rectThickness pads the zero-width axis of a rectangle's bounding box
const rectThickness = 0.0001

// XYRect is an axis-aligned rectangle in the plane z = K
type XYRect struct {
	X0, X1, Y0, Y1, K float64
	Material          material.Material
}

// NewXYRect creates a rectangle spanning [x0,x1] x [y0,y1] at z = k
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *XYRect {
	return &XYRect{X0: x0, X1: x1, Y0: y0, Y1: y1, K: k, Material: mat}
}

// Hit tests the plane and the rectangle extent
func (r *XYRect) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*material.HitRecord, bool) {
	return hitAxisRect(ray, tMin, tMax, 0, 1, 2, r.X0, r.X1, r.Y0, r.Y1, r.K, r.Material)
}

// BoundingBox returns the rectangle padded along Z
func (r *XYRect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(
		core.NewVec3(r.X0, r.Y0, r.K-rectThickness),
		core.NewVec3(r.X1, r.Y1, r.K+rectThickness),
	), true
}

// XZRect is an axis-aligned rectangle in the plane y = K
type XZRect struct {
	X0, X1, Z0, Z1, K float64
	Material          material.Material
}

// NewXZRect creates a rectangle spanning [x0,x1] x [z0,z1] at y = k
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *XZRect {
	return &XZRect{X0: x0, X1: x1, Z0: z0, Z1: z1, K: k, Material: mat}
}

// Hit tests the plane and the rectangle extent
func (r *XZRect) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*material.HitRecord, bool) {
	return hitAxisRect(ray, tMin, tMax, 0, 2, 1, r.X0, r.X1, r.Z0, r.Z1, r.K, r.Material)
}

// BoundingBox returns the rectangle padded along Y
func (r *XZRect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(
		core.NewVec3(r.X0, r.K-rectThickness, r.Z0),
		core.NewVec3(r.X1, r.K+rectThickness, r.Z1),
	), true
}

// YZRect is an axis-aligned rectangle in the plane x = K
type YZRect struct {
	Y0, Y1, Z0, Z1, K float64
	Material          material.Material
}

// NewYZRect creates a rectangle spanning [y0,y1] x [z0,z1] at x = k
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *YZRect {
	return &YZRect{Y0: y0, Y1: y1, Z0: z0, Z1: z1, K: k, Material: mat}
}

// Hit tests the plane and the rectangle extent
func (r *YZRect) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*material.HitRecord, bool) {
	return hitAxisRect(ray, tMin, tMax, 1, 2, 0, r.Y0, r.Y1, r.Z0, r.Z1, r.K, r.Material)
}

// BoundingBox returns the rectangle padded along X
func (r *YZRect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(
		core.NewVec3(r.K-rectThickness, r.Y0, r.Z0),
		core.NewVec3(r.K+rectThickness, r.Y1, r.Z1),
	), true
}

// hitAxisRect intersects a rectangle spanning [a0,a1] on axis a and [b0,b1] on
// axis b, lying in the plane where axis k equals k. The outward normal is +k.
func hitAxisRect(ray core.Ray, tMin, tMax float64, a, b, kAxis int, a0, a1, b0, b1, k float64, mat material.Material) (*material.HitRecord, bool) {
	t := (k - ray.Origin.Axis(kAxis)) / ray.Direction.Axis(kAxis)
	// A ray parallel to the plane gives ±Inf, or NaN when it lies in the plane
	if math.IsNaN(t) || math.IsInf(t, 0) || t < tMin || t > tMax {
		return nil, false
	}

	pa := ray.Origin.Axis(a) + t*ray.Direction.Axis(a)
	pb := ray.Origin.Axis(b) + t*ray.Direction.Axis(b)
	if pa < a0 || pa > a1 || pb < b0 || pb > b1 {
		return nil, false
	}

	var outward core.Vec3
	switch kAxis {
	case 0:
		outward = core.NewVec3(1, 0, 0)
	case 1:
		outward = core.NewVec3(0, 1, 0)
	default:
		outward = core.NewVec3(0, 0, 1)
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		U:        (pa - a0) / (a1 - a0),
		V:        (pb - b0) / (b1 - b0),
		Material: mat,
	}
	hit.SetFaceNormal(ray, outward)
	return hit, true
}
