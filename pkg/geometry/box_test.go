package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestRects_Hit(t *testing.T) {
	tests := []struct {
		name       string
		object     Hittable
		ray        core.Ray
		expectHit  bool
		expectedT  float64
		expectedUV [2]float64
		normal     core.Vec3
	}{
		{
			name:       "xy rect from front",
			object:     NewXYRect(0, 2, 0, 4, -1, testMaterial),
			ray:        core.NewRay(core.NewVec3(0.5, 1, 1), core.NewVec3(0, 0, -1), 0),
			expectHit:  true,
			expectedT:  2,
			expectedUV: [2]float64{0.25, 0.25},
			normal:     core.NewVec3(0, 0, 1),
		},
		{
			name:       "xy rect from behind",
			object:     NewXYRect(0, 2, 0, 4, -1, testMaterial),
			ray:        core.NewRay(core.NewVec3(1, 2, -3), core.NewVec3(0, 0, 1), 0),
			expectHit:  true,
			expectedT:  2,
			expectedUV: [2]float64{0.5, 0.5},
			normal:     core.NewVec3(0, 0, -1),
		},
		{
			name:      "xy rect outside extent",
			object:    NewXYRect(0, 2, 0, 4, -1, testMaterial),
			ray:       core.NewRay(core.NewVec3(3, 1, 1), core.NewVec3(0, 0, -1), 0),
			expectHit: false,
		},
		{
			name:      "xy rect parallel ray in plane",
			object:    NewXYRect(0, 2, 0, 4, -1, testMaterial),
			ray:       core.NewRay(core.NewVec3(-1, 1, -1), core.NewVec3(1, 0, 0), 0),
			expectHit: false,
		},
		{
			name:       "xz rect from above",
			object:     NewXZRect(-1, 1, -1, 1, 0, testMaterial),
			ray:        core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), 0),
			expectHit:  true,
			expectedT:  5,
			expectedUV: [2]float64{0.5, 0.5},
			normal:     core.NewVec3(0, 1, 0),
		},
		{
			name:       "yz rect from -x",
			object:     NewYZRect(0, 1, 0, 1, 2, testMaterial),
			ray:        core.NewRay(core.NewVec3(0, 0.5, 0.5), core.NewVec3(1, 0, 0), 0),
			expectHit:  true,
			expectedT:  2,
			expectedUV: [2]float64{0.5, 0.5},
			normal:     core.NewVec3(-1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tt.object.Hit(tt.ray, 0.001, math.Inf(1), nil)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%v, got %v", tt.expectedT, hit.T)
			}
			if math.Abs(hit.U-tt.expectedUV[0]) > 1e-9 || math.Abs(hit.V-tt.expectedUV[1]) > 1e-9 {
				t.Errorf("Expected uv %v, got (%v, %v)", tt.expectedUV, hit.U, hit.V)
			}
			if !hit.Normal.Equals(tt.normal) {
				t.Errorf("Expected normal %v, got %v", tt.normal, hit.Normal)
			}
		})
	}
}

func TestRect_BoundingBoxPadded(t *testing.T) {
	box, ok := NewXZRect(0, 555, 0, 555, 0, testMaterial).BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected rect to be bounded")
	}
	if box.Max.Y-box.Min.Y <= 0 {
		t.Errorf("Expected padded Y extent, got %v", box)
	}
}

func TestBox_Hit(t *testing.T) {
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3), testMaterial)

	hit, ok := box.Hit(core.NewRay(core.NewVec3(0.5, 1, 10), core.NewVec3(0, 0, -1), 0), 0.001, math.Inf(1), nil)
	if !ok {
		t.Fatal("Expected hit on front face")
	}
	if math.Abs(hit.T-7) > 1e-9 {
		t.Errorf("Expected nearest face at t=7, got %v", hit.T)
	}
	if !hit.FrontFace {
		t.Error("Expected front-face hit from outside")
	}

	// From inside every hit is a back face
	hit, ok = box.Hit(core.NewRay(core.NewVec3(0.5, 1, 1.5), core.NewVec3(1, 0, 0), 0), 0.001, math.Inf(1), nil)
	if !ok {
		t.Fatal("Expected hit from inside")
	}
	if hit.FrontFace || math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected back-face hit at t=0.5, got front=%v t=%v", hit.FrontFace, hit.T)
	}

	bbox, _ := box.BoundingBox(0, 1)
	if bbox != core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3)) {
		t.Errorf("Unexpected box bounds %v", bbox)
	}
}

func TestHittableList(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5, testMaterial)
	far := NewSphere(core.NewVec3(0, 0, -5), 0.5, testMaterial)
	list := NewHittableList(far)
	list.Add(near)

	if list.Len() != 2 {
		t.Fatalf("Expected 2 objects, got %d", list.Len())
	}

	hit, ok := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0), 0.001, math.Inf(1), nil)
	if !ok || math.Abs(hit.T-1.5) > 1e-9 {
		t.Errorf("Expected closest hit at t=1.5, got %v", hit)
	}

	if _, ok := NewHittableList().BoundingBox(0, 1); ok {
		t.Error("Expected empty list to have no box")
	}

	box, ok := list.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected list of spheres to be bounded")
	}
	expected := core.NewAABB(core.NewVec3(-0.5, -0.5, -5.5), core.NewVec3(0.5, 0.5, -1.5))
	if box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}

	list.Add(unboundedPlane{})
	if _, ok := list.BoundingBox(0, 1); ok {
		t.Error("Expected list with an unbounded member to have no box")
	}
}
