package geometry

import (
	"math/rand"
	"sort"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
	"golang.org/x/xerrors"
)

var logger = log.New("bvh")

// BVHNode is a binary bounding volume hierarchy node. Its box is cached at
// construction and valid over the construction time interval.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	Box   core.AABB

	single bool // Left and Right hold the same object
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Nodes    int
	Leaves   int
	MaxDepth int
}

// NewBVHFromList builds a hierarchy over the objects of a list
func NewBVHFromList(list *HittableList, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	return NewBVHNode(list.Objects, time0, time1, random)
}

// NewBVHNode builds a hierarchy over objects. Every object must have a
// bounding box over [time0, time1].
func NewBVHNode(objects []Hittable, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, xerrors.Errorf("while building BVH: %w", core.ErrEmptyScene)
	}

	start := time.Now()

	// Sorting reorders the slice; leave the caller's list untouched
	entries := make([]bvhEntry, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, xerrors.Errorf("while building BVH: object %d (%T): %w", i, object, core.ErrNoBoundingBox)
		}
		entries[i] = bvhEntry{object: object, box: box}
	}

	node := buildBVH(entries, random).object.(*BVHNode)

	stats := node.Stats()
	logger.Debugf("built BVH over %d objects in %s: nodes=%d leaves=%d depth=%d",
		len(objects), time.Since(start), stats.Nodes, stats.Leaves, stats.MaxDepth)

	return node, nil
}

// bvhEntry pairs an object with its box so boxes are computed once per build
type bvhEntry struct {
	object Hittable
	box    core.AABB
}

// buildBVH splits entries on a random axis at the median of their box minimums
func buildBVH(entries []bvhEntry, random *rand.Rand) bvhEntry {
	axis := core.RandomInt(random, 0, 2)
	less := func(a, b bvhEntry) bool {
		return a.box.Min.Axis(axis) < b.box.Min.Axis(axis)
	}

	var left, right bvhEntry
	switch n := len(entries); n {
	case 1:
		left, right = entries[0], entries[0]
	case 2:
		if less(entries[0], entries[1]) {
			left, right = entries[0], entries[1]
		} else {
			left, right = entries[1], entries[0]
		}
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return less(entries[i], entries[j])
		})
		mid := n / 2
		left = buildBVH(entries[:mid], random)
		right = buildBVH(entries[mid:], random)
	}

	node := &BVHNode{
		Left:   left.object,
		Right:  right.object,
		Box:    core.SurroundingBox(left.box, right.box),
		single: len(entries) == 1,
	}
	return bvhEntry{object: node, box: node.Box}
}

// Hit tests the node box, then both children with the right side limited to
// the left side's hit
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax, random)
	if hitLeft {
		tMax = leftHit.T
	}

	// A leaf holding a single object stores it on both sides
	if n.single {
		return leftHit, hitLeft
	}

	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax, random); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the cached box
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, true
}

// Stats walks the hierarchy and counts its nodes
func (n *BVHNode) Stats() BVHStats {
	var stats BVHStats
	n.collectStats(1, &stats)
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	for _, child := range []Hittable{n.Left, n.Right} {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.Leaves++
		}
	}
	if n.single {
		stats.Leaves--
	}
}
