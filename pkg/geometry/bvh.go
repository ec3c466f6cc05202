package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Items       []int // Shape indices for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-shape intersection.
// It is immutable after construction and safe for concurrent queries.
type BVH struct {
	Root   *BVHNode
	shapes []Shape
	boxes  []core.AABB
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	bvh := &BVH{
		shapes: make([]Shape, len(shapes)),
		boxes:  make([]core.AABB, len(shapes)),
	}
	copy(bvh.shapes, shapes)

	if len(shapes) == 0 {
		return bvh
	}

	items := make([]int, len(shapes))
	for i, s := range bvh.shapes {
		items[i] = i
		bvh.boxes[i] = s.BoundingBox()
	}

	bvh.Root = bvh.build(items)
	return bvh
}

// build recursively builds the BVH using median splitting on the longest axis
func (bvh *BVH) build(items []int) *BVHNode {
	box := bvh.boxes[items[0]]
	for _, i := range items[1:] {
		box = box.Union(bvh.boxes[i])
	}

	if len(items) <= leafThreshold {
		return &BVHNode{BoundingBox: box, Items: items}
	}

	axis := box.LongestAxis()
	lo, hi := box.Min.Axis(axis), box.Max.Axis(axis)
	if hi <= lo {
		return &BVHNode{BoundingBox: box, Items: items}
	}
	split := (lo + hi) * 0.5

	var left, right []int
	for _, i := range items {
		if bvh.boxes[i].Center().Axis(axis) < split {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	// Ensure we don't create empty partitions
	if len(left) == 0 || len(right) == 0 {
		return &BVHNode{BoundingBox: box, Items: items}
	}

	return &BVHNode{
		BoundingBox: box,
		Left:        bvh.build(left),
		Right:       bvh.build(right),
	}
}

// Hit tests if a ray intersects any shape in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	hit, _, ok := bvh.HitIndex(ray, tMin, tMax)
	return hit, ok
}

// HitIndex returns the closest hit and the index of the shape that produced it
func (bvh *BVH) HitIndex(ray core.Ray, tMin, tMax float64) (Hit, int, bool) {
	if bvh.Root == nil {
		return Hit{}, -1, false
	}
	closest := Hit{T: tMax}
	index := -1
	bvh.hitNode(bvh.Root, ray, tMin, &closest, &index)
	return closest, index, index >= 0
}

// hitNode recursively tests ray intersection with BVH nodes, shrinking the
// search interval to the closest hit found so far
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin float64, closest *Hit, index *int) {
	if !node.BoundingBox.Hit(ray, tMin, closest.T) {
		return
	}

	if node.Items != nil {
		for _, i := range node.Items {
			if hit, ok := bvh.shapes[i].Hit(ray, tMin, closest.T); ok {
				*closest = hit
				*index = i
			}
		}
		return
	}

	if node.Left != nil {
		bvh.hitNode(node.Left, ray, tMin, closest, index)
	}
	if node.Right != nil {
		bvh.hitNode(node.Right, ray, tMin, closest, index)
	}
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	totalShapes int
}

// stats walks the tree and collects structural statistics
func (bvh *BVH) stats() bvhStats {
	var s bvhStats
	if bvh.Root != nil {
		collectStats(bvh.Root, 0, &s)
	}
	return s
}

func collectStats(node *BVHNode, depth int, s *bvhStats) {
	s.totalNodes++
	s.maxDepth = max(s.maxDepth, depth)

	if node.Items != nil {
		s.leafNodes++
		s.totalShapes += len(node.Items)
		return
	}
	if node.Left != nil {
		collectStats(node.Left, depth+1, s)
	}
	if node.Right != nil {
		collectStats(node.Right, depth+1, s)
	}
}

// primitiveShapes extracts the shapes of a primitive list in order
func primitiveShapes(prims []*Primitive) []Shape {
	shapes := make([]Shape, len(prims))
	for i, p := range prims {
		shapes[i] = p.Shape
	}
	return shapes
}

// BVHAccelerator intersects primitives through a BVH over their shapes
type BVHAccelerator struct {
	prims []*Primitive
	bvh   *BVH
}

// NewBVHAccelerator builds a BVH over the primitives
func NewBVHAccelerator(prims []*Primitive) (Accelerator, error) {
	if err := validatePrimitives(prims); err != nil {
		return nil, err
	}
	return &BVHAccelerator{prims: prims, bvh: NewBVH(primitiveShapes(prims))}, nil
}

// Intersect returns the closest interaction along the ray
func (a *BVHAccelerator) Intersect(ray core.Ray, tMin, tMax float64) (*material.Interaction, bool) {
	hit, id, ok := a.bvh.HitIndex(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	return newInteraction(ray, hit, a.prims[id], id), true
}
