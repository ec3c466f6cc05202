package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// TriangleMesh represents a collection of triangles with efficient ray intersection
// It uses an internal BVH (Bounding Volume Hierarchy) for fast intersection tests
type TriangleMesh struct {
	triangles []Shape
	bvh       *BVH
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of three indices forms a triangle.
func NewTriangleMesh(vertices []core.Vec3, indices []int) (*TriangleMesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("triangle mesh: %d indices is not a multiple of 3", len(indices))
	}

	triangles := make([]Shape, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("triangle mesh: face %d index %d out of range [0, %d)", i/3, idx, len(vertices))
			}
		}
		triangles = append(triangles, NewTriangle(vertices[i0], vertices[i1], vertices[i2]))
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
	}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	return tm.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in the mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// quadBoxIndices winds every face so its normal points out of the box
var quadBoxIndices = []int{
	0, 2, 1, 0, 3, 2,
	1, 2, 5, 5, 2, 6,
	5, 6, 4, 6, 7, 4,
	4, 7, 3, 4, 3, 0,
	3, 7, 2, 2, 7, 6,
	0, 1, 4, 4, 1, 5,
}

// NewQuadBox creates a closed box mesh from a corner p and three edge vectors
func NewQuadBox(p, px, py, pz core.Vec3) *TriangleMesh {
	vertices := []core.Vec3{
		p,
		p.Add(px),
		p.Add(px).Add(py),
		p.Add(py),
		p.Add(pz),
		p.Add(pz).Add(px),
		p.Add(pz).Add(px).Add(py),
		p.Add(pz).Add(py),
	}
	mesh, err := NewTriangleMesh(vertices, quadBoxIndices)
	if err != nil {
		// quadBoxIndices are static and always in range
		panic(err)
	}
	return mesh
}
