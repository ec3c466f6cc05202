package scene

import (
	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

const cornellBoxSize = 100.0

// NewCornellBox creates the empty Cornell box. The only light is the emissive quad
// below the ceiling; rays escaping the box see black.
func NewCornellBox(opts Options) (*Scene, error) {
	width, height := opts.resolution(1024, 1024)
	position := core.NewVec3(0, 0, -1.7*cornellBoxSize)

	cam := camera.NewPerspective(camera.PerspectiveConfig{
		Width:         width,
		Height:        height,
		Position:      position,
		LookAt:        core.Vec3{},
		FOVDeg:        45,
		LensRadius:    0.3,
		FocusDistance: position.Length(),
	})

	return New(cam, CornellBoxPrimitives(cornellBoxSize), []lights.Light{})
}

// CornellBoxPrimitives returns the five walls and the ceiling light of a box
// of the given size centered on the origin. Wall normals face inward.
func CornellBoxPrimitives(boxSize float64) []*geometry.Primitive {
	white := material.NewMatte(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewMatte(core.NewVec3(0.12, 0.45, 0.15))
	red := material.NewMatte(core.NewVec3(0.65, 0.05, 0.05))

	h := boxSize / 2
	// Corners: u/d = up/down, l/r = left/right, f/b = front/back
	ulf := core.NewVec3(-h, h, -h)
	dlf := core.NewVec3(-h, -h, -h)
	dlb := core.NewVec3(-h, -h, h)
	ulb := core.NewVec3(-h, h, h)
	urf := core.NewVec3(h, h, -h)
	drf := core.NewVec3(h, -h, -h)
	drb := core.NewVec3(h, -h, h)
	urb := core.NewVec3(h, h, h)

	leftWall := geometry.NewQuadFromVertices([4]core.Vec3{ulf, ulb, dlb, dlf})
	rightWall := geometry.NewQuadFromVertices([4]core.Vec3{urf, drf, drb, urb})
	floor := geometry.NewQuadFromVertices([4]core.Vec3{dlf, dlb, drb, drf})
	ceiling := geometry.NewQuadFromVertices([4]core.Vec3{ulf, urf, urb, ulb})
	backWall := geometry.NewQuadFromVertices([4]core.Vec3{dlb, ulb, urb, drb})

	// Light sits just below the ceiling so the two never overlap
	size := 0.1 * boxSize
	y := h - 32*core.OffsetEpsilon(core.NewVec3(0, h, 0))
	light := geometry.NewQuadFromVertices([4]core.Vec3{
		core.NewVec3(-size, y, -size),
		core.NewVec3(size, y, -size),
		core.NewVec3(size, y, size),
		core.NewVec3(-size, y, size),
	})

	return []*geometry.Primitive{
		geometry.NewPrimitive(leftWall, green),
		geometry.NewPrimitive(rightWall, red),
		geometry.NewPrimitive(floor, white),
		geometry.NewPrimitive(ceiling, white),
		geometry.NewPrimitive(backWall, white),
		geometry.NewPrimitive(light, material.NewDiffuseLight(core.NewVec3(15, 15, 15))),
	}
}

// NewCornellBoxes creates the Cornell box with the classic tall and short blocks,
// each a quad box instanced under a rotation about +Y.
func NewCornellBoxes(opts Options) (*Scene, error) {
	s, err := NewCornellBox(opts)
	if err != nil {
		return nil, err
	}

	prims := append(CornellBoxPrimitives(cornellBoxSize), CornellBlocks(cornellBoxSize)...)
	return New(s.Camera, prims, []lights.Light{})
}

// CornellBlocks returns the two rotated blocks standing on the floor of a box of
// the given size
func CornellBlocks(boxSize float64) []*geometry.Primitive {
	white := &material.Matte{
		Albedo:   material.NewConstant(core.NewVec3(0.73, 0.73, 0.73)),
		Sampling: material.MatteSphereOffset,
	}

	h := boxSize / 2
	side := 0.3 * boxSize
	tall := geometry.NewQuadBox(core.Vec3{},
		core.NewVec3(side, 0, 0), core.NewVec3(0, 2*side, 0), core.NewVec3(0, 0, side))
	short := geometry.NewQuadBox(core.Vec3{},
		core.NewVec3(side, 0, 0), core.NewVec3(0, side, 0), core.NewVec3(0, 0, side))

	tallToWorld := geometry.Translate(core.NewVec3(-0.35*boxSize, -h, 0.05*boxSize)).Mul4(geometry.RotateY(15))
	shortToWorld := geometry.Translate(core.NewVec3(0.05*boxSize, -h, -0.3*boxSize)).Mul4(geometry.RotateY(-18))

	return []*geometry.Primitive{
		geometry.NewPrimitive(geometry.NewTransform(tallToWorld, tall), white),
		geometry.NewPrimitive(geometry.NewTransform(shortToWorld, short), white),
	}
}
