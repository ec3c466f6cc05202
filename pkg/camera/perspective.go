package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PerspectiveConfig describes a thin-lens perspective camera
type PerspectiveConfig struct {
	Width, Height int
	Position      core.Vec3
	LookAt        core.Vec3
	FOVDeg        float64 // Horizontal field of view in degrees
	LensRadius    float64 // 0 for a pinhole camera
	FocusDistance float64 // <= 0 focuses on the look-at point
}

// DefaultPerspectiveConfig returns a 400x400 pinhole camera looking down -Z from +Z
func DefaultPerspectiveConfig() PerspectiveConfig {
	return PerspectiveConfig{
		Width:    400,
		Height:   400,
		Position: core.NewVec3(0, 0, 5),
		LookAt:   core.NewVec3(0, 0, 0),
		FOVDeg:   45,
	}
}

// Perspective is a thin-lens perspective camera. The view transform is built
// once; Ray is safe for concurrent use.
type Perspective struct {
	width, height int
	cameraToWorld mgl64.Mat4
	thetaX        float64
	thetaY        float64
	lensRadius    float64
	focusDistance float64
}

// NewPerspective builds the camera-to-world transform from position, look-at and +Y up
func NewPerspective(config PerspectiveConfig) *Perspective {
	eye := toMgl(config.Position)
	center := toMgl(config.LookAt)
	view := mgl64.LookAtV(eye, center, mgl64.Vec3{0, 1, 0})

	aspect := float64(config.Width) / float64(config.Height)
	thetaX := math.Tan(config.FOVDeg * math.Pi / 180 / 2)

	focus := config.FocusDistance
	if focus <= 0 {
		focus = config.LookAt.Subtract(config.Position).Length()
	}

	return &Perspective{
		width:         config.Width,
		height:        config.Height,
		cameraToWorld: view.Inv(),
		thetaX:        thetaX,
		thetaY:        thetaX / aspect,
		lensRadius:    config.LensRadius,
		focusDistance: focus,
	}
}

// Resolution returns the film size in pixels
func (c *Perspective) Resolution() (int, int) {
	return c.width, c.height
}

// Ray generates the world-space ray for a camera sample
func (c *Perspective) Ray(s Sample) core.Ray {
	u := s.PFilm.X / float64(c.width)
	v := s.PFilm.Y / float64(c.height)

	// Near-plane point in camera space (right handed, looking down -Z)
	target := core.NewVec3(-c.thetaX+2*c.thetaX*u, c.thetaY-2*c.thetaY*v, -1)

	var lens core.Vec3
	if c.lensRadius > 0 {
		d := core.SamplePointInUnitDisk(s.PLens).Multiply(c.lensRadius)
		lens = core.NewVec3(d.X, d.Y, 0)
	}

	focus := target.Multiply(c.focusDistance / math.Abs(target.Z))
	direction := focus.Subtract(lens)

	origin := c.cameraToWorld.Mul4x1(mgl64.Vec4{lens.X, lens.Y, lens.Z, 1}).Vec3()
	worldDir := c.cameraToWorld.Mul4x1(mgl64.Vec4{direction.X, direction.Y, direction.Z, 0}).Vec3()

	return core.NewRayAt(fromMgl(origin), fromMgl(worldDir), s.Time)
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
