package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// Constant provides uniform color
type Constant struct {
	Color core.Vec3
}

// NewConstant creates a new constant texture
func NewConstant(color core.Vec3) *Constant {
	return &Constant{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (c *Constant) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return c.Color
}

// Scale multiplies another texture by a constant factor
type Scale struct {
	Factor float64
	Tex    Texture
}

// NewScale creates a scaled texture
func NewScale(factor float64, tex Texture) *Scale {
	return &Scale{Factor: factor, Tex: tex}
}

// Evaluate returns the wrapped texture scaled by Factor
func (s *Scale) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Tex.Evaluate(uv, point).Multiply(s.Factor)
}

// UV shows texture coordinates as colors: U in red, V in blue
type UV struct{}

// Evaluate returns (u, 0, v)
func (UV) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return core.NewVec3(uv.X, 0, uv.Y)
}

// Checker alternates two textures on a UV grid of cell size Scale
type Checker struct {
	Scale float64
	Even  Texture
	Odd   Texture
}

// NewChecker creates a checker of two solid colors
func NewChecker(scale float64, even, odd core.Vec3) *Checker {
	return &Checker{Scale: scale, Even: NewConstant(even), Odd: NewConstant(odd)}
}

// Evaluate picks Even or Odd by the parity of the UV cell
func (c *Checker) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	u := int(math.Floor(uv.X / c.Scale))
	v := int(math.Floor(uv.Y / c.Scale))
	if (u+v)&1 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}
