package lights

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sky blends two colors on the absolute vertical component of the ray direction:
// Zenith where the ray is level, Horizon where it is vertical.
type Sky struct {
	Horizon core.Vec3
	Zenith  core.Vec3
}

// NewSky creates a new sky light
func NewSky(horizon, zenith core.Vec3) *Sky {
	return &Sky{Horizon: horizon, Zenith: zenith}
}

// Le returns (1-a)*Zenith + a*Horizon with a = |dir.y|
func (l *Sky) Le(ray core.Ray) core.Vec3 {
	a := math.Min(1, math.Abs(ray.Direction.Y))
	return l.Zenith.Multiply(1 - a).Add(l.Horizon.Multiply(a))
}

// Gradient is a vertical gradient infinite light from Bottom (straight down) to Top (straight up)
type Gradient struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradient creates a new gradient infinite light
func NewGradient(top, bottom core.Vec3) *Gradient {
	return &Gradient{Top: top, Bottom: bottom}
}

// Le maps direction Y from [-1,1] to [0,1] and interpolates
func (l *Gradient) Le(ray core.Ray) core.Vec3 {
	t := 0.5 * (math.Max(-1, math.Min(1, ray.Direction.Y)) + 1.0)
	return l.Bottom.Multiply(1.0 - t).Add(l.Top.Multiply(t))
}
