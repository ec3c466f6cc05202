package lights

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Infinite is a uniform infinite area light (constant emission in all directions)
type Infinite struct {
	Radiance core.Vec3
}

// NewInfinite creates a new uniform infinite light
func NewInfinite(radiance core.Vec3) *Infinite {
	return &Infinite{Radiance: radiance}
}

// Le returns the constant radiance regardless of direction
func (l *Infinite) Le(ray core.Ray) core.Vec3 {
	return l.Radiance
}
