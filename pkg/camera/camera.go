// Package camera turns film-space samples into primary rays.
package camera

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Sample is one camera sample: a raster position on the film, a lens sample
// in [0,1)² and a time in [0,1).
type Sample struct {
	PFilm core.Vec2
	PLens core.Vec2
	Time  float64
}

// Camera maps samples to world-space rays
type Camera interface {
	Resolution() (width, height int)
	Ray(s Sample) core.Ray
}
