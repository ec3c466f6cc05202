// Package lights provides environment lights evaluated for rays that escape the scene.
package lights

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Light returns the radiance arriving along a ray that leaves the scene.
// Implementations must be safe for concurrent use.
type Light interface {
	Le(ray core.Ray) core.Vec3
}

// TotalLe sums the escaped radiance of every light
func TotalLe(lights []Light, ray core.Ray) core.Vec3 {
	var sum core.Vec3
	for _, l := range lights {
		sum = sum.Add(l.Le(ray))
	}
	return sum
}
