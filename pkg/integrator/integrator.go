package integrator

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Result is the radiance estimate for one camera ray and the number of rays traced for it
type Result struct {
	Radiance core.Vec3
	Rays     int
}

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use; all randomness comes from rng.
type Integrator interface {
	Li(s *scene.Scene, ray core.Ray, rng *rand.Rand) Result
}

// sanitize replaces a non-finite estimate with black so one bad sample cannot poison a pixel
func sanitize(r Result) Result {
	if !r.Radiance.IsFinite() {
		r.Radiance = core.Vec3{}
	}
	return r
}
