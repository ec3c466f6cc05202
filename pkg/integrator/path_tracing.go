package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// PathConfig controls path length and Russian roulette
type PathConfig struct {
	MinDepth   int     // Bounces traced before Russian roulette can terminate a path
	MaxDepth   int     // Hard cutoff on recursion depth
	RRStopProb float64 // Probability of terminating a path at each depth beyond MinDepth
}

// DefaultPathConfig returns the default path configuration
func DefaultPathConfig() PathConfig {
	return PathConfig{
		MinDepth:   8,
		MaxDepth:   32,
		RRStopProb: 0.1,
	}
}

// maxRRStopProb keeps the survival probability strictly positive
const maxRRStopProb = 1 - 1e-6

// PathTracing implements unidirectional path tracing with Russian roulette
type PathTracing struct {
	config PathConfig
}

// NewPathTracing creates a new path tracing integrator
func NewPathTracing(config PathConfig) *PathTracing {
	config.RRStopProb = math.Max(0, math.Min(maxRRStopProb, config.RRStopProb))
	if config.MinDepth < 0 {
		config.MinDepth = 0
	}
	return &PathTracing{config: config}
}

// Config returns the effective configuration after clamping
func (pt *PathTracing) Config() PathConfig {
	return pt.config
}

// Li estimates the radiance arriving along a camera ray
func (pt *PathTracing) Li(s *scene.Scene, ray core.Ray, rng *rand.Rand) Result {
	return sanitize(pt.li(s, ray, rng, 0))
}

func (pt *PathTracing) li(s *scene.Scene, ray core.Ray, rng *rand.Rand, depth int) Result {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth > pt.config.MaxDepth {
		return Result{}
	}

	// Russian roulette: survive with probability q and compensate survivors by 1/q
	rrFactor := 1.0
	if depth > pt.config.MinDepth {
		q := 1 - pt.config.RRStopProb
		if rng.Float64() >= q {
			return Result{}
		}
		rrFactor = 1 / q
	}

	in, hit := s.Intersect(ray)
	if !hit {
		background := lights.TotalLe(s.Lights, ray)
		return Result{Radiance: background.Multiply(rrFactor), Rays: 1}
	}

	emitted := in.Material.Emitted(ray, in)

	scatter, ok := in.Material.Scatter(ray, in, rng)
	if !ok {
		// Material absorbed the ray, only return emitted light
		return Result{Radiance: emitted.Multiply(rrFactor), Rays: 1}
	}

	next := pt.li(s, scatter.Scattered, rng, depth+1)
	radiance := emitted.Add(scatter.Attenuation.MultiplyVec(next.Radiance))
	return Result{
		Radiance: radiance.Multiply(rrFactor),
		Rays:     1 + next.Rays,
	}
}
