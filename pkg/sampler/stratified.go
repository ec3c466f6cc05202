// Package sampler generates per-pixel camera samples.
package sampler

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
)

// Sampler produces the camera samples for one pixel
type Sampler interface {
	SamplesPerPixel() int
	CameraSamples(pRaster core.Vec2, rng *rand.Rand) []camera.Sample
}

// Stratified jitters one sample inside each cell of an n×n grid over the pixel
type Stratified struct {
	n int
}

// NewStratified creates a stratified sampler for spp samples per pixel.
// spp is rounded down to a perfect square (at least 1); the rounding is logged.
func NewStratified(spp int, logger core.Logger) *Stratified {
	n := int(math.Floor(math.Sqrt(float64(max(spp, 0)))))
	n = max(n, 1)
	if n*n != spp && logger != nil {
		logger.Printf("stratified sampler: %d spp is not a perfect square, using %d\n", spp, n*n)
	}
	return &Stratified{n: n}
}

// SamplesPerPixel returns n² samples
func (s *Stratified) SamplesPerPixel() int {
	return s.n * s.n
}

// CameraSamples returns n² samples for the pixel whose top-left raster corner is pRaster
func (s *Stratified) CameraSamples(pRaster core.Vec2, rng *rand.Rand) []camera.Sample {
	samples := make([]camera.Sample, 0, s.n*s.n)
	inv := 1.0 / float64(s.n)

	for y := 0; y < s.n; y++ {
		for x := 0; x < s.n; x++ {
			jitter := core.NewVec2(
				(float64(x)+rng.Float64())*inv,
				(float64(y)+rng.Float64())*inv,
			)
			samples = append(samples, camera.Sample{
				PFilm: pRaster.Add(jitter),
				PLens: core.RandomVec2(rng),
				Time:  rng.Float64(),
			})
		}
	}
	return samples
}
