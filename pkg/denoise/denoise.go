// Package denoise defines the boundary to an external image denoiser and
// renders the auxiliary buffers such a denoiser consumes.
package denoise

import (
	"context"
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/film"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/sampler"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrUnavailable is returned when no denoiser is linked into the binary
var ErrUnavailable = errors.New("denoiser unavailable")

// Denoiser filters a noisy color film guided by albedo and normal films
type Denoiser interface {
	Denoise(color, albedo, normal *film.Film) (*film.Film, error)
}

// Unavailable is the denoiser used when no native library is present
type Unavailable struct{}

// Denoise always fails with ErrUnavailable
func (Unavailable) Denoise(color, albedo, normal *film.Film) (*film.Film, error) {
	return nil, ErrUnavailable
}

// auxSamplesPerPixel is enough for clean first-hit buffers
const auxSamplesPerPixel = 4

// Aux holds the auxiliary buffers of a scene
type Aux struct {
	Albedo *film.Film
	Normal *film.Film // Components in [-1,1]
}

// RenderAux renders the albedo and normal buffers of s, one pass per CPU
func RenderAux(ctx context.Context, s *scene.Scene, logger core.Logger) (Aux, error) {
	config := renderer.Config{Passes: renderer.NumCPU()}
	smp := sampler.NewStratified(auxSamplesPerPixel, logger)

	albedo, err := renderer.New(integrator.NewAlbedo(), smp, config, nil, logger).Render(ctx, s)
	if err != nil {
		return Aux{}, fmt.Errorf("failed to render albedo: %w", err)
	}

	normal, err := renderer.New(integrator.NewNormal(), smp, config, nil, logger).Render(ctx, s)
	if err != nil {
		return Aux{}, fmt.Errorf("failed to render normals: %w", err)
	}

	return Aux{
		Albedo: albedo.Film,
		Normal: normal.Film.Map(unpackNormal),
	}, nil
}

// unpackNormal maps a (n+1)/2 pseudo-color back to [-1,1]
func unpackNormal(c core.Vec3) core.Vec3 {
	return c.Multiply(2).Subtract(core.NewVec3(1, 1, 1))
}

// Apply runs d over color with the auxiliary buffers
func Apply(d Denoiser, color *film.Film, aux Aux) (*film.Film, error) {
	if d == nil {
		return nil, ErrUnavailable
	}
	out, err := d.Denoise(color, aux.Albedo, aux.Normal)
	if err != nil {
		return nil, fmt.Errorf("denoise failed: %w", err)
	}
	return out, nil
}
