package integrator

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Normal renders the shading normal of the first hit mapped to [0,1]
type Normal struct{}

// NewNormal creates a normal integrator
func NewNormal() *Normal {
	return &Normal{}
}

// Li returns (n+1)/2 on hit and black on miss
func (Normal) Li(s *scene.Scene, ray core.Ray, rng *rand.Rand) Result {
	in, hit := s.Intersect(ray)
	if !hit {
		return Result{Rays: 1}
	}
	return sanitize(Result{
		Radiance: in.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5),
		Rays:     1,
	})
}

// Albedo renders the reflectance of the first diffuse or specular surface
type Albedo struct {
	// MaxDepth bounds the walk through surfaces of other classes
	MaxDepth int
}

// NewAlbedo creates an albedo integrator
func NewAlbedo() *Albedo {
	return &Albedo{MaxDepth: 32}
}

// Li returns emitted + attenuation at the first diffuse or specular hit.
// Surfaces of other classes are passed through, weighted by their attenuation.
func (a *Albedo) Li(s *scene.Scene, ray core.Ray, rng *rand.Rand) Result {
	return sanitize(a.li(s, ray, rng, 0))
}

func (a *Albedo) li(s *scene.Scene, ray core.Ray, rng *rand.Rand, depth int) Result {
	if depth > a.MaxDepth {
		return Result{}
	}

	in, hit := s.Intersect(ray)
	if !hit {
		return Result{Radiance: lights.TotalLe(s.Lights, ray), Rays: 1}
	}

	emitted := in.Material.Emitted(ray, in)
	scatter, ok := in.Material.Scatter(ray, in, rng)
	if !ok {
		return Result{Radiance: emitted, Rays: 1}
	}

	switch in.Material.Class() {
	case material.Diffuse, material.Specular:
		return Result{Radiance: emitted.Add(scatter.Attenuation), Rays: 1}
	}

	next := a.li(s, scatter.Scattered, rng, depth+1)
	return Result{
		Radiance: emitted.Add(scatter.Attenuation.MultiplyVec(next.Radiance)),
		Rays:     1 + next.Rays,
	}
}
