package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// List is a brute-force accelerator that tests every primitive
type List struct {
	prims []*Primitive
}

// NewList creates a brute-force accelerator
func NewList(prims []*Primitive) (Accelerator, error) {
	if err := validatePrimitives(prims); err != nil {
		return nil, err
	}
	return &List{prims: prims}, nil
}

// Intersect returns the closest interaction along the ray
func (l *List) Intersect(ray core.Ray, tMin, tMax float64) (*material.Interaction, bool) {
	closest := tMax
	var best Hit
	id := -1

	for i, p := range l.prims {
		if hit, ok := p.Shape.Hit(ray, tMin, closest); ok {
			closest = hit.T
			best = hit
			id = i
		}
	}

	if id < 0 {
		return nil, false
	}
	return newInteraction(ray, best, l.prims[id], id), true
}
