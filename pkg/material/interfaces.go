package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// BxDFClass classifies how a material scatters light
type BxDFClass int

const (
	Diffuse BxDFClass = iota
	Specular
	DiffuseLightClass
	Other
)

// String returns the class name
func (c BxDFClass) String() string {
	switch c {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case DiffuseLightClass:
		return "diffuse-light"
	default:
		return "other"
	}
}

// Material interface for surfaces that scatter or emit light.
// Implementations are immutable and shared between primitives and goroutines.
type Material interface {
	// Scatter samples an outgoing ray; false means the path is absorbed
	Scatter(rayIn core.Ray, in *Interaction, random *rand.Rand) (ScatterRecord, bool)

	// Emitted returns radiance leaving the surface toward the ray origin
	Emitted(rayIn core.Ray, in *Interaction) core.Vec3

	// Class reports the scattering class
	Class() BxDFClass

	// ScatteringPDF returns the density of the scattered direction
	ScatteringPDF(rayIn core.Ray, in *Interaction, scattered core.Ray) float64
}

// ScatterRecord contains the result of material scattering
type ScatterRecord struct {
	Attenuation core.Vec3 // Color attenuation
	Scattered   core.Ray  // The scattered ray
	PDF         float64   // Sampling density, 0 for delta lobes
}

// NoEmission can be embedded by materials that do not emit
type NoEmission struct{}

// Emitted returns zero
func (NoEmission) Emitted(core.Ray, *Interaction) core.Vec3 {
	return core.Vec3{}
}

// NoPDF can be embedded by materials without a scattering density
type NoPDF struct{}

// ScatteringPDF returns zero
func (NoPDF) ScatteringPDF(core.Ray, *Interaction, core.Ray) float64 {
	return 0
}
