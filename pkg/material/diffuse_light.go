package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	NoPDF
	Emit     Texture
	TwoSided bool
}

// NewDiffuseLight creates a one-sided emitter with constant radiance
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emit: NewConstant(emission)}
}

// Scatter never scatters: lights absorb incoming rays
func (l *DiffuseLight) Scatter(rayIn core.Ray, in *Interaction, random *rand.Rand) (ScatterRecord, bool) {
	return ScatterRecord{}, false
}

// Emitted returns the texture radiance when the ray arrives on the front face
func (l *DiffuseLight) Emitted(rayIn core.Ray, in *Interaction) core.Vec3 {
	if !l.TwoSided && !in.FrontFace {
		return core.Vec3{}
	}
	return l.Emit.Evaluate(in.UV, in.Point)
}

// Class returns DiffuseLightClass
func (l *DiffuseLight) Class() BxDFClass {
	return DiffuseLightClass
}
