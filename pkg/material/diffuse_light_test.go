package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDiffuseLight_EmitsFromFrontFaceOnly(t *testing.T) {
	radiance := core.NewVec3(15, 15, 15)
	light := NewDiffuseLight(radiance)
	outward := core.NewVec3(0, -1, 0)

	front := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0))
	in := &Interaction{}
	in.SetFaceNormal(front, outward)
	if got := light.Emitted(front, in); got != radiance {
		t.Errorf("Expected %v from front face, got %v", radiance, got)
	}

	back := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	in = &Interaction{}
	in.SetFaceNormal(back, outward)
	if got := light.Emitted(back, in); !got.IsZero() {
		t.Errorf("Expected no emission from back face, got %v", got)
	}

	light.TwoSided = true
	if got := light.Emitted(back, in); got != radiance {
		t.Errorf("Expected two-sided emission %v, got %v", radiance, got)
	}
}

func TestDiffuseLight_NeverScatters(t *testing.T) {
	light := NewDiffuseLight(core.NewVec3(1, 1, 1))
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	in := upFacingInteraction()

	if _, ok := light.Scatter(ray, in, rand.New(rand.NewSource(1))); ok {
		t.Error("DiffuseLight should not scatter")
	}
	if light.Class() != DiffuseLightClass {
		t.Errorf("Expected DiffuseLightClass, got %v", light.Class())
	}
	if pdf := light.ScatteringPDF(ray, in, ray); pdf != 0 {
		t.Errorf("Expected zero pdf, got %f", pdf)
	}
}
