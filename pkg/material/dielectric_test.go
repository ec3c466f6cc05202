package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestReflectance(t *testing.T) {
	// Normal incidence from air into glass: ((1-1.5)/(1+1.5))^2 = 0.04
	r := Reflectance(1.0, 1.0/1.5)
	if math.Abs(r-0.04) > 1e-9 {
		t.Errorf("Expected 0.04, got %f", r)
	}
	// Grazing incidence reflects everything
	if g := Reflectance(0.0, 1.0/1.5); math.Abs(g-1) > 1e-9 {
		t.Errorf("Expected 1 at grazing incidence, got %f", g)
	}
}

func TestDielectric_NormalIncidenceTransmitsStraight(t *testing.T) {
	glass := NewDielectric(1.5)
	random := rand.New(rand.NewSource(42))

	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	in := &Interaction{Point: core.NewVec3(0, 0, 0)}
	in.SetFaceNormal(ray, core.NewVec3(0, 0, 1))

	refracted, reflected := 0, 0
	for i := 0; i < 2000; i++ {
		scatter, ok := glass.Scatter(ray, in, random)
		if !ok {
			t.Fatal("Dielectric should always scatter")
		}
		d := scatter.Scattered.Direction
		switch {
		case d.Subtract(core.NewVec3(0, 0, -1)).Length() < 1e-9:
			refracted++
			if scatter.Scattered.Origin.Z >= 0 {
				t.Fatalf("Refracted ray should spawn below the surface: %v", scatter.Scattered.Origin)
			}
		case d.Subtract(core.NewVec3(0, 0, 1)).Length() < 1e-9:
			reflected++
		default:
			t.Fatalf("Unexpected direction at normal incidence: %v", d)
		}
	}

	// Schlick gives ~4% reflection at normal incidence
	fraction := float64(reflected) / 2000
	if fraction > 0.08 || refracted == 0 {
		t.Errorf("Unexpected reflect fraction %f (refracted %d)", fraction, refracted)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	random := rand.New(rand.NewSource(7))

	// Inside the glass, hitting the boundary at 60 degrees: 1.5*sin(60) > 1
	dir := core.NewVec3(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0)
	ray := core.NewRay(core.NewVec3(0, -1, 0), dir)
	in := &Interaction{Point: core.NewVec3(0, 0, 0)}
	in.SetFaceNormal(ray, core.NewVec3(0, 1, 0)) // back face: exiting

	for i := 0; i < 100; i++ {
		scatter, ok := glass.Scatter(ray, in, random)
		if !ok {
			t.Fatal("Dielectric should scatter on back face")
		}
		if scatter.Scattered.Direction.Y >= 0 {
			t.Fatalf("Expected total internal reflection, got %v", scatter.Scattered.Direction)
		}
	}
}
