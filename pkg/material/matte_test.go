package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func upFacingInteraction() *Interaction {
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	in := &Interaction{Point: core.NewVec3(0, 0, 0)}
	in.SetFaceNormal(ray, core.NewVec3(0, 0, 1))
	return in
}

func TestMatte_PDFCalculation(t *testing.T) {
	modes := []struct {
		name     string
		sampling MatteSampling
	}{
		{"Cosine", MatteCosine},
		{"Sphere offset", MatteSphereOffset},
	}

	for _, mode := range modes {
		t.Run(mode.name, func(t *testing.T) {
			matte := NewMatte(core.NewVec3(0.8, 0.8, 0.8))
			matte.Sampling = mode.sampling
			random := rand.New(rand.NewSource(42))
			ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
			in := upFacingInteraction()

			for i := 0; i < 1000; i++ {
				scatter, ok := matte.Scatter(ray, in, random)
				if !ok {
					t.Fatal("Matte should scatter on the front face")
				}

				cosTheta := scatter.Scattered.Direction.Dot(in.Normal)
				if cosTheta < -1e-12 {
					t.Fatalf("Scattered below surface: %v", scatter.Scattered.Direction)
				}

				expected := math.Max(0, cosTheta) / math.Pi
				pdf := matte.ScatteringPDF(ray, in, scatter.Scattered)
				if pdf < 0 || math.Abs(pdf-expected) > 1e-12 {
					t.Fatalf("PDF mismatch: got %f, expected %f", pdf, expected)
				}
				if math.Abs(scatter.PDF-pdf) > 1e-12 {
					t.Fatalf("Record PDF %f differs from ScatteringPDF %f", scatter.PDF, pdf)
				}
			}
		})
	}
}

func TestMatte_AttenuationIsAlbedo(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	matte := NewMatte(albedo)
	random := rand.New(rand.NewSource(1))

	scatter, ok := matte.Scatter(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), upFacingInteraction(), random)
	if !ok {
		t.Fatal("Matte should scatter")
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
	if matte.Class() != Diffuse {
		t.Errorf("Expected Diffuse class, got %v", matte.Class())
	}
}

func TestMatte_BackFaceAbsorbs(t *testing.T) {
	matte := NewMatte(core.NewVec3(1, 1, 1))
	ray := core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1))
	in := &Interaction{}
	in.SetFaceNormal(ray, core.NewVec3(0, 0, 1))

	if _, ok := matte.Scatter(ray, in, rand.New(rand.NewSource(1))); ok {
		t.Error("Expected back face hit to be absorbed")
	}
}

func TestMatte_SpawnOffsetsAboveSurface(t *testing.T) {
	matte := NewMatte(core.NewVec3(1, 1, 1))
	random := rand.New(rand.NewSource(3))
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	in := upFacingInteraction()

	for i := 0; i < 100; i++ {
		scatter, _ := matte.Scatter(ray, in, random)
		if scatter.Scattered.Origin.Z <= 0 {
			t.Fatalf("Scattered origin not offset above surface: %v", scatter.Scattered.Origin)
		}
	}
}
