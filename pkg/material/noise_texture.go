package material

import (
	"github.com/aquilax/go-perlin"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Perlin parameters: persistence, frequency multiplier and octaves
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
)

// NoiseTexture is a grayscale Perlin noise over UV space
type NoiseTexture struct {
	scale float64
	noise *perlin.Perlin
}

// NewNoiseTexture creates a noise texture; smaller scale means finer detail
func NewNoiseTexture(scale float64, seed int64) *NoiseTexture {
	if scale <= 0 {
		scale = 1
	}
	return &NoiseTexture{
		scale: scale,
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
	}
}

// Evaluate maps noise in [-1,1] to a gray level in [0,1]
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	v := n.noise.Noise2D(uv.X/n.scale, uv.Y/n.scale)
	v = max(0, min(1, (v+1)/2))
	return core.NewVec3(v, v, v)
}
