package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Vec3{}
	}

	// Wrap UV coordinates to [0, 1)
	u := uv.X - math.Floor(uv.X)
	v := uv.Y - math.Floor(uv.Y)

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))

	x = max(0, min(t.Width-1, x))
	y = max(0, min(t.Height-1, y))

	return t.Pixels[y*t.Width+x]
}
