// Package film accumulates weighted radiance samples into a pixel grid.
package film

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Pixel accumulates color and weight sums
type Pixel struct {
	ColorSum  core.Vec3
	WeightSum float64
}

// Color returns the weighted mean, or the raw sum when no weight was added
func (p Pixel) Color() core.Vec3 {
	if p.WeightSum == 0 {
		return p.ColorSum
	}
	return p.ColorSum.Multiply(1.0 / p.WeightSum)
}

// Film is a row-major grid of pixel accumulators. It is not safe for
// concurrent writes; each render pass owns a private film.
type Film struct {
	Width, Height int
	pixels        []Pixel
}

// New creates a zeroed film
func New(width, height int) *Film {
	return &Film{
		Width:  width,
		Height: height,
		pixels: make([]Pixel, width*height),
	}
}

// FromRGB builds a film from interleaved RGB floats, each pixel with weight 1
func FromRGB(width, height int, data []float32) (*Film, error) {
	if len(data) != width*height*3 {
		return nil, fmt.Errorf("film from rgb: expected %d floats for %dx%d, got %d", width*height*3, width, height, len(data))
	}
	f := New(width, height)
	for i := range f.pixels {
		f.pixels[i] = Pixel{
			ColorSum:  core.NewVec3(float64(data[3*i]), float64(data[3*i+1]), float64(data[3*i+2])),
			WeightSum: 1,
		}
	}
	return f, nil
}

// index clamps (x, y) into the film and returns the pixel offset
func (f *Film) index(x, y int) int {
	x = max(0, min(f.Width-1, x))
	y = max(0, min(f.Height-1, y))
	return y*f.Width + x
}

// Pixel returns the accumulator at (x, y), clamped to the film bounds
func (f *Film) Pixel(x, y int) Pixel {
	return f.pixels[f.index(x, y)]
}

// AddSample accumulates a sample into the pixel covering the film position
func (f *Film) AddSample(pFilm core.Vec2, color core.Vec3, weight float64) {
	i := f.index(int(math.Floor(pFilm.X)), int(math.Floor(pFilm.Y)))
	f.pixels[i].ColorSum = f.pixels[i].ColorSum.Add(color)
	f.pixels[i].WeightSum += weight
}

// MergeTile adds another film's accumulators into this one at an offset.
// Pixels falling outside this film are clamped onto its edge.
func (f *Film) MergeTile(x0, y0 int, tile *Film) {
	for y := 0; y < tile.Height; y++ {
		for x := 0; x < tile.Width; x++ {
			src := tile.pixels[y*tile.Width+x]
			i := f.index(x0+x, y0+y)
			f.pixels[i].ColorSum = f.pixels[i].ColorSum.Add(src.ColorSum)
			f.pixels[i].WeightSum += src.WeightSum
		}
	}
}

// Clone returns a deep copy
func (f *Film) Clone() *Film {
	c := &Film{Width: f.Width, Height: f.Height, pixels: make([]Pixel, len(f.pixels))}
	copy(c.pixels, f.pixels)
	return c
}

// Map returns a new film whose pixels hold fn applied to each resolved color,
// with weight 1
func (f *Film) Map(fn func(core.Vec3) core.Vec3) *Film {
	m := New(f.Width, f.Height)
	for i, p := range f.pixels {
		m.pixels[i] = Pixel{ColorSum: fn(p.Color()), WeightSum: 1}
	}
	return m
}

// RGB returns resolved colors as interleaved float32 RGB
func (f *Film) RGB() []float32 {
	out := make([]float32, 0, len(f.pixels)*3)
	for _, p := range f.pixels {
		c := p.Color()
		out = append(out, float32(c.X), float32(c.Y), float32(c.Z))
	}
	return out
}

// ToImage tone maps the film: gamma 2 (square root), clamp to [0,1], 8 bits per channel
func (f *Film) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, toRGBA(f.pixels[y*f.Width+x].Color()))
		}
	}
	return img
}

func toRGBA(c core.Vec3) color.RGBA {
	g := c.GammaCorrect(2.0).Clamp(0, 1)
	return color.RGBA{
		R: uint8(255 * nanToZero(g.X)),
		G: uint8(255 * nanToZero(g.Y)),
		B: uint8(255 * nanToZero(g.Z)),
		A: 255,
	}
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// SavePNG writes the tone mapped film to path, creating parent directories
func (f *Film) SavePNG(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, f.ToImage()); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
