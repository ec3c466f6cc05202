package scene

import (
	"math"
	"math/rand"

	"github.com/dhconnelly/rtreego"

	"github.com/df07/go-pathtracer/pkg/core"
)

// pointTolerance is the half-size of the degenerate rectangle indexing each sample
const pointTolerance = 1e-9

// diskSample indexes a placed sample in the r-tree
type diskSample struct {
	p core.Vec2
}

func (d diskSample) Bounds() rtreego.Rect {
	return rtreego.Point{d.p.X, d.p.Y}.ToRect(pointTolerance)
}

// SampleDisks places non-overlapping points inside [min, max] by best-candidate sampling.
// Each round draws k candidates, drops those closer than r to an existing point and keeps
// the one farthest from its nearest neighbour. Sampling stops after n consecutive rounds
// without a surviving candidate.
func SampleDisks(min, max core.Vec2, r float64, n, k int, rng *rand.Rand) []core.Vec2 {
	tree := rtreego.NewTree(2, 25, 50)

	uniform := func() core.Vec2 {
		x := min.X + rng.Float64()*(max.X-min.X)
		y := min.Y + rng.Float64()*(max.Y-min.Y)
		return core.NewVec2(x, y)
	}

	first := uniform()
	samples := []core.Vec2{first}
	tree.Insert(diskSample{p: first})

	for i := 0; i < n; {
		best := core.Vec2{}
		bestDistance := -1.0

		for c := 0; c < k; c++ {
			candidate := uniform()
			d := nearestDistance(tree, candidate)
			if d < r {
				continue
			}
			if d > bestDistance {
				best = candidate
				bestDistance = d
			}
		}

		if bestDistance < 0 {
			i++
			continue
		}

		i = 0
		samples = append(samples, best)
		tree.Insert(diskSample{p: best})
	}

	return samples
}

// nearestDistance returns the distance from p to the closest indexed sample
func nearestDistance(tree *rtreego.Rtree, p core.Vec2) float64 {
	nearest := tree.NearestNeighbor(rtreego.Point{p.X, p.Y})
	if nearest == nil {
		return math.Inf(1)
	}
	return nearest.(diskSample).p.Subtract(p).Length()
}
