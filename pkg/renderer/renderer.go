// Package renderer schedules independent render passes over a worker pool
// and merges their films into one image.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/film"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/sampler"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrInvalidConfig is returned when the renderer is misconfigured
var ErrInvalidConfig = errors.New("invalid renderer config")

// Config contains configuration for multi-pass rendering
type Config struct {
	Passes  int // Number of independent passes (0 = one per CPU)
	Workers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns one pass per CPU on all CPUs
func DefaultConfig() Config {
	return Config{
		Passes:  0,
		Workers: 0,
	}
}

// Result is the merged output of a render
type Result struct {
	Film    *film.Film
	Rays    int
	Elapsed time.Duration
	Passes  int // Passes merged into Film
}

// RaysPerSecond returns the traced ray throughput
func (r Result) RaysPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Rays) / r.Elapsed.Seconds()
}

// Renderer renders scenes with an integrator and a sampler
type Renderer struct {
	integrator integrator.Integrator
	sampler    sampler.Sampler
	config     Config
	updater    Updater
	logger     core.Logger
}

// New creates a renderer. updater may be nil.
func New(integ integrator.Integrator, smp sampler.Sampler, config Config, updater Updater, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Renderer{
		integrator: integ,
		sampler:    smp,
		config:     config,
		updater:    updater,
		logger:     logger,
	}
}

// validate checks the configuration and resolves defaults
func (r *Renderer) validate() (passes, workers int, err error) {
	if r.integrator == nil || r.sampler == nil {
		return 0, 0, fmt.Errorf("%w: integrator and sampler are required", ErrInvalidConfig)
	}
	if r.config.Passes < 0 {
		return 0, 0, fmt.Errorf("%w: passes must be >= 0, got %d", ErrInvalidConfig, r.config.Passes)
	}
	if r.config.Workers < 0 {
		return 0, 0, fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, r.config.Workers)
	}

	passes = r.config.Passes
	if passes == 0 {
		passes = NumCPU()
	}
	workers = r.config.Workers
	if workers == 0 {
		workers = NumCPU()
	}
	return passes, min(workers, passes), nil
}

// Render runs all passes and returns the merged film.
// On cancellation it returns the passes merged so far together with ctx.Err().
func (r *Renderer) Render(ctx context.Context, s *scene.Scene) (Result, error) {
	passes, workers, err := r.validate()
	if err != nil {
		return Result{}, err
	}
	if s == nil {
		return Result{}, fmt.Errorf("%w: scene is required", ErrInvalidConfig)
	}

	width, height := s.Camera.Resolution()

	start := time.Now()
	acc := &accumulator{
		film:    film.New(width, height),
		total:   passes,
		updater: r.updater,
	}

	// Flip the cancellation flag polled by the passes
	var cancelled atomic.Bool
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			cancelled.Store(true)
		case <-done:
		}
	}()

	pool := NewWorkerPool(r, s, workers, passes, &cancelled)
	r.logger.Printf("Rendering %dx%d: %d passes x %d spp on %d workers\n",
		width, height, passes, r.sampler.SamplesPerPixel(), pool.NumWorkers())
	pool.Start()
	for pass := 0; pass < passes; pass++ {
		pool.SubmitTask(PassTask{Pass: pass})
	}
	go pool.Stop()

	for {
		res, ok := pool.GetResult()
		if !ok {
			break
		}
		if res.Cancelled {
			continue
		}
		acc.merge(res)
	}

	result := Result{
		Film:    acc.film,
		Rays:    acc.rays,
		Elapsed: time.Since(start),
		Passes:  acc.merged,
	}

	if result.Passes < passes {
		r.logger.Printf("Render cancelled after %d/%d passes\n", result.Passes, passes)
		if err := ctx.Err(); err != nil {
			return result, err
		}
		return result, context.Canceled
	}

	r.logger.Printf("Render complete: %d rays in %v (%.2f Mrays/s)\n",
		result.Rays, result.Elapsed.Round(time.Millisecond), result.RaysPerSecond()/1e6)
	return result, nil
}

// renderPass renders every pixel once with the pass's own random stream and film
func (r *Renderer) renderPass(s *scene.Scene, pass int, cancelled *atomic.Bool) PassResult {
	width, height := s.Camera.Resolution()
	f := film.New(width, height)
	rng := rand.New(rand.NewSource(int64(pass)))
	rays := 0

	for y := 0; y < height; y++ {
		if cancelled.Load() {
			return PassResult{Pass: pass, Cancelled: true}
		}
		for x := 0; x < width; x++ {
			pRaster := core.NewVec2(float64(x), float64(y))
			for _, sample := range r.sampler.CameraSamples(pRaster, rng) {
				ray := s.Camera.Ray(sample)
				li := r.integrator.Li(s, ray, rng)
				f.AddSample(sample.PFilm, li.Radiance, 1.0)
				rays += li.Rays
			}
		}
	}

	return PassResult{Pass: pass, Film: f, Rays: rays}
}

// accumulator merges completed passes. The progress check runs in the same
// critical section so every event sees a consistent film and pass count.
type accumulator struct {
	mu      sync.Mutex
	film    *film.Film
	merged  int
	total   int
	rays    int
	updater Updater
}

func (a *accumulator) merge(res PassResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.film.MergeTile(0, 0, res.Film)
	a.merged++
	a.rays += res.Rays

	if a.updater != nil && a.updater.ShouldUpdate(a.merged, a.total) {
		a.updater.Update(ProgressEvent{
			CurrentPass:     a.merged,
			TotalPasses:     a.total,
			ProgressPercent: 100 * float64(a.merged) / float64(a.total),
			Film:            a.film.Clone(),
		})
	}
}
