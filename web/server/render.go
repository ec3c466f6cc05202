package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/film"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/sampler"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Render states reported by /api/progress
const (
	StateIdle      = "idle"
	StateRunning   = "running"
	StateDone      = "done"
	StateCancelled = "cancelled"
	StateFailed    = "failed"
)

// maxDimension bounds the resolution accepted from requests
const maxDimension = 4096

// Progress represents the progress of a render
type Progress struct {
	ID              string  `json:"id,omitempty"`
	Scene           string  `json:"scene,omitempty"`
	State           string  `json:"state"`
	CurrentPass     int     `json:"currentPass"`
	TotalPasses     int     `json:"totalPasses"`
	ProgressPercent float64 `json:"progressPercent"`
	Rays            int     `json:"rays"`
	ElapsedMs       int64   `json:"elapsedMs"`
	Error           string  `json:"error,omitempty"`
}

// renderJob tracks one background render
type renderJob struct {
	mu       sync.Mutex
	state    Progress
	started  time.Time
	preview  []byte
	cancel   context.CancelFunc
	finished chan struct{}
}

func (j *renderJob) progress() Progress {
	j.mu.Lock()
	defer j.mu.Unlock()
	p := j.state
	if p.State == StateRunning {
		p.ElapsedMs = time.Since(j.started).Milliseconds()
	}
	return p
}

func (j *renderJob) running() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state.State == StateRunning
}

func (j *renderJob) previewPNG() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.preview
}

// snapshot encodes the film and records the pass it belongs to
func (j *renderJob) snapshot(f *film.Film, current, total int) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, f.ToImage()); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.preview = buf.Bytes()
	j.state.CurrentPass = current
	j.state.TotalPasses = total
	j.state.ProgressPercent = 100 * float64(current) / float64(total)
	return nil
}

// handleRender starts a render of ?scene= in the background
func (s *Server) handleRender(c echo.Context) error {
	name := c.QueryParam("scene")
	width, err := dimensionParam(c, "width")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	height, err := dimensionParam(c, "height")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	// Reserve an id; the scene loads outside the lock
	s.mu.Lock()
	if s.job != nil && s.job.running() {
		s.mu.Unlock()
		return c.JSON(http.StatusConflict, map[string]string{"error": "a render is already running"})
	}
	s.nextID++
	id := fmt.Sprintf("render-%d", s.nextID)
	s.mu.Unlock()

	logger := NewWebLogger(id, s.console.Channel())
	sc, err := scene.Load(name, scene.Options{
		Width:       width,
		Height:      height,
		ObjPath:     s.options.ObjPath,
		PlyPath:     s.options.PlyPath,
		TexturePath: s.options.TexturePath,
		EnvMapPath:  s.options.EnvMapPath,
		Logger:      logger,
	})
	if errors.Is(err, scene.ErrUnknownScene) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have started a render while the scene loaded
	if s.job != nil && s.job.running() {
		return c.JSON(http.StatusConflict, map[string]string{"error": "a render is already running"})
	}

	passes := s.options.Passes
	if passes <= 0 {
		passes = renderer.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &renderJob{
		state:    Progress{ID: id, Scene: name, State: StateRunning, TotalPasses: passes},
		started:  time.Now(),
		cancel:   cancel,
		finished: make(chan struct{}),
	}
	s.job = job

	go s.runRender(ctx, job, sc, logger)

	return c.JSON(http.StatusAccepted, job.progress())
}

// handleCancel stops the running render, keeping the passes merged so far
func (s *Server) handleCancel(c echo.Context) error {
	s.mu.Lock()
	job := s.job
	s.mu.Unlock()

	if job == nil || !job.running() {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no render running"})
	}
	job.cancel()
	<-job.finished
	return c.JSON(http.StatusOK, job.progress())
}

// runRender renders the scene, publishing a preview after every merged pass
func (s *Server) runRender(ctx context.Context, job *renderJob, sc *scene.Scene, logger core.Logger) {
	defer close(job.finished)
	defer job.cancel()

	updater := renderer.UpdaterFunc(func(evt renderer.ProgressEvent) {
		if err := job.snapshot(evt.Film, evt.CurrentPass, evt.TotalPasses); err != nil {
			logger.Printf("%v\n", err)
		}
	})

	r := renderer.New(
		integrator.NewPathTracing(s.options.Path),
		sampler.NewStratified(s.options.SamplesPerPixel, logger),
		renderer.Config{Passes: job.progress().TotalPasses, Workers: s.options.Workers},
		updater,
		logger,
	)

	result, err := r.Render(ctx, sc)
	if result.Film != nil {
		if snapErr := job.snapshot(result.Film, result.Passes, job.progress().TotalPasses); snapErr != nil {
			logger.Printf("%v\n", snapErr)
		}
	}

	job.mu.Lock()
	defer job.mu.Unlock()
	job.state.Rays = result.Rays
	job.state.ElapsedMs = time.Since(job.started).Milliseconds()
	switch {
	case errors.Is(err, context.Canceled):
		job.state.State = StateCancelled
	case err != nil:
		job.state.State = StateFailed
		job.state.Error = err.Error()
	default:
		job.state.State = StateDone
	}
}

// dimensionParam parses an optional positive resolution parameter
func dimensionParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 || v > maxDimension {
		return 0, fmt.Errorf("%s must be an integer in [1, %d]", name, maxDimension)
	}
	return v, nil
}
