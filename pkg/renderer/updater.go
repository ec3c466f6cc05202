package renderer

import (
	"sync"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/film"
)

// ProgressEvent is a snapshot of a render in progress
type ProgressEvent struct {
	CurrentPass     int
	TotalPasses     int
	ProgressPercent float64
	Film            *film.Film // Copy of the merged film, owned by the receiver
}

// Updater receives progress snapshots. Both methods are called while the merge lock is held,
// so they must not call back into the renderer.
type Updater interface {
	ShouldUpdate(current, total int) bool
	Update(evt ProgressEvent)
}

// UpdaterFunc adapts a function into an Updater that fires after every merge except the last
type UpdaterFunc func(evt ProgressEvent)

// ShouldUpdate reports true until the final pass
func (f UpdaterFunc) ShouldUpdate(current, total int) bool {
	return current < total
}

// Update calls f
func (f UpdaterFunc) Update(evt ProgressEvent) {
	f(evt)
}

// UpdaterConfig controls interval snapshots
type UpdaterConfig struct {
	Interval time.Duration // Minimum time between snapshots
	Every    int           // Only consider snapshots every N merged passes
	Path     string        // PNG written on each snapshot; empty disables saving
}

// DefaultUpdaterConfig returns a one second interval checked every NumCPU passes
func DefaultUpdaterConfig() UpdaterConfig {
	return UpdaterConfig{
		Interval: time.Second,
		Every:    NumCPU(),
		Path:     "output/output.png",
	}
}

// IntervalUpdater logs progress and saves the film at most once per interval
type IntervalUpdater struct {
	config UpdaterConfig
	logger core.Logger

	mu         sync.Mutex
	lastUpdate time.Time
}

// NewIntervalUpdater creates an interval updater; the first interval starts now
func NewIntervalUpdater(config UpdaterConfig, logger core.Logger) *IntervalUpdater {
	if config.Every <= 0 {
		config.Every = 1
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &IntervalUpdater{
		config:     config,
		logger:     logger,
		lastUpdate: time.Now(),
	}
}

// ShouldUpdate fires on every Every-th pass before the last, once the interval has elapsed
func (u *IntervalUpdater) ShouldUpdate(current, total int) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return current%u.config.Every == 0 &&
		current < total &&
		time.Since(u.lastUpdate) > u.config.Interval
}

// Update logs the progress and writes the snapshot
func (u *IntervalUpdater) Update(evt ProgressEvent) {
	u.logger.Printf("pass %d / %d (%6.3f%%)\n", evt.CurrentPass, evt.TotalPasses, evt.ProgressPercent)

	if u.config.Path != "" && evt.Film != nil {
		if err := evt.Film.SavePNG(u.config.Path); err != nil {
			u.logger.Printf("Failed to save snapshot: %v\n", err)
		}
	}

	u.mu.Lock()
	u.lastUpdate = time.Now()
	u.mu.Unlock()
}
