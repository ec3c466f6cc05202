package renderer

import (
	"sync"
	"sync/atomic"

	"github.com/df07/go-pathtracer/pkg/film"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// PassTask represents one full-image pass for the worker pool
type PassTask struct {
	Pass int // Also the seed of the pass random stream
}

// PassResult contains the result from rendering a pass
type PassResult struct {
	Pass      int
	Film      *film.Film
	Rays      int
	Cancelled bool // The pass stopped early and its film must be discarded
}

// WorkerPool manages parallel pass rendering
type WorkerPool struct {
	taskQueue   chan PassTask
	resultQueue chan PassResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders the passes it pulls from the task queue
type Worker struct {
	ID          int
	renderer    *Renderer
	scene       *scene.Scene
	cancelled   *atomic.Bool
	taskQueue   chan PassTask
	resultQueue chan PassResult
}

// NewWorkerPool creates a worker pool sized for numPasses tasks
func NewWorkerPool(r *Renderer, s *scene.Scene, numWorkers, numPasses int, cancelled *atomic.Bool) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan PassTask, numPasses),   // Buffer for all passes
		resultQueue: make(chan PassResult, numPasses), // Workers never block on results
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    r,
			scene:       s,
			cancelled:   cancelled,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop closes the task queue, waits for workers to finish and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a pass task to the worker pool
func (wp *WorkerPool) SubmitTask(task PassTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed pass; ok is false once the pool has stopped
func (wp *WorkerPool) GetResult() (PassResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if w.cancelled.Load() {
			w.resultQueue <- PassResult{Pass: task.Pass, Cancelled: true}
			continue
		}
		w.resultQueue <- w.renderer.renderPass(w.scene, task.Pass, w.cancelled)
	}
}
