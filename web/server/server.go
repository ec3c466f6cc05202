package server

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Options configures renders started from the web server
type Options struct {
	Port            int
	SamplesPerPixel int
	Passes          int // 0 = one per CPU
	Workers         int // 0 = CPU count
	Path            integrator.PathConfig
	ObjPath         string
	PlyPath         string
	TexturePath     string
	EnvMapPath      string
}

// DefaultOptions returns the server defaults
func DefaultOptions() Options {
	return Options{
		Port:            8080,
		SamplesPerPixel: 4,
		Path:            integrator.DefaultPathConfig(),
		ObjPath:         scene.DefaultOptions().ObjPath,
		PlyPath:         scene.DefaultOptions().PlyPath,
	}
}

// Server serves render progress previews
type Server struct {
	options Options
	echo    *echo.Echo
	console *Console

	mu     sync.Mutex
	job    *renderJob // Current or most recent render
	nextID int
}

// NewServer creates a new web server
func NewServer(options Options) *Server {
	s := &Server{
		options: options,
		echo:    echo.New(),
		console: NewConsole(500),
	}
	s.echo.HideBanner = true
	s.echo.Use(corsMiddleware)

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/progress", s.handleProgress)
	s.echo.GET("/api/preview.png", s.handlePreview)
	s.echo.GET("/api/console", s.handleConsole)
	s.echo.POST("/api/render", s.handleRender)
	s.echo.POST("/api/cancel", s.handleCancel)
	return s
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.options.Port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return s.echo.Start(addr)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.List())
}

// handleProgress reports the state of the current render
func (s *Server) handleProgress(c echo.Context) error {
	s.mu.Lock()
	job := s.job
	s.mu.Unlock()

	if job == nil {
		return c.JSON(http.StatusOK, Progress{State: StateIdle})
	}
	return c.JSON(http.StatusOK, job.progress())
}

// handlePreview returns the latest snapshot of the current render
func (s *Server) handlePreview(c echo.Context) error {
	s.mu.Lock()
	job := s.job
	s.mu.Unlock()

	if job == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no render started"})
	}
	data := job.previewPNG()
	if data == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no preview yet"})
	}
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, "image/png", data)
}

// handleConsole returns recent log lines
func (s *Server) handleConsole(c echo.Context) error {
	return c.JSON(http.StatusOK, s.console.Recent())
}
