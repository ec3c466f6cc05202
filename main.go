package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/denoise"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/sampler"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Config holds command line options
type Config struct {
	Scene          string
	SamplesPerPix  int
	MinDepth       int
	MaxDepth       int
	RRStopProb     float64
	Passes         int
	Sweeps         int
	Workers        int
	Width          int
	Height         int
	OutputRoot     string
	UpdateInterval time.Duration
	Dev            bool
	Aux            bool
	ObjPath        string
	PlyPath        string
	TexturePath    string
	EnvMapPath     string
	Help           bool
}

// parseFlags parses command line arguments into a Config
func parseFlags(args []string, output io.Writer) (Config, error) {
	var cfg Config
	defaults := integrator.DefaultPathConfig()
	sceneDefaults := scene.DefaultOptions()

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Scene, "scene", "cornell-box", "Scene name: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&cfg.SamplesPerPix, "spp", 4, "Samples per pixel per pass (rounded down to a perfect square)")
	fs.IntVar(&cfg.MinDepth, "min-depth", defaults.MinDepth, "Bounces before Russian roulette")
	fs.IntVar(&cfg.MaxDepth, "max-depth", defaults.MaxDepth, "Maximum path depth")
	fs.Float64Var(&cfg.RRStopProb, "rr-stop-prob", defaults.RRStopProb, "Russian roulette termination probability")
	fs.IntVar(&cfg.Passes, "passes", 0, "Number of passes (0 = sweeps x CPU count)")
	fs.IntVar(&cfg.Sweeps, "sweeps", 4, "Passes per CPU when -passes is 0")
	fs.IntVar(&cfg.Workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&cfg.Width, "width", 0, "Override scene width")
	fs.IntVar(&cfg.Height, "height", 0, "Override scene height")
	fs.StringVar(&cfg.OutputRoot, "output", "output", "Output directory")
	fs.DurationVar(&cfg.UpdateInterval, "update-interval", time.Second, "Minimum time between progress snapshots")
	fs.BoolVar(&cfg.Dev, "dev", false, "Development mode: one sweep at one sample per pixel")
	fs.BoolVar(&cfg.Aux, "aux", false, "Render albedo and normal buffers and try to denoise")
	fs.StringVar(&cfg.ObjPath, "obj", sceneDefaults.ObjPath, "OBJ mesh for the suzanne scene (not bundled, required for -scene suzanne)")
	fs.StringVar(&cfg.PlyPath, "ply", sceneDefaults.PlyPath, "PLY mesh for the dragon scene (not bundled, required for -scene dragon)")
	fs.StringVar(&cfg.TexturePath, "texture", "", "Earth texture for the material scenes")
	fs.StringVar(&cfg.EnvMapPath, "envmap", "", "PNG/JPEG light dome for the mesh scenes")
	fs.BoolVar(&cfg.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.Dev {
		cfg.Sweeps = 1
		cfg.SamplesPerPix = 1
	}
	if cfg.SamplesPerPix < 1 {
		return cfg, fmt.Errorf("-spp must be at least 1, got %d", cfg.SamplesPerPix)
	}
	if cfg.MaxDepth < 0 || cfg.MinDepth < 0 {
		return cfg, fmt.Errorf("-min-depth and -max-depth must be non-negative")
	}
	if cfg.RRStopProb < 0 || cfg.RRStopProb >= 1 {
		return cfg, fmt.Errorf("-rr-stop-prob must be in [0, 1), got %g", cfg.RRStopProb)
	}
	if cfg.Passes < 0 || cfg.Sweeps < 1 || cfg.Workers < 0 {
		return cfg, fmt.Errorf("-passes and -workers must be non-negative and -sweeps positive")
	}
	return cfg, nil
}

// totalPasses resolves the pass count
func (c Config) totalPasses() int {
	if c.Passes > 0 {
		return c.Passes
	}
	return c.Sweeps * renderer.NumCPU()
}

// createScene loads the selected scene
func createScene(cfg Config, logger core.Logger) (*scene.Scene, error) {
	return scene.Load(cfg.Scene, scene.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		ObjPath:     cfg.ObjPath,
		PlyPath:     cfg.PlyPath,
		TexturePath: cfg.TexturePath,
		EnvMapPath:  cfg.EnvMapPath,
		Logger:      logger,
	})
}

// createOutputDir returns the per-scene output directory
func createOutputDir(root, sceneName string) string {
	name := strings.ToLower(strings.TrimSpace(sceneName))
	if name == "" {
		name = "scene"
	}
	return filepath.Join(root, name)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output is saved to <output>/<scene>/output.png")
	fmt.Fprintln(w, "With -aux the undenoised image is kept as output-raw.png")
	fmt.Fprintln(w, "Mesh scenes need -obj or -ply pointing at a downloaded model")
}

// run renders the configured scene and writes the images
func run(ctx context.Context, cfg Config, logger core.Logger) error {
	s, err := createScene(cfg, logger)
	if err != nil {
		return err
	}

	outputDir := createOutputDir(cfg.OutputRoot, cfg.Scene)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(outputDir, "output.png")

	integ := integrator.NewPathTracing(integrator.PathConfig{
		MinDepth:   cfg.MinDepth,
		MaxDepth:   cfg.MaxDepth,
		RRStopProb: cfg.RRStopProb,
	})
	smp := sampler.NewStratified(cfg.SamplesPerPix, logger)

	updaterConfig := renderer.DefaultUpdaterConfig()
	updaterConfig.Interval = cfg.UpdateInterval
	updaterConfig.Path = outputPath
	updater := renderer.NewIntervalUpdater(updaterConfig, logger)

	r := renderer.New(integ, smp, renderer.Config{
		Passes:  cfg.totalPasses(),
		Workers: cfg.Workers,
	}, updater, logger)

	logger.Printf("Rendering %s (%d primitives)...\n", cfg.Scene, s.PrimitiveCount())
	result, renderErr := r.Render(ctx, s)
	if renderErr != nil && !errors.Is(renderErr, context.Canceled) {
		return renderErr
	}

	logger.Printf("Render finished in %v\n", result.Elapsed.Round(time.Millisecond))
	logger.Printf("rays:     %16d\n", result.Rays)
	logger.Printf("rays/sec: %16.0f\n", result.RaysPerSecond())

	if err := result.Film.SavePNG(outputPath); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", outputPath)

	// A cancelled render keeps its partial image but is still a failure
	if renderErr != nil {
		return renderErr
	}

	if cfg.Aux {
		if err := renderAux(ctx, s, result, outputDir, logger); err != nil {
			return err
		}
	}
	return nil
}

// renderAux writes the albedo and normal buffers and denoises when a denoiser is available
func renderAux(ctx context.Context, s *scene.Scene, result renderer.Result, outputDir string, logger core.Logger) error {
	if err := result.Film.SavePNG(filepath.Join(outputDir, "output-raw.png")); err != nil {
		return err
	}

	logger.Printf("Rendering auxiliary buffers...\n")
	aux, err := denoise.RenderAux(ctx, s, core.NopLogger{})
	if err != nil {
		return err
	}

	if err := aux.Albedo.SavePNG(filepath.Join(outputDir, "output-albedo.png")); err != nil {
		return err
	}
	viewable := aux.Normal.Map(func(n core.Vec3) core.Vec3 {
		return n.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
	})
	if err := viewable.SavePNG(filepath.Join(outputDir, "output-normal.png")); err != nil {
		return err
	}

	denoised, err := denoise.Apply(denoise.Unavailable{}, result.Film, aux)
	if errors.Is(err, denoise.ErrUnavailable) {
		logger.Printf("Skipping denoise: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	return denoised.SavePNG(filepath.Join(outputDir, "output.png"))
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		printHelp(os.Stdout)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Help {
		printHelp(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	logger := core.NewDefaultLogger()
	if err := run(ctx, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("Finished in %v\n", time.Since(start).Round(time.Millisecond))
}
