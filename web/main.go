package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	options := server.DefaultOptions()

	// Parse command line flags
	flag.IntVar(&options.Port, "port", options.Port, "Port to serve on")
	flag.IntVar(&options.SamplesPerPixel, "spp", options.SamplesPerPixel, "Samples per pixel per pass")
	flag.IntVar(&options.Passes, "passes", options.Passes, "Number of passes (0 = CPU count)")
	flag.IntVar(&options.Workers, "workers", options.Workers, "Number of parallel workers (0 = CPU count)")
	flag.IntVar(&options.Path.MinDepth, "min-depth", options.Path.MinDepth, "Bounces before Russian roulette")
	flag.IntVar(&options.Path.MaxDepth, "max-depth", options.Path.MaxDepth, "Maximum path depth")
	flag.Float64Var(&options.Path.RRStopProb, "rr-stop-prob", options.Path.RRStopProb, "Russian roulette termination probability")
	flag.StringVar(&options.ObjPath, "obj", options.ObjPath, "OBJ mesh for the suzanne scene (not bundled)")
	flag.StringVar(&options.PlyPath, "ply", options.PlyPath, "PLY mesh for the dragon scene (not bundled)")
	flag.StringVar(&options.TexturePath, "texture", options.TexturePath, "Earth texture for the material scenes")
	flag.StringVar(&options.EnvMapPath, "envmap", options.EnvMapPath, "PNG/JPEG light dome for the mesh scenes")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(options)

	log.Printf("Path Tracer Web Server")
	log.Printf("POST http://localhost:%d/api/render?scene=cornell-box to start rendering", options.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
