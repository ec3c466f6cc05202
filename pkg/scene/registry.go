package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrUnknownScene is returned by Load for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// ErrMissingAsset is returned when a mesh scene's model file does not exist.
// Models are not bundled with the repository.
var ErrMissingAsset = errors.New("missing asset")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, also the Load name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Width       int    `json:"width"`       // Default resolution
	Height      int    `json:"height"`
}

// Options tune scene construction
type Options struct {
	Width       int    // Overrides the default resolution when > 0
	Height      int    // Overrides the default resolution when > 0
	ObjPath     string // Mesh for the suzanne scene
	PlyPath     string // Mesh for the dragon scene
	TexturePath string // Earth texture for the material scenes; empty uses a procedural stand-in
	EnvMapPath  string // Optional PNG/JPEG light dome for the mesh scenes
	Logger      core.Logger
}

// DefaultOptions returns options with default asset paths
func DefaultOptions() Options {
	return Options{
		ObjPath: "assets/suzanne/suzanne.obj",
		PlyPath: "assets/dragon/dragon_vrip.ply",
		Logger:  core.NopLogger{},
	}
}

type builder func(opts Options) (*Scene, error)

type entry struct {
	info  SceneInfo
	build builder
}

var registry = map[string]entry{}

func register(info SceneInfo, build builder) {
	registry[info.ID] = entry{info: info, build: build}
}

func init() {
	register(SceneInfo{
		ID:          "cornell-box",
		DisplayName: "Cornell Box",
		Description: "Empty Cornell box lit by a ceiling area light",
		Group:       "Classic",
		Width:       1024,
		Height:      1024,
	}, NewCornellBox)
	register(SceneInfo{
		ID:          "cornell-boxes",
		DisplayName: "Cornell Box (Blocks)",
		Description: "Cornell box with the tall and short rotated blocks",
		Group:       "Classic",
		Width:       1024,
		Height:      1024,
	}, NewCornellBoxes)
	register(SceneInfo{
		ID:          "material-demo",
		DisplayName: "Material Demo",
		Description: "Every material and texture on a checkered floor",
		Group:       "Materials",
		Width:       800,
		Height:      450,
	}, NewMaterialDemo)
	register(SceneInfo{
		ID:          "defocus-blur",
		DisplayName: "Defocus Blur",
		Description: "Material demo through a wide thin lens",
		Group:       "Materials",
		Width:       800,
		Height:      450,
	}, NewDefocusBlur)
	register(SceneInfo{
		ID:          "many-spheres",
		DisplayName: "Many Spheres",
		Description: "Three large spheres among randomly placed small ones",
		Group:       "Classic",
		Width:       800,
		Height:      450,
	}, NewManySpheres)
	register(SceneInfo{
		ID:          "furnace",
		DisplayName: "Furnace",
		Description: "Grey floor under a constant white environment",
		Group:       "Tests",
		Width:       400,
		Height:      400,
	}, NewFurnace)
	register(SceneInfo{
		ID:          "suzanne",
		DisplayName: "Suzanne",
		Description: "OBJ mesh on a metal checker floor under the sky",
		Group:       "Meshes",
		Width:       1024,
		Height:      1024,
	}, NewSuzanne)
	register(SceneInfo{
		ID:          "dragon",
		DisplayName: "Dragon",
		Description: "Glass PLY dragon on a grey floor",
		Group:       "Meshes",
		Width:       1024,
		Height:      1024,
	}, NewDragon)
}

// Names returns all registered scene names, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns metadata for all registered scenes sorted by display name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(registry))
	for _, e := range registry {
		infos = append(infos, e.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].DisplayName < infos[j].DisplayName
	})
	return infos
}

// Load builds a registered scene by name (case-insensitive)
func Load(name string, opts Options) (*Scene, error) {
	e, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	s, err := e.build(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %s: %w", e.info.ID, err)
	}
	return s, nil
}

// requireAsset reports a missing model file with the flag that sets it
func requireAsset(path, flag string) error {
	if path == "" {
		return fmt.Errorf("%w: no model path set (use %s)", ErrMissingAsset, flag)
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s not found; models are not bundled, download one and pass %s", ErrMissingAsset, path, flag)
	}
	return nil
}

// resolution applies the option overrides to a scene's default resolution
func (o Options) resolution(width, height int) (int, int) {
	if o.Width > 0 {
		width = o.Width
	}
	if o.Height > 0 {
		height = o.Height
	}
	return width, height
}

func (o Options) logger() core.Logger {
	if o.Logger == nil {
		return core.NopLogger{}
	}
	return o.Logger
}
