package loaders

import (
	"fmt"

	"github.com/udhos/gwob"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Model is one triangulated group of an OBJ file
type Model struct {
	Name     string
	Vertices []core.Vec3
	Indices  []int // Three per triangle, into Vertices
}

// LoadOBJ parses a Wavefront OBJ file into one model per group.
// Normals and texture coordinates are ignored; faces are triangulated by the parser.
func LoadOBJ(path string, logger core.Logger) ([]Model, error) {
	options := &gwob.ObjParserOptions{
		LogStats:      false,
		IgnoreNormals: true,
		Logger: func(msg string) {
			if logger != nil {
				logger.Printf("obj %s: %s\n", path, msg)
			}
		},
	}

	obj, err := gwob.NewObjFromFile(path, options)
	if err != nil {
		return nil, fmt.Errorf("failed to load obj %s: %w", path, err)
	}

	if obj.StrideSize <= 0 {
		return nil, fmt.Errorf("failed to load obj %s: no vertex data", path)
	}
	stride := obj.StrideSize / 4
	offset := obj.StrideOffsetPosition / 4

	position := func(element int) core.Vec3 {
		base := element*stride + offset
		return core.NewVec3(obj.Coord64(base), obj.Coord64(base+1), obj.Coord64(base+2))
	}

	var models []Model
	for _, group := range obj.Groups {
		if group.IndexCount < 3 {
			continue
		}

		model := Model{Name: group.Name}
		local := make(map[int]int)
		for _, element := range obj.Indices[group.IndexBegin : group.IndexBegin+group.IndexCount] {
			idx, ok := local[element]
			if !ok {
				idx = len(model.Vertices)
				local[element] = idx
				model.Vertices = append(model.Vertices, position(element))
			}
			model.Indices = append(model.Indices, idx)
		}

		// Drop a trailing partial triangle
		model.Indices = model.Indices[:len(model.Indices)/3*3]
		models = append(models, model)
	}

	if len(models) == 0 {
		return nil, fmt.Errorf("failed to load obj %s: no faces", path)
	}
	return models, nil
}
