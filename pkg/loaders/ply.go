package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Version  string
	Elements []PLYElement
}

// PLYElement is one element block declared in the header, in file order
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
}

// plyReader reads scalar values regardless of the payload encoding
type plyReader interface {
	value(dataType string) (float64, error)
}

// LoadPLY loads the vertex positions and faces of a PLY file as a single model.
// Polygons with more than three vertices are fan-triangulated; other vertex and
// face properties are skipped.
func LoadPLY(path string, logger core.Logger) (Model, error) {
	startTime := time.Now()

	file, err := os.Open(path)
	if err != nil {
		return Model{}, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	br := bufio.NewReaderSize(file, 1024*1024)
	header, err := parsePLYHeader(br)
	if err != nil {
		return Model{}, fmt.Errorf("failed to parse PLY header %s: %w", path, err)
	}

	var r plyReader
	switch header.Format {
	case "ascii":
		r = &asciiReader{r: br}
	case "binary_little_endian":
		r = &binaryReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		r = &binaryReader{r: br, order: binary.BigEndian}
	default:
		return Model{}, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	model := Model{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			model.Vertices, err = readPLYVertices(r, element)
		case "face":
			model.Indices, err = readPLYFaces(r, element)
		default:
			err = skipPLYElement(r, element)
		}
		if err != nil {
			return Model{}, fmt.Errorf("failed to read PLY %s element of %s: %w", element.Name, path, err)
		}
	}

	if len(model.Vertices) == 0 || len(model.Indices) == 0 {
		return Model{}, fmt.Errorf("failed to load PLY %s: no faces", path)
	}

	if logger != nil {
		logger.Printf("Loaded PLY %s: %d vertices, %d triangles in %v\n",
			path, len(model.Vertices), len(model.Indices)/3, time.Since(startTime))
	}
	return model, nil
}

// parsePLYHeader parses the header up to and including end_header
func parsePLYHeader(br *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := br.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic number")
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unterminated header: %w", err)
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("missing format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)
		default:
			return nil, fmt.Errorf("unexpected header line: %q", strings.TrimSpace(line))
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) >= 1 && parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		return PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func readPLYVertices(r plyReader, element PLYElement) ([]core.Vec3, error) {
	axis := map[string]int{"x": 0, "y": 1, "z": 2}
	vertices := make([]core.Vec3, 0, element.Count)

	for i := 0; i < element.Count; i++ {
		var p [3]float64
		for _, prop := range element.Properties {
			if prop.IsList {
				if err := skipPLYList(r, prop); err != nil {
					return nil, err
				}
				continue
			}
			v, err := r.value(prop.Type)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			if a, ok := axis[prop.Name]; ok {
				p[a] = v
			}
		}
		vertices = append(vertices, core.NewVec3(p[0], p[1], p[2]))
	}
	return vertices, nil
}

func readPLYFaces(r plyReader, element PLYElement) ([]int, error) {
	indices := make([]int, 0, element.Count*3)

	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
				if err := skipPLYProperty(r, prop); err != nil {
					return nil, err
				}
				continue
			}

			n, err := r.value(prop.ListType)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			if n < 0 {
				return nil, fmt.Errorf("face %d: negative vertex count", i)
			}
			polygon := make([]int, int(n))
			for j := range polygon {
				v, err := r.value(prop.Type)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				polygon[j] = int(v)
			}
			for j := 1; j+1 < len(polygon); j++ {
				indices = append(indices, polygon[0], polygon[j], polygon[j+1])
			}
		}
	}
	return indices, nil
}

func skipPLYElement(r plyReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if err := skipPLYProperty(r, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipPLYProperty(r plyReader, prop PLYProperty) error {
	if prop.IsList {
		return skipPLYList(r, prop)
	}
	_, err := r.value(prop.Type)
	return err
}

func skipPLYList(r plyReader, prop PLYProperty) error {
	n, err := r.value(prop.ListType)
	if err != nil {
		return err
	}
	for j := 0; j < int(n); j++ {
		if _, err := r.value(prop.Type); err != nil {
			return err
		}
	}
	return nil
}

// asciiReader reads whitespace-separated values
type asciiReader struct {
	r *bufio.Reader
}

func (a *asciiReader) value(dataType string) (float64, error) {
	var token []byte
	for {
		b, err := a.r.ReadByte()
		if err == io.EOF && len(token) > 0 {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("unexpected end of data: %w", err)
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			if len(token) > 0 {
				break
			}
			continue
		}
		token = append(token, b)
	}

	v, err := strconv.ParseFloat(string(token), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, token)
	}
	return v, nil
}

// binaryReader reads fixed-size values in the header's byte order
type binaryReader struct {
	r     *bufio.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) value(dataType string) (float64, error) {
	size := plyTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, fmt.Errorf("unexpected end of data: %w", err)
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}

// plyTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func plyTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}
