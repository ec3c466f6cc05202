package loaders

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

const quadPLY = `ply
format ascii 1.0
comment unit quad as one polygon plus a triangle
element vertex 5
property float x
property float y
property float z
property float confidence
element face 2
property list uchar int vertex_indices
end_header
0 0 0 1
1 0 0 1
1 1 0 1
0 1 0 1
0 0 1 0.5
4 0 1 2 3
3 0 1 4
`

func writePLY(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.ply")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPLY_ASCII(t *testing.T) {
	model, err := LoadPLY(writePLY(t, []byte(quadPLY)), core.NopLogger{})
	if err != nil {
		t.Fatalf("LoadPLY failed: %v", err)
	}

	if model.Name != "model" {
		t.Errorf("Expected name model, got %q", model.Name)
	}
	if len(model.Vertices) != 5 {
		t.Fatalf("Expected 5 vertices, got %d", len(model.Vertices))
	}
	if model.Vertices[2] != core.NewVec3(1, 1, 0) {
		t.Errorf("Expected vertex 2 at (1,1,0), got %v", model.Vertices[2])
	}

	// Quad fans into two triangles
	expected := []int{0, 1, 2, 0, 2, 3, 0, 1, 4}
	if len(model.Indices) != len(expected) {
		t.Fatalf("Expected indices %v, got %v", expected, model.Indices)
	}
	for i := range expected {
		if model.Indices[i] != expected[i] {
			t.Fatalf("Expected indices %v, got %v", expected, model.Indices)
		}
	}
}

func TestLoadPLY_Binary(t *testing.T) {
	for _, tt := range []struct {
		format string
		order  binary.ByteOrder
	}{
		{"binary_little_endian", binary.LittleEndian},
		{"binary_big_endian", binary.BigEndian},
	} {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			buf.WriteString("ply\nformat " + tt.format + " 1.0\n" +
				"element vertex 3\nproperty float x\nproperty float y\nproperty float z\n" +
				"element face 1\nproperty list uchar uint vertex_indices\nproperty uchar flags\n" +
				"end_header\n")
			for _, v := range [][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 3, -1}} {
				binary.Write(&buf, tt.order, v)
			}
			buf.WriteByte(3)
			binary.Write(&buf, tt.order, [3]uint32{2, 1, 0})
			buf.WriteByte(7)

			model, err := LoadPLY(writePLY(t, buf.Bytes()), nil)
			if err != nil {
				t.Fatalf("LoadPLY failed: %v", err)
			}
			if len(model.Vertices) != 3 || model.Vertices[2] != core.NewVec3(0, 3, -1) {
				t.Errorf("Unexpected vertices %v", model.Vertices)
			}
			if len(model.Indices) != 3 || model.Indices[0] != 2 || model.Indices[2] != 0 {
				t.Errorf("Unexpected indices %v", model.Indices)
			}
		})
	}
}

func TestLoadPLY_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not ply", "solid cube\n"},
		{"no format", "ply\nelement vertex 0\nend_header\n"},
		{"bad format", "ply\nformat xml 1.0\nend_header\n"},
		{"unterminated header", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"truncated data", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n1 1\n"},
		{"no faces", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadPLY(writePLY(t, []byte(tt.content)), core.NopLogger{}); err == nil {
				t.Error("Expected error")
			}
		})
	}

	_, err := LoadPLY(filepath.Join(t.TempDir(), "missing.ply"), core.NopLogger{})
	if err == nil || !strings.Contains(err.Error(), "open") {
		t.Errorf("Expected open error, got %v", err)
	}
}
