package sampler

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestNewStratified_SamplesPerPixel(t *testing.T) {
	tests := []struct {
		spp      int
		expected int
		warns    bool
	}{
		{1, 1, false},
		{4, 4, false},
		{16, 16, false},
		{5, 4, true},
		{8, 4, true},
		{0, 1, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("spp=%d", tt.spp), func(t *testing.T) {
			logger := &recordingLogger{}
			s := NewStratified(tt.spp, logger)
			if s.SamplesPerPixel() != tt.expected {
				t.Errorf("Expected %d samples, got %d", tt.expected, s.SamplesPerPixel())
			}
			if warned := len(logger.lines) > 0; warned != tt.warns {
				t.Errorf("Expected warning=%v, got lines %v", tt.warns, logger.lines)
			}
			if tt.warns && !strings.Contains(logger.lines[0], "perfect square") {
				t.Errorf("Unexpected diagnostic: %q", logger.lines[0])
			}
		})
	}
}

func TestStratified_OneSamplePerCell(t *testing.T) {
	s := NewStratified(16, core.NopLogger{})
	random := rand.New(rand.NewSource(5))
	pixel := core.NewVec2(10, 20)

	samples := s.CameraSamples(pixel, random)
	if len(samples) != 16 {
		t.Fatalf("Expected 16 samples, got %d", len(samples))
	}

	seen := make(map[[2]int]bool)
	for _, sample := range samples {
		local := sample.PFilm.Subtract(pixel)
		if local.X < 0 || local.X >= 1 || local.Y < 0 || local.Y >= 1 {
			t.Fatalf("Sample outside pixel: %v", sample.PFilm)
		}
		cell := [2]int{int(local.X * 4), int(local.Y * 4)}
		if seen[cell] {
			t.Fatalf("Two samples in cell %v", cell)
		}
		seen[cell] = true

		if sample.PLens.X < 0 || sample.PLens.X >= 1 || sample.PLens.Y < 0 || sample.PLens.Y >= 1 {
			t.Fatalf("Lens sample out of range: %v", sample.PLens)
		}
		if sample.Time < 0 || sample.Time >= 1 {
			t.Fatalf("Time out of range: %f", sample.Time)
		}
	}
}

func TestStratified_DeterministicForSeed(t *testing.T) {
	s := NewStratified(9, core.NopLogger{})
	a := s.CameraSamples(core.NewVec2(3, 4), rand.New(rand.NewSource(11)))
	b := s.CameraSamples(core.NewVec2(3, 4), rand.New(rand.NewSource(11)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
