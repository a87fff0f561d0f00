package physics

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gazed/phys2d/math/vec2"
)

func TestSaveLoadPolygonFileRoundTrip(t *testing.T) {
	want := []vec2.V{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	path := filepath.Join(t.TempDir(), "square.poly")

	if err := SavePolygonFile(path, want); err != nil {
		t.Fatalf("SavePolygonFile: %v", err)
	}
	got, err := LoadPolygonFile(path)
	if err != nil {
		t.Fatalf("LoadPolygonFile: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParsePolygonFileIgnoresBlankAndCommentLines(t *testing.T) {
	r := strings.NewReader("# a triangle\n\n3\n0 0\n# comment in the middle\n1 0\n0 1\n")
	got, err := ParsePolygonFile(r)
	if err != nil {
		t.Fatalf("ParsePolygonFile: %v", err)
	}
	want := []vec2.V{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	if len(got) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParsePolygonFileEmptyInput(t *testing.T) {
	_, err := ParsePolygonFile(strings.NewReader(""))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected InvalidArgument for empty input, got %v", err)
	}
}

func TestParsePolygonFileNonIntegerCount(t *testing.T) {
	_, err := ParsePolygonFile(strings.NewReader("three\n0 0\n1 0\n0 1\n"))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected InvalidArgument for a non-integer count, got %v", err)
	}
}

func TestParsePolygonFileTooFewDataLines(t *testing.T) {
	_, err := ParsePolygonFile(strings.NewReader("3\n0 0\n1 0\n"))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected InvalidArgument when fewer data lines than declared, got %v", err)
	}
}

func TestParsePolygonFileWrongFieldCount(t *testing.T) {
	_, err := ParsePolygonFile(strings.NewReader("1\n0 0 0\n"))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected InvalidArgument for a line with the wrong field count, got %v", err)
	}
}

func TestParsePolygonFileNonNumericCoordinates(t *testing.T) {
	_, err := ParsePolygonFile(strings.NewReader("1\nfoo bar\n"))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected InvalidArgument for non-numeric coordinates, got %v", err)
	}
}
