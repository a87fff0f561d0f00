package physics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gazed/phys2d/math/vec2"
)

// LoadPolygonFile reads the polygon data file format spec §6 defines:
// line-oriented UTF-8; blank lines and lines starting with '#' are
// ignored; the first remaining line is an integer vertex count N; the
// next N lines each carry two whitespace-separated floats (x y), giving
// vertices in counter-clockwise order. Returns the parsed vertices; the
// caller constructs the Polygon (NewPolygon validates convexity/winding).
func LoadPolygonFile(path string) ([]vec2.V, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParsePolygonFile(f)
}

// ParsePolygonFile parses the polygon data file format from r.
func ParsePolygonFile(r io.Reader) ([]vec2.V, error) {
	scanner := bufio.NewScanner(r)
	lines := significantLines(scanner)
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, newError(InvalidArgument, "polygon file has no vertex count line")
	}

	n, err := strconv.Atoi(lines[0])
	if err != nil || n < 0 {
		return nil, newError(InvalidArgument, "polygon file's vertex count %q is not a non-negative integer", lines[0])
	}
	if len(lines)-1 < n {
		return nil, newError(InvalidArgument, "polygon file declares %d vertices but only has %d", n, len(lines)-1)
	}

	vertices := make([]vec2.V, n)
	for i := 0; i < n; i++ {
		fields := strings.Fields(lines[1+i])
		if len(fields) != 2 {
			return nil, newError(InvalidArgument, "polygon file line %d must have exactly two fields, got %q", i+2, lines[1+i])
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			return nil, newError(InvalidArgument, "polygon file line %d has non-numeric coordinates: %q", i+2, lines[1+i])
		}
		vertices[i] = vec2.V{X: x, Y: y}
	}
	return vertices, nil
}

func significantLines(scanner *bufio.Scanner) []string {
	var out []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// SavePolygonFile writes vertices to path in the §6 polygon data file
// format, for round-tripping test fixtures.
func SavePolygonFile(path string, vertices []vec2.V) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, len(vertices))
	for _, v := range vertices {
		fmt.Fprintf(w, "%g %g\n", v.X, v.Y)
	}
	return w.Flush()
}
