package physics

import (
	"math"
	"testing"

	"github.com/gazed/phys2d/math/vec2"
)

func identityFixture(t *testing.T, shape Convex) *Fixture {
	t.Helper()
	f, err := NewFixture(shape, 1)
	if err != nil {
		t.Fatalf("NewFixture: %v", err)
	}
	return f
}

func TestCollideCircles(t *testing.T) {
	a, _ := NewCircle(vec2.V{}, 1)
	b, _ := NewCircle(vec2.V{}, 1)
	fa := identityFixture(t, a)
	fb := identityFixture(t, b)

	xfA := vec2.Identity2
	xfB := vec2.NewTransform(vec2.V{X: 1.5, Y: 0}, 0)

	m := collide(fa, xfA, fb, xfB)
	if len(m.Points) != 1 {
		t.Fatalf("expected 1 contact point, got %d", len(m.Points))
	}
	if want := 0.5; math.Abs(m.Points[0].Penetration-want) > 1e-9 {
		t.Errorf("penetration = %v, want %v", m.Points[0].Penetration, want)
	}
	if !m.Normal.Aeq(vec2.V{X: 1, Y: 0}) {
		t.Errorf("normal = %v, want +x", m.Normal)
	}
}

func TestCollideCirclesSeparated(t *testing.T) {
	a, _ := NewCircle(vec2.V{}, 1)
	b, _ := NewCircle(vec2.V{}, 1)
	fa := identityFixture(t, a)
	fb := identityFixture(t, b)
	xfB := vec2.NewTransform(vec2.V{X: 5, Y: 0}, 0)

	m := collide(fa, vec2.Identity2, fb, xfB)
	if len(m.Points) != 0 {
		t.Errorf("expected no contact, got %d points", len(m.Points))
	}
}

func TestCollidePolygonCircle(t *testing.T) {
	box, _ := NewBox(1, 1) // 2x2 box
	circle, _ := NewCircle(vec2.V{}, 1)
	fa := identityFixture(t, box)
	fb := identityFixture(t, circle)

	xfB := vec2.NewTransform(vec2.V{X: 2, Y: 0}, 0) // center 1 unit past the box face
	m := collide(fa, vec2.Identity2, fb, xfB)
	if len(m.Points) != 1 {
		t.Fatalf("expected 1 contact point, got %d", len(m.Points))
	}
	if !m.Normal.Aeq(vec2.V{X: 1, Y: 0}) {
		t.Errorf("normal = %v, want +x", m.Normal)
	}
}

func TestCollidePolygons(t *testing.T) {
	a, _ := NewBox(1, 1)
	b, _ := NewBox(1, 1)
	fa := identityFixture(t, a)
	fb := identityFixture(t, b)

	xfB := vec2.NewTransform(vec2.V{X: 1.5, Y: 0}, 0)
	m := collide(fa, vec2.Identity2, fb, xfB)
	if len(m.Points) == 0 {
		t.Fatal("expected overlap between two boxes 1.5 apart (half-widths 1 each)")
	}
	if m.Normal.X <= 0 {
		t.Errorf("normal = %v, want separating normal pointing toward +x", m.Normal)
	}
}

func TestCollidePolygonsSeparated(t *testing.T) {
	a, _ := NewBox(1, 1)
	b, _ := NewBox(1, 1)
	fa := identityFixture(t, a)
	fb := identityFixture(t, b)

	xfB := vec2.NewTransform(vec2.V{X: 10, Y: 0}, 0)
	m := collide(fa, vec2.Identity2, fb, xfB)
	if len(m.Points) != 0 {
		t.Errorf("expected no contact, got %d points", len(m.Points))
	}
}

func TestGJKDistanceSeparated(t *testing.T) {
	a, _ := NewCircle(vec2.V{}, 1)
	b, _ := NewCircle(vec2.V{}, 1)
	xfB := vec2.NewTransform(vec2.V{X: 5, Y: 0}, 0)

	result, _, _, sep := gjkDistance(a, vec2.Identity2, b, xfB)
	if result.intersect {
		t.Fatal("expected no intersection at distance 5 with radius-1 circles")
	}
	if want := 3.0; math.Abs(sep-want) > 1e-6 {
		t.Errorf("separation = %v, want %v", sep, want)
	}
}

func TestGJKDistanceIntersecting(t *testing.T) {
	a, _ := NewBox(1, 1)
	b, _ := NewBox(1, 1)
	xfB := vec2.NewTransform(vec2.V{X: 0.5, Y: 0}, 0)

	result, _, _, _ := gjkDistance(a, vec2.Identity2, b, xfB)
	if !result.intersect {
		t.Fatal("expected overlapping boxes to intersect")
	}
}

func TestEPAPenetrationDepthAndNormal(t *testing.T) {
	a, _ := NewBox(1, 1)
	b, _ := NewBox(1, 1)
	xfB := vec2.NewTransform(vec2.V{X: 1.5, Y: 0}, 0)

	result, _, _, _ := gjkDistance(a, vec2.Identity2, b, xfB)
	if !result.intersect {
		t.Fatal("expected intersection")
	}
	epa := epaPenetration(a, vec2.Identity2, b, xfB, result.simplex)
	if want := 0.5; math.Abs(epa.depth-want) > 1e-4 {
		t.Errorf("depth = %v, want %v", epa.depth, want)
	}
	if math.Abs(epa.normal.X)-1 > 1e-4 || math.Abs(epa.normal.Y) > 1e-4 {
		t.Errorf("normal = %v, want axis-aligned along x", epa.normal)
	}
}
