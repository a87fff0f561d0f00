package physics

import (
	"math"
	"testing"

	"github.com/gazed/phys2d/math/vec2"
)

func TestMat22SolveIdentity(t *testing.T) {
	m := mat22{a11: 1, a12: 0, a21: 0, a22: 1}
	got := m.solve(vec2.V{X: 3, Y: 4})
	if got != (vec2.V{X: 3, Y: 4}) {
		t.Errorf("solve with identity = %v, want {3 4}", got)
	}
}

func TestMat22SolveGeneral(t *testing.T) {
	// [[2 0][0 4]] x = [6 8] => x = [3 2]
	m := mat22{a11: 2, a12: 0, a21: 0, a22: 4}
	got := m.solve(vec2.V{X: 6, Y: 8})
	if math.Abs(got.X-3) > 1e-9 || math.Abs(got.Y-2) > 1e-9 {
		t.Errorf("solve = %v, want {3 2}", got)
	}
}

func TestMat22InvertRoundTrips(t *testing.T) {
	m := mat22{a11: 2, a12: 1, a21: 1, a22: 3}
	inv := m.invert()

	// inv applied to (m applied to x) should recover x.
	x := vec2.V{X: 1.5, Y: -2}
	mx := vec2.V{X: m.a11*x.X + m.a12*x.Y, Y: m.a21*x.X + m.a22*x.Y}
	got := vec2.V{X: inv.a11*mx.X + inv.a12*mx.Y, Y: inv.a21*mx.X + inv.a22*mx.Y}
	if math.Abs(got.X-x.X) > 1e-9 || math.Abs(got.Y-x.Y) > 1e-9 {
		t.Errorf("invert() applied to m*x = %v, want %v", got, x)
	}
}

func TestK2x2FromPointsMatchesBothInverseMassZeroForStaticPair(t *testing.T) {
	a := NewBody(Infinite, vec2.Identity2)
	box, _ := NewBox(0.5, 0.5)
	fa, _ := NewFixture(box, 1)
	a.AddFixture(fa)
	b := NewBody(Infinite, vec2.Identity2)
	fb, _ := NewFixture(box, 1)
	b.AddFixture(fb)

	k := k2x2FromPoints(a, b, vec2.V{X: 1}, vec2.V{X: -1})
	if k.a11 != 0 || k.a12 != 0 || k.a22 != 0 {
		t.Errorf("k2x2FromPoints for two static bodies should be the zero matrix, got %+v", k)
	}
}
