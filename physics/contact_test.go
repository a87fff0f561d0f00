package physics

import (
	"testing"

	"github.com/gazed/phys2d/math/vec2"
)

func TestMakePairKeySymmetric(t *testing.T) {
	a := &Body{id: 3}
	b := &Body{id: 7}
	k1 := makePairKey(a, 0, b, 1)
	k2 := makePairKey(b, 1, a, 0)
	if k1 != k2 {
		t.Errorf("pair key must not depend on argument order: %+v vs %+v", k1, k2)
	}
}

func TestMatchPointByFeatureID(t *testing.T) {
	old := []ContactPoint{
		{ID: featureID{kind: featureEdge, indexA: 1, indexB: 2}, NormalImpulse: 5, TangentImpulse: 1},
	}
	mp := ManifoldPoint{ID: featureID{kind: featureEdge, indexA: 1, indexB: 2}}
	match, ok := matchPoint(old, mp, 1e-4)
	if !ok {
		t.Fatal("expected a feature-id match")
	}
	if match.NormalImpulse != 5 {
		t.Errorf("warm-started NormalImpulse = %v, want 5", match.NormalImpulse)
	}
}

func TestMatchPointByProximityForDistanceFeature(t *testing.T) {
	old := []ContactPoint{
		{ID: distanceFeature, LocalA: vec2.V{X: 1, Y: 0}, NormalImpulse: 9},
	}
	mp := ManifoldPoint{ID: distanceFeature, LocalA: vec2.V{X: 1.001, Y: 0}}
	match, ok := matchPoint(old, mp, 1e-2*1e-2)
	if !ok {
		t.Fatal("expected a proximity match within tolerance")
	}
	if match.NormalImpulse != 9 {
		t.Errorf("warm-started NormalImpulse = %v, want 9", match.NormalImpulse)
	}
}

func TestMatchPointProximityRejectsFarPoint(t *testing.T) {
	old := []ContactPoint{
		{ID: distanceFeature, LocalA: vec2.V{X: 1, Y: 0}, NormalImpulse: 9},
	}
	mp := ManifoldPoint{ID: distanceFeature, LocalA: vec2.V{X: 5, Y: 0}}
	_, ok := matchPoint(old, mp, 1e-2*1e-2)
	if ok {
		t.Error("expected no match for a point far outside the warm-start distance")
	}
}

func TestContactConstraintUpdateWarmStarts(t *testing.T) {
	box, _ := NewBox(0.5, 0.5)
	fixA, _ := NewFixture(box, 1)
	fixB, _ := NewFixture(box, 1)
	a := NewBody(Normal, vec2.Identity2)
	a.AddFixture(fixA)
	b := NewBody(Normal, vec2.NewTransform(vec2.V{X: 0.9}, 0))
	b.AddFixture(fixB)

	c := &ContactConstraint{BodyA: a, BodyB: b, FixtureA: fixA, FixtureB: fixB}
	wasTouching, nowTouching := c.update(1e-4, nil)
	if wasTouching {
		t.Error("first update should report wasTouching=false")
	}
	if !nowTouching {
		t.Fatal("expected overlapping boxes to be touching")
	}
	if len(c.Points) == 0 {
		t.Fatal("expected at least one contact point")
	}
	c.Points[0].NormalImpulse = 3.5

	wasTouching, nowTouching = c.update(1e-4, nil)
	if !wasTouching || !nowTouching {
		t.Fatal("second update should still be touching")
	}
	if c.Points[0].NormalImpulse != 3.5 {
		t.Errorf("expected impulse to warm-start from the previous step, got %v", c.Points[0].NormalImpulse)
	}
}

func TestContactConstraintUpdateSeparates(t *testing.T) {
	box, _ := NewBox(0.5, 0.5)
	fixA, _ := NewFixture(box, 1)
	fixB, _ := NewFixture(box, 1)
	a := NewBody(Normal, vec2.Identity2)
	a.AddFixture(fixA)
	b := NewBody(Normal, vec2.NewTransform(vec2.V{X: 0.9}, 0))
	b.AddFixture(fixB)

	c := &ContactConstraint{BodyA: a, BodyB: b, FixtureA: fixA, FixtureB: fixB}
	c.update(1e-4, nil)

	b.Pose = vec2.NewTransform(vec2.V{X: 50}, 0)
	wasTouching, nowTouching := c.update(1e-4, nil)
	if !wasTouching {
		t.Error("expected wasTouching=true from the previous step")
	}
	if nowTouching {
		t.Error("expected nowTouching=false after separating")
	}
	if len(c.Points) != 0 {
		t.Errorf("expected no points once separated, got %d", len(c.Points))
	}
}
