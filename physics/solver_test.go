package physics

import (
	"math"
	"testing"

	"github.com/gazed/phys2d/math/vec2"
)

func overlappingConstraint(t *testing.T, overlap float64) (*Body, *Body, *ContactConstraint) {
	t.Helper()
	box, err := NewBox(0.5, 0.5)
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	fixA, _ := NewFixture(box, 1)
	fixB, _ := NewFixture(box, 1)
	a := NewBody(Normal, vec2.Identity2)
	a.AddFixture(fixA)
	b := NewBody(Normal, vec2.NewTransform(vec2.V{X: 1 - overlap}, 0))
	b.AddFixture(fixB)

	c := &ContactConstraint{BodyA: a, BodyB: b, FixtureA: fixA, FixtureB: fixB, Friction: 0.3}
	c.update(1e-4, nil)
	return a, b, c
}

func TestSolveVelocityContactsSeparatesApproachingBodies(t *testing.T) {
	a, b, c := overlappingConstraint(t, 0.2)
	// Bodies closing: a moving right, b moving left.
	a.LinVel = vec2.V{X: 1}
	b.LinVel = vec2.V{X: -1}

	s := DefaultSettings()
	prepareContacts([]*ContactConstraint{c}, s.StepFrequency, s)
	warmStartContacts([]*ContactConstraint{c})
	for i := 0; i < s.VelocityIterations; i++ {
		solveVelocityContacts([]*ContactConstraint{c})
	}

	relVel := relativeVelocity(a, b, c.Points[0].rA, c.Points[0].rB).Dot(c.Normal)
	if relVel < -1e-6 {
		t.Errorf("relative normal velocity after solving = %v, want >= 0 (not still approaching)", relVel)
	}
}

func TestSolvePositionContactsReducesPenetration(t *testing.T) {
	a, b, c := overlappingConstraint(t, 0.3)
	s := DefaultSettings()

	before := c.Normal.Dot(b.Pose.Apply(c.Points[0].LocalB).Sub(a.Pose.Apply(c.Points[0].LocalA)))
	for i := 0; i < 20; i++ {
		solvePositionContacts([]*ContactConstraint{c}, s)
	}
	after := c.Normal.Dot(b.Pose.Apply(c.Points[0].LocalB).Sub(a.Pose.Apply(c.Points[0].LocalA)))

	// "after" is a signed separation; it should have increased (become
	// less negative / less penetrating) from repeated correction.
	if after <= before {
		t.Errorf("expected penetration to shrink after position iterations: before=%v after=%v", before, after)
	}
}

func TestEvaluateSleepAccumulatesAndSleeps(t *testing.T) {
	a := dynamicBoxBody(0, 0)
	b := dynamicBoxBody(1, 0)
	island := &Island{Bodies: []*Body{a, b}}
	s := DefaultSettings()
	s.TimeToSleep = 0.1

	steps := int(math.Ceil(s.TimeToSleep/s.StepFrequency)) + 2
	for i := 0; i < steps; i++ {
		evaluateSleep(island, s.StepFrequency, s)
	}
	if !a.Asleep() || !b.Asleep() {
		t.Fatal("expected both bodies to sleep once accumulated time exceeds TimeToSleep")
	}
}

func TestEvaluateSleepResetsOnFastBody(t *testing.T) {
	a := dynamicBoxBody(0, 0)
	b := dynamicBoxBody(1, 0)
	b.LinVel = vec2.V{X: 10}
	island := &Island{Bodies: []*Body{a, b}}
	s := DefaultSettings()

	a.SleepTime = s.TimeToSleep - s.StepFrequency
	evaluateSleep(island, s.StepFrequency, s)
	if a.Asleep() {
		t.Error("a fast-moving body anywhere in the island should block the whole island from sleeping")
	}
	if a.SleepTime != 0 {
		t.Errorf("a's sleep timer should reset to 0 because b exceeds the threshold, got %v", a.SleepTime)
	}
}

func TestEvaluateSleepDisabledNeverSleeps(t *testing.T) {
	a := dynamicBoxBody(0, 0)
	island := &Island{Bodies: []*Body{a}}
	s := DefaultSettings()
	s.SleepEnabled = false

	for i := 0; i < 1000; i++ {
		evaluateSleep(island, s.StepFrequency, s)
	}
	if a.Asleep() {
		t.Error("sleep must never trigger when SleepEnabled is false")
	}
}
