package physics

import (
	"math"
	"testing"

	"github.com/gazed/phys2d/math/vec2"
)

func TestNewWeldJointCapturesReferenceAngle(t *testing.T) {
	box, _ := NewBox(0.5, 0.5)
	fixA, _ := NewFixture(box, 1)
	fixB, _ := NewFixture(box, 1)
	a := NewBody(Normal, vec2.NewTransform(vec2.V{}, 0.1))
	a.AddFixture(fixA)
	b := NewBody(Normal, vec2.NewTransform(vec2.V{X: 1}, 0.4))
	b.AddFixture(fixB)

	j := NewWeldJoint(a, b, vec2.V{}, vec2.V{})
	if math.Abs(j.referenceAngle-0.3) > 1e-9 {
		t.Errorf("referenceAngle = %v, want 0.3", j.referenceAngle)
	}
}

func TestWeldJointVelocitySolveMatchesAnchorVelocities(t *testing.T) {
	a, b := jointPairBodies(0, 1)
	j := NewWeldJoint(a, b, vec2.V{X: 0.5}, vec2.V{X: -0.5})

	b.LinVel = vec2.V{X: 0, Y: 1}
	b.AngVel = 2

	j.initVelocityConstraint(1.0 / 60.0)
	for i := 0; i < 20; i++ {
		j.solveVelocityConstraint(1.0 / 60.0)
	}

	vpA := a.LinVel.Add(vec2.CrossSV(a.AngVel, j.rA))
	vpB := b.LinVel.Add(vec2.CrossSV(b.AngVel, j.rB))
	if diff := vpB.Sub(vpA).Len(); diff > 1e-6 {
		t.Errorf("anchor-point velocities differ by %v after solving, want ~0", diff)
	}
	if diff := math.Abs(b.AngVel - a.AngVel); diff > 1e-6 {
		t.Errorf("angular velocities differ by %v after solving, want ~0 for a rigid weld", diff)
	}
}

func TestWeldJointSolvePositionReducesError(t *testing.T) {
	a, b := jointPairBodies(0, 1)
	j := NewWeldJoint(a, b, vec2.V{X: 0.5}, vec2.V{X: -0.5})
	// Displace and rotate b so both the anchor and angle constraints are violated.
	b.Pose.P = b.Pose.P.Add(vec2.V{X: 0.2, Y: 0.3})
	b.Pose.Q = vec2.NewRot(0.2)

	first := j.solvePositionConstraint()
	for i := 0; i < 20; i++ {
		j.solvePositionConstraint()
	}
	last := j.solvePositionConstraint()
	if last >= first {
		t.Errorf("expected combined anchor/angle error to shrink with iterations: first=%v last=%v", first, last)
	}
}
