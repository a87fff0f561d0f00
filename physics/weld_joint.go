package physics

import "github.com/gazed/phys2d/math/vec2"

// WeldJoint rigidly fuses two bodies together at an anchor point, locking
// both relative translation and relative rotation — the stiffest of the
// four joint types, typically used to glue broken-apart pieces of one
// logical body back together.
type WeldJoint struct {
	jointBase

	referenceAngle float64

	rA, rB  vec2.V
	k11, k12, k13 float64
	k22, k23      float64
	k33           float64
	impulse       vec2.V
	angularImpulse float64
}

// NewWeldJoint rigidly connects bodyA and bodyB at their current relative
// pose.
func NewWeldJoint(bodyA, bodyB *Body, localAnchorA, localAnchorB vec2.V) *WeldJoint {
	return &WeldJoint{
		jointBase:      jointBase{bodyA: bodyA, bodyB: bodyB, localAnchorA: localAnchorA, localAnchorB: localAnchorB},
		referenceAngle: bodyB.Pose.Q.Angle() - bodyA.Pose.Q.Angle(),
	}
}

func (j *WeldJoint) initVelocityConstraint(dt float64) {
	bA, bB := j.bodyA, j.bodyB
	j.rA = bA.Pose.Q.Apply(j.localAnchorA.Sub(bA.mass.Center))
	j.rB = bB.Pose.Q.Apply(j.localAnchorB.Sub(bB.mass.Center))

	mA, mB := bA.invMass, bB.invMass
	iA, iB := bA.invI, bB.invI

	j.k11 = mA + mB + iA*j.rA.Y*j.rA.Y + iB*j.rB.Y*j.rB.Y
	j.k12 = -iA*j.rA.X*j.rA.Y - iB*j.rB.X*j.rB.Y
	j.k13 = -iA * j.rA.Y - iB*j.rB.Y
	j.k22 = mA + mB + iA*j.rA.X*j.rA.X + iB*j.rB.X*j.rB.X
	j.k23 = iA*j.rA.X + iB*j.rB.X
	j.k33 = iA + iB
	if j.k33 == 0 {
		j.k33 = 1
	}

	p := j.impulse
	bA.LinVel = bA.LinVel.Sub(p.Scale(mA))
	bA.AngVel -= iA * (j.rA.Cross(p) + j.angularImpulse)
	bB.LinVel = bB.LinVel.Add(p.Scale(mB))
	bB.AngVel += iB * (j.rB.Cross(p) + j.angularImpulse)
}

func (j *WeldJoint) solveVelocityConstraint(dt float64) {
	bA, bB := j.bodyA, j.bodyB
	mA, mB := bA.invMass, bB.invMass
	iA, iB := bA.invI, bB.invI

	// Solve the angular constraint first (it only couples into the
	// linear 2x2 through off-diagonal terms, so this mirrors Box2D's
	// weld joint's block solve order), then the 2x2 linear block.
	cdotAngular := bB.AngVel - bA.AngVel
	angularImpulse := -cdotAngular / j.k33
	j.angularImpulse += angularImpulse
	bA.AngVel -= iA * angularImpulse
	bB.AngVel += iB * angularImpulse

	vpA := bA.LinVel.Add(vec2.CrossSV(bA.AngVel, j.rA))
	vpB := bB.LinVel.Add(vec2.CrossSV(bB.AngVel, j.rB))
	cdot := vpB.Sub(vpA)
	m := mat22{a11: j.k11, a12: j.k12, a21: j.k12, a22: j.k22}
	impulse := m.solve(cdot.Neg())
	j.impulse = j.impulse.Add(impulse)

	bA.LinVel = bA.LinVel.Sub(impulse.Scale(mA))
	bA.AngVel -= iA * j.rA.Cross(impulse)
	bB.LinVel = bB.LinVel.Add(impulse.Scale(mB))
	bB.AngVel += iB * j.rB.Cross(impulse)
}

func (j *WeldJoint) solvePositionConstraint() float64 {
	bA, bB := j.bodyA, j.bodyB
	rA := bA.Pose.Q.Apply(j.localAnchorA.Sub(bA.mass.Center))
	rB := bB.Pose.Q.Apply(j.localAnchorB.Sub(bB.mass.Center))

	angleErr := bB.Pose.Q.Angle() - bA.Pose.Q.Angle() - j.referenceAngle
	mA, mB := bA.invMass, bB.invMass
	iA, iB := bA.invI, bB.invI
	invI := iA + iB
	if invI > 0 {
		angularImpulse := -angleErr / invI
		centerA, centerB := bA.WorldCenter(), bB.WorldCenter()
		bA.Pose.Q = vec2.NewRot(bA.Pose.Q.Angle() - iA*angularImpulse)
		bB.Pose.Q = vec2.NewRot(bB.Pose.Q.Angle() + iB*angularImpulse)
		bA.Pose.P = centerA.Sub(bA.Pose.Q.Apply(bA.mass.Center))
		bB.Pose.P = centerB.Sub(bB.Pose.Q.Apply(bB.mass.Center))
	}

	rA = bA.Pose.Q.Apply(j.localAnchorA.Sub(bA.mass.Center))
	rB = bB.Pose.Q.Apply(j.localAnchorB.Sub(bB.mass.Center))
	c := bB.WorldCenter().Add(rB).Sub(bA.WorldCenter().Add(rA))

	k := k2x2FromPoints(bA, bB, rA, rB)
	impulse := k.solve(c.Neg())

	newCenterA := bA.WorldCenter().Sub(impulse.Scale(mA))
	newAngleA := bA.Pose.Q.Angle() - iA*rA.Cross(impulse)
	bA.Pose.Q = vec2.NewRot(newAngleA)
	bA.Pose.P = newCenterA.Sub(bA.Pose.Q.Apply(bA.mass.Center))

	newCenterB := bB.WorldCenter().Add(impulse.Scale(mB))
	newAngleB := bB.Pose.Q.Angle() + iB*rB.Cross(impulse)
	bB.Pose.Q = vec2.NewRot(newAngleB)
	bB.Pose.P = newCenterB.Sub(bB.Pose.Q.Apply(bB.mass.Center))

	return abs64(angleErr) + c.Len()
}
