package physics

import "github.com/gazed/phys2d/math/vec2"

// RevoluteJoint pins two bodies together at a shared point, letting them
// rotate freely about it (a pin/hinge), optionally with a motor and/or
// angle limits.
type RevoluteJoint struct {
	jointBase

	EnableMotor  bool
	MotorSpeed   float64
	MaxMotorTorque float64

	EnableLimit bool
	LowerAngle  float64
	UpperAngle  float64

	referenceAngle float64

	rA, rB  vec2.V
	k       mat22
	impulse vec2.V

	motorMass    float64
	motorImpulse float64

	limitState   int // 0 inactive, -1 at lower, 1 at upper, 2 equal
	limitImpulse float64
}

// NewRevoluteJoint pins bodyA and bodyB together at their current shared
// world point (localAnchorA and localAnchorB should coincide in world
// space at construction time, as with any hinge).
func NewRevoluteJoint(bodyA, bodyB *Body, localAnchorA, localAnchorB vec2.V) *RevoluteJoint {
	return &RevoluteJoint{
		jointBase:      jointBase{bodyA: bodyA, bodyB: bodyB, localAnchorA: localAnchorA, localAnchorB: localAnchorB},
		referenceAngle: bodyB.Pose.Q.Angle() - bodyA.Pose.Q.Angle(),
		UpperAngle:     0,
		LowerAngle:     0,
	}
}

func (j *RevoluteJoint) jointAngle() float64 {
	return j.bodyB.Pose.Q.Angle() - j.bodyA.Pose.Q.Angle() - j.referenceAngle
}

func (j *RevoluteJoint) initVelocityConstraint(dt float64) {
	bA, bB := j.bodyA, j.bodyB
	j.rA = bA.Pose.Q.Apply(j.localAnchorA.Sub(bA.mass.Center))
	j.rB = bB.Pose.Q.Apply(j.localAnchorB.Sub(bB.mass.Center))

	j.k = k2x2FromPoints(bA, bB, j.rA, j.rB)

	invI := bA.invI + bB.invI
	if invI > 0 {
		j.motorMass = 1.0 / invI
	}
	if !j.EnableMotor {
		j.motorImpulse = 0
	}

	if j.EnableLimit {
		angle := j.jointAngle()
		if j.UpperAngle-j.LowerAngle < 2*vec2.Epsilon {
			j.limitState = 2
		} else if angle <= j.LowerAngle {
			if j.limitState != -1 {
				j.limitImpulse = 0
			}
			j.limitState = -1
		} else if angle >= j.UpperAngle {
			if j.limitState != 1 {
				j.limitImpulse = 0
			}
			j.limitState = 1
		} else {
			j.limitState = 0
			j.limitImpulse = 0
		}
	} else {
		j.limitState = 0
		j.limitImpulse = 0
	}

	// Warm start: the point impulse acts linearly at the anchors; the
	// motor and limit impulses act about the rotation axis (the
	// out-of-plane component).
	p := j.impulse
	l := j.motorImpulse + j.limitImpulse
	bA.LinVel = bA.LinVel.Sub(p.Scale(bA.invMass))
	bA.AngVel -= bA.invI * (j.rA.Cross(p) + l)
	bB.LinVel = bB.LinVel.Add(p.Scale(bB.invMass))
	bB.AngVel += bB.invI * (j.rB.Cross(p) + l)
}

func (j *RevoluteJoint) solveVelocityConstraint(dt float64) {
	bA, bB := j.bodyA, j.bodyB

	if j.EnableMotor && j.limitState != 2 {
		cdot := bB.AngVel - bA.AngVel - j.MotorSpeed
		impulse := -j.motorMass * cdot
		old := j.motorImpulse
		maxImpulse := j.MaxMotorTorque * dt
		j.motorImpulse = vec2.Clamp(old+impulse, -maxImpulse, maxImpulse)
		impulse = j.motorImpulse - old
		bA.AngVel -= bA.invI * impulse
		bB.AngVel += bB.invI * impulse
	}

	if j.EnableLimit && j.limitState != 0 {
		cdot := bB.AngVel - bA.AngVel
		invI := bA.invI + bB.invI
		var impulse float64
		if invI > 0 {
			impulse = -cdot / invI
		}
		j.limitImpulse += impulse
		bA.AngVel -= bA.invI * impulse
		bB.AngVel += bB.invI * impulse
	}

	vpA := bA.LinVel.Add(vec2.CrossSV(bA.AngVel, j.rA))
	vpB := bB.LinVel.Add(vec2.CrossSV(bB.AngVel, j.rB))
	cdot := vpB.Sub(vpA)
	impulse := j.k.solve(cdot.Neg())
	j.impulse = j.impulse.Add(impulse)

	bA.LinVel = bA.LinVel.Sub(impulse.Scale(bA.invMass))
	bA.AngVel -= bA.invI * j.rA.Cross(impulse)
	bB.LinVel = bB.LinVel.Add(impulse.Scale(bB.invMass))
	bB.AngVel += bB.invI * j.rB.Cross(impulse)
}

func (j *RevoluteJoint) solvePositionConstraint() float64 {
	bA, bB := j.bodyA, j.bodyB
	rA := bA.Pose.Q.Apply(j.localAnchorA.Sub(bA.mass.Center))
	rB := bB.Pose.Q.Apply(j.localAnchorB.Sub(bB.mass.Center))

	c := bB.WorldCenter().Add(rB).Sub(bA.WorldCenter().Add(rA))
	errLen := c.Len()

	k := k2x2FromPoints(bA, bB, rA, rB)
	impulse := k.solve(c.Neg())

	newCenterA := bA.WorldCenter().Sub(impulse.Scale(bA.invMass))
	newAngleA := bA.Pose.Q.Angle() - bA.invI*rA.Cross(impulse)
	bA.Pose.Q = vec2.NewRot(newAngleA)
	bA.Pose.P = newCenterA.Sub(bA.Pose.Q.Apply(bA.mass.Center))

	newCenterB := bB.WorldCenter().Add(impulse.Scale(bB.invMass))
	newAngleB := bB.Pose.Q.Angle() + bB.invI*rB.Cross(impulse)
	bB.Pose.Q = vec2.NewRot(newAngleB)
	bB.Pose.P = newCenterB.Sub(bB.Pose.Q.Apply(bB.mass.Center))

	return errLen
}
