package physics

import "github.com/gazed/phys2d/math/vec2"

// PrismaticJoint constrains two bodies to slide along a shared axis with
// no relative rotation, optionally with a motor and/or translation
// limits along the axis.
type PrismaticJoint struct {
	jointBase

	LocalAxisA vec2.V

	EnableMotor    bool
	MotorSpeed     float64
	MaxMotorForce  float64

	EnableLimit bool
	LowerTranslation float64
	UpperTranslation float64

	referenceAngle float64

	axis, perp vec2.V
	s1, s2     float64
	a1, a2     float64

	k11, k12, k22 float64
	impulse       vec2.V // x: perp-axis impulse, y: angular impulse

	motorMass    float64
	motorImpulse float64

	limitState   int
	limitImpulse float64
}

// NewPrismaticJoint creates a slider joint between bodyA and bodyB along
// axis (in bodyA's local space).
func NewPrismaticJoint(bodyA, bodyB *Body, localAnchorA, localAnchorB, axis vec2.V) *PrismaticJoint {
	return &PrismaticJoint{
		jointBase:      jointBase{bodyA: bodyA, bodyB: bodyB, localAnchorA: localAnchorA, localAnchorB: localAnchorB},
		LocalAxisA:     axis.Unit(),
		referenceAngle: bodyB.Pose.Q.Angle() - bodyA.Pose.Q.Angle(),
	}
}

func (j *PrismaticJoint) translation() float64 {
	bA, bB := j.bodyA, j.bodyB
	d := bB.WorldCenter().Add(bB.Pose.Q.Apply(j.localAnchorB.Sub(bB.mass.Center))).
		Sub(bA.WorldCenter().Add(bA.Pose.Q.Apply(j.localAnchorA.Sub(bA.mass.Center))))
	axis := bA.Pose.Q.Apply(j.LocalAxisA)
	return d.Dot(axis)
}

func (j *PrismaticJoint) initVelocityConstraint(dt float64) {
	bA, bB := j.bodyA, j.bodyB
	rA := bA.Pose.Q.Apply(j.localAnchorA.Sub(bA.mass.Center))
	rB := bB.Pose.Q.Apply(j.localAnchorB.Sub(bB.mass.Center))
	d := bB.WorldCenter().Add(rB).Sub(bA.WorldCenter().Add(rA))

	j.axis = bA.Pose.Q.Apply(j.LocalAxisA)
	j.a1 = d.Add(rA).Cross(j.axis)
	j.a2 = rB.Cross(j.axis)

	j.perp = j.axis.PerpCCW()
	j.s1 = d.Add(rA).Cross(j.perp)
	j.s2 = rB.Cross(j.perp)

	mA, mB := bA.invMass, bB.invMass
	iA, iB := bA.invI, bB.invI

	k11 := mA + mB + iA*j.s1*j.s1 + iB*j.s2*j.s2
	k12 := iA*j.s1 + iB*j.s2
	k22 := iA + iB
	if k22 == 0 {
		k22 = 1
	}
	j.k11, j.k12, j.k22 = k11, k12, k22

	motorInvMass := mA + mB + iA*j.a1*j.a1 + iB*j.a2*j.a2
	if motorInvMass > 0 {
		j.motorMass = 1.0 / motorInvMass
	}
	if !j.EnableMotor {
		j.motorImpulse = 0
	}

	if j.EnableLimit {
		t := j.translation()
		if j.UpperTranslation-j.LowerTranslation < 2*vec2.Epsilon {
			j.limitState = 2
		} else if t <= j.LowerTranslation {
			if j.limitState != -1 {
				j.limitImpulse = 0
			}
			j.limitState = -1
		} else if t >= j.UpperTranslation {
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

	axialImpulse := j.motorImpulse + j.limitImpulse
	p := j.perp.Scale(j.impulse.X).Add(j.axis.Scale(axialImpulse))
	lA := j.impulse.X*j.s1 + j.impulse.Y + axialImpulse*j.a1
	lB := j.impulse.X*j.s2 + j.impulse.Y + axialImpulse*j.a2

	bA.LinVel = bA.LinVel.Sub(p.Scale(mA))
	bA.AngVel -= iA * lA
	bB.LinVel = bB.LinVel.Add(p.Scale(mB))
	bB.AngVel += iB * lB
}

func (j *PrismaticJoint) solveVelocityConstraint(dt float64) {
	bA, bB := j.bodyA, j.bodyB
	mA, mB := bA.invMass, bB.invMass
	iA, iB := bA.invI, bB.invI

	if j.EnableMotor && j.limitState != 2 {
		cdot := j.axis.Dot(bB.LinVel.Sub(bA.LinVel)) + j.a2*bB.AngVel - j.a1*bA.AngVel - j.MotorSpeed
		raw := -j.motorMass * cdot
		old := j.motorImpulse
		maxImpulse := j.MaxMotorForce * dt
		j.motorImpulse = vec2.Clamp(old+raw, -maxImpulse, maxImpulse)
		delta := j.motorImpulse - old
		p := j.axis.Scale(delta)
		lA := delta * j.a1
		lB := delta * j.a2
		bA.LinVel = bA.LinVel.Sub(p.Scale(mA))
		bA.AngVel -= iA * lA
		bB.LinVel = bB.LinVel.Add(p.Scale(mB))
		bB.AngVel += iB * lB
	}

	if j.EnableLimit && j.limitState != 0 {
		cdot := j.axis.Dot(bB.LinVel.Sub(bA.LinVel)) + j.a2*bB.AngVel - j.a1*bA.AngVel
		invMass := mA + mB + iA*j.a1*j.a1 + iB*j.a2*j.a2
		var impulse float64
		if invMass > 0 {
			impulse = -cdot / invMass
		}
		j.limitImpulse += impulse
		p := j.axis.Scale(impulse)
		lA := impulse * j.a1
		lB := impulse * j.a2
		bA.LinVel = bA.LinVel.Sub(p.Scale(mA))
		bA.AngVel -= iA * lA
		bB.LinVel = bB.LinVel.Add(p.Scale(mB))
		bB.AngVel += iB * lB
	}

	cdot1 := j.perp.Dot(bB.LinVel.Sub(bA.LinVel)) + j.s2*bB.AngVel - j.s1*bA.AngVel
	cdot2 := bB.AngVel - bA.AngVel
	m := mat22{a11: j.k11, a12: j.k12, a21: j.k12, a22: j.k22}
	impulse := m.solve(vec2.V{X: -cdot1, Y: -cdot2})
	j.impulse.X += impulse.X
	j.impulse.Y += impulse.Y

	p := j.perp.Scale(impulse.X)
	lA := impulse.X*j.s1 + impulse.Y
	lB := impulse.X*j.s2 + impulse.Y
	bA.LinVel = bA.LinVel.Sub(p.Scale(mA))
	bA.AngVel -= iA * lA
	bB.LinVel = bB.LinVel.Add(p.Scale(mB))
	bB.AngVel += iB * lB
}

func (j *PrismaticJoint) solvePositionConstraint() float64 {
	bA, bB := j.bodyA, j.bodyB
	rA := bA.Pose.Q.Apply(j.localAnchorA.Sub(bA.mass.Center))
	rB := bB.Pose.Q.Apply(j.localAnchorB.Sub(bB.mass.Center))
	d := bB.WorldCenter().Add(rB).Sub(bA.WorldCenter().Add(rA))

	axis := bA.Pose.Q.Apply(j.LocalAxisA)
	perp := axis.PerpCCW()
	s1 := d.Add(rA).Cross(perp)
	s2 := rB.Cross(perp)

	c1 := perp.Dot(d)
	c2 := bB.Pose.Q.Angle() - bA.Pose.Q.Angle() - j.referenceAngle

	mA, mB := bA.invMass, bB.invMass
	iA, iB := bA.invI, bB.invI
	k11 := mA + mB + iA*s1*s1 + iB*s2*s2
	k12 := iA*s1 + iB*s2
	k22 := iA + iB
	if k22 == 0 {
		k22 = 1
	}
	m := mat22{a11: k11, a12: k12, a21: k12, a22: k22}
	impulse := m.solve(vec2.V{X: -c1, Y: -c2})

	p := perp.Scale(impulse.X)
	lA := impulse.X*s1 + impulse.Y
	lB := impulse.X*s2 + impulse.Y

	newCenterA := bA.WorldCenter().Sub(p.Scale(mA))
	newAngleA := bA.Pose.Q.Angle() - iA*lA
	bA.Pose.Q = vec2.NewRot(newAngleA)
	bA.Pose.P = newCenterA.Sub(bA.Pose.Q.Apply(bA.mass.Center))

	newCenterB := bB.WorldCenter().Add(p.Scale(mB))
	newAngleB := bB.Pose.Q.Angle() + iB*lB
	bB.Pose.Q = vec2.NewRot(newAngleB)
	bB.Pose.P = newCenterB.Sub(bB.Pose.Q.Apply(bB.mass.Center))

	return abs64(c1) + abs64(c2)
}
