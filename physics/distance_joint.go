package physics

import "github.com/gazed/phys2d/math/vec2"

// DistanceJoint holds two anchor points at a fixed distance apart,
// Box2D/dyn4j's simplest joint: a single scalar constraint along the line
// between anchors.
type DistanceJoint struct {
	jointBase

	Length     float64
	Frequency  float64 // 0 disables the soft constraint (rigid rod)
	DampingRatio float64

	rA, rB   vec2.V
	u        vec2.V
	mass     float64
	impulse  float64

	bias  float64
	gamma float64
}

// NewDistanceJoint creates a rigid (or, with frequency>0, soft) distance
// constraint between bodyA's localAnchorA and bodyB's localAnchorB, at
// their current separation.
func NewDistanceJoint(bodyA, bodyB *Body, localAnchorA, localAnchorB vec2.V) *DistanceJoint {
	worldA := bodyA.Pose.Apply(localAnchorA)
	worldB := bodyB.Pose.Apply(localAnchorB)
	return &DistanceJoint{
		jointBase: jointBase{bodyA: bodyA, bodyB: bodyB, localAnchorA: localAnchorA, localAnchorB: localAnchorB},
		Length:    worldB.Sub(worldA).Len(),
	}
}

func (j *DistanceJoint) initVelocityConstraint(dt float64) {
	bA, bB := j.bodyA, j.bodyB
	j.rA = bA.Pose.Q.Apply(j.localAnchorA.Sub(bA.mass.Center))
	j.rB = bB.Pose.Q.Apply(j.localAnchorB.Sub(bB.mass.Center))

	d := bB.WorldCenter().Add(j.rB).Sub(bA.WorldCenter().Add(j.rA))
	length := d.Len()
	if length > vec2.Epsilon {
		j.u = d.Scale(1 / length)
	} else {
		j.u = vec2.V{X: 1, Y: 0}
	}

	crA := j.rA.Cross(j.u)
	crB := j.rB.Cross(j.u)
	invMass := bA.invMass + bA.invI*crA*crA + bB.invMass + bB.invI*crB*crB
	if invMass > 0 {
		j.mass = 1.0 / invMass
	}

	if j.Frequency > 0 {
		// Soft constraint: blend in a spring term (bias + gamma) rather
		// than fully correcting position error in one velocity solve.
		c := length - j.Length
		omega := vec2.PIx2 * j.Frequency
		d2 := 2 * j.mass * j.DampingRatio * omega
		k := j.mass * omega * omega
		j.gamma = dt * (d2 + dt*k)
		if j.gamma != 0 {
			j.gamma = 1.0 / j.gamma
		}
		j.bias = c * dt * k * j.gamma
		invMass += j.gamma
		if invMass > 0 {
			j.mass = 1.0 / invMass
		}
	} else {
		j.gamma = 0
		j.bias = 0
	}

	bA.LinVel = bA.LinVel.Sub(j.u.Scale(bA.invMass * j.impulse))
	bA.AngVel -= bA.invI * crA * j.impulse
	bB.LinVel = bB.LinVel.Add(j.u.Scale(bB.invMass * j.impulse))
	bB.AngVel += bB.invI * crB * j.impulse
}

func (j *DistanceJoint) solveVelocityConstraint(dt float64) {
	bA, bB := j.bodyA, j.bodyB
	vpA := bA.LinVel.Add(vec2.CrossSV(bA.AngVel, j.rA))
	vpB := bB.LinVel.Add(vec2.CrossSV(bB.AngVel, j.rB))
	cdot := j.u.Dot(vpB.Sub(vpA))

	impulse := -j.mass * (cdot + j.bias + j.gamma*j.impulse)
	j.impulse += impulse

	p := j.u.Scale(impulse)
	bA.LinVel = bA.LinVel.Sub(p.Scale(bA.invMass))
	bA.AngVel -= bA.invI * j.rA.Cross(p)
	bB.LinVel = bB.LinVel.Add(p.Scale(bB.invMass))
	bB.AngVel += bB.invI * j.rB.Cross(p)
}

func (j *DistanceJoint) solvePositionConstraint() float64 {
	if j.Frequency > 0 {
		// Soft constraints correct position entirely through the
		// velocity bias term; skip the position pass.
		return 0
	}
	bA, bB := j.bodyA, j.bodyB
	rA := bA.Pose.Q.Apply(j.localAnchorA.Sub(bA.mass.Center))
	rB := bB.Pose.Q.Apply(j.localAnchorB.Sub(bB.mass.Center))
	d := bB.WorldCenter().Add(rB).Sub(bA.WorldCenter().Add(rA))
	length := d.Len()
	u := vec2.V{X: 1, Y: 0}
	if length > vec2.Epsilon {
		u = d.Scale(1 / length)
	}
	c := vec2.Clamp(length-j.Length, -0.2, 0.2)

	crA := rA.Cross(u)
	crB := rB.Cross(u)
	invMass := bA.invMass + bA.invI*crA*crA + bB.invMass + bB.invI*crB*crB
	if invMass <= 0 {
		return 0
	}
	impulse := -c / invMass
	p := u.Scale(impulse)

	// Apply as a direct position nudge: shift center of mass along
	// p*invMass and rotate by the induced angular correction, the
	// pseudo-impulse form every Baumgarte position solver in this family
	// uses.
	newCenterA := bA.WorldCenter().Sub(p.Scale(bA.invMass))
	newAngleA := bA.Pose.Q.Angle() - bA.invI*crA*impulse
	bA.Pose.Q = vec2.NewRot(newAngleA)
	bA.Pose.P = newCenterA.Sub(bA.Pose.Q.Apply(bA.mass.Center))

	newCenterB := bB.WorldCenter().Add(p.Scale(bB.invMass))
	newAngleB := bB.Pose.Q.Angle() + bB.invI*crB*impulse
	bB.Pose.Q = vec2.NewRot(newAngleB)
	bB.Pose.P = newCenterB.Sub(bB.Pose.Q.Apply(bB.mass.Center))

	return abs64(c)
}
