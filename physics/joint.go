package physics

import "github.com/gazed/phys2d/math/vec2"

// Joint is an equality constraint between two bodies, solved alongside
// contacts inside an island (spec §1: "Joints...impose additional
// equality constraints between body pairs"). Implementations carry their
// own Jacobian/bias derivation; the solver only needs this interface to
// drive a generic velocity/position iteration loop.
type Joint interface {
	BodyA() *Body
	BodyB() *Body

	// initVelocityConstraint precomputes effective masses and warm-starts
	// by applying the joint's accumulated impulse from the previous step.
	initVelocityConstraint(dt float64)
	// solveVelocityConstraint runs one sequential-impulse iteration.
	solveVelocityConstraint(dt float64)
	// solvePositionConstraint runs one Baumgarte-style position
	// correction iteration and returns the remaining position error.
	solvePositionConstraint() float64

	onIsland() bool
	setOnIsland(bool)
}

// jointBase holds the fields every concrete joint shares: the two bodies,
// local anchor points, and the island-membership flag buildIslands needs.
type jointBase struct {
	bodyA, bodyB   *Body
	localAnchorA   vec2.V
	localAnchorB   vec2.V
	island         bool
}

func (j *jointBase) BodyA() *Body     { return j.bodyA }
func (j *jointBase) BodyB() *Body     { return j.bodyB }
func (j *jointBase) onIsland() bool   { return j.island }
func (j *jointBase) setOnIsland(v bool) { j.island = v }

// mat22 is a 2x2 matrix used by joints whose constraint has two degrees
// of freedom (distance-joint-free prismatic/revolute point constraints).
type mat22 struct {
	a11, a12, a21, a22 float64
}

func (m mat22) solve(b vec2.V) vec2.V {
	det := m.a11*m.a22 - m.a12*m.a21
	if det != 0 {
		det = 1.0 / det
	}
	return vec2.V{
		X: det * (m.a22*b.X - m.a12*b.Y),
		Y: det * (m.a11*b.Y - m.a21*b.X),
	}
}

func (m mat22) invert() mat22 {
	det := m.a11*m.a22 - m.a12*m.a21
	if det != 0 {
		det = 1.0 / det
	}
	return mat22{a11: det * m.a22, a12: -det * m.a12, a21: -det * m.a21, a22: det * m.a11}
}

// k2x2FromPoints builds the effective 2x2 mass matrix for a point-to-point
// constraint between rA (on A, relative to its center) and rB (on B),
// the standard K = [invMassA+invMassB, 0; 0, invMassA+invMassB] +
// invI terms every point-constraint joint (distance's perpendicular
// component, revolute, weld) derives from.
func k2x2FromPoints(bodyA, bodyB *Body, rA, rB vec2.V) mat22 {
	mA, mB := bodyA.invMass, bodyB.invMass
	iA, iB := bodyA.invI, bodyB.invI
	return mat22{
		a11: mA + mB + iA*rA.Y*rA.Y + iB*rB.Y*rB.Y,
		a12: -iA*rA.X*rA.Y - iB*rB.X*rB.Y,
		a21: -iA*rA.X*rA.Y - iB*rB.X*rB.Y,
		a22: mA + mB + iA*rA.X*rA.X + iB*rB.X*rB.X,
	}
}
