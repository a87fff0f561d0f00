package vec2

import "math"

// Rot is a 2D rotation stored as a sine/cosine pair rather than a bare
// angle. This mirrors dyn4j/Box2D's b2Rot convention and avoids repeated
// math.Sin/math.Cos calls in the solver's hot loops. It plays the role
// gazed/vu's math/lin Quaternion plays for 3D rotations.
type Rot struct {
	S float64 // sin(angle)
	C float64 // cos(angle)
}

// Identity is the zero rotation.
var Identity = Rot{S: 0, C: 1}

// NewRot creates a rotation from an angle in radians.
func NewRot(angle float64) Rot { return Rot{S: math.Sin(angle), C: math.Cos(angle)} }

// Angle returns the rotation's angle in radians.
func (r Rot) Angle() float64 { return math.Atan2(r.S, r.C) }

// Set updates r to represent the given angle in radians. The updated
// rotation is returned.
func (r *Rot) Set(angle float64) *Rot {
	r.S, r.C = math.Sin(angle), math.Cos(angle)
	return r
}

// Mul returns the composed rotation r * a (rotate by a, then by r).
func (r Rot) Mul(a Rot) Rot {
	return Rot{S: r.S*a.C + r.C*a.S, C: r.C*a.C - r.S*a.S}
}

// MulT returns the relative rotation r^-1 * a.
func (r Rot) MulT(a Rot) Rot {
	return Rot{S: r.C*a.S - r.S*a.C, C: r.C*a.C + r.S*a.S}
}

// Apply rotates vector v by r.
func (r Rot) Apply(v V) V {
	return V{X: r.C*v.X - r.S*v.Y, Y: r.S*v.X + r.C*v.Y}
}

// ApplyInverse rotates vector v by the inverse of r.
func (r Rot) ApplyInverse(v V) V {
	return V{X: r.C*v.X + r.S*v.Y, Y: -r.S*v.X + r.C*v.Y}
}

// XAxis returns the rotated local X axis.
func (r Rot) XAxis() V { return V{r.C, r.S} }

// YAxis returns the rotated local Y axis.
func (r Rot) YAxis() V { return V{-r.S, r.C} }

// Lerp returns a normalized linear interpolation of r toward a by ratio,
// used by conservative advancement (§4.3) in place of true slerp — it's
// cheap and, over the small per-substep angle deltas CCD actually uses,
// indistinguishable from slerp.
func (r Rot) Lerp(a Rot, ratio float64) Rot {
	s := Lerp(r.S, a.S, ratio)
	c := Lerp(r.C, a.C, ratio)
	l := math.Hypot(s, c)
	if l < Epsilon {
		return Identity
	}
	return Rot{S: s / l, C: c / l}
}

// Transform is a rigid 2D transform: a rotation followed by a translation.
type Transform struct {
	P V   // translation
	Q Rot // rotation
}

// NewTransform creates a transform from a position and an angle in radians.
func NewTransform(p V, angle float64) Transform {
	return Transform{P: p, Q: NewRot(angle)}
}

// Identity2 is the identity transform (no rotation, no translation).
var Identity2 = Transform{P: V{}, Q: Identity}

// Apply maps a local-space point/vector v into world space.
func (t Transform) Apply(v V) V { return t.Q.Apply(v).Add(t.P) }

// ApplyVec rotates (but does not translate) a local-space direction v.
func (t Transform) ApplyVec(v V) V { return t.Q.Apply(v) }

// ApplyInverse maps a world-space point v into t's local space.
func (t Transform) ApplyInverse(v V) V { return t.Q.ApplyInverse(v.Sub(t.P)) }

// ApplyInverseVec rotates (but does not translate) a world-space direction
// v into t's local space.
func (t Transform) ApplyInverseVec(v V) V { return t.Q.ApplyInverse(v) }

// Mul composes two transforms: apply a first, then t.
func (t Transform) Mul(a Transform) Transform {
	return Transform{P: t.Apply(a.P), Q: t.Q.Mul(a.Q)}
}

// Lerp interpolates between t and a by ratio, used to build CCD's swept
// intermediate poses (§4.3): position lerps, rotation uses Rot.Lerp.
func (t Transform) Lerp(a Transform, ratio float64) Transform {
	return Transform{P: t.P.Lerp(a.P, ratio), Q: t.Q.Lerp(a.Q, ratio)}
}
