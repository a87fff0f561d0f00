// Package vec2 provides the 2D linear algebra needed by the physics engine:
// vectors, rotations, and rigid transforms. The API borrows gazed/vu's
// math/lin naming (Eq/Aeq, Epsilon) reduced from 3D to 2D; V's methods take
// value receivers and return new values rather than mutating in place.
package vec2

import "math"

// Various linear math constants.
const (
	PI   float64 = math.Pi
	PIx2 float64 = PI * 2

	// Epsilon is used to distinguish when a float is close enough to a number.
	Epsilon float64 = 0.000001
)

// Aeq (~=) almost-equals returns true if the difference between a and b is
// so small that it doesn't matter.
func Aeq(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// AeqZ (~=) almost-equals returns true if x is close enough to zero.
func AeqZ(x float64) bool { return math.Abs(x) < Epsilon }

// Lerp returns the linear interpolation of a to b by the given ratio.
func Lerp(a, b, ratio float64) float64 { return (b-a)*ratio + a }

// Clamp restricts x to the range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// V is a 2 element vector, also used as a point.
type V struct {
	X float64
	Y float64
}

// Vec2 is shorthand for creating a vector from two scalars.
func Vec2(x, y float64) V { return V{x, y} }

// Eq (==) returns true if v and a have identical elements.
func (v V) Eq(a V) bool { return v.X == a.X && v.Y == a.Y }

// Aeq (~=) returns true if v and a are within Epsilon of each other.
func (v V) Aeq(a V) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) }

// AeqZ (~=0) returns true if the vector's square length is negligible.
func (v V) AeqZ() bool { return v.Dot(v) < Epsilon }

// Add returns v + a.
func (v V) Add(a V) V { return V{v.X + a.X, v.Y + a.Y} }

// Sub returns v - a.
func (v V) Sub(a V) V { return V{v.X - a.X, v.Y - a.Y} }

// Neg returns -v.
func (v V) Neg() V { return V{-v.X, -v.Y} }

// Scale returns v * s.
func (v V) Scale(s float64) V { return V{v.X * s, v.Y * s} }

// Dot returns the dot product v . a.
func (v V) Dot(a V) float64 { return v.X*a.X + v.Y*a.Y }

// Cross returns the 2D scalar cross product v x a (the Z component of the
// 3D cross product of (v.X, v.Y, 0) and (a.X, a.Y, 0)).
func (v V) Cross(a V) float64 { return v.X*a.Y - v.Y*a.X }

// CrossVS returns the vector v x s, a 2D cross product of a vector by a
// scalar, which rotates v by -90 degrees and scales it by s.
func CrossVS(v V, s float64) V { return V{s * v.Y, -s * v.X} }

// CrossSV returns the vector s x v, which rotates v by 90 degrees and
// scales it by s.
func CrossSV(s float64, v V) V { return V{-s * v.Y, s * v.X} }

// LenSqr returns the squared length of v.
func (v V) LenSqr() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the length of v.
func (v V) Len() float64 { return math.Sqrt(v.LenSqr()) }

// DistSqr returns the squared distance between v and a.
func (v V) DistSqr(a V) float64 { return v.Sub(a).LenSqr() }

// Dist returns the distance between v and a.
func (v V) Dist(a V) float64 { return v.Sub(a).Len() }

// Unit returns v normalized to unit length. The zero vector maps to itself.
func (v V) Unit() V {
	l := v.Len()
	if l < Epsilon {
		return V{}
	}
	return V{v.X / l, v.Y / l}
}

// PerpCCW returns v rotated 90 degrees counter-clockwise: (-y, x).
func (v V) PerpCCW() V { return V{-v.Y, v.X} }

// PerpCW returns v rotated 90 degrees clockwise: (y, -x).
func (v V) PerpCW() V { return V{v.Y, -v.X} }

// Min returns the component-wise minimum of v and a.
func (v V) Min(a V) V { return V{math.Min(v.X, a.X), math.Min(v.Y, a.Y)} }

// Max returns the component-wise maximum of v and a.
func (v V) Max(a V) V { return V{math.Max(v.X, a.X), math.Max(v.Y, a.Y)} }

// Lerp returns the linear interpolation of v to a by the given ratio.
func (v V) Lerp(a V, ratio float64) V {
	return V{Lerp(v.X, a.X, ratio), Lerp(v.Y, a.Y, ratio)}
}
