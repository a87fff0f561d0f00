package physics

import "github.com/gazed/phys2d/math/vec2"

// Mass holds a shape's (or a body's aggregate) mass properties: total mass,
// rotational inertia about the center of mass, and the center of mass in
// local space. A density of 0 computes zero mass and inertia.
type Mass struct {
	Center vec2.V
	M      float64
	I      float64
}

// Add accumulates b into m in place, combining centers of mass by a
// mass-weighted average and inertias with the parallel axis theorem, and
// returns m for chaining (Design Notes §9's pointer-receiver convention).
func (m *Mass) Add(b Mass) *Mass {
	if b.M == 0 {
		return m
	}
	total := m.M + b.M
	center := m.Center.Scale(m.M).Add(b.Center.Scale(b.M)).Scale(1.0 / total)
	// Shift each contributor's inertia from its own center to the new
	// combined center before summing.
	iA := m.I + m.M*m.Center.DistSqr(center)
	iB := b.I + b.M*b.Center.DistSqr(center)
	m.Center, m.M, m.I = center, total, iA+iB
	return m
}

// zeroMass is the identity element for Add (a massless, zero-inertia
// contribution at the origin), used as the seed when aggregating a body's
// fixtures.
func zeroMass() Mass { return Mass{} }
