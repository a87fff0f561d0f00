package physics

import "github.com/gazed/phys2d/math/vec2"

// ContactConstraint is the persistent record of one candidate fixture
// pair in collision (spec §3): it survives across steps so the contact
// manager can warm-start impulses and fire begin/persist/end events.
// Grounded on gazed-vu/physics/contact.go's contactPair, generalized from
// the teacher's fixed 4-point 3D manifold to a variable 1-2 point 2D one.
type ContactConstraint struct {
	BodyA, BodyB       *Body
	FixtureA, FixtureB *Fixture

	Normal vec2.V
	Points []ContactPoint

	Friction    float64
	Restitution float64
	Sensor      bool

	// id is the stable, order-independent pair key (spec §3: "a function
	// of the four ids, ordered so the pair key is symmetric").
	id pairKey

	touching bool
	onIsland bool

	edgeA, edgeB ContactEdge
}

// ContactPoint is one point of a ContactConstraint: local-frame positions
// on each body, penetration depth, the feature id used for warm-start
// matching, and the accumulated impulses carried from the previous step.
type ContactPoint struct {
	LocalA, LocalB vec2.V
	Penetration    float64
	ID             featureID

	NormalImpulse  float64
	TangentImpulse float64
	Enabled        bool

	// velocity-solver scratch, recomputed every step by prepareContacts
	// and never persisted across steps.
	rA, rB              vec2.V
	normalMass          float64
	tangentMass         float64
	velocityBias        float64
}

// pairKey uniquely identifies a fixture pair regardless of argument
// order, matching spec §3's "stable id...ordered so the pair key is
// symmetric".
type pairKey struct {
	bodyA, bodyB       int64
	fixtureA, fixtureB int
}

func makePairKey(bodyA *Body, fixtureIdxA int, bodyB *Body, fixtureIdxB int) pairKey {
	if bodyA.id < bodyB.id || (bodyA.id == bodyB.id && fixtureIdxA < fixtureIdxB) {
		return pairKey{bodyA.id, bodyB.id, fixtureIdxA, fixtureIdxB}
	}
	return pairKey{bodyB.id, bodyA.id, fixtureIdxB, fixtureIdxA}
}

// update re-runs narrow phase on the constraint's fixture pair, matches
// new manifold points to the previous step's by feature id first and
// proximity second (warm starting, spec §4.2/§4.4), and returns whether
// the pair is touching this step (used by the contact manager to fire
// begin/persist/end events). filter's AllowManifold, if filter is
// non-nil, may veto a geometrically-overlapping manifold from ever
// producing contact points (spec §6's manifold-stage veto).
func (c *ContactConstraint) update(warmStartDistSqr float64, filter CollisionFilterListener) (wasTouching, nowTouching bool) {
	wasTouching = c.touching

	xfA, xfB := c.BodyA.Pose, c.BodyB.Pose
	m := collide(c.FixtureA, xfA, c.FixtureB, xfB)
	if len(m.Points) > 0 && filter != nil && !filter.AllowManifold(c.FixtureA, c.FixtureB, m) {
		m = Manifold{}
	}
	nowTouching = len(m.Points) > 0
	c.touching = nowTouching
	if !nowTouching {
		c.Normal = vec2.V{}
		c.Points = nil
		return wasTouching, nowTouching
	}
	c.Normal = m.Normal

	old := c.Points
	next := make([]ContactPoint, len(m.Points))
	for i, mp := range m.Points {
		next[i] = ContactPoint{LocalA: mp.LocalA, LocalB: mp.LocalB, Penetration: mp.Penetration, ID: mp.ID, Enabled: true}
		if match, ok := matchPoint(old, mp, warmStartDistSqr); ok {
			next[i].NormalImpulse = match.NormalImpulse
			next[i].TangentImpulse = match.TangentImpulse
		}
	}
	c.Points = next
	return wasTouching, nowTouching
}

// matchPoint finds the previous-step point to warm-start mp from: first
// by exact feature id match, then (only for points using the `distance`
// sentinel id) by nearest local-A position within warmStartDistSqr (spec
// §3/§4.4).
func matchPoint(old []ContactPoint, mp ManifoldPoint, warmStartDistSqr float64) (ContactPoint, bool) {
	if mp.ID.kind != featureDistance {
		for _, p := range old {
			if p.ID == mp.ID {
				return p, true
			}
		}
		return ContactPoint{}, false
	}
	best := -1
	bestDist := warmStartDistSqr
	for i, p := range old {
		if p.ID.kind != featureDistance {
			continue
		}
		if d := p.LocalA.DistSqr(mp.LocalA); d <= bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return ContactPoint{}, false
	}
	return old[best], true
}
