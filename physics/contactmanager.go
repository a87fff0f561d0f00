package physics

// ContactManager owns the world's persistent contact constraints: it
// turns broad-phase candidate pairs into ContactConstraints, keeps them
// alive across steps until a body is removed or goes inactive or the
// filter rejects the pair (a pair whose AABBs drift apart keeps its
// constraint, no longer touching), and
// fires begin/persist/end/sensed events on Listener as narrow-phase
// results change (spec §3 Lifecycle, §4.2-§4.4).
type ContactManager struct {
	contacts map[pairKey]*ContactConstraint
	listener Listener
	// filter is listener asserted to CollisionFilterListener, nil if the
	// configured Listener doesn't implement it. Consulted at broad-phase,
	// narrow-phase and manifold stages (spec §6).
	filter CollisionFilterListener
}

func newContactManager(listener Listener) *ContactManager {
	filter, _ := listener.(CollisionFilterListener)
	return &ContactManager{contacts: make(map[pairKey]*ContactConstraint), listener: listener, filter: filter}
}

// addPair ensures a ContactConstraint exists for the given broad-phase
// candidate pair (creating one, with its combined material properties
// and adjacency edges wired, if this is the pair's first step as a
// candidate). Fixture index lookups identify the pair for pairKey/sensor
// purposes.
func (cm *ContactManager) addPair(bodyA *Body, fixIdxA int, bodyB *Body, fixIdxB int) {
	if bodyA == bodyB {
		return
	}
	fixtureA, fixtureB := bodyA.Fixtures[fixIdxA], bodyB.Fixtures[fixIdxB]
	if !shouldCollide(fixtureA, fixtureB) {
		return
	}
	if cm.filter != nil && !cm.filter.AllowBroadPhasePair(fixtureA, fixtureB) {
		return
	}
	key := makePairKey(bodyA, fixIdxA, bodyB, fixIdxB)
	if _, exists := cm.contacts[key]; exists {
		return
	}
	// Two static/kinematic bodies never need a contact constraint
	// between them; neither can move so there's nothing to resolve.
	if bodyA.invMass == 0 && bodyA.invI == 0 && bodyB.invMass == 0 && bodyB.invI == 0 {
		return
	}

	c := &ContactConstraint{
		BodyA: bodyA, BodyB: bodyB,
		FixtureA: fixtureA, FixtureB: fixtureB,
		Friction:    combineFriction(fixtureA, fixtureB),
		Restitution: combineRestitution(fixtureA, fixtureB),
		Sensor:      fixtureA.Sensor || fixtureB.Sensor,
		id:          key,
	}
	c.edgeA = ContactEdge{Other: bodyB, Contact: c}
	c.edgeB = ContactEdge{Other: bodyA, Contact: c}
	cm.linkEdge(bodyA, &c.edgeA)
	cm.linkEdge(bodyB, &c.edgeB)
	cm.contacts[key] = c
}

func (cm *ContactManager) linkEdge(b *Body, e *ContactEdge) {
	e.next = b.contactList
	b.contactList = e
}

func (cm *ContactManager) unlinkEdge(b *Body, e *ContactEdge) {
	if b.contactList == e {
		b.contactList = e.next
		return
	}
	for cur := b.contactList; cur != nil; cur = cur.next {
		if cur.next == e {
			cur.next = e.next
			return
		}
	}
}

// removeContact destroys c and unlinks its adjacency edges, firing an end
// event if it was touching.
func (cm *ContactManager) removeContact(c *ContactConstraint) {
	if c.touching && cm.listener != nil {
		if c.Sensor {
			cm.listener.Sensed(c, false)
		} else {
			cm.listener.End(c)
		}
	}
	cm.unlinkEdge(c.BodyA, &c.edgeA)
	cm.unlinkEdge(c.BodyB, &c.edgeB)
	delete(cm.contacts, c.id)
}

// prunePair removes the constraint for a pair that broad phase no longer
// reports as overlapping (its fattened AABBs separated).
func (cm *ContactManager) prunePair(bodyA *Body, fixIdxA int, bodyB *Body, fixIdxB int) {
	key := makePairKey(bodyA, fixIdxA, bodyB, fixIdxB)
	if c, ok := cm.contacts[key]; ok {
		cm.removeContact(c)
	}
}

// updateContacts re-runs narrow phase on every live constraint unless
// both of its bodies are asleep (such a pair keeps last step's manifold
// untouched) and fires begin/persist/end/sensed events for any touching
// transition. Constraints whose fixtures no longer pass the filter, or
// either of whose bodies has gone inactive, are removed.
func (cm *ContactManager) updateContacts(warmStartDistSqr float64) {
	for _, c := range cm.contacts {
		if !c.BodyA.Active() || !c.BodyB.Active() {
			cm.removeContact(c)
			continue
		}
		if c.BodyA.Asleep() && c.BodyB.Asleep() {
			continue
		}
		if !shouldCollide(c.FixtureA, c.FixtureB) {
			cm.removeContact(c)
			continue
		}
		if cm.filter != nil && !cm.filter.AllowNarrowPhase(c.FixtureA, c.FixtureB) {
			cm.removeContact(c)
			continue
		}
		wasTouching, nowTouching := c.update(warmStartDistSqr, cm.filter)
		if cm.listener == nil {
			continue
		}
		if c.Sensor {
			if nowTouching != wasTouching {
				cm.listener.Sensed(c, nowTouching)
			}
			continue
		}
		switch {
		case nowTouching && !wasTouching:
			cm.listener.Begin(c)
		case nowTouching && wasTouching:
			cm.listener.Persist(c)
		case !nowTouching && wasTouching:
			cm.listener.End(c)
		}
	}
}

// preSolveNotify fires Listener.PreSolve for every point of every
// touching non-sensor constraint, disabling any point a listener vetoes
// (spec §4.4/§6).
func (cm *ContactManager) preSolveNotify() {
	if cm.listener == nil {
		return
	}
	for _, c := range cm.contacts {
		if !c.touching || c.Sensor {
			continue
		}
		for i := range c.Points {
			if !cm.listener.PreSolve(c, &c.Points[i]) {
				c.Points[i].Enabled = false
			}
		}
	}
}

// postSolveNotify fires Listener.PostSolve for every point of every
// touching non-sensor constraint, after the solver has committed its
// final accumulated impulses for the step.
func (cm *ContactManager) postSolveNotify() {
	if cm.listener == nil {
		return
	}
	for _, c := range cm.contacts {
		if !c.touching || c.Sensor {
			continue
		}
		for _, p := range c.Points {
			cm.listener.PostSolve(c, p)
		}
	}
}

// touchingContacts returns every non-sensor constraint currently
// touching, for island assembly. It does not filter by the bodies' sleep
// or active state.
func (cm *ContactManager) touchingContacts() []*ContactConstraint {
	var out []*ContactConstraint
	for _, c := range cm.contacts {
		if c.touching && !c.Sensor {
			out = append(out, c)
		}
	}
	return out
}
