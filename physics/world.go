package physics

import (
	"log/slog"

	"github.com/gazed/phys2d/math/vec2"
)

// World owns every body, joint, the broad phase, and the contact
// manager (spec §3: "the world owns everything transitively"). Construct
// with NewWorld; advance it with Step.
type World struct {
	Gravity  vec2.V
	Settings Settings

	bodies []*Body
	joints []Joint

	broad    *BroadPhase
	contacts *ContactManager

	bounds      *AABB
	boundsOut   BoundsListener

	nextBodyID int64
}

// NewWorld creates an empty world with the given gravity and settings. A
// nil listener is valid; it means no collision callbacks are delivered.
func NewWorld(gravity vec2.V, settings Settings, listener Listener) *World {
	return &World{
		Gravity:  gravity,
		Settings: settings,
		broad:    NewBroadPhase(settings.AABBExpansion),
		contacts: newContactManager(listener),
	}
}

// SetBounds installs an optional bounds region; bodies whose fixtures'
// AABBs leave it entirely become inactive (spec §3 World state, §4.6 step
// viii). A nil box clears the bounds check.
func (w *World) SetBounds(box *AABB, listener BoundsListener) {
	w.bounds = box
	w.boundsOut = listener
}

// AddBody adds b to the world, assigning it a stable id and inserting
// each of its fixtures into the broad phase.
func (w *World) AddBody(b *Body) {
	w.nextBodyID++
	b.id = w.nextBodyID
	b.world = w
	w.bodies = append(w.bodies, b)
	for _, f := range b.Fixtures {
		w.broad.InsertFixture(b, f)
	}
}

// AddFixture attaches f to a body already in the world and inserts it
// into the broad phase, recomputing the body's mass.
func (w *World) AddFixture(b *Body, f *Fixture) error {
	if err := b.AddFixture(f); err != nil {
		return err
	}
	w.broad.InsertFixture(b, f)
	return nil
}

// RemoveBody removes b from the world: its fixtures leave the broad
// phase, its contact constraints are destroyed, and it is dropped from
// the body list. Returns ErrNotFound if b is not in this world.
func (w *World) RemoveBody(b *Body) error {
	idx := -1
	for i, other := range w.bodies {
		if other == b {
			idx = i
			break
		}
	}
	if idx < 0 {
		return newError(NotFound, "body not found in world")
	}
	for e := b.contactList; e != nil; {
		next := e.next
		w.contacts.removeContact(e.Contact)
		e = next
	}
	for _, f := range b.Fixtures {
		w.broad.RemoveFixture(b, f)
	}
	w.bodies = append(w.bodies[:idx], w.bodies[idx+1:]...)
	return nil
}

// AddJoint adds a joint to the world and links its adjacency edges onto
// both bodies.
func (w *World) AddJoint(j Joint) {
	w.joints = append(w.joints, j)
	edgeA := &JointEdge{Other: j.BodyB(), Joint: j}
	edgeB := &JointEdge{Other: j.BodyA(), Joint: j}
	a, b := j.BodyA(), j.BodyB()
	edgeA.next = a.jointList
	a.jointList = edgeA
	edgeB.next = b.jointList
	b.jointList = edgeB
}

// RemoveJoint removes j from the world and unlinks its adjacency edges.
// Returns ErrNotFound if j is not in this world.
func (w *World) RemoveJoint(j Joint) error {
	idx := -1
	for i, other := range w.joints {
		if other == j {
			idx = i
			break
		}
	}
	if idx < 0 {
		return newError(NotFound, "joint not found in world")
	}
	unlinkJointEdge(j.BodyA(), j)
	unlinkJointEdge(j.BodyB(), j)
	w.joints = append(w.joints[:idx], w.joints[idx+1:]...)
	return nil
}

func unlinkJointEdge(b *Body, j Joint) {
	var prev *JointEdge
	for e := b.jointList; e != nil; e = e.next {
		if e.Joint == j {
			if prev == nil {
				b.jointList = e.next
			} else {
				prev.next = e.next
			}
			return
		}
		prev = e
	}
}

// Bodies returns the world's current body list. The returned slice is
// owned by the world and must not be mutated by the caller.
func (w *World) Bodies() []*Body { return w.bodies }

// Step advances the world by dt through spec §4.6's stages, in this
// order: broad-phase update, narrow-phase and contact-manager update,
// island assembly and solve (force generators are applied inside each
// island's solve), CCD for bullets, listener publication (folded into the
// contact manager's update/pre/post-solve calls), and bounds deactivation.
func (w *World) Step(dt float64) {
	s := w.Settings

	w.updateBroadPhase()

	for _, pair := range w.broad.UpdatePairs() {
		idxA := fixtureIndex(pair.BodyA, pair.FixtureA)
		idxB := fixtureIndex(pair.BodyB, pair.FixtureB)
		if idxA < 0 || idxB < 0 {
			slog.Error("world: broad-phase pair referenced an unknown fixture index")
			continue
		}
		w.contacts.addPair(pair.BodyA, idxA, pair.BodyB, idxB)
	}

	w.contacts.updateContacts(s.warmStartDistanceSquared())

	w.contacts.preSolveNotify()

	islands := buildIslands(w.bodies, w.contacts.touchingContacts(), w.joints)
	for _, island := range islands {
		solveIsland(island, dt, w.Gravity, s)
	}

	w.contacts.postSolveNotify()

	runCCD(w.bodies, s.ContinuousDetectionMode, s)

	w.applyBounds()
}

func fixtureIndex(b *Body, f *Fixture) int {
	for i, bf := range b.Fixtures {
		if bf == f {
			return i
		}
	}
	return -1
}

// updateBroadPhase refreshes every active, awake body's fixture AABBs in
// the tree (spec §4.6 step ii).
func (w *World) updateBroadPhase() {
	for _, b := range w.bodies {
		if !b.Active() || b.Asleep() {
			continue
		}
		for _, f := range b.Fixtures {
			w.broad.UpdateFixture(b, f)
		}
	}
}

// applyBounds deactivates any active body whose every fixture AABB lies
// entirely outside the world's bounds region, firing BoundsListener if
// set (spec §4.6 step viii).
func (w *World) applyBounds() {
	if w.bounds == nil {
		return
	}
	for _, b := range w.bodies {
		if !b.Active() {
			continue
		}
		inside := false
		for _, f := range b.Fixtures {
			if w.bounds.Overlaps(b.fixtureAABB(f, 0)) {
				inside = true
				break
			}
		}
		if !inside {
			b.clearFlag(FlagActive)
			if w.boundsOut != nil {
				w.boundsOut.OutOfBounds(b)
			}
		}
	}
}

// Shift translates every body's pose, the broad phase, and the contact
// manager's persisted points by d, re-centering the simulation near the
// origin (spec §4.6: world.shift).
func (w *World) Shift(d vec2.V) {
	for _, b := range w.bodies {
		b.shift(d)
	}
	w.broad.Shift(d)
	// Contact points are stored in each body's local frame, which moved
	// with the body above, so no separate translation is needed for the
	// contact manager's persisted points.
	if w.bounds != nil {
		shifted := w.bounds.Translate(d)
		w.bounds = &shifted
	}
}
