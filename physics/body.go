package physics

import (
	"github.com/gazed/phys2d/math/vec2"
)

// BodyType controls how a body's inverse mass and inverse inertia are
// treated by the solver (spec §3). Infinite zeros both inverses (the body
// is immovable). FixedLinearVelocity/FixedAngularVelocity zero only the
// corresponding inverse, letting a body spin freely while never
// translating (or vice versa) regardless of applied forces/impulses.
type BodyType int

const (
	Normal BodyType = iota
	Infinite
	FixedLinearVelocity
	FixedAngularVelocity
)

// BodyFlags are the transient/persistent bits spec §3 lists.
type BodyFlags uint8

const (
	FlagActive BodyFlags = 1 << iota
	FlagAsleep
	FlagAutoSleep
	FlagOnIsland
	FlagBullet
)

// ContactEdge links a body to one contact constraint it participates in,
// used to walk a body's active contacts during island assembly (§4.5).
// Maintained by the contact manager, never by Body itself.
type ContactEdge struct {
	Other    *Body
	Contact  *ContactConstraint
	next     *ContactEdge
}

// JointEdge links a body to one joint it participates in. Maintained by
// the world, never by Body itself.
type JointEdge struct {
	Other *Body
	Joint Joint
	next  *JointEdge
}

// forceGenerator is a time-limited force/torque contribution applied each
// step until its remaining duration elapses (§4.6).
type forceGenerator struct {
	force     vec2.V
	torque    float64
	remaining float64 // seconds; <0 means "forever, until explicitly cleared"
}

// Body is an identified rigid entity: pose, velocity, mass properties, the
// fixtures that give it shape, and the bookkeeping the step pipeline needs
// (§3). Construct with NewBody; fixtures are attached with AddFixture.
type Body struct {
	id int64

	Pose     vec2.Transform
	PrevPose vec2.Transform

	LinVel vec2.V
	AngVel float64

	force  vec2.V
	torque float64
	gens   []forceGenerator

	mass Mass
	// invMass/invI are recomputed by recomputeMass whenever fixtures
	// change or Type changes.
	invMass float64
	invI    float64

	Type BodyType

	Fixtures []*Fixture

	radius float64

	LinearDamping  float64
	AngularDamping float64

	Flags     BodyFlags
	SleepTime float64

	contactList *ContactEdge
	jointList   *JointEdge

	world *World
}

// NewBody creates a body of the given type at the given pose, active,
// auto-sleep enabled, with no fixtures yet.
func NewBody(bodyType BodyType, pose vec2.Transform) *Body {
	return &Body{
		Pose:     pose,
		PrevPose: pose,
		Type:     bodyType,
		Flags:    FlagActive | FlagAutoSleep,
	}
}

// ID returns the body's stable identity, assigned when added to a World.
func (b *Body) ID() int64 { return b.id }

// Mass returns the body's aggregate mass properties (local-space center of
// mass, total mass, rotational inertia about that center).
func (b *Body) Mass() Mass { return b.mass }

// InvMass returns the body's inverse mass (0 for Infinite bodies).
func (b *Body) InvMass() float64 { return b.invMass }

// InvI returns the body's inverse rotational inertia (0 for Infinite
// bodies, or when FixedAngularVelocity pins rotation).
func (b *Body) InvI() float64 { return b.invI }

// Radius returns the body's rotation-disc radius: the farthest distance
// from local center of mass to any point on any fixture.
func (b *Body) Radius() float64 { return b.radius }

func (b *Body) hasFlag(f BodyFlags) bool { return b.Flags&f != 0 }
func (b *Body) setFlag(f BodyFlags)      { b.Flags |= f }
func (b *Body) clearFlag(f BodyFlags)    { b.Flags &^= f }

// Active reports whether the body currently participates in simulation.
func (b *Body) Active() bool { return b.hasFlag(FlagActive) }

// Asleep reports whether the body is sleeping (excluded from the solver
// until woken).
func (b *Body) Asleep() bool { return b.hasFlag(FlagAsleep) }

// SetBullet sets or clears the body's request for continuous collision
// detection (spec §4.3). Only meaningful when the world's
// ContinuousDetectionMode is ContinuousBullets.
func (b *Body) SetBullet(on bool) {
	if on {
		b.setFlag(FlagBullet)
	} else {
		b.clearFlag(FlagBullet)
	}
}

// Bullet reports whether the body is flagged for continuous collision
// detection.
func (b *Body) Bullet() bool { return b.hasFlag(FlagBullet) }

// SetAutoSleep enables or disables this body putting its island to sleep.
// A single non-auto-sleep body anywhere in an island keeps the whole
// island awake (§4.5, via the sleep-evaluation loop checking every body).
func (b *Body) SetAutoSleep(on bool) {
	if on {
		b.setFlag(FlagAutoSleep)
	} else {
		b.clearFlag(FlagAutoSleep)
		b.clearFlag(FlagAsleep)
	}
}

// Wake clears the asleep flag and resets the sleep timer. The impulse
// methods (ApplyLinearImpulse, ApplyLinearImpulseAtPoint,
// ApplyAngularImpulse) call it; ApplyForce, ApplyForceAtPoint and
// ApplyTorque do not.
func (b *Body) Wake() {
	if !b.hasFlag(FlagAsleep) {
		return
	}
	b.clearFlag(FlagAsleep)
	b.SleepTime = 0
}

func (b *Body) sleep() {
	b.setFlag(FlagAsleep)
	b.LinVel = vec2.V{}
	b.AngVel = 0
	b.force = vec2.V{}
	b.torque = 0
	b.SleepTime = 0
}

// AddFixture attaches a fixture to the body and recomputes mass
// properties and rotation radius. The body must not yet be added to a
// World's broad phase with this fixture; World.AddBody/World.AddFixture
// handle broad-phase insertion.
func (b *Body) AddFixture(f *Fixture) error {
	if f == nil {
		return newError(InvalidArgument, "fixture must not be nil")
	}
	f.body = b
	b.Fixtures = append(b.Fixtures, f)
	b.recomputeMass()
	return nil
}

// recomputeMass recomputes mass, invMass, invI and radius from the body's
// current fixture set and Type. Sensor fixtures contribute mass like any
// other fixture; a fixture with density <= 0 contributes nothing.
func (b *Body) recomputeMass() {
	agg := zeroMass()
	for _, f := range b.Fixtures {
		if f.Density <= 0 {
			continue
		}
		agg.Add(f.Shape.ComputeMass(f.Density))
	}
	b.mass = agg

	switch b.Type {
	case Infinite:
		b.invMass = 0
		b.invI = 0
	case FixedLinearVelocity:
		b.invMass = 0
		b.invI = invOf(agg.I)
	case FixedAngularVelocity:
		b.invMass = invOf(agg.M)
		b.invI = 0
	default:
		b.invMass = invOf(agg.M)
		b.invI = invOf(agg.I)
	}

	radius := 0.0
	for _, f := range b.Fixtures {
		if r := f.Shape.Radius(agg.Center); r > radius {
			radius = r
		}
	}
	b.radius = radius
}

func invOf(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return 1.0 / x
}

// WorldCenter returns the body's center of mass in world space.
func (b *Body) WorldCenter() vec2.V { return b.Pose.Apply(b.mass.Center) }

// ApplyForce adds a world-space force at the body's center of mass,
// effective for the current step only (cleared after integration).
func (b *Body) ApplyForce(f vec2.V) {
	b.force = b.force.Add(f)
}

// ApplyForceAtPoint adds a world-space force applied at a world-space
// point, contributing both force and the torque it induces about the
// center of mass.
func (b *Body) ApplyForceAtPoint(f vec2.V, point vec2.V) {
	b.force = b.force.Add(f)
	r := point.Sub(b.WorldCenter())
	b.torque += r.Cross(f)
}

// ApplyTorque adds torque for the current step only.
func (b *Body) ApplyTorque(t float64) { b.torque += t }

// ApplyLinearImpulse applies an instantaneous world-space impulse at the
// center of mass, changing velocity immediately rather than accumulating
// for integration.
func (b *Body) ApplyLinearImpulse(impulse vec2.V) {
	b.LinVel = b.LinVel.Add(impulse.Scale(b.invMass))
	b.Wake()
}

// ApplyLinearImpulseAtPoint applies an instantaneous world-space impulse
// at a world-space point.
func (b *Body) ApplyLinearImpulseAtPoint(impulse vec2.V, point vec2.V) {
	b.LinVel = b.LinVel.Add(impulse.Scale(b.invMass))
	r := point.Sub(b.WorldCenter())
	b.AngVel += b.invI * r.Cross(impulse)
	b.Wake()
}

// ApplyAngularImpulse applies an instantaneous angular impulse.
func (b *Body) ApplyAngularImpulse(impulse float64) {
	b.AngVel += b.invI * impulse
	b.Wake()
}

// ApplyForceGenerator adds a force/torque pair applied every step for
// duration seconds (negative duration means indefinitely, until
// ClearForceGenerators is called).
func (b *Body) ApplyForceGenerator(force vec2.V, torque float64, duration float64) {
	b.gens = append(b.gens, forceGenerator{force: force, torque: torque, remaining: duration})
}

// ClearForceGenerators removes all time-limited force generators.
func (b *Body) ClearForceGenerators() { b.gens = nil }

// clearAccumulators zeroes the per-step force/torque accumulators,
// called by the solver at the end of each step (spec §4.6).
func (b *Body) clearAccumulators() {
	b.force = vec2.V{}
	b.torque = 0
}

// integrateForceGenerators applies each live generator's contribution for
// this step and prunes any whose duration has elapsed.
func (b *Body) integrateForceGenerators(dt float64) {
	if len(b.gens) == 0 {
		return
	}
	live := b.gens[:0]
	for _, g := range b.gens {
		b.force = b.force.Add(g.force)
		b.torque += g.torque
		if g.remaining < 0 {
			live = append(live, g)
			continue
		}
		g.remaining -= dt
		if g.remaining > 0 {
			live = append(live, g)
		}
	}
	b.gens = live
}

// velocityFromForces returns the linear/angular velocity this body would
// have after integrating its current force/torque accumulators and
// gravity over dt, including linear/angular damping (§4.6). It does not
// mutate the body; solveIsland calls this then assigns the result.
func (b *Body) velocityFromForces(dt float64, gravity vec2.V) (vec2.V, float64) {
	v, w := b.LinVel, b.AngVel
	if b.invMass > 0 {
		v = v.Add(gravity.Add(b.force.Scale(b.invMass)).Scale(dt))
		v = v.Scale(1.0 / (1.0 + dt*b.LinearDamping))
	}
	if b.invI > 0 {
		w += dt * b.invI * b.torque
		w *= 1.0 / (1.0 + dt*b.AngularDamping)
	}
	return v, w
}

// clampVelocity enforces the world's velocity ceilings (spec §4.6: a
// per-step safety clamp, not a physical law).
func (b *Body) clampVelocity(maxLinear, maxAngular float64) {
	if l := b.LinVel.Len(); l > maxLinear && l > 0 {
		b.LinVel = b.LinVel.Scale(maxLinear / l)
	}
	if b.AngVel > maxAngular {
		b.AngVel = maxAngular
	} else if b.AngVel < -maxAngular {
		b.AngVel = -maxAngular
	}
}

// integratePose advances Pose by dt using the body's current velocities,
// saving the pre-integration pose to PrevPose for CCD's swept queries.
func (b *Body) integratePose(dt float64) {
	b.PrevPose = b.Pose
	if b.invMass == 0 && b.invI == 0 {
		return
	}
	center := b.WorldCenter()
	center = center.Add(b.LinVel.Scale(dt))
	angle := b.Pose.Q.Angle() + b.AngVel*dt
	q := vec2.NewRot(angle)
	// Recompose the pose so the (possibly off-origin) local center of
	// mass lands at the integrated world center, not the body origin.
	localCenter := b.mass.Center
	p := center.Sub(q.Apply(localCenter))
	b.Pose = vec2.Transform{P: p, Q: q}
}

// fixtureAABB returns fixture f's fattened world AABB at the body's
// current pose, expanded by margin.
func (b *Body) fixtureAABB(f *Fixture, margin float64) AABB {
	return f.Shape.ComputeAABB(b.Pose, margin)
}

// sweptAABB returns the union of a fixture's AABB at PrevPose and at Pose.
// Neither CCD nor the broad phase calls it.
func (b *Body) sweptAABB(f *Fixture, margin float64) AABB {
	a := f.Shape.ComputeAABB(b.PrevPose, margin)
	c := f.Shape.ComputeAABB(b.Pose, margin)
	return a.Union(c)
}

func (b *Body) shift(d vec2.V) {
	b.Pose.P = b.Pose.P.Add(d)
	b.PrevPose.P = b.PrevPose.P.Add(d)
}
