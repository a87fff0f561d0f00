package physics

// Listener is the user-injected collision/solve callback surface (spec
// §6). Invoked synchronously from inside World.Step; implementations
// must not mutate the world — the only sanctioned feedback channel is a
// contact point's Enabled flag, toggled through the bool return values
// below.
type Listener interface {
	// Begin fires when a non-sensor contact constraint starts touching.
	Begin(c *ContactConstraint)
	// Persist fires on a non-sensor contact constraint that was already
	// touching last step and still is.
	Persist(c *ContactConstraint)
	// End fires when a non-sensor contact constraint stops touching (or
	// is destroyed while touching).
	End(c *ContactConstraint)
	// Sensed fires on a sensor fixture's contact transitioning to
	// touching (entered=true) or separated (entered=false).
	Sensed(c *ContactConstraint, entered bool)
	// PreSolve fires once per contact point immediately before the
	// velocity solver runs, for this step's constraint list. Returning
	// false disables that point for the step.
	PreSolve(c *ContactConstraint, point *ContactPoint) bool
	// PostSolve fires once per contact point after the velocity solver
	// has committed its final accumulated impulses for the step.
	PostSolve(c *ContactConstraint, point ContactPoint)
}

// BoundsListener is notified when a body leaves the world's bounds region
// (spec §6).
type BoundsListener interface {
	OutOfBounds(b *Body)
}

// NopListener implements Listener with every hook a no-op except
// PreSolve, which allows every point (the default policy named in §6: a
// listener may veto, but absent one nothing is vetoed). Embed it to
// override only the hooks of interest.
type NopListener struct{}

func (NopListener) Begin(c *ContactConstraint)                         {}
func (NopListener) Persist(c *ContactConstraint)                       {}
func (NopListener) End(c *ContactConstraint)                           {}
func (NopListener) Sensed(c *ContactConstraint, entered bool)          {}
func (NopListener) PreSolve(c *ContactConstraint, p *ContactPoint) bool { return true }
func (NopListener) PostSolve(c *ContactConstraint, p ContactPoint)     {}

// CollisionFilterListener is an optional extension of Listener: a
// concrete listener implementing it as well gets consulted by the
// contact manager at broad-phase (AllowBroadPhasePair), narrow-phase
// (AllowNarrowPhase), and manifold (AllowManifold) stages before a
// contact constraint progresses further (spec §6: "collision-pipeline
// listeners at broad-phase, narrow-phase, and manifold stages may veto
// progression"). There is no separate registration call — pass the same
// value to NewWorld's listener parameter and the contact manager type-
// asserts it.
type CollisionFilterListener interface {
	AllowBroadPhasePair(a, b *Fixture) bool
	AllowNarrowPhase(a, b *Fixture) bool
	AllowManifold(a, b *Fixture, m Manifold) bool
}
