package physics

import "github.com/gazed/phys2d/math/vec2"

// solveIsland runs one island through spec §4.5's per-island step:
// integrate forces, warm start, N velocity iterations (contacts then
// joints), integrate positions, M position iterations, then sleep
// evaluation. Grounded on gazed-vu/physics/solver.go's PGS sequential-
// impulse loop (setupConstraints/solveIterations/resolveSingleConstraint)
// generalized from 3D contacts to 2D contacts-and-joints together.
func solveIsland(island *Island, dt float64, gravity vec2.V, s Settings) {
	for _, b := range island.Bodies {
		if !isDynamicBody(b) {
			continue
		}
		b.integrateForceGenerators(dt)
		v, w := b.velocityFromForces(dt, gravity)
		b.LinVel, b.AngVel = v, w
		b.clampVelocity(s.MaxVelocity, s.MaxAngularVelocity)
	}

	prepareContacts(island.Contacts, dt, s)
	warmStartContacts(island.Contacts)
	for _, j := range island.Joints {
		j.initVelocityConstraint(dt)
	}

	for i := 0; i < s.VelocityIterations; i++ {
		solveVelocityContacts(island.Contacts)
		for _, j := range island.Joints {
			j.solveVelocityConstraint(dt)
		}
	}

	for _, b := range island.Bodies {
		if !isDynamicBody(b) {
			continue
		}
		b.integratePose(dt)
	}

	for i := 0; i < s.PositionIterations; i++ {
		contactsOK := solvePositionContacts(island.Contacts, s)
		jointsOK := true
		for _, j := range island.Joints {
			if j.solvePositionConstraint() > s.LinearTolerance {
				jointsOK = false
			}
		}
		if contactsOK && jointsOK {
			break
		}
	}

	for _, b := range island.Bodies {
		if isDynamicBody(b) {
			b.clearAccumulators()
		}
	}

	evaluateSleep(island, dt, s)
}

func isDynamicBody(b *Body) bool { return b.invMass != 0 || b.invI != 0 }

// prepareContacts computes each contact point's world-space anchor
// offsets and effective normal/tangent masses for this step, the
// quantities spec §4.5 item 3's formula needs and that don't change
// across velocity iterations within a step.
func prepareContacts(contacts []*ContactConstraint, dt float64, s Settings) {
	for _, c := range contacts {
		if !c.touching {
			continue
		}
		bA, bB := c.BodyA, c.BodyB
		tangent := c.Normal.PerpCW()
		for i := range c.Points {
			p := &c.Points[i]
			if !p.Enabled {
				continue
			}
			worldA := bA.Pose.Apply(p.LocalA)
			worldB := bB.Pose.Apply(p.LocalB)
			p.rA = worldA.Sub(bA.WorldCenter())
			p.rB = worldB.Sub(bB.WorldCenter())

			rnA := p.rA.Cross(c.Normal)
			rnB := p.rB.Cross(c.Normal)
			kNormal := bA.invMass + bB.invMass + bA.invI*rnA*rnA + bB.invI*rnB*rnB
			p.normalMass = invOf(kNormal)

			rtA := p.rA.Cross(tangent)
			rtB := p.rB.Cross(tangent)
			kTangent := bA.invMass + bB.invMass + bA.invI*rtA*rtA + bB.invI*rtB*rtB
			p.tangentMass = invOf(kTangent)

			relVel := relativeVelocity(bA, bB, p.rA, p.rB).Dot(c.Normal)
			p.velocityBias = 0
			if relVel < -s.RestitutionVelocity {
				p.velocityBias = -c.Restitution * relVel
			}
		}
	}
}

func relativeVelocity(bA, bB *Body, rA, rB vec2.V) vec2.V {
	vA := bA.LinVel.Add(vec2.CrossSV(bA.AngVel, rA))
	vB := bB.LinVel.Add(vec2.CrossSV(bB.AngVel, rB))
	return vB.Sub(vA)
}

// warmStartContacts applies each enabled point's carried-over accumulated
// normal/tangent impulses to both bodies before the velocity iterations
// begin (spec §4.5 item 2).
func warmStartContacts(contacts []*ContactConstraint) {
	for _, c := range contacts {
		if !c.touching {
			continue
		}
		tangent := c.Normal.PerpCW()
		bA, bB := c.BodyA, c.BodyB
		for i := range c.Points {
			p := &c.Points[i]
			if !p.Enabled {
				continue
			}
			impulse := c.Normal.Scale(p.NormalImpulse).Add(tangent.Scale(p.TangentImpulse))
			bA.LinVel = bA.LinVel.Sub(impulse.Scale(bA.invMass))
			bA.AngVel -= bA.invI * p.rA.Cross(impulse)
			bB.LinVel = bB.LinVel.Add(impulse.Scale(bB.invMass))
			bB.AngVel += bB.invI * p.rB.Cross(impulse)
		}
	}
}

// solveVelocityContacts runs one sequential-impulse velocity iteration
// over every enabled contact point: tangent/friction impulse first
// (clamped to mu times the normal impulse accumulated so far), then the
// normal impulse (clamped >= 0, with a restitution bias). The friction
// clamp therefore uses the normal impulse from before this iteration's
// normal update, not after it.
func solveVelocityContacts(contacts []*ContactConstraint) {
	for _, c := range contacts {
		if !c.touching {
			continue
		}
		bA, bB := c.BodyA, c.BodyB
		tangent := c.Normal.PerpCW()
		for i := range c.Points {
			p := &c.Points[i]
			if !p.Enabled {
				continue
			}

			// Tangent (friction) impulse.
			relVel := relativeVelocity(bA, bB, p.rA, p.rB)
			vt := relVel.Dot(tangent)
			lambdaT := -p.tangentMass * vt
			maxFriction := c.Friction * p.NormalImpulse
			newTangent := vec2.Clamp(p.TangentImpulse+lambdaT, -maxFriction, maxFriction)
			lambdaT = newTangent - p.TangentImpulse
			p.TangentImpulse = newTangent

			tImpulse := tangent.Scale(lambdaT)
			bA.LinVel = bA.LinVel.Sub(tImpulse.Scale(bA.invMass))
			bA.AngVel -= bA.invI * p.rA.Cross(tImpulse)
			bB.LinVel = bB.LinVel.Add(tImpulse.Scale(bB.invMass))
			bB.AngVel += bB.invI * p.rB.Cross(tImpulse)

			// Normal impulse.
			relVel = relativeVelocity(bA, bB, p.rA, p.rB)
			vn := relVel.Dot(c.Normal)
			lambdaN := -p.normalMass * (vn - p.velocityBias)
			newNormal := p.NormalImpulse + lambdaN
			if newNormal < 0 {
				newNormal = 0
			}
			lambdaN = newNormal - p.NormalImpulse
			p.NormalImpulse = newNormal

			nImpulse := c.Normal.Scale(lambdaN)
			bA.LinVel = bA.LinVel.Sub(nImpulse.Scale(bA.invMass))
			bA.AngVel -= bA.invI * p.rA.Cross(nImpulse)
			bB.LinVel = bB.LinVel.Add(nImpulse.Scale(bB.invMass))
			bB.AngVel += bB.invI * p.rB.Cross(nImpulse)
		}
	}
}

// solvePositionContacts runs one Baumgarte position-correction iteration
// over every enabled contact point (spec §4.5 item 5) and reports whether
// every point's residual penetration, after slop, is non-positive.
func solvePositionContacts(contacts []*ContactConstraint, s Settings) bool {
	allSolved := true
	for _, c := range contacts {
		if !c.touching {
			continue
		}
		bA, bB := c.BodyA, c.BodyB
		for i := range c.Points {
			p := &c.Points[i]
			if !p.Enabled {
				continue
			}
			worldA := bA.Pose.Apply(p.LocalA)
			worldB := bB.Pose.Apply(p.LocalB)
			// Recomputed from the bodies' current (iteration-updated)
			// poses rather than the cached manifold penetration, so each
			// position iteration sees the correction made by the last.
			separation := c.Normal.Dot(worldB.Sub(worldA))

			rA := worldA.Sub(bA.WorldCenter())
			rB := worldB.Sub(bB.WorldCenter())

			c2 := -separation
			if c2 > s.LinearTolerance {
				allSolved = false
			}
			correction := vec2.Clamp(s.Baumgarte*(-c2+s.LinearTolerance), -s.MaxLinearCorrection, 0)

			rnA := rA.Cross(c.Normal)
			rnB := rB.Cross(c.Normal)
			kNormal := bA.invMass + bB.invMass + bA.invI*rnA*rnA + bB.invI*rnB*rnB
			if kNormal <= 0 {
				continue
			}
			impulse := -correction / kNormal
			p2 := c.Normal.Scale(impulse)

			newCenterA := bA.WorldCenter().Sub(p2.Scale(bA.invMass))
			newAngleA := bA.Pose.Q.Angle() - bA.invI*rA.Cross(p2)
			bA.Pose.Q = vec2.NewRot(newAngleA)
			bA.Pose.P = newCenterA.Sub(bA.Pose.Q.Apply(bA.mass.Center))

			newCenterB := bB.WorldCenter().Add(p2.Scale(bB.invMass))
			newAngleB := bB.Pose.Q.Angle() + bB.invI*rB.Cross(p2)
			bB.Pose.Q = vec2.NewRot(newAngleB)
			bB.Pose.P = newCenterB.Sub(bB.Pose.Q.Apply(bB.mass.Center))
		}
	}
	return allSolved
}

// evaluateSleep implements spec §4.5 item 6: if sleeping is enabled, the
// island has no kinematic body, and every dynamic body is below both
// sleep thresholds, accumulate sleep_time; once every body in the island
// has slept long enough, put the whole island to sleep. Any body that is
// not AutoSleep-eligible, or that exceeds a threshold, resets every
// body's timer instead.
func evaluateSleep(island *Island, dt float64, s Settings) {
	if !s.SleepEnabled {
		return
	}
	minSleepTime := s.TimeToSleep
	for _, b := range island.Bodies {
		if !isDynamicBody(b) {
			// A kinematic body (infinite mass, but moving) in the island
			// blocks sleep entirely; a static one does not.
			if b.LinVel != (vec2.V{}) || b.AngVel != 0 {
				return
			}
			continue
		}
		if !b.hasFlag(FlagAutoSleep) || b.LinVel.LenSqr() > s.SleepLinearThreshold*s.SleepLinearThreshold || b.AngVel*b.AngVel > s.SleepAngularThreshold*s.SleepAngularThreshold {
			for _, other := range island.Bodies {
				if isDynamicBody(other) {
					other.SleepTime = 0
				}
			}
			return
		}
		if b.SleepTime < minSleepTime {
			minSleepTime = b.SleepTime
		}
	}
	for _, b := range island.Bodies {
		if isDynamicBody(b) {
			b.SleepTime += dt
		}
	}
	if minSleepTime+dt >= s.TimeToSleep {
		for _, b := range island.Bodies {
			if isDynamicBody(b) {
				b.sleep()
			}
		}
	}
}
