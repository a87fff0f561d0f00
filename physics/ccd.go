package physics

import "github.com/gazed/phys2d/math/vec2"

// toiResult is the outcome of a conservative-advancement search between
// two swept bodies: whether an impact was found and, if so, the fraction
// of the step at which it occurs.
type toiResult struct {
	hit bool
	t   float64
}

// minSeparation returns the minimum signed separation over every fixture
// pair between bodyA and bodyB at the given interpolated transforms
// (negative means overlapping), along with the witness normal of that
// minimum pair — the "all fixture pairs; take minimum" step of spec §4.3.
func minSeparation(bodyA, bodyB *Body, xfA, xfB vec2.Transform) (sep float64, normal vec2.V) {
	sep = 1e30
	for _, fa := range bodyA.Fixtures {
		if fa.Sensor {
			continue
		}
		for _, fb := range bodyB.Fixtures {
			if fb.Sensor {
				continue
			}
			gr, closestA, closestB, s := gjkDistance(fa.Shape, xfA, fb.Shape, xfB)
			if gr.intersect {
				s = -1
			}
			if s < sep {
				sep = s
				if gr.intersect {
					normal = vec2.V{}
				} else {
					n := closestB.Sub(closestA)
					if n.AeqZ() {
						normal = vec2.V{X: 1, Y: 0}
					} else {
						normal = n.Unit()
					}
				}
			}
		}
	}
	return sep, normal
}

// timeOfImpact runs conservative advancement between bodyA and bodyB over
// their swept interval PrevPose -> Pose, per spec §4.3: compute
// separation at both ends; if both separated and the normals agree in
// direction, declare no impact; otherwise root-find the signed
// separation function alternating secant and bisection, bounded by
// settings.CCDMaxIterations and settings.CCDTolerance.
func timeOfImpact(bodyA, bodyB *Body, s Settings) toiResult {
	t1, t2 := 0.0, 1.0

	xfA1 := bodyA.PrevPose
	xfB1 := bodyB.PrevPose
	sep1, n1 := minSeparation(bodyA, bodyB, xfA1, xfB1)
	if sep1 < s.CCDTolerance {
		// Already overlapping (or touching) at the start of the sweep;
		// the solver's static-collision path handles this step.
		return toiResult{hit: false}
	}

	xfA2 := bodyA.Pose
	xfB2 := bodyB.Pose
	sep2, n2 := minSeparation(bodyA, bodyB, xfA2, xfB2)
	if sep2 > s.CCDTolerance && n1.Dot(n2) >= 0 {
		return toiResult{hit: false}
	}

	d1, d2 := sep1, sep2
	for iter := 0; iter < s.CCDMaxIterations; iter++ {
		var t float64
		if iter%2 == 1 {
			if d2 == d1 {
				t = (t1 + t2) * 0.5
			} else {
				t = t1 + (0-d1)*(t2-t1)/(d2-d1)
			}
		} else {
			t = (t1 + t2) * 0.5
		}
		if t <= t1 || t >= t2 {
			t = (t1 + t2) * 0.5
		}

		xfA := xfA1.Lerp(xfA2, t)
		xfB := xfB1.Lerp(xfB2, t)
		sep, _ := minSeparation(bodyA, bodyB, xfA, xfB)

		if sep < s.CCDTolerance {
			return toiResult{hit: true, t: t}
		}
		if abs64(sep-d1) < s.CCDTolerance*s.CCDTolerance && abs64(sep-d2) < s.CCDTolerance*s.CCDTolerance {
			// Successive separations have converged without reaching
			// zero: reject (spec §4.3's convergence-without-zero case).
			return toiResult{hit: false}
		}

		if sep > 0 {
			t1, d1 = t, sep
		} else {
			t2, d2 = t, sep
		}
	}
	return toiResult{hit: false}
}

// runCCD performs spec §4.6 step (vi): for every body flagged Bullet (or,
// under ContinuousAll, every dynamic body), find the earliest TOI against
// any other candidate body this step, advance that body to the impact
// fraction, and leave its velocity untouched so next step's ordinary
// discrete solve resolves the contact from the impact pose. Every sweep is
// tested from the bodies' start-of-step and end-of-step poses before any
// body is advanced, so two bullets that hit each other are both advanced.
func runCCD(bodies []*Body, mode ContinuousMode, s Settings) {
	if mode == ContinuousNone {
		return
	}
	impacts := make(map[*Body]float64)
	for _, bullet := range bodies {
		if !isDynamicBody(bullet) {
			continue
		}
		if mode == ContinuousBullets && !bullet.Bullet() {
			continue
		}
		earliest := 1.0
		hitAny := false
		for _, other := range bodies {
			if other == bullet {
				continue
			}
			res := timeOfImpact(bullet, other, s)
			if res.hit && res.t < earliest {
				earliest = res.t
				hitAny = true
			}
		}
		if hitAny {
			impacts[bullet] = earliest
		}
	}
	for b, t := range impacts {
		b.Pose = b.PrevPose.Lerp(b.Pose, t)
	}
}
