package physics

import (
	"math"
	"testing"

	"github.com/gazed/phys2d/math/vec2"
)

func fastBoxBody(startX, endX float64) *Body {
	box, _ := NewBox(0.5, 0.5)
	fix, _ := NewFixture(box, 1)
	b := NewBody(Normal, vec2.NewTransform(vec2.V{X: startX}, 0))
	b.AddFixture(fix)
	b.PrevPose = vec2.NewTransform(vec2.V{X: startX}, 0)
	b.Pose = vec2.NewTransform(vec2.V{X: endX}, 0)
	return b
}

// Spec §8 scenario 6: two 1x1 boxes 5m apart on the x-axis, closing at
// 300 m/s over a 1/60s step, lands the impact around t ~= 4/5 of the step
// (surfaces are 4m apart; combined closing distance for the step is 5m).
func TestTimeOfImpactBullet(t *testing.T) {
	s := DefaultSettings()
	left := fastBoxBody(-2.5, 0)
	right := fastBoxBody(2.5, 0)

	res := timeOfImpact(left, right, s)
	if !res.hit {
		t.Fatal("expected a time-of-impact hit for closing boxes that would overlap by the end of the step")
	}
	wantT := 4.0 / 5.0
	if math.Abs(res.t-wantT) > 0.05 {
		t.Errorf("impact fraction = %v, want ~%v", res.t, wantT)
	}
}

func TestTimeOfImpactNoApproach(t *testing.T) {
	s := DefaultSettings()
	left := fastBoxBody(-10, -9)
	right := fastBoxBody(10, 10.5)

	res := timeOfImpact(left, right, s)
	if res.hit {
		t.Errorf("expected no impact for boxes staying far apart, got t=%v", res.t)
	}
}

func TestTimeOfImpactAlreadyOverlapping(t *testing.T) {
	s := DefaultSettings()
	left := fastBoxBody(0, 0.1)
	right := fastBoxBody(0.2, 0.3)

	res := timeOfImpact(left, right, s)
	if res.hit {
		t.Error("bodies already overlapping at the start of the sweep should be left to the discrete solver, not CCD")
	}
}

func TestMinSeparationIgnoresSensors(t *testing.T) {
	box, _ := NewBox(0.5, 0.5)
	fixA, _ := NewFixture(box, 1)
	// The sensor sits at b's local x=-10, on top of a once b is placed at
	// x=10, so counting it would report an overlap.
	sensorShape, _ := NewCircle(vec2.V{X: -10}, 0.5)
	fixB, _ := NewFixture(sensorShape, 1)
	fixB.Sensor = true

	a := NewBody(Normal, vec2.Identity2)
	a.AddFixture(fixA)
	b := NewBody(Normal, vec2.Identity2)
	b.AddFixture(fixB)
	// Add a second, non-sensor fixture to b far away so minSeparation has
	// something non-sensor to measure.
	farBox, _ := NewBox(0.5, 0.5)
	farFix, _ := NewFixture(farBox, 1)
	b.AddFixture(farFix)

	xfA := vec2.Identity2
	xfB := vec2.NewTransform(vec2.V{X: 10}, 0)
	sep, _ := minSeparation(a, b, xfA, xfB)
	if sep < 5 {
		t.Errorf("separation should reflect the non-sensor fixture only, got %v", sep)
	}
}
