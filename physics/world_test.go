package physics

import (
	"math"
	"testing"

	"github.com/gazed/phys2d/math/vec2"
)

func newFallingBox(world *World, x, y float64) *Body {
	box, _ := NewBox(0.5, 0.5)
	fix, _ := NewFixture(box, 1)
	b := NewBody(Normal, vec2.NewTransform(vec2.V{X: x, Y: y}, 0))
	b.AddFixture(fix)
	world.AddBody(b)
	return b
}

func newGround(world *World) *Body {
	box, _ := NewBox(50, 0.5)
	fix, _ := NewFixture(box, 1)
	fix.Friction = 0.5
	b := NewBody(Infinite, vec2.NewTransform(vec2.V{X: 0, Y: -0.5}, 0))
	b.AddFixture(fix)
	world.AddBody(b)
	return b
}

// A box falling under gravity onto a static floor should come to rest
// resting on the floor, not sink through it.
func TestWorldBoxSettlesOnGround(t *testing.T) {
	s := DefaultSettings()
	world := NewWorld(vec2.V{X: 0, Y: -10}, s, nil)
	newGround(world)
	box := newFallingBox(world, 0, 5)

	for i := 0; i < 600; i++ {
		world.Step(s.StepFrequency)
	}

	center := box.WorldCenter()
	if center.Y < 0 {
		t.Fatalf("box fell through the ground: center.Y = %v", center.Y)
	}
	// Resting half-height 0.5 atop a floor whose top is at y=0.
	if math.Abs(center.Y-0.5) > 0.05 {
		t.Errorf("box center.Y = %v, want ~0.5 (resting on floor)", center.Y)
	}
}

// Spec §8 scenario 7: a settled box with auto-sleep enabled eventually
// sleeps; its velocity is zeroed and it stops requiring solver work.
func TestWorldBoxFallsAsleep(t *testing.T) {
	s := DefaultSettings()
	world := NewWorld(vec2.V{X: 0, Y: -10}, s, nil)
	newGround(world)
	box := newFallingBox(world, 0, 0.55) // start almost resting, settle quickly

	asleep := false
	for i := 0; i < 300; i++ {
		world.Step(s.StepFrequency)
		if box.Asleep() {
			asleep = true
			break
		}
	}
	if !asleep {
		t.Fatal("expected box to fall asleep after settling")
	}
	if box.LinVel != (vec2.V{}) || box.AngVel != 0 {
		t.Errorf("asleep body should have zero velocity, got lin=%v ang=%v", box.LinVel, box.AngVel)
	}
}

// Spec §8 scenario 6: two 1x1 boxes 5m apart closing at 300 m/s with a
// 1/60s step. With the Bullet flag set and bullet-mode CCD, the impact is
// caught mid-step instead of the boxes tunnelling through each other.
func TestWorldBulletCatchesImpact(t *testing.T) {
	s := DefaultSettings()
	s.ContinuousDetectionMode = ContinuousBullets
	world := NewWorld(vec2.V{}, s, nil)

	box, _ := NewBox(0.5, 0.5)
	fixL, _ := NewFixture(box, 1)
	left := NewBody(Normal, vec2.NewTransform(vec2.V{X: -2.5}, 0))
	left.AddFixture(fixL)
	left.LinVel = vec2.V{X: 150}
	left.SetBullet(true)
	world.AddBody(left)

	fixR, _ := NewFixture(box, 1)
	right := NewBody(Normal, vec2.NewTransform(vec2.V{X: 2.5}, 0))
	right.AddFixture(fixR)
	right.LinVel = vec2.V{X: -150}
	right.SetBullet(true)
	world.AddBody(right)

	world.Step(1.0 / 60.0)

	gap := right.WorldCenter().X - left.WorldCenter().X
	if gap < 0.9 {
		t.Errorf("bullets tunnelled past each other: center gap = %v, want >= ~1 (box width)", gap)
	}
}

// The same kind of scenario with CCD off tunnels through: a plain discrete
// step only samples the boxes' beginning and end poses, and a closing
// speed fast enough relative to the gap carries each box's center past the
// other's within one step, with no contact seen along the way.
func TestWorldWithoutCCDTunnels(t *testing.T) {
	s := DefaultSettings()
	s.ContinuousDetectionMode = ContinuousNone
	world := NewWorld(vec2.V{}, s, nil)

	box, _ := NewBox(0.5, 0.5)
	fixL, _ := NewFixture(box, 1)
	left := NewBody(Normal, vec2.NewTransform(vec2.V{X: -3}, 0))
	left.AddFixture(fixL)
	left.LinVel = vec2.V{X: 200}
	world.AddBody(left)

	fixR, _ := NewFixture(box, 1)
	right := NewBody(Normal, vec2.NewTransform(vec2.V{X: 3}, 0))
	right.AddFixture(fixR)
	right.LinVel = vec2.V{X: -200}
	world.AddBody(right)

	world.Step(1.0 / 60.0)

	// Closing at 400 m/s over 1/60s covers 6.67m against a 6m center gap:
	// the centers end at +-1/3 m, swapped, instead of coming to rest
	// touching.
	if left.WorldCenter().X < right.WorldCenter().X {
		t.Errorf("expected boxes to tunnel past each other without CCD, got left=%v right=%v",
			left.WorldCenter().X, right.WorldCenter().X)
	}
}

func TestWorldRayCastFindsClosestFixture(t *testing.T) {
	s := DefaultSettings()
	world := NewWorld(vec2.V{}, s, nil)
	circle, _ := NewCircle(vec2.V{}, 0.5)
	fix, _ := NewFixture(circle, 1)
	b := NewBody(Normal, vec2.NewTransform(vec2.V{X: 5, Y: 0}, 0))
	b.AddFixture(fix)
	world.AddBody(b)

	hit, ok := world.RayCastClosest(vec2.V{X: -10, Y: 0}, vec2.V{X: 1, Y: 0}, 100)
	if !ok {
		t.Fatal("expected ray to hit the circle")
	}
	if math.Abs(hit.Point.X-4.5) > 1e-3 {
		t.Errorf("hit.Point = %v, want x ~ 4.5", hit.Point)
	}
}

func TestWorldRemoveBodyClearsContacts(t *testing.T) {
	s := DefaultSettings()
	world := NewWorld(vec2.V{}, s, nil)
	ground := newGround(world)
	box := newFallingBox(world, 0, 0)

	world.Step(s.StepFrequency)
	if len(world.contacts.contacts) == 0 {
		t.Fatal("expected a contact constraint between box and ground before removal")
	}
	if err := world.RemoveBody(box); err != nil {
		t.Fatalf("RemoveBody: %v", err)
	}
	if err := world.RemoveBody(ground); err != nil {
		t.Fatalf("RemoveBody: %v", err)
	}
	if len(world.Bodies()) != 0 {
		t.Errorf("expected no bodies left, got %d", len(world.Bodies()))
	}
	if n := len(world.contacts.contacts); n != 0 {
		t.Errorf("expected no contact constraints left, got %d", n)
	}
}

func TestWorldRemoveBodyNotFound(t *testing.T) {
	s := DefaultSettings()
	world := NewWorld(vec2.V{}, s, nil)
	stray := NewBody(Normal, vec2.Identity2)
	if err := world.RemoveBody(stray); err == nil {
		t.Fatal("expected ErrNotFound-style error for a body never added")
	}
}
