package physics

import "github.com/gazed/phys2d/math/vec2"

// AABB is an axis-aligned bounding box, Min/Max in world space. A zero-value
// AABB (Min == Max == origin) is a valid degenerate box, not a sentinel —
// use Valid to check that Min is componentwise <= Max.
type AABB struct {
	Min, Max vec2.V
}

// Valid reports whether the box is well-formed (Min <= Max on both axes).
func (b AABB) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y
}

// expand grows b by margin on every side. A negative margin shrinks it;
// callers are responsible for not shrinking past Valid().
func (b AABB) expand(margin float64) AABB {
	d := vec2.V{X: margin, Y: margin}
	return AABB{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Union returns the smallest AABB containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Overlaps reports whether b and o intersect (touching counts as overlap).
func (b AABB) Overlaps(o AABB) bool {
	if b.Max.X < o.Min.X || o.Max.X < b.Min.X {
		return false
	}
	if b.Max.Y < o.Min.Y || o.Max.Y < b.Min.Y {
		return false
	}
	return true
}

// Contains reports whether o lies entirely within b.
func (b AABB) Contains(o AABB) bool {
	return b.Min.X <= o.Min.X && b.Min.Y <= o.Min.Y && b.Max.X >= o.Max.X && b.Max.Y >= o.Max.Y
}

// Perimeter returns the AABB's perimeter, used by the broad-phase tree as
// its surface-area-heuristic cost proxy in 2D (spec §4.1).
func (b AABB) Perimeter() float64 {
	w := b.Max.X - b.Min.X
	h := b.Max.Y - b.Min.Y
	return 2 * (w + h)
}

// Translate returns b shifted by d.
func (b AABB) Translate(d vec2.V) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Center returns the AABB's midpoint.
func (b AABB) Center() vec2.V {
	return b.Min.Add(b.Max).Scale(0.5)
}

// RayIntersects runs a slab test against the box, matching the hot-loop
// shape of gazed-vu/physics/caster.go's ray dispatch but specialized for
// an AABB rather than its Shape interface. tmin/tmax are the input search
// range; on a hit, the returned [lo,hi] is the intersected parameter range
// clamped to [tmin,tmax].
func (b AABB) RayIntersects(origin, dir vec2.V, tmin, tmax float64) (lo, hi float64, hit bool) {
	lo, hi = tmin, tmax
	for axis := 0; axis < 2; axis++ {
		var o, d, mn, mx float64
		if axis == 0 {
			o, d, mn, mx = origin.X, dir.X, b.Min.X, b.Max.X
		} else {
			o, d, mn, mx = origin.Y, dir.Y, b.Min.Y, b.Max.Y
		}
		if d == 0 {
			if o < mn || o > mx {
				return 0, 0, false
			}
			continue
		}
		inv := 1.0 / d
		t1 := (mn - o) * inv
		t2 := (mx - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > lo {
			lo = t1
		}
		if t2 < hi {
			hi = t2
		}
		if lo > hi {
			return 0, 0, false
		}
	}
	return lo, hi, true
}
