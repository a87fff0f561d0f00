package physics

import "testing"

func TestDefaultCategoryFilterCollidesWithEverything(t *testing.T) {
	a := DefaultCategoryFilter()
	b := DefaultCategoryFilter()
	if !a.Allow(b) || !b.Allow(a) {
		t.Error("two default filters should collide")
	}
}

func TestCategoryFilterMaskMismatch(t *testing.T) {
	a := CategoryFilter{Category: 0x1, Mask: 0x2, GroupIndex: 0}
	b := CategoryFilter{Category: 0x4, Mask: 0x1, GroupIndex: 0}
	if a.Allow(b) {
		t.Error("b's category is not in a's mask, should not collide")
	}
}

func TestCategoryFilterPositiveGroupForcesCollision(t *testing.T) {
	a := CategoryFilter{Category: 0x1, Mask: 0, GroupIndex: 5}
	b := CategoryFilter{Category: 0x2, Mask: 0, GroupIndex: 5}
	if !a.Allow(b) {
		t.Error("a shared positive GroupIndex should force collision regardless of category/mask")
	}
}

func TestCategoryFilterNegativeGroupForcesNoCollision(t *testing.T) {
	a := CategoryFilter{Category: 0x1, Mask: 0xFFFFFFFF, GroupIndex: -5}
	b := CategoryFilter{Category: 0x1, Mask: 0xFFFFFFFF, GroupIndex: -5}
	if a.Allow(b) {
		t.Error("a shared negative GroupIndex should force no collision regardless of category/mask")
	}
}

func TestCategoryFilterAllowsNonCategoryFilterType(t *testing.T) {
	a := DefaultCategoryFilter()
	if !a.Allow(alwaysAllowFilter{}) {
		t.Error("a CategoryFilter facing an unrelated Filter implementation should default to allowing collision")
	}
}

type alwaysAllowFilter struct{}

func (alwaysAllowFilter) Allow(Filter) bool { return true }
