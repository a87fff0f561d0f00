package physics

// Filter decides whether two fixtures are allowed to collide at all,
// evaluated before narrow phase ever runs (spec §3). Implementations must
// be commutative: Allow(a,b) and Allow(b,a) should agree.
type Filter interface {
	Allow(other Filter) bool
}

// CategoryFilter is the standard bitmask filter: a fixture belongs to one
// or more Category bits and collides with fixtures whose Category
// intersects its Mask, unless the two share a nonzero GroupIndex that
// forces the outcome (positive: always collide, negative: never collide).
type CategoryFilter struct {
	Category   uint32
	Mask       uint32
	GroupIndex int32
}

// DefaultCategoryFilter returns a filter that collides with everything:
// category bit 0, mask all-bits, group 0.
func DefaultCategoryFilter() CategoryFilter {
	return CategoryFilter{Category: 0x0001, Mask: 0xFFFFFFFF, GroupIndex: 0}
}

// Allow implements Filter.
func (f CategoryFilter) Allow(other Filter) bool {
	o, ok := other.(CategoryFilter)
	if !ok {
		return true
	}
	if f.GroupIndex != 0 && f.GroupIndex == o.GroupIndex {
		return f.GroupIndex > 0
	}
	return f.Category&o.Mask != 0 && o.Category&f.Mask != 0
}
