package physics

// Island is a maximal connected component of awake dynamic bodies linked
// by active contacts or joints (spec §3: "three lists owned by the
// solver: awake dynamic bodies, contact constraints, joints. Rebuilt each
// step; never survives across steps"). Adapted from gazed-vu/physics/
// broad.go's union-find island helper (uf_find/uf_union/
// broad_collect_simulation_islands), rewritten as the stack-based flood
// fill spec §4.5 calls for rather than union-find, since the solver needs
// each island's member lists materialized, not just a partition.
type Island struct {
	Bodies    []*Body
	Contacts  []*ContactConstraint
	Joints    []Joint
}

// buildIslands implements spec §4.5's island assembly: clear OnIsland/
// island flags, then for each awake dynamic body not yet islanded, flood
// fill across its non-sensor touching contacts and joints. Static/
// kinematic bodies join an island but never propagate the flood, and are
// released (OnIsland cleared) afterward so they can join another island
// later in the same step.
func buildIslands(bodies []*Body, contacts []*ContactConstraint, joints []Joint) []*Island {
	for _, b := range bodies {
		b.clearFlag(FlagOnIsland)
	}
	for _, c := range contacts {
		c.onIsland = false
	}
	for _, j := range joints {
		j.setOnIsland(false)
	}

	var islands []*Island
	stack := make([]*Body, 0, len(bodies))

	isDynamic := func(b *Body) bool { return b.invMass != 0 || b.invI != 0 }

	for _, seed := range bodies {
		if !seed.Active() || seed.Asleep() || seed.hasFlag(FlagOnIsland) || !isDynamic(seed) {
			continue
		}
		island := &Island{}
		stack = stack[:0]
		stack = append(stack, seed)
		seed.setFlag(FlagOnIsland)

		for len(stack) > 0 {
			n := len(stack) - 1
			body := stack[n]
			stack = stack[:n]
			island.Bodies = append(island.Bodies, body)

			if !isDynamic(body) {
				// Static/kinematic bodies join but never propagate.
				continue
			}

			for e := body.contactList; e != nil; e = e.next {
				c := e.Contact
				if c.onIsland || c.Sensor || !c.touching {
					continue
				}
				c.onIsland = true
				island.Contacts = append(island.Contacts, c)
				other := e.Other
				if !other.hasFlag(FlagOnIsland) && isDynamic(other) {
					other.setFlag(FlagOnIsland)
					// A dynamic neighbor reached from an active island must
					// run through the solver this step, so it must not stay
					// flagged asleep (spec §4.5: islands hold only awake
					// dynamic bodies).
					other.Wake()
					stack = append(stack, other)
				} else if !other.hasFlag(FlagOnIsland) {
					other.setFlag(FlagOnIsland)
					island.Bodies = append(island.Bodies, other)
				}
			}
			for e := body.jointList; e != nil; e = e.next {
				if e.Joint.onIsland() {
					continue
				}
				e.Joint.setOnIsland(true)
				island.Joints = append(island.Joints, e.Joint)
				other := e.Other
				if !other.hasFlag(FlagOnIsland) && isDynamic(other) {
					other.setFlag(FlagOnIsland)
					other.Wake()
					stack = append(stack, other)
				} else if !other.hasFlag(FlagOnIsland) {
					other.setFlag(FlagOnIsland)
					island.Bodies = append(island.Bodies, other)
				}
			}
		}

		// Release static/kinematic members so they can join another
		// island later in the same step (spec §4.5).
		for _, b := range island.Bodies {
			if !isDynamic(b) {
				b.clearFlag(FlagOnIsland)
			}
		}

		islands = append(islands, island)
	}
	return islands
}
