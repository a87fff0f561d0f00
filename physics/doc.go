// Package physics implements a 2D rigid-body simulator: broad-phase
// collision culling over a dynamic AABB tree, GJK/EPA/clipping narrow
// phase with conservative-advancement continuous collision detection for
// fast movers, and a sequential-impulse constraint solver over contacts
// and joints.
//
// A World owns everything: bodies, joints, the broad phase, and the
// contact manager. Advance it one fixed step at a time with Step.
//
// File layout mirrors the pipeline a Step runs, in order:
//
//	broadphase.go   dynamic AABB tree (insert/remove/update, pair enumeration, queries)
//	gjk.go/epa.go   convex distance and penetration extraction
//	manifold.go     Sutherland-Hodgman clipping into contact points
//	narrowphase.go  shape-pair dispatch (circle fast paths + general GJK/EPA/clipping)
//	contact.go      persistent per-pair contact constraint + warm-start matching
//	contactmanager.go  pair lifecycle, begin/persist/end/sensed, pre/post-solve
//	island.go       flood-fill island assembly
//	solver.go       sequential-impulse velocity + Baumgarte position solve, sleep
//	ccd.go          conservative advancement time-of-impact for bullets
//	joint.go + *_joint.go  distance/revolute/prismatic/weld equality constraints
//	world.go        orchestration (Step, Shift, body/joint/fixture lifecycle)
//	shape.go/mass.go/fixture.go/body.go/aabb.go/filter.go  data model
//	raycast.go      ray queries against the broad phase and individual shapes
//	polygonfile.go  test-fixture polygon file format
//	settings.go     tunable constants, no global singleton
//	errors.go       typed error kinds at the package's public boundaries
package physics
