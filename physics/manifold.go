package physics

import "github.com/gazed/phys2d/math/vec2"

// featureID identifies which geometric feature a contact point arose
// from (spec §3: "vertex(i)/edge(i,j) triple from the manifold, or the
// sentinel distance id"), so the contact manager can warm-start by
// matching feature identity across steps before falling back to
// proximity matching.
type featureID struct {
	kind       featureKind
	indexA     int
	indexB     int
}

type featureKind int

const (
	featureDistance featureKind = iota // sentinel: match by proximity instead
	featureVertex
	featureEdge
)

var distanceFeature = featureID{kind: featureDistance}

// ManifoldPoint is one contact point local to each body, with the feature
// id used for warm-start matching (spec §3's Contact point).
type ManifoldPoint struct {
	LocalA, LocalB vec2.V
	Penetration    float64
	ID             featureID
}

// Manifold is the output of narrow-phase collision: a world-space unit
// normal (pointing from A to B) and 1-2 contact points.
type Manifold struct {
	Normal vec2.V
	Points []ManifoldPoint
}

// clipPoint is one vertex carried through Sutherland-Hodgman clipping,
// tagged with the incident-polygon vertex index it came from (or, for a
// point inserted by clipping, the clip index) so the final points can be
// assigned a stable feature id.
type clipPoint struct {
	p     vec2.V
	index int
}

// clipSegment clips the 2-point segment (incident edge) against the
// half-plane behind (origin, normal), discarding the point(s) on the far
// side and inserting the intersection where the segment crosses the
// plane. This is clipping.go's sutherland_hodgman/is_point_in_plane/
// plane_edge_intersection trio reduced from 3D clip-planes to a 2D
// clip-line.
func clipSegment(in [2]clipPoint, normal vec2.V, offset float64, clipIndex int) ([2]clipPoint, int) {
	var out [2]clipPoint
	count := 0

	dist0 := normal.Dot(in[0].p) - offset
	dist1 := normal.Dot(in[1].p) - offset

	if dist0 <= 0 {
		out[count] = in[0]
		count++
	}
	if dist1 <= 0 {
		out[count] = in[1]
		count++
	}
	if dist0*dist1 < 0 {
		t := dist0 / (dist0 - dist1)
		out[count] = clipPoint{p: in[0].p.Lerp(in[1].p, t), index: clipIndex}
		count++
	}
	return out, count
}

// polygonEdge returns the outward normal and the two vertices of poly's
// edge i (in world space via xf), matching the reference/incident-edge
// selection clipping.go performs before calling sutherland_hodgman.
func polygonEdge(poly *Polygon, xf vec2.Transform, i int) (v1, v2, normal vec2.V) {
	n := len(poly.Vertices)
	v1 = xf.Apply(poly.Vertices[i])
	v2 = xf.Apply(poly.Vertices[(i+1)%n])
	normal = xf.ApplyVec(poly.Normals[i])
	return v1, v2, normal
}

// findIncidentEdge returns the index of polyB's edge whose normal is most
// anti-parallel to the reference normal (world space) — the edge most
// likely to penetrate deepest against the reference face.
func findIncidentEdge(poly *Polygon, xf vec2.Transform, refNormal vec2.V) int {
	best := 0
	bestDot := refNormal.Dot(xf.ApplyVec(poly.Normals[0]))
	for i := 1; i < len(poly.Normals); i++ {
		d := refNormal.Dot(xf.ApplyVec(poly.Normals[i]))
		if d < bestDot {
			best, bestDot = i, d
		}
	}
	return best
}

// clipPolygons builds the manifold for two polygons given the reference
// face index (on A) found by SAT/EPA, following clipping.go's reference/
// incident-edge clip: select the incident edge on B, clip it against the
// reference face's two side planes, then keep only points still behind
// the reference face itself.
func clipPolygons(polyA *Polygon, xfA vec2.Transform, refIndex int, polyB *Polygon, xfB vec2.Transform, normal vec2.V) []ManifoldPoint {
	v1, v2, refNormal := polygonEdge(polyA, xfA, refIndex)
	tangent := v2.Sub(v1).Unit()

	incIndex := findIncidentEdge(polyB, xfB, refNormal)
	nB := len(polyB.Vertices)
	i1, i2 := xfB.Apply(polyB.Vertices[incIndex]), xfB.Apply(polyB.Vertices[(incIndex+1)%nB])

	points := [2]clipPoint{{p: i1, index: incIndex}, {p: i2, index: (incIndex + 1) % nB}}

	// Side plane 1: behind -tangent through v1.
	points, n := clipSegment(points, tangent.Neg(), tangent.Neg().Dot(v1), -1)
	if n < 2 {
		return nil
	}
	// Side plane 2: behind tangent through v2.
	points, n = clipSegment(points, tangent, tangent.Dot(v2), -1)
	if n < 2 {
		return nil
	}

	var out []ManifoldPoint
	offset := refNormal.Dot(v1)
	for i := 0; i < 2; i++ {
		sep := refNormal.Dot(points[i].p) - offset
		if sep <= vec2.Epsilon {
			id := featureID{kind: featureEdge, indexA: refIndex, indexB: points[i].index}
			out = append(out, ManifoldPoint{
				LocalA:      xfA.ApplyInverse(points[i].p.Sub(refNormal.Scale(sep))),
				LocalB:      xfB.ApplyInverse(points[i].p),
				Penetration: -sep,
				ID:          id,
			})
		}
	}
	return out
}
