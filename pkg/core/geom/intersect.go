package geom

// SegmentsIntersect reports whether segment p1-p2 crosses segment p3-p4.
// Parallel segments (including collinear ones) never intersect.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	r := p2.Sub(p1)
	s := p4.Sub(p3)
	det := cross(r, s)
	if det == 0 {
		return false
	}
	qp := p3.Sub(p1)
	t := cross(qp, s) / det
	u := cross(qp, r) / det
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// PointInPolygon reports whether p lies inside box using the even-odd rule.
func PointInPolygon(p Point, box Box) bool {
	inside := false
	for i, j := 0, len(box)-1; i < len(box); j, i = i, i+1 {
		a, b := box[i], box[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// BoxesIntersect reports whether two boxes overlap.
//
// Disjoint axis-aligned extents are rejected first. Otherwise every edge of
// a is tested against every edge of b, and finally the first corner of each
// box is tested for containment in the other. Both boxes are convex, so an
// overlap without any edge crossing implies full containment, which the
// corner test catches.
func BoxesIntersect(a, b Box) bool {
	aMinX, aMinY, aMaxX, aMaxY := a.Bounds()
	bMinX, bMinY, bMaxX, bMaxY := b.Bounds()
	if aMaxX < bMinX || bMaxX < aMinX || aMaxY < bMinY || bMaxY < aMinY {
		return false
	}

	for i := range 4 {
		p1, p2 := a.Edge(i)
		for j := range 4 {
			p3, p4 := b.Edge(j)
			if SegmentsIntersect(p1, p2, p3, p4) {
				return true
			}
		}
	}

	return PointInPolygon(a[0], b) || PointInPolygon(b[0], a)
}
