package geometry

import (
	"github.com/o0olele/gridnav-go/math32"
)

// ClosestPointOnSegment returns the point on segment [a, b] closest to point.
func ClosestPointOnSegment(a, b, point math32.Vector3) math32.Vector3 {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom == 0 {
		return a
	}

	t := point.Sub(a).Dot(ab) / denom
	t = math32.Clamp(t, 0, 1)
	return a.Add(ab.Mul(t))
}

// PointToSegmentDistance returns the distance from point to segment [a, b].
func PointToSegmentDistance(point, a, b math32.Vector3) float32 {
	return point.Distance(ClosestPointOnSegment(a, b, point))
}

// SegmentSegmentDistance returns the minimum distance between segments
// [p1, q1] and [p2, q2].
func SegmentSegmentDistance(p1, q1, p2, q2 math32.Vector3) float32 {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)

	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	const eps = 1e-8

	var s, t float32
	switch {
	case a <= eps && e <= eps:
		// Both segments degenerate to points.
		return p1.Distance(p2)
	case a <= eps:
		s = 0
		t = math32.Clamp(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if e <= eps {
			t = 0
			s = math32.Clamp(-c/a, 0, 1)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom > eps {
				s = math32.Clamp((b*f-c*e)/denom, 0, 1)
			} else {
				// Parallel segments: pick an arbitrary s and let t follow.
				s = 0
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = math32.Clamp(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = math32.Clamp((b-c)/a, 0, 1)
			}
		}
	}

	c1 := p1.Add(d1.Mul(s))
	c2 := p2.Add(d2.Mul(t))
	return c1.Distance(c2)
}
