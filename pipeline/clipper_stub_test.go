package pipeline

import (
	"reflect"

	"github.com/go-fdm/slicecore/clip"
	"github.com/go-fdm/slicecore/geom"
)

// stubClipper is a deterministic, equality-based stand-in for the real
// clipper2-backed engine, used by tests that only need set membership
// over a small number of distinguishable rectangles rather than exact
// polygon algebra. OffsetEx is the identity transform here: every test
// built on this stub picks fixtures where presence/absence of a region
// matters, never its exact inflated/deflated shape.
type stubClipper struct{}

func contains(set geom.Expolygons, e geom.Expolygon) bool {
	for _, s := range set {
		if reflect.DeepEqual(s, e) {
			return true
		}
	}
	return false
}

func (stubClipper) UnionEx(subjects, clips geom.Expolygons) (geom.Expolygons, error) {
	out := append(geom.Expolygons{}, subjects...)
	for _, e := range clips {
		if !contains(out, e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (stubClipper) DiffEx(subjects, clips geom.Expolygons) (geom.Expolygons, error) {
	var out geom.Expolygons
	for _, e := range subjects {
		if !contains(clips, e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// IntersectionEx keeps a subject whenever its bounding box lies entirely
// within some clip's bounding box, rather than computing exact polygon
// overlap. Every fixture these tests build is either identical to,
// disjoint from, or (for fill-pattern scan lines) fully nested inside the
// expolygon it is intersected against, so bounding-box containment gives
// the same answer exact clipping would.
func (stubClipper) IntersectionEx(subjects, clips geom.Expolygons) (geom.Expolygons, error) {
	var out geom.Expolygons
	for _, e := range subjects {
		for _, c := range clips {
			if boundsContain(c, e) {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

// boundsTolerance absorbs the 1-micrometer perpendicular pad
// clip.hairlineRect adds on each side of a fill-pattern scan line: a scan
// line generated exactly on a surface's own boundary would otherwise
// register as "not contained" by a single micrometer and lose its fill
// entirely, which a real clipping engine would not do.
const boundsTolerance = geom.Micrometer(2)

// boundsContain reports whether inner's axis-aligned bounding box lies
// within outer's, up to boundsTolerance.
func boundsContain(outer, inner geom.Expolygon) bool {
	omin, omax := outer.Outer.Bounds()
	imin, imax := inner.Outer.Bounds()
	return imin.X() >= omin.X()-boundsTolerance && imin.Y() >= omin.Y()-boundsTolerance &&
		imax.X() <= omax.X()+boundsTolerance && imax.Y() <= omax.Y()+boundsTolerance
}

func (stubClipper) OffsetEx(subjects geom.Expolygons, _ geom.Micrometer) (geom.Expolygons, error) {
	return append(geom.Expolygons{}, subjects...), nil
}

func (stubClipper) Area(e geom.Expolygon) float64 {
	return shoelaceArea(e.Outer)
}

func (stubClipper) Simplify(p geom.Path, _ geom.Micrometer) geom.Path {
	return p
}

func (stubClipper) IsPrintable(e geom.Expolygon, _ geom.Micrometer) bool {
	return shoelaceArea(e.Outer) > 0
}

func shoelaceArea(p geom.Path) float64 {
	if len(p) < 3 {
		return 0
	}
	var sum float64
	for i := range p {
		a := p[i]
		b := p[(i+1)%len(p)]
		sum += float64(a.X())*float64(b.Y()) - float64(b.X())*float64(a.Y())
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

var _ clip.Clipper = stubClipper{}
