package geom

// Path is an ordered list of points, either an open polyline (during
// facet slicing) or a closed polygon (after loop assembly).
type Path []MicroPoint

// Paths is a collection of independent Path values.
type Paths []Path

// IsAlmostFinished reports whether the path's last point is within
// snapDistance of its first, i.e. it is "morally" closed already.
func (p Path) IsAlmostFinished(snapDistance Micrometer) bool {
	if len(p) < 2 {
		return false
	}
	return p[len(p)-1].Sub(p[0]).ShorterThanOrEqual(snapDistance)
}

// Bounds returns the axis-aligned min/max corners of the path.
func (p Path) Bounds() (min, max MicroPoint) {
	if len(p) == 0 {
		return MicroPoint{}, MicroPoint{}
	}
	min, max = p[0], p[0]
	for _, pt := range p[1:] {
		if pt.X() < min.X() {
			min.SetX(pt.X())
		}
		if pt.Y() < min.Y() {
			min.SetY(pt.Y())
		}
		if pt.X() > max.X() {
			max.SetX(pt.X())
		}
		if pt.Y() > max.Y() {
			max.SetY(pt.Y())
		}
	}
	return min, max
}

// Bounds returns the axis-aligned min/max corners across all paths.
func (ps Paths) Bounds() (min, max MicroPoint) {
	first := true
	for _, p := range ps {
		if len(p) == 0 {
			continue
		}
		pmin, pmax := p.Bounds()
		if first {
			min, max = pmin, pmax
			first = false
			continue
		}
		if pmin.X() < min.X() {
			min.SetX(pmin.X())
		}
		if pmin.Y() < min.Y() {
			min.SetY(pmin.Y())
		}
		if pmax.X() > max.X() {
			max.SetX(pmax.X())
		}
		if pmax.Y() > max.Y() {
			max.SetY(pmax.Y())
		}
	}
	return min, max
}

// Points flattens the path into a plain point slice, a copy that does not
// alias the path's own backing array.
func (p Path) Points() []MicroPoint {
	return append([]MicroPoint(nil), p...)
}
