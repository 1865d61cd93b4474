package clip

import (
	"math"

	convexhull "github.com/furstenheim/go-convex-hull-2d"

	"github.com/go-fdm/slicecore/geom"
)

// Pattern is the external fill library's filler interface (spec.md §6):
// a fixed fill angle plus a method turning one expolygon into the
// polylines that cover it at the requested density.
type Pattern interface {
	// Angle returns the fill angle in degrees.
	Angle() float64

	// FillSurface returns the extrusion params used and the generated
	// polylines covering surface at the given density and flow spacing.
	FillSurface(surface geom.Expolygon, density float64, flowSpacing geom.Micrometer) (FillParams, geom.Paths)
}

// FillParams carries the derived values a caller needs to emit the
// returned polylines as extrusion paths.
type FillParams struct {
	LineSpacing geom.Micrometer
	Angle       float64
}

// hullPoint adapts geom.MicroPoint to the convex-hull library's point
// interface.
type hullPoint struct {
	p geom.MicroPoint
}

func (h hullPoint) GetX() float64 { return float64(h.p.X()) }
func (h hullPoint) GetY() float64 { return float64(h.p.Y()) }

// tightBounds returns the bounding box of the convex hull of outline's
// points rather than outline's own axis-aligned bounds. For very
// non-rectangular slices (rounded or diagonal outlines) the hull leaves
// out wasted corners that the outline's own bounding box would still
// have to scan.
func tightBounds(outline geom.Path) (min, max geom.MicroPoint) {
	if len(outline) < 3 {
		return outline.Bounds()
	}

	pts := make([]convexhull.Point, len(outline))
	for i, p := range outline {
		pts[i] = hullPoint{p}
	}

	hull := convexhull.ConvexHull(pts)
	if len(hull) == 0 {
		return outline.Bounds()
	}

	hullPath := make(geom.Path, len(hull))
	for i, p := range hull {
		hullPath[i] = geom.NewMicroPoint(geom.Micrometer(p.GetX()), geom.Micrometer(p.GetY()))
	}
	return hullPath.Bounds()
}

// linearPattern produces parallel straight scan lines, the base pattern
// behind rectilinear and (doubled at 90°) rectilinear-grid fill
// (spec.md §6, grounded on galamdring-GoSlice/clip/clipper.go's
// getLinearFill).
type linearPattern struct {
	angle  float64
	engine Clipper
}

// NewLinearPattern returns a Pattern generating straight parallel lines
// at the given angle.
func NewLinearPattern(angle float64, engine Clipper) Pattern {
	return linearPattern{angle: angle, engine: engine}
}

func (l linearPattern) Angle() float64 { return l.angle }

func (l linearPattern) FillSurface(surface geom.Expolygon, density float64, flowSpacing geom.Micrometer) (FillParams, geom.Paths) {
	if density <= 0 || flowSpacing <= 0 {
		return FillParams{Angle: l.angle}, nil
	}

	spacing := geom.Micrometer(float64(flowSpacing) / density)
	if spacing <= 0 {
		spacing = 1
	}

	rad := l.angle * math.Pi / 180
	rotated := rotateExpolygon(surface, -rad)

	min, max := tightBounds(rotated.Outer)
	var rawLines geom.Paths
	line := 0
	for x := min.X(); x <= max.X(); x += spacing {
		if line%2 == 0 {
			rawLines = append(rawLines, geom.Path{
				geom.NewMicroPoint(x, min.Y()),
				geom.NewMicroPoint(x, max.Y()),
			})
		} else {
			rawLines = append(rawLines, geom.Path{
				geom.NewMicroPoint(x, max.Y()),
				geom.NewMicroPoint(x, min.Y()),
			})
		}
		line++
	}

	clipped := clipOpenLines(l.engine, rotated, rawLines)

	out := make(geom.Paths, len(clipped))
	for i, p := range clipped {
		out[i] = rotatePath(p, rad)
	}

	return FillParams{LineSpacing: spacing, Angle: l.angle}, out
}

// rotateExpolygon rotates every point of e by rad radians around the origin.
func rotateExpolygon(e geom.Expolygon, rad float64) geom.Expolygon {
	holes := make(geom.Paths, len(e.Holes))
	for i, h := range e.Holes {
		holes[i] = rotatePath(h, rad)
	}
	return geom.NewExpolygon(rotatePath(e.Outer, rad), holes)
}

func rotatePath(p geom.Path, rad float64) geom.Path {
	sin, cos := math.Sin(rad), math.Cos(rad)
	out := make(geom.Path, len(p))
	for i, pt := range p {
		x, y := float64(pt.X()), float64(pt.Y())
		out[i] = geom.NewMicroPoint(
			geom.Micrometer(x*cos-y*sin),
			geom.Micrometer(x*sin+y*cos),
		)
	}
	return out
}

// clipOpenLines clips a set of infinite-looking scan lines to an
// expolygon using an intersection with a degenerate zero-width "subject"
// built from the lines: the engine's boolean op works on closed paths, so
// each candidate line is approximated as a hairline rectangle before
// intersecting, then collapsed back to its centerline.
func clipOpenLines(engine Clipper, bounds geom.Expolygon, lines geom.Paths) geom.Paths {
	var out geom.Paths
	for _, ln := range lines {
		if len(ln) != 2 {
			continue
		}
		seg := hairlineRect(ln[0], ln[1])
		clipped, err := engine.IntersectionEx(geom.Expolygons{{Outer: seg}}, geom.Expolygons{bounds})
		if err != nil {
			continue
		}
		for _, r := range clipped {
			out = append(out, centerline(r.Outer))
		}
	}
	return out
}

// hairlineRect builds a degenerate rectangle of 2-micrometer width (1
// micrometer to each side) following the a-b segment, used only as an
// intersection subject.
func hairlineRect(a, b geom.MicroPoint) geom.Path {
	dx, dy := float64(b.X()-a.X()), float64(b.Y()-a.Y())
	length := math.Hypot(dx, dy)
	if length == 0 {
		return geom.Path{a, b}
	}
	nx, ny := -dy/length, dx/length
	return geom.Path{
		geom.NewMicroPoint(a.X()+geom.Micrometer(nx), a.Y()+geom.Micrometer(ny)),
		geom.NewMicroPoint(b.X()+geom.Micrometer(nx), b.Y()+geom.Micrometer(ny)),
		geom.NewMicroPoint(b.X()-geom.Micrometer(nx), b.Y()-geom.Micrometer(ny)),
		geom.NewMicroPoint(a.X()-geom.Micrometer(nx), a.Y()-geom.Micrometer(ny)),
	}
}

// centerline collapses a clipped hairline rectangle back to its two
// defining endpoints (the two endpoints of its longest edge).
func centerline(p geom.Path) geom.Path {
	if len(p) < 2 {
		return p
	}
	var best geom.Path
	bestLen := geom.Micrometer(-1)
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		l := a.Sub(b).Size()
		if l > bestLen {
			bestLen = l
			best = geom.Path{a, b}
		}
	}
	return best
}

// gridPattern alternates two linear passes 90° apart, used for
// rectilinear-grid fill (spec.md §6).
type gridPattern struct {
	a, b linearPattern
}

// NewGridPattern returns a Pattern alternating angle and angle+90.
func NewGridPattern(angle float64, engine Clipper) Pattern {
	return gridPattern{
		a: linearPattern{angle: angle, engine: engine},
		b: linearPattern{angle: angle + 90, engine: engine},
	}
}

func (g gridPattern) Angle() float64 { return g.a.angle }

func (g gridPattern) FillSurface(surface geom.Expolygon, density float64, flowSpacing geom.Micrometer) (FillParams, geom.Paths) {
	paramsA, linesA := g.a.FillSurface(surface, density/2, flowSpacing)
	_, linesB := g.b.FillSurface(surface, density/2, flowSpacing)
	return paramsA, append(linesA, linesB...)
}

// honeycombPattern produces a connected hexagonal lattice, approximated
// as a single continuous zig-zag per hex row rotated by the fill angle
// (spec.md §6 support_material_pattern / fill_pattern honeycomb).
type honeycombPattern struct {
	angle  float64
	engine Clipper
}

// NewHoneycombPattern returns a Pattern generating a hexagonal lattice.
func NewHoneycombPattern(angle float64, engine Clipper) Pattern {
	return honeycombPattern{angle: angle, engine: engine}
}

func (h honeycombPattern) Angle() float64 { return h.angle }

func (h honeycombPattern) FillSurface(surface geom.Expolygon, density float64, flowSpacing geom.Micrometer) (FillParams, geom.Paths) {
	if density <= 0 || flowSpacing <= 0 {
		return FillParams{Angle: h.angle}, nil
	}

	cellSize := geom.Micrometer(float64(flowSpacing) / density)
	if cellSize <= 0 {
		cellSize = 1
	}
	rowHeight := geom.Micrometer(float64(cellSize) * math.Sqrt(3))

	rad := h.angle * math.Pi / 180
	rotated := rotateExpolygon(surface, -rad)
	min, max := tightBounds(rotated.Outer)

	var rawLines geom.Paths
	row := 0
	for y := min.Y(); y <= max.Y(); y += rowHeight / 2 {
		var line geom.Path
		offset := geom.Micrometer(0)
		if row%2 == 1 {
			offset = cellSize / 2
		}
		up := row%2 == 0
		for x := min.X() - cellSize; x <= max.X()+cellSize; x += cellSize {
			peak := y
			if up {
				peak = y - rowHeight/4
			} else {
				peak = y + rowHeight/4
			}
			line = append(line, geom.NewMicroPoint(x+offset, peak))
			up = !up
		}
		if len(line) > 1 {
			rawLines = append(rawLines, line)
		}
		row++
	}

	var segments geom.Paths
	for _, line := range rawLines {
		for i := 0; i+1 < len(line); i++ {
			segments = append(segments, geom.Path{line[i], line[i+1]})
		}
	}

	clipped := clipOpenLines(h.engine, rotated, segments)
	out := make(geom.Paths, len(clipped))
	for i, p := range clipped {
		out[i] = rotatePath(p, rad)
	}

	return FillParams{LineSpacing: cellSize, Angle: h.angle}, out
}

// NewPattern builds a Pattern by name, matching
// Options.FillPattern/SupportMaterialPattern (spec.md §6).
func NewPattern(name string, angle float64, engine Clipper) Pattern {
	switch name {
	case "rectilinear-grid":
		return NewGridPattern(angle, engine)
	case "honeycomb":
		return NewHoneycombPattern(angle, engine)
	default:
		return NewLinearPattern(angle, engine)
	}
}
