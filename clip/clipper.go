package clip

import (
	"fmt"

	clipper "github.com/go-clipper/clipper2/port"

	"github.com/go-fdm/slicecore/geom"
)

// Clipper is the boundary interface for the external polygon primitive
// library named in spec.md §6: union_ex, diff_ex, intersection_ex,
// offset_ex, is_printable, area, simplify. The clip package owns exactly
// one implementation, backed by clipper2; callers never import clipper2
// directly.
type Clipper interface {
	// UnionEx unions two sets of expolygons into a new set of expolygons.
	UnionEx(subjects, clips geom.Expolygons) (geom.Expolygons, error)

	// DiffEx subtracts clips from subjects.
	DiffEx(subjects, clips geom.Expolygons) (geom.Expolygons, error)

	// IntersectionEx intersects subjects with clips.
	IntersectionEx(subjects, clips geom.Expolygons) (geom.Expolygons, error)

	// OffsetEx grows (delta > 0) or shrinks (delta < 0) a set of
	// expolygons by delta.
	OffsetEx(subjects geom.Expolygons, delta geom.Micrometer) (geom.Expolygons, error)

	// Area returns the signed area of an expolygon (outer minus holes).
	Area(e geom.Expolygon) float64

	// Simplify removes vertices from a path within the given tolerance.
	Simplify(p geom.Path, tolerance geom.Micrometer) geom.Path

	// IsPrintable reports whether the expolygon admits at least one
	// perimeter pass at the given extrusion width.
	IsPrintable(e geom.Expolygon, width geom.Micrometer) bool
}

// clipperEngine implements Clipper using github.com/go-clipper/clipper2.
//
// Per spec.md §9 ("Dynamic polygon primitive state"), the engine carries
// no shared mutable state of its own: each call builds fresh Paths64 and
// leaves nothing behind, so one clipperEngine value may be handed to every
// worker goroutine in a parallel stage without synchronization, and a
// fresh one is still cheap to build per worker when a stage wants
// per-worker isolation.
type clipperEngine struct{}

// NewClipper returns a new polygon engine handle.
func NewClipper() Clipper {
	return clipperEngine{}
}

func (clipperEngine) UnionEx(subjects, clips geom.Expolygons) (geom.Expolygons, error) {
	return booleanEx(clipper.Union, subjects, clips)
}

func (clipperEngine) DiffEx(subjects, clips geom.Expolygons) (geom.Expolygons, error) {
	return booleanEx(clipper.Difference, subjects, clips)
}

func (clipperEngine) IntersectionEx(subjects, clips geom.Expolygons) (geom.Expolygons, error) {
	return booleanEx(clipper.Intersection, subjects, clips)
}

func booleanEx(op clipper.ClipType, subjects, clips geom.Expolygons) (geom.Expolygons, error) {
	if len(subjects) == 0 && op != clipper.Union {
		return nil, nil
	}

	subjectPaths := clipperPaths(expolygonsToPaths(subjects))
	clipPaths := clipperPaths(expolygonsToPaths(clips))

	tree, _, err := clipper.BooleanOp64Tree(op, clipper.NonZero, subjectPaths, clipPaths)
	if err != nil {
		return nil, fmt.Errorf("clip: boolean op failed: %w", err)
	}

	return expolygonsFromTree(tree), nil
}

func (clipperEngine) OffsetEx(subjects geom.Expolygons, delta geom.Micrometer) (geom.Expolygons, error) {
	if len(subjects) == 0 {
		return nil, nil
	}

	paths := clipperPaths(expolygonsToPaths(subjects))
	inflated, err := clipper.InflatePaths64(paths, float64(delta), clipper.Square, clipper.ClosedPolygon)
	if err != nil {
		return nil, fmt.Errorf("clip: offset failed: %w", err)
	}

	// Re-union the offset result to recover clean outer/hole topology;
	// offsetting can make previously disjoint holes touch or overlap.
	tree, _, err := clipper.BooleanOp64Tree(clipper.Union, clipper.NonZero, inflated, nil)
	if err != nil {
		return nil, fmt.Errorf("clip: offset re-union failed: %w", err)
	}

	return expolygonsFromTree(tree), nil
}

func (clipperEngine) Area(e geom.Expolygon) float64 {
	area := clipper.Area64(clipperPath(e.Outer))
	for _, hole := range e.Holes {
		area -= clipper.Area64(clipperPath(hole))
	}
	return area
}

func (clipperEngine) Simplify(p geom.Path, tolerance geom.Micrometer) geom.Path {
	simplified, err := clipper.SimplifyPath64(clipperPath(p), float64(tolerance), true)
	if err != nil {
		return p
	}
	return microPath(simplified)
}

// IsPrintable insets the contour by half the extrusion width and checks
// that something survives: a contour narrower than one bead can't take a
// perimeter pass (spec.md §4.7 printability filter).
func (e clipperEngine) IsPrintable(ex geom.Expolygon, width geom.Micrometer) bool {
	inset, err := e.OffsetEx(geom.Expolygons{ex}, -width/2)
	if err != nil {
		return false
	}
	for _, r := range inset {
		if e.Area(r) > 0 {
			return true
		}
	}
	return false
}
