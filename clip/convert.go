// Package clip is the pipeline's façade over the external polygon
// primitive library (spec.md §6): union/diff/intersection/offset/
// simplify/area on expolygons, plus infill pattern generation.
package clip

import (
	clipper "github.com/go-clipper/clipper2/port"

	"github.com/go-fdm/slicecore/geom"
)

// clipperPoint converts a geom point to the external engine's representation.
func clipperPoint(p geom.MicroPoint) clipper.Point64 {
	return clipper.Point64{X: int64(p.X()), Y: int64(p.Y())}
}

// clipperPath converts a geom path to the external engine's representation.
func clipperPath(p geom.Path) clipper.Path64 {
	out := make(clipper.Path64, len(p))
	for i, pt := range p {
		out[i] = clipperPoint(pt)
	}
	return out
}

// clipperPaths converts a geom path list to the external engine's representation.
func clipperPaths(ps geom.Paths) clipper.Paths64 {
	out := make(clipper.Paths64, len(ps))
	for i, p := range ps {
		out[i] = clipperPath(p)
	}
	return out
}

// microPoint converts a point from the external engine's representation.
func microPoint(p clipper.Point64) geom.MicroPoint {
	return geom.NewMicroPoint(geom.Micrometer(p.X), geom.Micrometer(p.Y))
}

// microPath converts a path from the external engine's representation.
func microPath(p clipper.Path64) geom.Path {
	out := make(geom.Path, len(p))
	for i, pt := range p {
		out[i] = microPoint(pt)
	}
	return out
}

// microPaths converts a path list from the external engine's representation.
func microPaths(ps clipper.Paths64) geom.Paths {
	out := make(geom.Paths, len(ps))
	for i, p := range ps {
		out[i] = microPath(p)
	}
	return out
}

// expolygonsFromTree walks a PolyTree64 the way GenerateLayerParts walks a
// Clipper1 PolyTree: top-level children are outer contours, their children
// are holes, and holes' own children restart the cycle as nested islands.
func expolygonsFromTree(tree *clipper.PolyTree64) geom.Expolygons {
	var out geom.Expolygons
	var queue []*clipper.PolyPath64
	queue = append(queue, tree.Children()...)

	for len(queue) > 0 {
		var next []*clipper.PolyPath64
		for _, outer := range queue {
			var holes geom.Paths
			for _, hole := range outer.Children() {
				holes = append(holes, microPath(hole.Polygon()))
				next = append(next, hole.Children()...)
			}
			out = append(out, geom.NewExpolygon(microPath(outer.Polygon()), holes))
		}
		queue = next
	}
	return out
}

// expolygonsToPaths flattens expolygons back into a subject/clip path set
// for the boolean engine: every outer contour and every hole becomes its
// own path, relying on the fill rule to recover the original topology.
func expolygonsToPaths(es geom.Expolygons) geom.Paths {
	var out geom.Paths
	for _, e := range es {
		out = append(out, e.Outer)
		out = append(out, e.Holes...)
	}
	return out
}
