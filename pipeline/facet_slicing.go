package pipeline

import (
	"runtime"
	"sync"

	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/mesh"
	"github.com/go-fdm/slicecore/object"
)

// facetHit is one partial slicing result: the segment facet faceIndex
// produced where it crosses layer layerID's plane.
type facetHit struct {
	layerID int
	seg     object.Segment
}

// SliceFacets intersects each triangular facet with each layer plane it
// crosses, producing 2D line segments attached per (layer, region)
// (spec.md §4.2).
//
// Facets are processed in parallel once a mesh's facet count exceeds
// parallelThreshold (spec.md §4.2 Parallelism); each worker emits a
// partial slice of results purely from read-only mesh/layer data, and
// this function then merges them, on its own goroutine, into each
// LayerRegion's Lines. The merge is a plain append, which is
// commutative for the loop assembly that follows (spec.md §5 Ordering).
func SliceFacets(obj *object.PrintObject) error {
	for regionID, m := range obj.Meshes {
		hits := sliceMeshFacets(m, obj.Layers)
		for _, h := range hits {
			obj.Layers[h.layerID].Region(regionID).AddSegment(h.seg)
		}
	}
	return nil
}

func sliceMeshFacets(m mesh.TriangleMesh, layers []*object.Layer) []facetHit {
	facetCount := m.FacetCount()
	if facetCount == 0 || len(layers) == 0 {
		return nil
	}

	if facetCount <= parallelThreshold {
		var out []facetHit
		for i := 0; i < facetCount; i++ {
			out = append(out, sliceFacet(m.Facet(i), i, layers)...)
		}
		return out
	}

	workerCount := runtime.NumCPU()
	if workerCount < 1 {
		workerCount = 1
	}
	chunk := (facetCount + workerCount - 1) / workerCount

	partials := make([][]facetHit, workerCount)
	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		start := w * chunk
		end := start + chunk
		if start >= facetCount {
			break
		}
		if end > facetCount {
			end = facetCount
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			var local []facetHit
			for i := start; i < end; i++ {
				local = append(local, sliceFacet(m.Facet(i), i, layers)...)
			}
			partials[w] = local
		}(w, start, end)
	}
	wg.Wait()

	var out []facetHit
	for _, p := range partials {
		out = append(out, p...)
	}
	return out
}

// sliceFacet intersects one facet with every layer plane it crosses.
func sliceFacet(f mesh.Facet, faceIndex int, layers []*object.Layer) []facetHit {
	fmin, fmax := f.ZBounds()

	var out []facetHit
	for _, l := range layers {
		if l.SliceZ < fmin || l.SliceZ > fmax {
			continue
		}
		if seg, ok := intersectFacetPlane(f, l.SliceZ); ok {
			out = append(out, facetHit{layerID: l.ID, seg: object.NewSegment(seg[0], seg[1], faceIndex)})
		}
	}
	return out
}

// intersectFacetPlane intersects a facet with a horizontal plane at the
// given Z. Walking the triangle's three edges in winding order, the edge
// crossing from below to above the plane yields the segment's start
// point, and the edge crossing from above to below yields its end point;
// for a mesh with outward-pointing, consistently-wound facets this keeps
// the printable material on a consistent side of every emitted segment,
// so loops assembled from many facets' segments close consistently.
func intersectFacetPlane(f mesh.Facet, z geom.Micrometer) ([2]geom.MicroPoint, bool) {
	var start, end geom.MicroPoint
	haveStart, haveEnd := false, false

	for e := 0; e < 3; e++ {
		a, b := f.Vertices[e], f.Vertices[(e+1)%3]
		belowA, belowB := a.Z < z, b.Z < z
		if belowA == belowB {
			continue
		}

		t := float64(z-a.Z) / float64(b.Z-a.Z)
		pt := geom.NewMicroPoint(
			a.X+geom.Micrometer(float64(b.X-a.X)*t),
			a.Y+geom.Micrometer(float64(b.Y-a.Y)*t),
		)

		if belowA && !belowB {
			start, haveStart = pt, true
		} else {
			end, haveEnd = pt, true
		}
	}

	if !haveStart || !haveEnd {
		return [2]geom.MicroPoint{}, false
	}
	return [2]geom.MicroPoint{start, end}, true
}
