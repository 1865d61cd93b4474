package pipeline

import (
	"github.com/go-fdm/slicecore/clip"
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/mesh"
	"github.com/go-fdm/slicecore/object"
)

// snapDistance thresholds follow galamdring-GoSlice/slicer/slice/layer.go's
// makePolygons: a tight tolerance for chaining touching-facet segments, a
// middle one for stitching two open polylines across a manifold gap (and
// for closing a polyline that stitch just finished off), and a looser one
// for the final finishing/minimum-length pass.
const (
	touchingSnapDistance = geom.Micrometer(30)
	stitchSnapDistance   = geom.Micrometer(100)
	bridgingSnapDistance = geom.Micrometer(1000)
)

// AssembleLoopsAndSurfaces connects each LayerRegion's unordered segments
// into closed polylines, flags layers where the reconstruction was
// topologically inconsistent, and builds each region's initial Slices
// from the successful loops (spec.md §4.3).
func AssembleLoopsAndSurfaces(obj *object.PrintObject, opts *config.Options, engine clip.Clipper) error {
	for _, layer := range obj.Layers {
		for regionID, region := range layer.Regions {
			m := meshFor(obj, regionID)

			loops, ok := assembleLoops(region, m)
			if !ok {
				layer.SlicingErrors = true
			}

			if len(loops) > 0 {
				asExpolygons := make(geom.Expolygons, len(loops))
				for i, loop := range loops {
					asExpolygons[i] = geom.NewExpolygon(loop, nil)
				}
				merged, err := engine.UnionEx(asExpolygons, nil)
				if err != nil {
					return err
				}
				region.Slices = geom.FromExpolygons(merged, geom.Internal)
			}

			region.ClearLines()
		}

		if err := layer.MakeSlices(engine); err != nil {
			return err
		}
	}
	return nil
}

// meshFor returns the mesh for a region id, nil once meshes have been
// released. Run releases the meshes right after facet slicing, so within
// Run loop assembly always sees nil here and closes loops by gap
// stitching alone.
func meshFor(obj *object.PrintObject, regionID int) mesh.TriangleMesh {
	if regionID < 0 || regionID >= len(obj.Meshes) {
		return nil
	}
	return obj.Meshes[regionID]
}

// assembleLoops chains region's unordered segments into closed polygons,
// grounded on galamdring-GoSlice/slicer/slice/layer.go's makePolygons:
// walk each segment's facet adjacency to find the next segment, then
// patch up any loops that didn't close exactly using two snap passes.
// ok is false if any loop is still open after both passes or is too short
// to keep.
func assembleLoops(region *object.LayerRegion, m mesh.TriangleMesh) (geom.Paths, bool) {
	if len(region.Lines) == 0 {
		return nil, true
	}

	var polygons geom.Paths
	var closed []bool
	added := make([]bool, len(region.Lines))

	for startIdx := range region.Lines {
		if added[startIdx] {
			continue
		}

		polygon := geom.Path{region.Lines[startIdx].Start}
		current := startIdx
		canClose := false

		for {
			canClose = false
			added[current] = true
			p0 := region.Lines[current].End
			polygon = append(polygon, p0)

			nextIndex := -1
			if m != nil {
				face := m.Facet(region.Lines[current].FaceIndex)
				for _, touchingFace := range face.TouchingFaceIndices() {
					if touchingFace < 0 {
						continue
					}
					touchingIdx, ok := region.SegmentByFace(touchingFace)
					if !ok {
						continue
					}
					diff := p0.Sub(region.Lines[touchingIdx].Start)
					if diff.ShorterThan(touchingSnapDistance) {
						if touchingIdx == startIdx {
							canClose = true
						}
						if added[touchingIdx] {
							continue
						}
						nextIndex = touchingIdx
					}
				}
			}

			if nextIndex == -1 {
				break
			}
			current = nextIndex
		}

		polygons = append(polygons, polygon)
		closed = append(closed, canClose)
	}

	return closeGaps(polygons, closed)
}

// closeGaps is the second pass of the teacher's makePolygons: stitch
// leftover open polylines together across small manifold gaps, then drop
// anything still open or too short to matter.
func closeGaps(polygons geom.Paths, closed []bool) (geom.Paths, bool) {
rerun:
	for i, polygon := range polygons {
		if polygon == nil || closed[i] {
			continue
		}

		best, bestScore := -1, stitchSnapDistance+1
		for j, other := range polygons {
			if other == nil || closed[j] || i == j {
				continue
			}
			diff := polygon[len(polygon)-1].Sub(other[0])
			if diff.ShorterThan(stitchSnapDistance) {
				score := diff.Size() - geom.Micrometer(len(other)*10)
				if score < bestScore {
					best, bestScore = j, score
				}
			}
		}

		if best > -1 {
			polygons[i] = append(polygons[i], polygons[best]...)
			if polygons[i].IsAlmostFinished(stitchSnapDistance) {
				polygons[i] = trimLastPoint(polygons[i])
				closed[i] = true
			}
			polygons[best] = nil
			goto rerun
		}
	}

	ok := true
	var result geom.Paths
	for i, poly := range polygons {
		if poly == nil {
			continue
		}

		if poly.IsAlmostFinished(bridgingSnapDistance) {
			poly = trimLastPoint(poly)
			closed[i] = true
		}

		length := geom.Micrometer(0)
		for n := 1; n < len(poly); n++ {
			length += poly[n].Sub(poly[n-1]).Size()
		}

		if closed[i] && length > bridgingSnapDistance {
			result = append(result, poly)
		} else if len(poly) > 0 {
			ok = false
		}
	}

	return result, ok
}

func trimLastPoint(p geom.Path) geom.Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}
