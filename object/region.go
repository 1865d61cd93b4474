// Package object holds the owning data model of spec.md §3: PrintObject,
// Layer and LayerRegion. PrintObject owns its Layers exclusively; a Layer
// holds no reference back to its object, and a LayerRegion refers to its
// material region by index.
package object

import (
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
)

// Segment is one 2D intersection of a facet with a layer plane, produced
// by facet slicing (spec.md §4.2) and consumed by loop assembly
// (spec.md §4.3). It lives only during those two stages
// (spec.md §3 Lifecycle: "lines live only during slicing").
type Segment struct {
	Start, End geom.MicroPoint
	FaceIndex  int

	// addedToPolygon is loop-assembly bookkeeping, grounded on
	// galamdring-GoSlice/slicer/slice/layer.go's segment.addedToPolygon.
	addedToPolygon bool
}

// NewSegment builds a Segment for the given facet.
func NewSegment(start, end geom.MicroPoint, faceIndex int) Segment {
	return Segment{Start: start, End: end, FaceIndex: faceIndex}
}

// LayerRegion is the portion of a Layer belonging to one material region
// (spec.md §3).
type LayerRegion struct {
	RegionID int
	Flow     config.Flow
	InfillFlow config.Flow

	// Lines holds the transient open segments produced by facet slicing,
	// consumed and cleared by loop assembly (spec.md §3 Lifecycle).
	Lines []Segment

	// faceToSegment indexes Lines by the facet that produced them, the
	// adjacency lookup loop assembly needs (spec.md §4.3); grounded on
	// galamdring-GoSlice/slicer/slice/layer.go's faceToSegmentIndex.
	faceToSegment map[int]int

	// Slices is the ordered, typed partition of this region's share of
	// the layer outline (spec.md §3); written in stage 3, rewritten in
	// stage 4 if repaired, retyped in stage 6, never resized after.
	Slices geom.Surfaces

	// FillSurfaces is the typed surface list fill generation consumes,
	// first populated in stage 6 and rewritten by stages 7 and 8.
	FillSurfaces geom.Surfaces

	Perimeters geom.Paths
	ThinFills  geom.Paths
	ThinWalls  geom.Paths

	// extraPerimeters is the side-table for Surface.AdditionalInnerPerimeters
	// (spec.md §9 "Surface identity"), keyed by the surface's index within
	// Slices at the time stage 4.8 runs.
	extraPerimeters map[int]int
}

// NewLayerRegion builds an empty region for the given material region id.
func NewLayerRegion(regionID int, flow, infillFlow config.Flow) *LayerRegion {
	return &LayerRegion{
		RegionID:      regionID,
		Flow:          flow,
		InfillFlow:    infillFlow,
		faceToSegment: map[int]int{},
	}
}

// AddSegment records a segment produced by facet slicing and indexes it
// by facet id for loop assembly's adjacency walk.
func (r *LayerRegion) AddSegment(s Segment) {
	r.faceToSegment[s.FaceIndex] = len(r.Lines)
	r.Lines = append(r.Lines, s)
}

// SegmentByFace returns the segment produced by the given facet, if any.
func (r *LayerRegion) SegmentByFace(faceIndex int) (int, bool) {
	idx, ok := r.faceToSegment[faceIndex]
	return idx, ok
}

// ClearLines drops the transient segment list once loops have been
// formed (spec.md §3 Lifecycle, §5 Resource policy).
func (r *LayerRegion) ClearLines() {
	r.Lines = nil
	r.faceToSegment = nil
}

// AdditionalInnerPerimeters returns the extra-perimeter count recorded
// for the surface at the given index of Slices.
func (r *LayerRegion) AdditionalInnerPerimeters(sliceIndex int) int {
	return r.extraPerimeters[sliceIndex]
}

// AddInnerPerimeter increments the extra-perimeter count for the surface
// at the given index of Slices (spec.md §4.8, §9 Surface identity).
func (r *LayerRegion) AddInnerPerimeter(sliceIndex int) {
	if r.extraPerimeters == nil {
		r.extraPerimeters = map[int]int{}
	}
	r.extraPerimeters[sliceIndex]++
}
