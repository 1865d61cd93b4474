package object

import (
	"testing"

	"github.com/go-fdm/slicecore/geom"
)

func TestLayerRegionAddSegmentIndexesByFace(t *testing.T) {
	r := NewLayerRegion(0, config0(), config0())
	s0 := NewSegment(geom.NewMicroPoint(0, 0), geom.NewMicroPoint(1, 1), 5)
	s1 := NewSegment(geom.NewMicroPoint(1, 1), geom.NewMicroPoint(2, 2), 7)

	r.AddSegment(s0)
	r.AddSegment(s1)

	idx, ok := r.SegmentByFace(7)
	if !ok || r.Lines[idx] != s1 {
		t.Errorf("SegmentByFace(7) = (%d, %v), want the segment added for facet 7", idx, ok)
	}

	if _, ok := r.SegmentByFace(99); ok {
		t.Error("SegmentByFace should report false for a facet with no segment")
	}
}

func TestLayerRegionClearLines(t *testing.T) {
	r := NewLayerRegion(0, config0(), config0())
	r.AddSegment(NewSegment(geom.NewMicroPoint(0, 0), geom.NewMicroPoint(1, 1), 0))
	r.ClearLines()

	if len(r.Lines) != 0 {
		t.Errorf("Lines = %v, want empty after ClearLines", r.Lines)
	}
	if _, ok := r.SegmentByFace(0); ok {
		t.Error("face index should no longer resolve after ClearLines")
	}
}

func TestLayerRegionAdditionalInnerPerimeters(t *testing.T) {
	r := NewLayerRegion(0, config0(), config0())
	if r.AdditionalInnerPerimeters(0) != 0 {
		t.Error("a surface with no recorded extra perimeters should report 0")
	}

	r.AddInnerPerimeter(2)
	r.AddInnerPerimeter(2)
	r.AddInnerPerimeter(0)

	if got := r.AdditionalInnerPerimeters(2); got != 2 {
		t.Errorf("AdditionalInnerPerimeters(2) = %d, want 2", got)
	}
	if got := r.AdditionalInnerPerimeters(0); got != 1 {
		t.Errorf("AdditionalInnerPerimeters(0) = %d, want 1", got)
	}
	if got := r.AdditionalInnerPerimeters(5); got != 0 {
		t.Errorf("AdditionalInnerPerimeters(5) = %d, want 0", got)
	}
}
