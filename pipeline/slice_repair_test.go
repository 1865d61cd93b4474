package pipeline

import (
	"testing"

	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

func TestRepairSlicesMergesNeighborsAndClearsError(t *testing.T) {
	rect := rectExpolygon(0, 0, 100, 100)

	below := object.NewLayer(0, 0, 200, 200, []*object.LayerRegion{object.NewLayerRegion(0, config.Flow{}, config.Flow{})})
	below.Region(0).Slices = geom.Surfaces{geom.NewSurface(rect, geom.Internal)}

	broken := object.NewLayer(1, 200, 400, 200, []*object.LayerRegion{object.NewLayerRegion(0, config.Flow{}, config.Flow{})})
	broken.SlicingErrors = true

	above := object.NewLayer(2, 400, 600, 200, []*object.LayerRegion{object.NewLayerRegion(0, config.Flow{}, config.Flow{})})
	above.Region(0).Slices = geom.Surfaces{geom.NewSurface(rect, geom.Internal)}

	obj := &object.PrintObject{Layers: []*object.Layer{below, broken, above}}

	repaired, err := RepairSlices(obj, &config.Options{}, stubClipper{})
	if err != nil {
		t.Fatalf("RepairSlices: %v", err)
	}
	if !repaired {
		t.Fatal("repaired = false, want true")
	}
	if broken.SlicingErrors {
		t.Error("SlicingErrors should be cleared once a layer is repaired")
	}

	fill := broken.Region(0).Slices
	if len(fill) != 1 || fill[0].Expolygon.Outer[0] != rect.Outer[0] {
		t.Errorf("repaired slices = %v, want the shared neighbor outline", fill)
	}
}

func TestRepairSlicesNoEligibleNeighborsLeavesErrorFlagged(t *testing.T) {
	layer := object.NewLayer(0, 0, 200, 200, []*object.LayerRegion{object.NewLayerRegion(0, config.Flow{}, config.Flow{})})
	layer.SlicingErrors = true

	obj := &object.PrintObject{Layers: []*object.Layer{layer}}

	repaired, err := RepairSlices(obj, &config.Options{}, stubClipper{})
	if err != nil {
		t.Fatalf("RepairSlices: %v", err)
	}
	if repaired {
		t.Error("repaired = true, want false when there is no error-free neighbor in either direction")
	}
	if !layer.SlicingErrors {
		t.Error("SlicingErrors should remain set when the layer could not be repaired")
	}
}

func TestRepairSlicesSkipsHealthyLayers(t *testing.T) {
	layer := object.NewLayer(0, 0, 200, 200, []*object.LayerRegion{object.NewLayerRegion(0, config.Flow{}, config.Flow{})})
	layer.Region(0).Slices = geom.Surfaces{geom.NewSurface(rectExpolygon(0, 0, 10, 10), geom.Internal)}

	obj := &object.PrintObject{Layers: []*object.Layer{layer}}

	repaired, err := RepairSlices(obj, &config.Options{}, stubClipper{})
	if err != nil {
		t.Fatalf("RepairSlices: %v", err)
	}
	if repaired {
		t.Error("repaired = true, want false when no layer is flagged with slicing errors")
	}
}
