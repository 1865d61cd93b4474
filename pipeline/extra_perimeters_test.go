package pipeline

import (
	"testing"

	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

func TestExtraPerimeterHintsNoOpWhenDisabled(t *testing.T) {
	rect := rectExpolygon(0, 0, 100, 100)
	lower := object.NewLayerRegion(0, config.Flow{Spacing: 100}, config.Flow{})
	lower.Slices = geom.Surfaces{geom.NewSurface(rect, geom.Internal)}
	upper := object.NewLayerRegion(0, config.Flow{Spacing: 100}, config.Flow{})
	upper.Slices = geom.Surfaces{geom.NewSurface(rect, geom.Internal)}

	obj := &object.PrintObject{Layers: []*object.Layer{
		object.NewLayer(0, 0, 200, 200, []*object.LayerRegion{lower}),
		object.NewLayer(1, 200, 400, 200, []*object.LayerRegion{upper}),
	}}

	cases := []config.Print{
		{ExtraPerimeters: false, Perimeters: 1, FillDensity: 0.2},
		{ExtraPerimeters: true, Perimeters: 0, FillDensity: 0.2},
		{ExtraPerimeters: true, Perimeters: 1, FillDensity: 0},
	}
	for _, print := range cases {
		opts := &config.Options{Print: print}
		if err := ExtraPerimeterHints(obj, opts, stubClipper{}); err != nil {
			t.Fatalf("ExtraPerimeterHints: %v", err)
		}
		if lower.AdditionalInnerPerimeters(0) != 0 {
			t.Errorf("config %+v: extra perimeters should not run when any of its three gates is off", print)
		}
	}
}

// TestCountExtraPerimetersStopsOnEmptyBand models the stub clipper's
// offset being the identity transform: since growing or shrinking a shape
// by a fixed distance returns the same shape here, the outer-minus-inner
// band this function builds around e is always empty, so it must return
// immediately without recording any extra perimeter.
func TestCountExtraPerimetersStopsOnEmptyBand(t *testing.T) {
	rect := rectExpolygon(0, 0, 100, 100)
	region := object.NewLayerRegion(0, config.Flow{Spacing: 100}, config.Flow{})
	region.Slices = geom.Surfaces{geom.NewSurface(rect, geom.Internal)}

	upperBand := geom.Expolygons{rect}
	if err := countExtraPerimeters(region, 0, rect, upperBand, 100, 1, stubClipper{}); err != nil {
		t.Fatalf("countExtraPerimeters: %v", err)
	}
	if region.AdditionalInnerPerimeters(0) != 0 {
		t.Errorf("AdditionalInnerPerimeters = %d, want 0 when the offset band degenerates to empty", region.AdditionalInnerPerimeters(0))
	}
}

func TestExpolygonsAreaSumsEachElement(t *testing.T) {
	a := rectExpolygon(0, 0, 100, 100)   // area 10000
	b := rectExpolygon(0, 0, 50, 50)     // area 2500
	total := expolygonsArea(geom.Expolygons{a, b}, stubClipper{})
	if total != 12500 {
		t.Errorf("expolygonsArea = %v, want 12500", total)
	}
}
