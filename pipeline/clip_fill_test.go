package pipeline

import (
	"reflect"
	"testing"

	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

func TestClipFillSurfacesWhereNeededDropsUnbackedInfill(t *testing.T) {
	rectA := rectExpolygon(0, 0, 50, 50)
	rectB := rectExpolygon(100, 100, 150, 150)

	top := object.NewLayerRegion(0, config.Flow{}, config.Flow{})
	top.Slices = geom.Surfaces{geom.NewSurface(rectA, geom.Top)}
	top.FillSurfaces = geom.Surfaces{geom.NewSurface(rectA, geom.Top)}

	middle := object.NewLayerRegion(0, config.Flow{}, config.Flow{})
	middle.Slices = geom.Surfaces{
		geom.NewSurface(rectA, geom.Internal),
		geom.NewSurface(rectB, geom.Internal),
	}
	middle.FillSurfaces = geom.Surfaces{
		geom.NewSurface(rectA, geom.Internal),
		geom.NewSurface(rectB, geom.Internal),
	}

	bottom := object.NewLayerRegion(0, config.Flow{}, config.Flow{})
	bottom.Slices = geom.Surfaces{
		geom.NewSurface(rectA, geom.Internal),
		geom.NewSurface(rectB, geom.Internal),
	}
	bottom.FillSurfaces = geom.Surfaces{
		geom.NewSurface(rectA, geom.Internal),
		geom.NewSurface(rectB, geom.Internal),
	}

	obj := &object.PrintObject{Layers: []*object.Layer{
		object.NewLayer(0, 0, 200, 200, []*object.LayerRegion{bottom}),
		object.NewLayer(1, 200, 400, 200, []*object.LayerRegion{middle}),
		object.NewLayer(2, 400, 600, 200, []*object.LayerRegion{top}),
	}}
	opts := &config.Options{Print: config.Print{InfillOnlyWhereNeeded: true}}

	if err := ClipFillSurfacesWhereNeeded(obj, opts, stubClipper{}); err != nil {
		t.Fatalf("ClipFillSurfacesWhereNeeded: %v", err)
	}

	for i, layer := range []*object.Layer{obj.Layers[0], obj.Layers[1]} {
		fill := layer.Region(0).FillSurfaces.ByType(geom.Internal)
		if len(fill) != 1 || !reflect.DeepEqual(fill[0].Expolygon, rectA) {
			t.Errorf("layer %d internal fill = %v, want only rectA (the column under the top surface)", i, fill)
		}
	}
}

func TestClipFillSurfacesWhereNeededNoOpWhenDisabled(t *testing.T) {
	rect := rectExpolygon(0, 0, 50, 50)
	region := object.NewLayerRegion(0, config.Flow{}, config.Flow{})
	region.FillSurfaces = geom.Surfaces{geom.NewSurface(rect, geom.Internal)}

	obj := &object.PrintObject{Layers: []*object.Layer{
		object.NewLayer(0, 0, 200, 200, []*object.LayerRegion{region}),
	}}
	opts := &config.Options{}

	if err := ClipFillSurfacesWhereNeeded(obj, opts, stubClipper{}); err != nil {
		t.Fatalf("ClipFillSurfacesWhereNeeded: %v", err)
	}
	if len(obj.Layers[0].Region(0).FillSurfaces) != 1 {
		t.Error("expected no changes when infill_only_where_needed is unset")
	}
}
