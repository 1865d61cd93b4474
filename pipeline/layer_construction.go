package pipeline

import (
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

// ConstructLayers allocates empty layers at evenly spaced Z heights
// covering the object's bounding box (spec.md §4.1).
func ConstructLayers(obj *object.PrintObject, opts *config.Options) error {
	if len(obj.Meshes) == 0 {
		obj.Layers = nil
		return nil
	}

	minZ, maxZ := meshesZBounds(obj)

	h := opts.Print.LayerHeight
	if h <= 0 {
		h = 1
	}
	first := opts.Print.FirstLayerHeight
	if first <= 0 {
		first = h
	}

	var layers []*object.Layer
	sliceZ := minZ + first/2
	printZ := minZ + first
	layerHeight := first
	id := 0

	// Produce layers while slice_z is below the object's top, plus a single
	// layer for an object of zero height. No layer is produced beyond the
	// object, and no later stage prunes a trailing layer.
	for sliceZ < maxZ || id == 0 {
		regions := make([]*object.LayerRegion, len(obj.Meshes))
		for r := range obj.Meshes {
			regions[r] = object.NewLayerRegion(r, opts.PerimeterFlow(), opts.InfillFlow())
		}
		layers = append(layers, object.NewLayer(id, sliceZ, printZ, layerHeight, regions))

		id++
		sliceZ += h
		printZ += h
		layerHeight = h
	}

	obj.Layers = layers
	return nil
}

// meshesZBounds returns the combined Z range across every region's mesh.
func meshesZBounds(obj *object.PrintObject) (min, max geom.Micrometer) {
	first := true
	for _, m := range obj.Meshes {
		mn, mx := m.Bounds()
		if first {
			min, max = mn.Z, mx.Z
			first = false
			continue
		}
		if mn.Z < min {
			min = mn.Z
		}
		if mx.Z > max {
			max = mx.Z
		}
	}
	return min, max
}
