package object

import "github.com/go-fdm/slicecore/geom"

// Layer is a horizontal cross-section of the object at a fixed Z
// (spec.md §3). Id equals the layer's index in its object's layer list
// and is reassigned whenever a layer is removed (spec.md §3 invariant:
// "id equals the layer's index").
type Layer struct {
	ID       int
	SliceZ   geom.Micrometer
	PrintZ   geom.Micrometer
	Height   geom.Micrometer

	// SlicingErrors flags a layer whose loop assembly was topologically
	// inconsistent (spec.md §4.3); cleared once stage 4 repairs it.
	SlicingErrors bool

	Regions []*LayerRegion

	// Slices is the union of every region's slices: the layer's whole
	// islands, maintained by MakeSlices (spec.md §4.4).
	Slices geom.Expolygons

	// Support-material fields (spec.md §4.13, §6 Outputs).
	SupportRegions      geom.Expolygons
	Interfaces          geom.Expolygons
	ContactAreas        geom.Expolygons
	SupportFills        geom.Paths
	SupportContactFills geom.Paths
	SupportIslands      geom.Expolygons

	// SupportContactHeight is the extrusion height SupportContactFills
	// print at, which may differ from Height (spec.md §4.13 "contact
	// paths use support_material_contact_height").
	SupportContactHeight geom.Micrometer
}

// NewLayer builds an empty layer at the given index and Z height, with
// one region per material region.
func NewLayer(id int, sliceZ, printZ, height geom.Micrometer, regions []*LayerRegion) *Layer {
	return &Layer{
		ID:     id,
		SliceZ: sliceZ,
		PrintZ: printZ,
		Height: height,
		Regions: regions,
	}
}

// Region returns the layer region for the given material region id, or
// nil if out of range.
func (l *Layer) Region(regionID int) *LayerRegion {
	if regionID < 0 || regionID >= len(l.Regions) {
		return nil
	}
	return l.Regions[regionID]
}

// Empty reports whether the layer has no slices and none of its regions
// has thin walls, used by the empty-prefix trim (spec.md §4.6).
func (l *Layer) Empty() bool {
	if len(l.Slices) > 0 {
		return false
	}
	for _, r := range l.Regions {
		if len(r.ThinWalls) > 0 {
			return false
		}
	}
	return true
}

// unioner is the minimal clip.Clipper surface MakeSlices needs; declared
// here rather than imported to keep object free of a clip dependency
// cycle (pipeline wires the real implementation in).
type unioner interface {
	UnionEx(subjects, clips geom.Expolygons) (geom.Expolygons, error)
}

// MakeSlices unions every region's slices into the layer's whole-layer
// islands (spec.md §4.4). Used anywhere a cross-region outline of the
// layer is required, notably surface type detection and support
// material.
func (l *Layer) MakeSlices(engine unioner) error {
	var all geom.Expolygons
	for _, r := range l.Regions {
		all = append(all, r.Slices.Expolygons()...)
	}

	if len(all) == 0 {
		l.Slices = nil
		return nil
	}

	unioned, err := engine.UnionEx(all, nil)
	if err != nil {
		return err
	}
	l.Slices = unioned
	return nil
}
