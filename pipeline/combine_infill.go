package pipeline

import (
	"github.com/go-fdm/slicecore/clip"
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

// combinableFillTypes are the surface types spec.md §4.12 combines
// across layers, each handled independently so a layer's INTERNAL-SOLID
// never bleeds into its INTERNAL accounting or vice versa.
var combinableFillTypes = []geom.SurfaceType{geom.Internal, geom.InternalSolid}

// combineInfillOverlapRatio is the extra clearance margin a rectilinear
// or honeycomb combined-infill region (or any INTERNAL-SOLID region,
// regardless of pattern) gets on top of its flow-width margin, so the
// taller combined extrusion fully seats over the perimeters it bridges
// (spec.md §4.12 "pattern-dependent overlap").
const combineInfillOverlapRatio = 0.18

// CombineInfill groups consecutive layers and replaces each group's
// sparse infill with a single thicker surface printed at the group's top
// layer, trimming only the combined area from the rest of the group
// (spec.md §4.12). It only runs when infill_every_layers > 1 (after
// clamping to the nozzle's layer-count reach) and fill_density > 0.
func CombineInfill(obj *object.PrintObject, opts *config.Options, engine clip.Clipper) error {
	if opts.Print.FillDensity <= 0 {
		return nil
	}

	every := opts.Print.InfillEveryLayers
	if opts.Print.NozzleDiameter > 0 && opts.Print.LayerHeight > 0 {
		if maxReach := int(opts.Print.NozzleDiameter / opts.Print.LayerHeight); maxReach < every {
			every = maxReach
		}
	}
	if every <= 1 {
		return nil
	}

	regionCount := meshRegionCount(obj.Meshes, obj.Layers)

	for r := 0; r < regionCount; r++ {
		for i := 0; i < len(obj.Layers); {
			end := i + every
			if end > len(obj.Layers) {
				end = len(obj.Layers)
			}
			group := obj.Layers[i:end]

			if len(group) < 2 {
				i = end
				continue
			}

			for _, t := range combinableFillTypes {
				if err := combineGroup(group, r, t, opts, engine); err != nil {
					return err
				}
			}
			i = end
		}
	}

	return nil
}

// combineGroup intersects, clears, grows and re-applies one surface
// type's combined fill area across group.
func combineGroup(group []*object.Layer, r int, t geom.SurfaceType, opts *config.Options, engine clip.Clipper) error {
	intersection, ok, err := combinedFillArea(group, r, t, opts, engine)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	grown, err := growForClearance(group, r, t, intersection, opts, engine)
	if err != nil {
		return err
	}

	return applyCombinedFill(group, r, t, grown, engine)
}

// combinedFillArea intersects type t's fill surfaces across every layer
// in the group, then drops parts below the infill-area threshold. ok is
// false if any layer lacks a region, has no surfaces of this type, or
// the intersection (after thresholding) is empty, in which case the
// group is left untouched for this type.
func combinedFillArea(group []*object.Layer, r int, t geom.SurfaceType, opts *config.Options, engine clip.Clipper) (geom.Expolygons, bool, error) {
	var intersection geom.Expolygons

	for gi, layer := range group {
		region := layer.Region(r)
		if region == nil {
			return nil, false, nil
		}

		surfaces := region.FillSurfaces.ByType(t).Expolygons()
		if len(surfaces) == 0 {
			return nil, false, nil
		}

		if gi == 0 {
			intersection = surfaces
			continue
		}

		next, err := engine.IntersectionEx(intersection, surfaces)
		if err != nil {
			return nil, false, err
		}
		if len(next) == 0 {
			return nil, false, nil
		}
		intersection = next
	}

	intersection = filterByArea(intersection, opts.Printer.MinInfillArea, engine)
	if len(intersection) == 0 {
		return nil, false, nil
	}

	return intersection, true, nil
}

// filterByArea drops expolygons whose area is below minArea.
func filterByArea(es geom.Expolygons, minArea float64, engine clip.Clipper) geom.Expolygons {
	if minArea <= 0 {
		return es
	}
	var kept geom.Expolygons
	for _, e := range es {
		if engine.Area(e) >= minArea {
			kept = append(kept, e)
		}
	}
	return kept
}

// growForClearance expands the combined intersection by half the
// infill-flow width plus half the perimeter-flow width, with an
// additional pattern-dependent overlap for rectilinear/honeycomb fill or
// any INTERNAL-SOLID region (spec.md §4.12).
func growForClearance(group []*object.Layer, r int, t geom.SurfaceType, intersection geom.Expolygons, opts *config.Options, engine clip.Clipper) (geom.Expolygons, error) {
	region := group[len(group)-1].Region(r)

	margin := region.InfillFlow.Width/2 + region.Flow.Width/2

	switch opts.Print.FillPattern {
	case "rectilinear", "rectilinear-grid", "honeycomb":
		margin += geom.Micrometer(float64(region.InfillFlow.Width) * combineInfillOverlapRatio)
	default:
		if t == geom.InternalSolid {
			margin += geom.Micrometer(float64(region.InfillFlow.Width) * combineInfillOverlapRatio)
		}
	}

	if margin <= 0 {
		return intersection, nil
	}
	return engine.OffsetEx(intersection, margin)
}

// applyCombinedFill subtracts grown from every layer's surfaces of type
// t in the group (preserving whatever of that type falls outside the
// combined area), then adds grown back to the group's top layer as a
// single surface of type t carrying depth_layers = len(group).
func applyCombinedFill(group []*object.Layer, r int, t geom.SurfaceType, grown geom.Expolygons, engine clip.Clipper) error {
	for _, layer := range group {
		region := layer.Region(r)

		remaining, err := engine.DiffEx(region.FillSurfaces.ByType(t).Expolygons(), grown)
		if err != nil {
			return err
		}

		var rewritten geom.Surfaces
		for _, s := range region.FillSurfaces {
			if s.Type != t {
				rewritten = append(rewritten, s)
			}
		}
		rewritten = append(rewritten, geom.FromExpolygons(remaining, t)...)
		region.FillSurfaces = rewritten
	}

	top := group[len(group)-1].Region(r)
	for _, e := range grown {
		s := geom.NewSurface(e, t)
		s.DepthLayers = len(group)
		top.FillSurfaces = append(top.FillSurfaces, s)
	}

	return nil
}
