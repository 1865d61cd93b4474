package pipeline

import (
	"github.com/go-fdm/slicecore/clip"
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

// RepairSlices reconstructs the slices of every layer flagged with
// SlicingErrors by merging the nearest error-free neighbor layers above
// and below (spec.md §4.5). It reports whether any layer was repaired,
// so the caller can emit a single warning regardless of how many layers
// were affected (spec.md §7).
func RepairSlices(obj *object.PrintObject, opts *config.Options, engine clip.Clipper) (bool, error) {
	repairedAny := false

	for i, layer := range obj.Layers {
		if !layer.SlicingErrors {
			continue
		}

		upper := nearestErrorFree(obj.Layers, i, +1)
		lower := nearestErrorFree(obj.Layers, i, -1)
		if upper == nil && lower == nil {
			continue
		}

		for regionID, region := range layer.Regions {
			var contours, holes geom.Expolygons
			for _, src := range []*object.Layer{upper, lower} {
				if src == nil {
					continue
				}
				for _, s := range src.Region(regionID).Slices {
					contours = append(contours, geom.NewExpolygon(s.Expolygon.Outer, nil))
					for _, h := range s.Expolygon.Holes {
						holes = append(holes, geom.NewExpolygon(h, nil))
					}
				}
			}

			contourUnion, err := engine.UnionEx(contours, nil)
			if err != nil {
				return repairedAny, err
			}
			holeUnion, err := engine.UnionEx(holes, nil)
			if err != nil {
				return repairedAny, err
			}

			repaired, err := engine.DiffEx(contourUnion, holeUnion)
			if err != nil {
				return repairedAny, err
			}

			region.Slices = geom.FromExpolygons(repaired, geom.Internal)
		}

		layer.SlicingErrors = false
		repairedAny = true

		if err := layer.MakeSlices(engine); err != nil {
			return repairedAny, err
		}
	}

	return repairedAny, nil
}

// nearestErrorFree searches outward from index i in the given direction
// (+1 upward, -1 downward) for the nearest layer without SlicingErrors.
func nearestErrorFree(layers []*object.Layer, i, dir int) *object.Layer {
	for j := i + dir; j >= 0 && j < len(layers); j += dir {
		if !layers[j].SlicingErrors {
			return layers[j]
		}
	}
	return nil
}
