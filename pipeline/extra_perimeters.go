package pipeline

import (
	"github.com/go-fdm/slicecore/clip"
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

// extraPerimeterOverlapRatio is the "at least 20%" threshold of
// spec.md §4.8.
const extraPerimeterOverlapRatio = 0.2

// ExtraPerimeterHints finds slices whose upper neighbor recedes steeply
// enough that an extra inner perimeter should be printed on this layer to
// avoid a gap under the slope (spec.md §4.8). It only runs when
// extra_perimeters, perimeters > 0 and fill_density > 0 are all set.
func ExtraPerimeterHints(obj *object.PrintObject, opts *config.Options, engine clip.Clipper) error {
	if !opts.Print.ExtraPerimeters || opts.Print.Perimeters <= 0 || opts.Print.FillDensity <= 0 {
		return nil
	}

	for i, layer := range obj.Layers {
		if i+1 >= len(obj.Layers) {
			continue
		}

		for regionID, region := range layer.Regions {
			upperRegion := obj.Layers[i+1].Region(regionID)
			if upperRegion == nil || len(upperRegion.Slices) == 0 {
				continue
			}

			sp := region.Flow.Spacing
			u := upperRegion.Slices.Expolygons()

			grown, err := engine.OffsetEx(u, sp)
			if err != nil {
				return err
			}
			shrunk, err := engine.OffsetEx(u, -sp)
			if err != nil {
				return err
			}
			upperBand, err := engine.DiffEx(grown, shrunk)
			if err != nil {
				return err
			}
			if len(upperBand) == 0 {
				continue
			}

			for sliceIdx, slice := range region.Slices {
				if err := countExtraPerimeters(region, sliceIdx, slice.Expolygon, upperBand, sp, opts.Print.Perimeters, engine); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func countExtraPerimeters(region *object.LayerRegion, sliceIdx int, e geom.Expolygon, upperBand geom.Expolygons, sp geom.Micrometer, perimeters int, engine clip.Clipper) error {
	n := perimeters + 1
	for {
		outer, err := engine.OffsetEx(geom.Expolygons{e}, -(geom.Micrometer(n-1)*sp + offsetEpsilon))
		if err != nil {
			return err
		}
		if len(outer) == 0 {
			return nil
		}

		inner, err := engine.OffsetEx(geom.Expolygons{e}, -geom.Micrometer(n)*sp)
		if err != nil {
			return err
		}
		if len(inner) == 0 {
			return nil
		}

		band, err := engine.DiffEx(outer, inner)
		if err != nil {
			return err
		}
		bandArea := expolygonsArea(band, engine)
		if bandArea <= 0 {
			return nil
		}

		overlap, err := engine.IntersectionEx(band, upperBand)
		if err != nil {
			return err
		}
		overlapArea := expolygonsArea(overlap, engine)

		if overlapArea < extraPerimeterOverlapRatio*bandArea {
			return nil
		}

		region.AddInnerPerimeter(sliceIdx)
		n++
	}
}

func expolygonsArea(es geom.Expolygons, engine clip.Clipper) float64 {
	var total float64
	for _, e := range es {
		total += engine.Area(e)
	}
	return total
}
