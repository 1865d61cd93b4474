package pipeline

import (
	"github.com/go-fdm/slicecore/clip"
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

// DetectSurfaceTypes classifies each layer's slices as top/bottom/
// internal by comparing with the upper and lower layers' unions, with a
// membrane correction for regions sandwiched thin enough that both sides
// are exposed (spec.md §4.7). It then populates FillSurfaces by clipping
// the typed partition to each region's fill boundary.
func DetectSurfaceTypes(obj *object.PrintObject, opts *config.Options, engine clip.Clipper) error {
	for i, layer := range obj.Layers {
		var upper, lower geom.Expolygons
		if i+1 < len(obj.Layers) {
			upper = obj.Layers[i+1].Slices
		}
		if i-1 >= 0 {
			lower = obj.Layers[i-1].Slices
		}

		for _, region := range layer.Regions {
			if err := classifyRegion(region, upper, lower, opts, engine); err != nil {
				return err
			}
		}
	}

	for _, layer := range obj.Layers {
		for _, region := range layer.Regions {
			if err := populateFillSurfaces(region, opts, engine); err != nil {
				return err
			}
		}
	}

	return nil
}

func classifyRegion(region *object.LayerRegion, upper, lower geom.Expolygons, opts *config.Options, engine clip.Clipper) error {
	s := region.Slices.Expolygons()
	if len(s) == 0 {
		region.Slices = nil
		return nil
	}

	var top, bottom geom.Expolygons
	var err error

	if len(upper) == 0 {
		top = s
	} else {
		top, err = engine.DiffEx(s, upper)
		if err != nil {
			return err
		}
	}
	top = filterPrintable(top, region.Flow.Width, engine)

	if len(lower) == 0 {
		bottom = s
	} else {
		bottom, err = engine.DiffEx(s, lower)
		if err != nil {
			return err
		}
	}
	bottom = filterPrintable(bottom, region.Flow.Width, engine)

	if len(top) > 0 && len(bottom) > 0 {
		overlap, err := engine.IntersectionEx(top, bottom)
		if err != nil {
			return err
		}
		if len(overlap) > 0 {
			bottom, err = engine.UnionEx(bottom, overlap)
			if err != nil {
				return err
			}
			top, err = engine.DiffEx(top, overlap)
			if err != nil {
				return err
			}
		}
	}

	topOrBottom, err := engine.UnionEx(top, bottom)
	if err != nil {
		return err
	}
	internal, err := engine.DiffEx(s, topOrBottom)
	if err != nil {
		return err
	}
	internal = filterPrintable(internal, region.Flow.Width, engine)

	var slices geom.Surfaces
	slices = append(slices, geom.FromExpolygons(bottom, geom.Bottom)...)
	slices = append(slices, geom.FromExpolygons(top, geom.Top)...)
	slices = append(slices, geom.FromExpolygons(internal, geom.Internal)...)
	region.Slices = slices

	return nil
}

// filterPrintable keeps only the expolygons that admit at least one
// perimeter pass at the given width (spec.md §4.7 printability filter).
func filterPrintable(es geom.Expolygons, width geom.Micrometer, engine clip.Clipper) geom.Expolygons {
	var out geom.Expolygons
	for _, e := range es {
		if engine.IsPrintable(e, width) {
			out = append(out, e)
		}
	}
	return out
}

// populateFillSurfaces intersects each typed slice with the region's fill
// boundary (the area left over once the perimeters reserve their band),
// preserving surface type (spec.md §4.7).
func populateFillSurfaces(region *object.LayerRegion, opts *config.Options, engine clip.Clipper) error {
	if len(region.Slices) == 0 {
		region.FillSurfaces = nil
		return nil
	}

	inset := geom.Micrometer(opts.Print.Perimeters) * region.Flow.Spacing
	boundary, err := engine.OffsetEx(region.Slices.Expolygons(), -inset)
	if err != nil {
		return err
	}

	var fill geom.Surfaces
	for _, s := range region.Slices {
		clipped, err := engine.IntersectionEx(geom.Expolygons{s.Expolygon}, boundary)
		if err != nil {
			return err
		}
		fill = append(fill, geom.FromExpolygons(clipped, s.Type)...)
	}
	region.FillSurfaces = fill
	return nil
}
