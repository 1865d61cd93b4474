package pipeline

import (
	"github.com/go-fdm/slicecore/clip"
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

// ClipFillSurfacesWhereNeeded sweeps each region top to bottom and keeps
// sparse internal fill only where it backs a top or internal-solid
// surface somewhere above it, dropping the rest to save material
// (spec.md §4.11). It is a no-op unless infill_only_where_needed is set.
func ClipFillSurfacesWhereNeeded(obj *object.PrintObject, opts *config.Options, engine clip.Clipper) error {
	if !opts.Print.InfillOnlyWhereNeeded {
		return nil
	}

	regionCount := meshRegionCount(obj.Meshes, obj.Layers)

	for r := 0; r < regionCount; r++ {
		var needed geom.Expolygons

		for i := len(obj.Layers) - 1; i >= 0; i-- {
			region := obj.Layers[i].Region(r)
			if region == nil {
				continue
			}

			solidAbove := append(geom.Expolygons{}, region.FillSurfaces.ByType(geom.Top).Expolygons()...)
			solidAbove = append(solidAbove, region.FillSurfaces.ByType(geom.InternalSolid).Expolygons()...)

			accumulated, err := engine.UnionEx(needed, solidAbove)
			if err != nil {
				return err
			}

			internal := region.FillSurfaces.ByType(geom.Internal)
			if len(internal) > 0 {
				kept, err := engine.IntersectionEx(internal.Expolygons(), accumulated)
				if err != nil {
					return err
				}

				var rewritten geom.Surfaces
				for _, s := range region.FillSurfaces {
					if s.Type != geom.Internal {
						rewritten = append(rewritten, s)
					}
				}
				rewritten = append(rewritten, geom.FromExpolygons(kept, geom.Internal)...)
				region.FillSurfaces = rewritten
			}

			needed, err = engine.IntersectionEx(accumulated, region.Slices.Expolygons())
			if err != nil {
				return err
			}
		}
	}

	return nil
}
