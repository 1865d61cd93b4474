package pipeline

import (
	"github.com/go-fdm/slicecore/clip"
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

// DiscoverHorizontalShells propagates top/bottom surfaces across a
// configured number of neighbor layers, converting internal fill to
// internal-solid to form the printed shell around sparse infill
// (spec.md §4.9).
func DiscoverHorizontalShells(obj *object.PrintObject, opts *config.Options, engine clip.Clipper) error {
	regionCount := meshRegionCount(obj.Meshes, obj.Layers)

	for r := 0; r < regionCount; r++ {
		for i, layer := range obj.Layers {
			region := layer.Region(r)
			if region == nil {
				continue
			}

			if opts.Print.SolidInfillEveryLayers > 0 && i%opts.Print.SolidInfillEveryLayers == 0 {
				region.FillSurfaces = convertInternal(region.FillSurfaces, geom.InternalSolid)
			}

			for _, seed := range []geom.SurfaceType{geom.Top, geom.Bottom} {
				solidLayers := opts.Print.TopSolidLayers
				dir := -1 // sweep downward for TOP
				if seed == geom.Bottom {
					solidLayers = opts.Print.BottomSolidLayers
					dir = +1 // sweep upward for BOTTOM
				}
				if solidLayers <= 1 {
					continue
				}

				seedProjection := layer.Regions[r].Slices.ByType(seed).Expolygons()
				if len(seedProjection) == 0 {
					continue
				}

				for n := 1; n <= solidLayers-1; n++ {
					neighborIdx := i + dir*n
					if neighborIdx < 0 || neighborIdx >= len(obj.Layers) {
						break
					}
					neighbor := obj.Layers[neighborIdx].Region(r)
					if neighbor == nil {
						break
					}

					stop, err := propagateShell(engine, seedProjection, neighbor)
					if err != nil {
						return err
					}
					if stop {
						break
					}
				}
			}
		}

		pruneRegionFillSurfaces(obj, r, opts, engine)
	}

	return nil
}

// propagateShell applies one sweep step against a neighbor region's fill
// surfaces. It returns stop=true when the sweep should halt (no overlap
// found), per spec.md §4.9.
func propagateShell(engine clip.Clipper, seedProjection geom.Expolygons, neighbor *object.LayerRegion) (bool, error) {
	internal := neighbor.FillSurfaces.ByType(geom.Internal).Expolygons()
	internalSolid := neighbor.FillSurfaces.ByType(geom.InternalSolid).Expolygons()

	internalOrSolid, err := engine.UnionEx(internal, internalSolid)
	if err != nil {
		return true, err
	}

	newSolid, err := engine.IntersectionEx(seedProjection, internalOrSolid)
	if err != nil {
		return true, err
	}
	if len(newSolid) == 0 {
		return true, nil
	}

	combinedSolid, err := engine.UnionEx(internalSolid, newSolid)
	if err != nil {
		return true, err
	}

	newInternal, err := engine.DiffEx(internal, combinedSolid)
	if err != nil {
		return true, err
	}

	subtractFrom, err := engine.UnionEx(combinedSolid, newInternal)
	if err != nil {
		return true, err
	}

	var rewritten geom.Surfaces
	for _, s := range neighbor.FillSurfaces {
		switch s.Type {
		case geom.Internal, geom.InternalSolid:
			continue
		case geom.Top, geom.Bottom:
			remaining, err := engine.DiffEx(geom.Expolygons{s.Expolygon}, subtractFrom)
			if err != nil {
				return true, err
			}
			rewritten = append(rewritten, geom.FromExpolygons(remaining, s.Type)...)
		default:
			rewritten = append(rewritten, s)
		}
	}
	rewritten = append(rewritten, geom.FromExpolygons(newInternal, geom.Internal)...)
	rewritten = append(rewritten, geom.FromExpolygons(combinedSolid, geom.InternalSolid)...)

	neighbor.FillSurfaces = rewritten
	return false, nil
}

// convertInternal retypes every Internal fill surface to t, leaving other
// types untouched (spec.md §4.9 solid_infill_every_layers).
func convertInternal(surfaces geom.Surfaces, t geom.SurfaceType) geom.Surfaces {
	out := make(geom.Surfaces, len(surfaces))
	for i, s := range surfaces {
		out[i] = s
		if s.Type == geom.Internal {
			out[i].Type = t
		}
	}
	return out
}

// pruneRegionFillSurfaces discards fill surfaces below the infill-area
// threshold and, if infill is disabled entirely, drops every remaining
// Internal surface (spec.md §4.9, last paragraph).
func pruneRegionFillSurfaces(obj *object.PrintObject, r int, opts *config.Options, engine clip.Clipper) {
	for _, layer := range obj.Layers {
		region := layer.Region(r)
		if region == nil {
			continue
		}

		var kept geom.Surfaces
		for _, s := range region.FillSurfaces {
			if opts.Print.FillDensity == 0 && s.Type == geom.Internal {
				continue
			}
			if engine.Area(s.Expolygon) < opts.Printer.MinInfillArea {
				continue
			}
			kept = append(kept, s)
		}
		region.FillSurfaces = kept
	}
}
