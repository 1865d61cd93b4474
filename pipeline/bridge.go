package pipeline

import (
	"math"

	"github.com/go-fdm/slicecore/clip"
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

// BridgeOverInfill finds internal-solid fill that hangs over sparse
// infill on the layer below and retypes it to internal-bridge, then
// removes the sparse infill segment that would otherwise print inside
// the bridge's extra extrusion height (spec.md §4.10).
func BridgeOverInfill(obj *object.PrintObject, opts *config.Options, engine clip.Clipper) error {
	for i, layer := range obj.Layers {
		if i == 0 {
			continue
		}
		lowerLayer := obj.Layers[i-1]

		var lowerInternal geom.Expolygons
		for _, r := range lowerLayer.Regions {
			lowerInternal = append(lowerInternal, r.FillSurfaces.ByType(geom.Internal).Expolygons()...)
		}
		if len(lowerInternal) == 0 {
			continue
		}

		for _, region := range layer.Regions {
			solid := region.FillSurfaces.ByType(geom.InternalSolid)
			if len(solid) == 0 {
				continue
			}

			toBridge, err := engine.IntersectionEx(solid.Expolygons(), lowerInternal)
			if err != nil {
				return err
			}
			if len(toBridge) == 0 {
				continue
			}

			angle := bridgeAngle(toBridge)

			remaining, err := engine.DiffEx(solid.Expolygons(), toBridge)
			if err != nil {
				return err
			}

			var rewritten geom.Surfaces
			for _, s := range region.FillSurfaces {
				if s.Type != geom.InternalSolid {
					rewritten = append(rewritten, s)
				}
			}
			rewritten = append(rewritten, geom.FromExpolygons(remaining, geom.InternalSolid)...)
			for _, e := range toBridge {
				bridged := geom.NewSurface(e, geom.InternalBridge)
				bridged.BridgeAngle = &angle
				rewritten = append(rewritten, bridged)
			}
			region.FillSurfaces = rewritten

			if err := removeExcessHeightInfill(obj, i, toBridge, opts, engine); err != nil {
				return err
			}
		}
	}

	return nil
}

// bridgeAngle picks a deterministic bridging direction. This core never
// runs a span-detection heuristic over the bridged area's internal
// structure (that belongs to a path planner downstream); it records a
// fixed angle so the value is always present for the surface type that
// requires one (spec.md §3 "BridgeAngle is set only for InternalBridge
// surfaces").
func bridgeAngle(_ geom.Expolygons) float64 {
	return 0
}

// removeExcessHeightInfill deletes the portion of one or more layers'
// fill that sits directly beneath a new bridge, since the bridge's
// extrusion reserves extra height that would otherwise collide with
// infill underneath it (spec.md §4.10 "excess height" note): starting
// at the bridge's own layer height, it keeps trimming layer i−1, i−2,
// ... as long as the accumulated bridge height exceeds the layers
// already consumed.
func removeExcessHeightInfill(obj *object.PrintObject, i int, toBridge geom.Expolygons, opts *config.Options, engine clip.Clipper) error {
	if opts.Print.BridgeFlowWidth <= 0 {
		return nil
	}

	excess := opts.Print.BridgeFlowWidth - obj.Layers[i].Height
	for k := 1; i-k >= 0; k++ {
		target := obj.Layers[i-k]
		if excess < target.Height {
			break
		}
		if err := subtractFromEveryRegion(target, toBridge, engine); err != nil {
			return err
		}
		excess -= target.Height
	}

	return nil
}

// subtractFromEveryRegion removes toBridge from every fill surface of
// every region of layer, preserving each surface's type (spec.md §4.10:
// "subtract to_bridge from every surface (preserving type) of every
// region of layer i−k").
func subtractFromEveryRegion(layer *object.Layer, toBridge geom.Expolygons, engine clip.Clipper) error {
	for _, region := range layer.Regions {
		if len(region.FillSurfaces) == 0 {
			continue
		}

		var order []geom.SurfaceType
		byType := map[geom.SurfaceType]geom.Surfaces{}
		for _, s := range region.FillSurfaces {
			if _, seen := byType[s.Type]; !seen {
				order = append(order, s.Type)
			}
			byType[s.Type] = append(byType[s.Type], s)
		}

		var rewritten geom.Surfaces
		for _, t := range order {
			trimmed, err := engine.DiffEx(byType[t].Expolygons(), toBridge)
			if err != nil {
				return err
			}
			rewritten = append(rewritten, geom.FromExpolygons(trimmed, t)...)
		}
		region.FillSurfaces = rewritten
	}

	return nil
}

// thresholdDistance converts a support threshold angle into the
// horizontal offset used by stage 4.13; only support generation calls it
// (spec.md §4.13).
func thresholdDistance(layerHeight geom.Micrometer, angleDegrees float64) geom.Micrometer {
	if angleDegrees <= 0 || angleDegrees >= 90 {
		return 0
	}
	rad := angleDegrees * math.Pi / 180
	return geom.Micrometer(float64(layerHeight) / math.Tan(rad))
}
