package pipeline

import (
	"github.com/go-fdm/slicecore/clip"
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

// GenerateSupportMaterial computes bulk, interface and contact support
// regions top-down over the whole object, then fills them with the
// configured pattern (spec.md §4.13). It is grounded on
// galamdring-GoSlice/modifier/support.go's detector/generator split —
// this stage folds both passes into one top-down sweep with an explicit
// sliding window instead of two passes over a string-keyed attribute
// side-table.
func GenerateSupportMaterial(obj *object.PrintObject, opts *config.Options, engine clip.Clipper) error {
	if !opts.Print.Support.Enabled && opts.Print.Support.EnforceLayers <= 0 {
		return nil
	}
	if len(obj.Layers) == 0 {
		return nil
	}

	flowWidth := opts.Printer.ExtrusionWidth
	distanceFromObject := flowWidth + flowWidth/2

	windowLen := opts.Print.Support.InterfaceLayers
	if windowLen <= 0 {
		windowLen = 1
	}

	var overhangWindow []geom.Expolygons // front = oldest, back = most recent (spec.md §4.13 upper_overhangs)
	var currentSupport geom.Expolygons

	for i := len(obj.Layers) - 1; i >= 0; i-- {
		layer := obj.Layers[i]
		enforced := i < opts.Print.Support.EnforceLayers

		off, err := engine.OffsetEx(layer.Slices, distanceFromObject)
		if err != nil {
			return err
		}

		if opts.Print.Support.Enabled || enforced {
			var latest geom.Expolygons
			if n := len(overhangWindow); n > 0 {
				latest = overhangWindow[n-1]
			}

			contact, err := engine.DiffEx(latest, off)
			if err != nil {
				return err
			}

			var older geom.Expolygons
			if n := len(overhangWindow); n > 1 {
				older, err = unionAll(engine, overhangWindow[:n-1])
				if err != nil {
					return err
				}
			}
			offAndContact, err := engine.UnionEx(off, contact)
			if err != nil {
				return err
			}
			interfaces, err := engine.DiffEx(older, offAndContact)
			if err != nil {
				return err
			}

			grown, err := engine.UnionEx(currentSupport, latest)
			if err != nil {
				return err
			}
			currentSupport, err = engine.DiffEx(grown, layer.Slices)
			if err != nil {
				return err
			}

			offAndInterfaces, err := engine.UnionEx(off, interfaces)
			if err != nil {
				return err
			}
			supportRegions, err := engine.DiffEx(currentSupport, offAndInterfaces)
			if err != nil {
				return err
			}

			layer.ContactAreas = contact
			layer.Interfaces = interfaces
			layer.SupportRegions = supportRegions
		}

		// Step 7: this layer's own overhang relative to the layer below it,
		// entered into the window for when the sweep reaches that layer.
		var lower geom.Expolygons
		if i > 0 {
			lower = obj.Layers[i-1].Slices
		}
		d := geom.Micrometer(0)
		if !enforced {
			d = overhangWidth(layer.Height, opts.Print.Support)
		}
		inset, err := engine.OffsetEx(layer.Slices, -d)
		if err != nil {
			return err
		}
		rawOverhang, err := engine.DiffEx(inset, lower)
		if err != nil {
			return err
		}
		grownOverhang, err := engine.OffsetEx(rawOverhang, 2*d)
		if err != nil {
			return err
		}

		overhangWindow = append(overhangWindow, grownOverhang)
		if len(overhangWindow) > windowLen {
			overhangWindow = overhangWindow[1:]
		}
	}

	return fillSupportLayers(obj, opts, engine)
}

// fillSupportLayers generates bulk and interface extrusion paths for
// every layer's computed support regions (spec.md §4.13 "Per-layer
// emission"). Layer 0 gets a solid base rather than the sparse bulk
// pattern, since it doubles as the support's bed contact.
func fillSupportLayers(obj *object.PrintObject, opts *config.Options, engine clip.Clipper) error {
	anglePatterns := supportAnglePatterns(opts, engine)
	interfacePattern := clip.NewPattern("rectilinear", opts.Print.Support.Angle+90, engine)

	for i, layer := range obj.Layers {
		islands, err := engine.UnionEx(layer.SupportRegions, layer.Interfaces)
		if err != nil {
			return err
		}
		islands, err = engine.UnionEx(islands, layer.ContactAreas)
		if err != nil {
			return err
		}
		if len(islands) == 0 {
			continue
		}
		layer.SupportIslands = islands

		if i == 0 {
			base, err := engine.UnionEx(layer.SupportRegions, layer.Interfaces)
			if err != nil {
				return err
			}
			base, err = engine.UnionEx(base, layer.ContactAreas)
			if err != nil {
				return err
			}
			var fills geom.Paths
			for _, e := range base {
				_, lines := clip.NewPattern("rectilinear", opts.Print.Support.Angle, engine).FillSurface(e, 0.5, opts.Printer.ExtrusionWidth)
				fills = append(fills, lines...)
			}
			layer.SupportFills = fills
			continue
		}

		flowWidth := opts.Printer.ExtrusionWidth
		bulkDensity := density(flowWidth, opts.Print.Support.Spacing)
		interfaceDensity := density(flowWidth, opts.Print.Support.InterfaceSpacing)

		bulk := anglePatterns[i%len(anglePatterns)]
		var fills geom.Paths
		for _, e := range layer.SupportRegions {
			_, lines := bulk.FillSurface(e, bulkDensity, flowWidth)
			fills = append(fills, lines...)
		}
		var interfaceFills geom.Paths
		for _, e := range layer.Interfaces {
			_, lines := interfacePattern.FillSurface(e, interfaceDensity, flowWidth)
			interfaceFills = append(interfaceFills, lines...)
		}
		layer.SupportFills = append(fills, interfaceFills...)

		var contactFills geom.Paths
		for _, e := range layer.ContactAreas {
			_, lines := interfacePattern.FillSurface(e, interfaceDensity, flowWidth)
			contactFills = append(contactFills, lines...)
		}
		layer.SupportContactFills = contactFills
		if len(contactFills) > 0 {
			layer.SupportContactHeight = opts.Print.Support.ContactHeight
		}
	}

	return nil
}

// overhangWidth computes the horizontal reach an overhang must have
// before it counts as unsupported (spec.md §4.13): derived from
// support_threshold when configured, or Support.DefaultOverhangWidth
// when the threshold is left at its "0 = auto" default.
func overhangWidth(layerHeight geom.Micrometer, support config.Support) geom.Micrometer {
	if support.ThresholdAngle > 0 {
		return thresholdDistance(layerHeight, support.ThresholdAngle+1)
	}
	return support.DefaultOverhangWidth
}

// unionAll folds UnionEx across a list of expolygon sets.
func unionAll(engine clip.Clipper, sets []geom.Expolygons) (geom.Expolygons, error) {
	var acc geom.Expolygons
	for _, s := range sets {
		var err error
		acc, err = engine.UnionEx(acc, s)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// density converts a desired line spacing into the density value
// Pattern.FillSurface expects (spacing = flowWidth / density).
func density(flowWidth, spacing geom.Micrometer) float64 {
	if spacing <= 0 {
		return 1
	}
	return float64(flowWidth) / float64(spacing)
}

// supportAnglePatterns returns the one or two alternating fill patterns
// named by support_material_pattern (spec.md §4.13 "Pattern generation").
func supportAnglePatterns(opts *config.Options, engine clip.Clipper) []clip.Pattern {
	if opts.Print.Support.Pattern == "rectilinear-grid" {
		return []clip.Pattern{
			clip.NewPattern("rectilinear", opts.Print.Support.Angle, engine),
			clip.NewPattern("rectilinear", opts.Print.Support.Angle+90, engine),
		}
	}
	return []clip.Pattern{clip.NewPattern(opts.Print.Support.Pattern, opts.Print.Support.Angle, engine)}
}
