// Command slicecore loads one STL per material region and runs the
// layer-analysis pipeline over it, reporting the resulting layer and
// surface counts. It does not emit G-code (spec.md §1 Out of scope); it
// exists to exercise the pipeline end to end and as a template for a
// toolpath generator built on top of this core.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/mesh"
	"github.com/go-fdm/slicecore/object"
	"github.com/go-fdm/slicecore/pipeline"
)

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		opts.Logger.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (*config.Options, error) {
	fs := pflag.NewFlagSet("slicecore", pflag.ContinueOnError)

	layerHeight := fs.Float64("layer-height", 0.2, "layer height in millimeters")
	firstLayerHeight := fs.Float64("first-layer-height", 0.2, "first layer height in millimeters")
	perimeters := fs.Int("perimeters", 3, "number of perimeter loops")
	extraPerimeters := fs.Bool("extra-perimeters", true, "add extra perimeters under steep overhangs")
	fillDensity := fs.Float64("fill-density", 0.2, "sparse infill density, 0-1")
	fillPattern := fs.String("fill-pattern", "rectilinear", "sparse infill pattern: rectilinear, rectilinear-grid, honeycomb")
	topSolidLayers := fs.Int("top-solid-layers", 3, "number of solid layers under the top surface")
	bottomSolidLayers := fs.Int("bottom-solid-layers", 3, "number of solid layers above the bottom surface")
	solidInfillEvery := fs.Int("solid-infill-every-layers", 0, "force solid infill every N layers, 0 to disable")
	infillEvery := fs.Int("infill-every-layers", 1, "combine sparse infill across N layers")
	infillOnlyWhereNeeded := fs.Bool("infill-only-where-needed", false, "clip sparse infill to areas that support something above")
	nozzleDiameter := fs.Float64("nozzle-diameter", 0.4, "nozzle diameter in millimeters")
	extrusionWidth := fs.Float64("extrusion-width", 0.45, "extrusion width in millimeters")
	raftLayers := fs.Int("raft-layers", 0, "number of raft layers to reserve before the model")

	supportEnabled := fs.Bool("support-material", false, "enable support material generation")
	supportAngle := fs.Float64("support-threshold-angle", 55, "overhang angle in degrees below which support is generated, 0 to use support-default-overhang-width instead")
	supportDefaultOverhangWidth := fs.Float64("support-default-overhang-width", 0.4, "overhang width in millimeters used when support-threshold-angle is 0")
	supportPattern := fs.String("support-pattern", "rectilinear", "support fill pattern")
	supportSpacing := fs.Float64("support-spacing", 2.0, "support fill line spacing in millimeters")
	supportInterfaceSpacing := fs.Float64("support-interface-spacing", 0.2, "support interface fill line spacing in millimeters")
	supportInterfaceLayers := fs.Int("support-interface-layers", 2, "number of dense interface layers under the model")

	outputPath := fs.String("output", "", "directory to write debug artifacts to")
	verbose := fs.BoolP("verbose", "v", false, "log every pipeline stage")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		return nil, fmt.Errorf("slicecore: at least one input STL path is required, one per material region")
	}

	mm := func(v float64) geom.Micrometer { return geom.Micrometer(v * 1000) }

	opts := &config.Options{
		Print: config.Print{
			LayerHeight:            mm(*layerHeight),
			FirstLayerHeight:       mm(*firstLayerHeight),
			RaftLayers:             *raftLayers,
			Perimeters:             *perimeters,
			ExtraPerimeters:        *extraPerimeters,
			FillDensity:            *fillDensity,
			FillPattern:            *fillPattern,
			TopSolidLayers:         *topSolidLayers,
			BottomSolidLayers:      *bottomSolidLayers,
			SolidInfillEveryLayers: *solidInfillEvery,
			InfillEveryLayers:      *infillEvery,
			InfillOnlyWhereNeeded:  *infillOnlyWhereNeeded,
			NozzleDiameter:         mm(*nozzleDiameter),
			BridgeFlowWidth:        mm(*extrusionWidth),
			Support: config.Support{
				Enabled:              *supportEnabled,
				ThresholdAngle:       *supportAngle,
				DefaultOverhangWidth: mm(*supportDefaultOverhangWidth),
				Pattern:              *supportPattern,
				Spacing:              mm(*supportSpacing),
				InterfaceSpacing:     mm(*supportInterfaceSpacing),
				InterfaceLayers:      *supportInterfaceLayers,
			},
		},
		Printer: config.Printer{
			ExtrusionWidth: mm(*extrusionWidth),
			MinInfillArea:  float64(mm(0.5)) * float64(mm(0.5)),
		},
		InputFilePaths: inputs,
		OutputPath:     *outputPath,
		Verbose:        *verbose,
		Logger:         log.New(os.Stderr, "", log.LstdFlags),
	}

	return opts, nil
}

func run(opts *config.Options) error {
	start := time.Now()

	meshes := make([]mesh.TriangleMesh, len(opts.InputFilePaths))
	for i, path := range opts.InputFilePaths {
		m, err := mesh.LoadSTL(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		meshes[i] = m
		opts.Logger.Printf("loaded %s: %d facets", path, m.FacetCount())
	}

	obj := object.NewPrintObject(meshes)

	if err := pipeline.Run(obj, opts); err != nil {
		return err
	}

	report(opts, obj, time.Since(start))
	return nil
}

func report(opts *config.Options, obj *object.PrintObject, elapsed time.Duration) {
	surfaceCount := 0
	fillCount := 0
	for _, layer := range obj.Layers {
		for _, region := range layer.Regions {
			surfaceCount += len(region.Slices)
			fillCount += len(region.FillSurfaces)
		}
	}

	opts.Logger.Printf("done: %d layers, %d typed surfaces, %d fill surfaces, in %v",
		len(obj.Layers), surfaceCount, fillCount, elapsed)
}
