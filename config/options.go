// Package config defines the single immutable configuration value threaded
// through every pipeline stage (spec.md §6, spec.md §9 "Global
// configuration"). Nothing in this module reads process-wide mutable
// configuration state.
package config

import (
	"log"

	"github.com/go-fdm/slicecore/geom"
)

// Flow is the extrusion geometry a region's perimeters or fill are
// computed against (glossary: Flow).
type Flow struct {
	Width   geom.Micrometer
	Spacing geom.Micrometer
	Height  geom.Micrometer
}

// Support holds every support-material-related configuration value
// (spec.md §6 Configuration).
type Support struct {
	Enabled bool

	// ThresholdAngle is in degrees; 0 means "use DefaultOverhangWidth"
	// (spec.md §4.13) instead of deriving the overhang width from the
	// angle.
	ThresholdAngle float64

	// DefaultOverhangWidth is the overhang width used when ThresholdAngle
	// is 0 (spec.md §4.13 "or the region's default overhang width if no
	// threshold configured").
	DefaultOverhangWidth geom.Micrometer

	Pattern           string
	Angle             float64
	Spacing           geom.Micrometer
	InterfaceSpacing  geom.Micrometer
	InterfaceLayers   int
	EnforceLayers     int

	// ContactHeight is the layer height used for contact-area paths
	// (spec.md §4.13 "Per-layer emission").
	ContactHeight geom.Micrometer
}

// Print holds the geometric/process configuration enumerated in
// spec.md §6.
type Print struct {
	LayerHeight          geom.Micrometer
	FirstLayerHeight     geom.Micrometer
	RaftLayers           int
	Perimeters           int
	ExtraPerimeters      bool
	FillDensity          float64
	FillPattern          string
	TopSolidLayers       int
	BottomSolidLayers    int
	SolidInfillEveryLayers int
	InfillEveryLayers    int
	InfillOnlyWhereNeeded bool
	NozzleDiameter       geom.Micrometer

	// BridgeFlowWidth is the extrusion width used under bridges, needed
	// to compute the excess-height sparse-infill removal of spec.md §4.10.
	BridgeFlowWidth geom.Micrometer

	Support Support
}

// Printer holds the machine-geometry configuration.
type Printer struct {
	ExtrusionWidth geom.Micrometer

	// MinInfillArea discards fill surfaces smaller than this area
	// (spec.md §4.9 "infill-area threshold").
	MinInfillArea float64
}

// Options is the single immutable value threaded as an argument into
// every stage (spec.md §9 "Global configuration"). It is built once by
// the CLI (or by a test) and never mutated afterward.
type Options struct {
	Print   Print
	Printer Printer

	// InputFilePaths/OutputPath name the STL inputs and the directory
	// debug artifacts are written to; unused by the pure geometric
	// pipeline itself but threaded through like the teacher's own
	// data.GoSliceOptions.
	InputFilePaths []string
	OutputPath     string

	Verbose bool
	Logger  *log.Logger
}

// PerimeterFlow derives the Flow used for a region's perimeters.
func (o Options) PerimeterFlow() Flow {
	return Flow{Width: o.Printer.ExtrusionWidth, Spacing: o.Printer.ExtrusionWidth, Height: o.Print.LayerHeight}
}

// InfillFlow derives the Flow used for a region's infill.
func (o Options) InfillFlow() Flow {
	return Flow{Width: o.Printer.ExtrusionWidth, Spacing: o.Printer.ExtrusionWidth, Height: o.Print.LayerHeight}
}
