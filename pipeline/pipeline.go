// Package pipeline implements the nine-stage layer-analysis pipeline of
// spec.md §2/§4: one file per stage, run strictly sequentially by Run.
package pipeline

import (
	"fmt"
	"sync"

	"github.com/go-fdm/slicecore/clip"
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/mesh"
	"github.com/go-fdm/slicecore/object"
)

// ErrInvalidMesh is returned when no layers could be formed after slicing
// (spec.md §7 InvalidMesh).
var ErrInvalidMesh = fmt.Errorf("slicecore/pipeline: invalid input: no layers could be formed")

// parallelThreshold is the facet count above which facet slicing splits
// its work across goroutines (spec.md §4.2 Parallelism: "e.g. 500").
const parallelThreshold = 500

// offsetEpsilon is the extra inward margin of the outer offset of the
// extra-perimeter band (extra_perimeters.go); no other offset step uses
// it, including support material's offset_ex(-d) followed by
// offset_ex(2*d).
const offsetEpsilon = 10 // micrometers

// warnOnce reports a given warning key to the logger at most once per
// pipeline run (spec.md §7 "one-time warnings").
type warnOnce struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newWarnOnce() *warnOnce {
	return &warnOnce{seen: map[string]bool{}}
}

func (w *warnOnce) warn(opts *config.Options, key, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	if opts.Logger != nil {
		opts.Logger.Printf("warning: %s", msg)
	}
}

// Run executes the full layer-analysis pipeline over a single print
// object (spec.md §2 System Overview), stages strictly sequential.
func Run(obj *object.PrintObject, opts *config.Options) error {
	engine := clip.NewClipper()
	warn := newWarnOnce()

	logStage := func(name string) {
		if opts.Verbose && opts.Logger != nil {
			opts.Logger.Printf("stage: %s (%d layers)", name, len(obj.Layers))
		}
	}

	logStage("layer construction")
	if err := ConstructLayers(obj, opts); err != nil {
		return fmt.Errorf("layer construction: %w", err)
	}

	logStage("facet slicing")
	if err := SliceFacets(obj); err != nil {
		return fmt.Errorf("facet slicing: %w", err)
	}
	if len(obj.Layers) == 0 {
		return ErrInvalidMesh
	}
	obj.ReleaseMeshes()

	logStage("loop assembly")
	if err := AssembleLoopsAndSurfaces(obj, opts, engine); err != nil {
		return fmt.Errorf("loop assembly: %w", err)
	}

	logStage("slice repair")
	repaired, err := RepairSlices(obj, opts, engine)
	if err != nil {
		return fmt.Errorf("slice repair: %w", err)
	}
	if repaired {
		warn.warn(opts, "repair", "one or more layers had slicing errors and were repaired from neighbor layers")
	}

	logStage("empty-prefix trim")
	TrimEmptyPrefix(obj, opts)
	if len(obj.Layers) == 0 {
		warn.warn(opts, "empty", "no layers remained after trimming empty leading layers")
		return nil
	}

	logStage("surface type detection")
	if err := DetectSurfaceTypes(obj, opts, engine); err != nil {
		return fmt.Errorf("surface type detection: %w", err)
	}

	logStage("extra perimeter hints")
	if err := ExtraPerimeterHints(obj, opts, engine); err != nil {
		return fmt.Errorf("extra perimeter hints: %w", err)
	}

	logStage("horizontal shell discovery")
	if err := DiscoverHorizontalShells(obj, opts, engine); err != nil {
		return fmt.Errorf("horizontal shell discovery: %w", err)
	}

	logStage("bridge over infill")
	if err := BridgeOverInfill(obj, opts, engine); err != nil {
		return fmt.Errorf("bridge over infill: %w", err)
	}

	logStage("clip fill surfaces where needed")
	if err := ClipFillSurfacesWhereNeeded(obj, opts, engine); err != nil {
		return fmt.Errorf("clip fill surfaces: %w", err)
	}

	logStage("combine infill")
	if err := CombineInfill(obj, opts, engine); err != nil {
		return fmt.Errorf("combine infill: %w", err)
	}

	logStage("support material")
	if err := GenerateSupportMaterial(obj, opts, engine); err != nil {
		return fmt.Errorf("support material: %w", err)
	}

	return nil
}

// meshRegionCount is a small helper shared by stages that need to know how
// many material regions an object has; once the meshes are released it
// falls back to the first layer's region count.
func meshRegionCount(meshes []mesh.TriangleMesh, layers []*object.Layer) int {
	if len(meshes) > 0 {
		return len(meshes)
	}
	if len(layers) > 0 {
		return len(layers[0].Regions)
	}
	return 0
}
