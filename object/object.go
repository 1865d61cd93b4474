package object

import "github.com/go-fdm/slicecore/mesh"

// PrintObject owns its Layers exclusively (spec.md §3 Lifecycle). The
// parent print (not modeled in this core; it is the orchestrator's
// concern) is referenced without ownership, per spec.md §9
// Back-references.
type PrintObject struct {
	// Meshes holds one mesh per material region; released after stage 2
	// unless RetainMeshes is set (spec.md §3 Lifecycle, §5 Resource
	// policy).
	Meshes []mesh.TriangleMesh

	RetainMeshes bool

	Layers []*Layer
}

// NewPrintObject builds a PrintObject over the given per-region meshes.
func NewPrintObject(meshes []mesh.TriangleMesh) *PrintObject {
	return &PrintObject{Meshes: meshes}
}

// ReleaseMeshes drops the mesh references once slicing no longer needs
// them (spec.md §4.2 Parallelism note, §5 Resource policy), unless the
// caller opted into retention.
func (o *PrintObject) ReleaseMeshes() {
	if o.RetainMeshes {
		return
	}
	o.Meshes = nil
}

// RegionCount returns the number of material regions in the object.
func (o *PrintObject) RegionCount() int {
	return len(o.Meshes)
}

// Renumber reassigns every layer's Id to its index in Layers, restoring
// the spec.md §3 invariant ("id equals the layer's index") after a layer
// has been removed.
func (o *PrintObject) Renumber() {
	for i, l := range o.Layers {
		l.ID = i
	}
}
