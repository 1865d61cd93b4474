package pipeline

import (
	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/object"
)

// TrimEmptyPrefix starts at the configured raft-layer count and removes
// layers with no slices and no thin walls, renumbering the rest so that
// layer.Id == index again (spec.md §4.6).
func TrimEmptyPrefix(obj *object.PrintObject, opts *config.Options) {
	start := opts.Print.RaftLayers
	if start < 0 {
		start = 0
	}
	if start > len(obj.Layers) {
		start = len(obj.Layers)
	}

	kept := obj.Layers[:start]
	rest := obj.Layers[start:]

	i := 0
	for i < len(rest) && rest[i].Empty() {
		i++
	}

	obj.Layers = append(kept, rest[i:]...)
	obj.Renumber()
}
