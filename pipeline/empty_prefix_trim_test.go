package pipeline

import (
	"testing"

	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/geom"
	"github.com/go-fdm/slicecore/object"
)

func emptyLayer(id int) *object.Layer {
	return object.NewLayer(id, 0, 0, 200, nil)
}

func nonEmptyLayer(id int) *object.Layer {
	l := object.NewLayer(id, 0, 0, 200, nil)
	l.Slices = geom.Expolygons{geom.NewExpolygon(geom.Path{
		geom.NewMicroPoint(0, 0), geom.NewMicroPoint(10, 0), geom.NewMicroPoint(10, 10),
	}, nil)}
	return l
}

func TestTrimEmptyPrefixDropsLeadingEmptyLayers(t *testing.T) {
	obj := &object.PrintObject{Layers: []*object.Layer{
		emptyLayer(0), emptyLayer(1), nonEmptyLayer(2), nonEmptyLayer(3),
	}}
	opts := &config.Options{}

	TrimEmptyPrefix(obj, opts)

	if len(obj.Layers) != 2 {
		t.Fatalf("got %d layers, want 2", len(obj.Layers))
	}
	if obj.Layers[0].ID != 0 || obj.Layers[1].ID != 1 {
		t.Errorf("layers not renumbered: %d, %d", obj.Layers[0].ID, obj.Layers[1].ID)
	}
}

func TestTrimEmptyPrefixRespectsRaftLayers(t *testing.T) {
	obj := &object.PrintObject{Layers: []*object.Layer{
		emptyLayer(0), emptyLayer(1), nonEmptyLayer(2),
	}}
	opts := &config.Options{Print: config.Print{RaftLayers: 1}}

	TrimEmptyPrefix(obj, opts)

	// Layer 0 is reserved as a raft layer and kept even though it's empty;
	// only the remaining empty prefix (layer 1) is trimmed.
	if len(obj.Layers) != 2 {
		t.Fatalf("got %d layers, want 2", len(obj.Layers))
	}
}

func TestTrimEmptyPrefixAllEmpty(t *testing.T) {
	obj := &object.PrintObject{Layers: []*object.Layer{emptyLayer(0), emptyLayer(1)}}
	TrimEmptyPrefix(obj, &config.Options{})

	if len(obj.Layers) != 0 {
		t.Errorf("got %d layers, want 0", len(obj.Layers))
	}
}

func TestTrimEmptyPrefixNoneEmpty(t *testing.T) {
	obj := &object.PrintObject{Layers: []*object.Layer{nonEmptyLayer(0), nonEmptyLayer(1)}}
	TrimEmptyPrefix(obj, &config.Options{})

	if len(obj.Layers) != 2 {
		t.Errorf("got %d layers, want 2 (nothing to trim)", len(obj.Layers))
	}
}
