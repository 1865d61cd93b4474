package object

import (
	"testing"

	"github.com/go-fdm/slicecore/config"
	"github.com/go-fdm/slicecore/mesh"
)

// config0 returns a zero-value Flow, enough for tests that only care about
// region bookkeeping rather than extrusion geometry.
func config0() config.Flow {
	return config.Flow{}
}

type fakeMesh struct {
	facetCount int
}

func (f fakeMesh) FacetCount() int                { return f.facetCount }
func (f fakeMesh) Facet(int) mesh.Facet           { return mesh.Facet{} }
func (f fakeMesh) Bounds() (mesh.Vertex3, mesh.Vertex3) {
	return mesh.Vertex3{}, mesh.Vertex3{Z: 1000}
}

func TestPrintObjectRegionCount(t *testing.T) {
	obj := NewPrintObject([]mesh.TriangleMesh{fakeMesh{facetCount: 1}, fakeMesh{facetCount: 2}})
	if obj.RegionCount() != 2 {
		t.Errorf("RegionCount() = %d, want 2", obj.RegionCount())
	}
}

func TestPrintObjectReleaseMeshes(t *testing.T) {
	obj := NewPrintObject([]mesh.TriangleMesh{fakeMesh{}})
	obj.ReleaseMeshes()
	if obj.Meshes != nil {
		t.Error("ReleaseMeshes should drop the mesh references by default")
	}
}

func TestPrintObjectReleaseMeshesRetained(t *testing.T) {
	obj := NewPrintObject([]mesh.TriangleMesh{fakeMesh{}})
	obj.RetainMeshes = true
	obj.ReleaseMeshes()
	if obj.Meshes == nil {
		t.Error("ReleaseMeshes should keep the mesh references when RetainMeshes is set")
	}
}

func TestPrintObjectRenumberAfterRemoval(t *testing.T) {
	obj := &PrintObject{
		Layers: []*Layer{
			NewLayer(0, 0, 100, 100, nil),
			NewLayer(1, 100, 200, 100, nil),
			NewLayer(2, 200, 300, 100, nil),
		},
	}
	obj.Layers = append(obj.Layers[:1], obj.Layers[2:]...) // drop the middle layer
	obj.Renumber()

	for i, l := range obj.Layers {
		if l.ID != i {
			t.Errorf("layer %d has ID %d, want %d", i, l.ID, i)
		}
	}
}
