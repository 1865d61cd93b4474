package mesh

import (
	stl "github.com/hschendel/stl"

	"github.com/go-fdm/slicecore/geom"
)

// scale converts an STL file's floating-point millimeters into this
// core's integer micrometer unit.
const scale = 1000

// LoadSTL reads an STL file and adapts it onto the TriangleMesh boundary.
// Parsing itself is entirely github.com/hschendel/stl's job (spec.md §1
// Out of scope); this function is the seam, not a parser.
func LoadSTL(path string) (*Mesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, err
	}

	facets := make([]Facet, len(solid.Triangles))
	for i, tri := range solid.Triangles {
		facets[i] = NewFacet(
			vertexFromSTL(tri.Vertices[0]),
			vertexFromSTL(tri.Vertices[1]),
			vertexFromSTL(tri.Vertices[2]),
		)
	}

	return NewMesh(facets), nil
}

func vertexFromSTL(v stl.Vec3) Vertex3 {
	return Vertex3{
		X: geom.Micrometer(v[0] * scale),
		Y: geom.Micrometer(v[1] * scale),
		Z: geom.Micrometer(v[2] * scale),
	}
}
