// Package mesh defines the triangle-mesh boundary this core consumes.
// Mesh loading and STL parsing are external collaborators (spec.md §1
// Out of scope); this package only defines the seam and a thin adapter
// onto a real STL parser.
package mesh

import "github.com/go-fdm/slicecore/geom"

// Vertex3 is a 3D point in micrometer units.
type Vertex3 struct {
	X, Y, Z geom.Micrometer
}

// Facet is one triangular face of a mesh, plus the indices of the (up to
// three) other facets that share an edge with it. TouchingFaceIndices is
// -1 for any edge with no neighbor (a hole in the mesh).
type Facet struct {
	Vertices [3]Vertex3
	touching [3]int
}

// NewFacet builds a Facet from its three vertices. Touching indices are
// wired in later by the mesh builder once every facet is known.
func NewFacet(v0, v1, v2 Vertex3) Facet {
	return Facet{Vertices: [3]Vertex3{v0, v1, v2}, touching: [3]int{-1, -1, -1}}
}

// TouchingFaceIndices returns the indices of the facets sharing an edge
// with this one, or -1 for edges with no neighbor.
func (f Facet) TouchingFaceIndices() [3]int {
	return f.touching
}

// ZBounds returns the facet's minimum and maximum Z.
func (f Facet) ZBounds() (min, max geom.Micrometer) {
	min, max = f.Vertices[0].Z, f.Vertices[0].Z
	for _, v := range f.Vertices[1:] {
		if v.Z < min {
			min = v.Z
		}
		if v.Z > max {
			max = v.Z
		}
	}
	return min, max
}

// TriangleMesh is the external boundary this core slices against
// (spec.md §6 Inputs: "meshes[region_id] -> TriangleMesh").
type TriangleMesh interface {
	// FacetCount returns the number of facets in the mesh.
	FacetCount() int

	// Facet returns the facet at the given index.
	Facet(index int) Facet

	// Bounds returns the mesh's axis-aligned bounding box.
	Bounds() (min, max Vertex3)
}

// Mesh is a minimal in-memory TriangleMesh, built once the neighbor
// relationships between facets are resolved (grounded on
// galamdring-GoSlice/slicer/slice/layer.go's use of
// om.OptimizedFace(idx).TouchingFaceIndices()).
type Mesh struct {
	facets   []Facet
	min, max Vertex3
}

// NewMesh builds a Mesh from facets, resolving edge-adjacency between
// them by matching shared vertex pairs. Constant-time map lookups per
// facet against a vertex-pair index, O(n) overall rather than O(n^2) — meshes in practice run to hundreds of
// thousands of facets.
func NewMesh(facets []Facet) *Mesh {
	m := &Mesh{facets: facets}
	if len(facets) == 0 {
		return m
	}

	m.min, m.max = facets[0].Vertices[0], facets[0].Vertices[0]
	type edgeKey struct{ a, b Vertex3 }
	edgeOwners := make(map[edgeKey]int, len(facets)*3)

	for i, f := range facets {
		for _, v := range f.Vertices {
			if v.X < m.min.X {
				m.min.X = v.X
			}
			if v.Y < m.min.Y {
				m.min.Y = v.Y
			}
			if v.Z < m.min.Z {
				m.min.Z = v.Z
			}
			if v.X > m.max.X {
				m.max.X = v.X
			}
			if v.Y > m.max.Y {
				m.max.Y = v.Y
			}
			if v.Z > m.max.Z {
				m.max.Z = v.Z
			}
		}

		for e := 0; e < 3; e++ {
			a, b := f.Vertices[e], f.Vertices[(e+1)%3]
			key := edgeKey{b, a} // the matching half-edge runs in reverse
			if owner, ok := edgeOwners[key]; ok {
				m.facets[i].touching[e] = owner
				for oe := 0; oe < 3; oe++ {
					oa, ob := m.facets[owner].Vertices[oe], m.facets[owner].Vertices[(oe+1)%3]
					if oa == b && ob == a {
						m.facets[owner].touching[oe] = i
						break
					}
				}
			} else {
				edgeOwners[edgeKey{a, b}] = i
			}
		}
	}

	return m
}

func (m *Mesh) FacetCount() int           { return len(m.facets) }
func (m *Mesh) Facet(index int) Facet     { return m.facets[index] }
func (m *Mesh) Bounds() (min, max Vertex3) { return m.min, m.max }
