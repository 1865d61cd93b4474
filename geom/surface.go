package geom

// SurfaceType classifies a Surface's role in the layer (spec.md §3).
type SurfaceType uint8

const (
	Top SurfaceType = iota
	Bottom
	Internal
	InternalSolid
	InternalBridge
)

func (t SurfaceType) String() string {
	switch t {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Internal:
		return "internal"
	case InternalSolid:
		return "internal-solid"
	case InternalBridge:
		return "internal-bridge"
	default:
		return "unknown"
	}
}

// Surface is an immutable typed region. Stages never mutate a Surface in
// place; they replace the owning list wholesale (spec.md §9 Surface
// identity).
type Surface struct {
	Expolygon Expolygon
	Type      SurfaceType

	// BridgeAngle is set only for InternalBridge surfaces.
	BridgeAngle *float64

	// DepthLayers is set by the combine-infill stage: how many physical
	// layers this surface's fill represents.
	DepthLayers int

	// AdditionalInnerPerimeters is not written by any pipeline stage; the
	// extra-perimeter-hints stage keeps its counts on the LayerRegion,
	// keyed by slice index (LayerRegion.AdditionalInnerPerimeters), never
	// by mutating a shared Surface in place.
	AdditionalInnerPerimeters int
}

// NewSurface builds a Surface of the given type over the given expolygon.
func NewSurface(e Expolygon, t SurfaceType) Surface {
	return Surface{Expolygon: e, Type: t}
}

// Surfaces is an ordered list of Surface values. Order matters for
// downstream iteration (spec.md §4.7) even though the set is a partition.
type Surfaces []Surface

// Expolygons extracts the geometry of every surface in order.
func (s Surfaces) Expolygons() Expolygons {
	out := make(Expolygons, len(s))
	for i, surf := range s {
		out[i] = surf.Expolygon
	}
	return out
}

// ByType returns the subsequence of surfaces with the given type,
// preserving order.
func (s Surfaces) ByType(t SurfaceType) Surfaces {
	var out Surfaces
	for _, surf := range s {
		if surf.Type == t {
			out = append(out, surf)
		}
	}
	return out
}

// WithType returns a copy of every surface in s retyped to t. Used by
// stages that convert surfaces wholesale (e.g. internal -> internal-solid).
func WithType(s Surfaces, t SurfaceType) Surfaces {
	out := make(Surfaces, len(s))
	for i, surf := range s {
		out[i] = surf
		out[i].Type = t
	}
	return out
}

// FromExpolygons builds Surfaces of a single type from a list of regions.
func FromExpolygons(es Expolygons, t SurfaceType) Surfaces {
	out := make(Surfaces, len(es))
	for i, e := range es {
		out[i] = NewSurface(e, t)
	}
	return out
}
