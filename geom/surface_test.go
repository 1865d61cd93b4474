package geom

import (
	"reflect"
	"testing"
)

func TestSurfacesByType(t *testing.T) {
	es := Expolygons{
		NewExpolygon(square(0, 0, 10, 10), nil),
		NewExpolygon(square(20, 0, 30, 10), nil),
	}
	surfaces := Surfaces{
		NewSurface(es[0], Top),
		NewSurface(es[1], Internal),
	}

	top := surfaces.ByType(Top)
	if len(top) != 1 || !reflect.DeepEqual(top[0].Expolygon, es[0]) {
		t.Errorf("ByType(Top) = %v", top)
	}

	bottom := surfaces.ByType(Bottom)
	if len(bottom) != 0 {
		t.Errorf("ByType(Bottom) = %v, want empty", bottom)
	}
}

func TestSurfacesExpolygons(t *testing.T) {
	es := Expolygons{
		NewExpolygon(square(0, 0, 10, 10), nil),
		NewExpolygon(square(20, 0, 30, 10), nil),
	}
	surfaces := FromExpolygons(es, Internal)
	got := surfaces.Expolygons()
	if len(got) != 2 || !reflect.DeepEqual(got[0], es[0]) || !reflect.DeepEqual(got[1], es[1]) {
		t.Errorf("Expolygons() = %v", got)
	}
}

func TestWithTypePreservesGeometryChangesType(t *testing.T) {
	original := Surfaces{
		NewSurface(NewExpolygon(square(0, 0, 10, 10), nil), Internal),
	}
	retyped := WithType(original, InternalSolid)

	if original[0].Type != Internal {
		t.Error("WithType mutated the original slice in place")
	}
	if len(retyped) != 1 || retyped[0].Type != InternalSolid {
		t.Errorf("retyped = %v", retyped)
	}
	if !reflect.DeepEqual(retyped[0].Expolygon, original[0].Expolygon) {
		t.Error("WithType should preserve geometry")
	}
}

func TestFromExpolygonsOneSurfacePerRegion(t *testing.T) {
	es := Expolygons{
		NewExpolygon(square(0, 0, 10, 10), nil),
		NewExpolygon(square(20, 0, 30, 10), nil),
		NewExpolygon(square(40, 0, 50, 10), nil),
	}
	surfaces := FromExpolygons(es, Bottom)
	if len(surfaces) != len(es) {
		t.Fatalf("got %d surfaces, want %d", len(surfaces), len(es))
	}
	for i, s := range surfaces {
		if s.Type != Bottom || !reflect.DeepEqual(s.Expolygon, es[i]) {
			t.Errorf("surface %d = %v", i, s)
		}
	}
}

func TestSurfaceTypeString(t *testing.T) {
	cases := map[SurfaceType]string{
		Top:             "top",
		Bottom:          "bottom",
		Internal:        "internal",
		InternalSolid:   "internal-solid",
		InternalBridge:  "internal-bridge",
		SurfaceType(99): "unknown",
	}
	for st, want := range cases {
		if got := st.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", st, got, want)
		}
	}
}
