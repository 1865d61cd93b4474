package geom

import "testing"

func square(minX, minY, maxX, maxY Micrometer) Path {
	return Path{
		NewMicroPoint(minX, minY),
		NewMicroPoint(maxX, minY),
		NewMicroPoint(maxX, maxY),
		NewMicroPoint(minX, maxY),
	}
}

func TestExpolygonEmpty(t *testing.T) {
	if !(Expolygon{}).Empty() {
		t.Error("a zero-value Expolygon should be empty")
	}
	e := NewExpolygon(square(0, 0, 10, 10), nil)
	if e.Empty() {
		t.Error("an expolygon with an outer contour should not be empty")
	}
}

func TestExpolygonBounds(t *testing.T) {
	e := NewExpolygon(square(0, 0, 10, 20), nil)
	min, max := e.Bounds()
	if min != NewMicroPoint(0, 0) || max != NewMicroPoint(10, 20) {
		t.Errorf("got min=%v max=%v", min, max)
	}
}

func TestExpolygonsBounds(t *testing.T) {
	es := Expolygons{
		NewExpolygon(square(0, 0, 10, 10), nil),
		NewExpolygon(square(20, 20, 30, 40), nil),
	}
	min, max := es.Bounds()
	if min != NewMicroPoint(0, 0) || max != NewMicroPoint(30, 40) {
		t.Errorf("got min=%v max=%v", min, max)
	}
}
