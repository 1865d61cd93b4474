// Package geom provides the integer-scaled 2D value types the slicing
// pipeline operates on: points, paths, expolygons and typed surfaces.
package geom

import "math"

// Micrometer is the integer unit every coordinate in the pipeline is
// scaled to, matching the external polygon engine's integer coordinate
// space.
type Micrometer int64

// Millimeter is a convenience unit for configuration values; it converts
// to Micrometer on demand.
type Millimeter float64

// ToMicrometer converts a millimeter value to the pipeline's integer unit.
func (m Millimeter) ToMicrometer() Micrometer {
	return Micrometer(math.Round(float64(m) * 1000))
}

// MicroPoint is a 2D point in micrometer units.
type MicroPoint struct {
	x, y Micrometer
}

// NewMicroPoint builds a MicroPoint from its coordinates.
func NewMicroPoint(x, y Micrometer) MicroPoint {
	return MicroPoint{x: x, y: y}
}

func (p MicroPoint) X() Micrometer { return p.x }
func (p MicroPoint) Y() Micrometer { return p.y }

func (p *MicroPoint) SetX(x Micrometer) { p.x = x }
func (p *MicroPoint) SetY(y Micrometer) { p.y = y }

// Add returns p + o.
func (p MicroPoint) Add(o MicroPoint) MicroPoint {
	return MicroPoint{p.x + o.x, p.y + o.y}
}

// Sub returns p - o.
func (p MicroPoint) Sub(o MicroPoint) MicroPoint {
	return MicroPoint{p.x - o.x, p.y - o.y}
}

// Size returns the length of p treated as a vector from the origin.
func (p MicroPoint) Size() Micrometer {
	return Micrometer(math.Hypot(float64(p.x), float64(p.y)))
}

// ShorterThan reports whether p, as a vector, is shorter than d.
func (p MicroPoint) ShorterThan(d Micrometer) bool {
	return p.Size() < d
}

// ShorterThanOrEqual reports whether p, as a vector, is no longer than d.
func (p MicroPoint) ShorterThanOrEqual(d Micrometer) bool {
	return p.Size() <= d
}
