// Package units defines the display units available for measurements.
package units

import "fmt"

// Unit identifies a real-world display unit for measured lengths.
//
// The unit is a label only: the session stores the user-entered reference
// length as a plain number, so switching units re-labels the result without
// converting it.
type Unit int

const (
	Inches Unit = iota
	Centimeters
	Millimeters
	Furlongs
)

// DefaultUnit is the unit selected at startup and after a reset.
const DefaultUnit = Inches

// Label returns the short suffix shown next to measured values.
func (u Unit) Label() string {
	switch u {
	case Inches:
		return "in"
	case Centimeters:
		return "cm"
	case Millimeters:
		return "mm"
	case Furlongs:
		return "fur"
	default:
		return "?"
	}
}

func (u Unit) String() string {
	switch u {
	case Inches:
		return "Inches"
	case Centimeters:
		return "Centimeters"
	case Millimeters:
		return "Millimeters"
	case Furlongs:
		return "Furlongs"
	default:
		return "Unknown"
	}
}

// All lists every supported unit in display order.
func All() []Unit {
	return []Unit{Inches, Centimeters, Millimeters, Furlongs}
}

// Parse resolves a unit from its short label.
func Parse(label string) (Unit, error) {
	for _, u := range All() {
		if u.Label() == label {
			return u, nil
		}
	}
	return DefaultUnit, fmt.Errorf("unknown unit %q (expected in, cm, mm, or fur)", label)
}
