// Package session implements the calibration and measurement interaction
// state machine.
//
// A Session consumes click events in image coordinates and user edits to the
// reference length, and derives the pixel-to-real-world scale factor and the
// cumulative length of the measurement path. All derived values are pure
// functions recomputed from the current point lists on every read — nothing
// is cached incrementally, so late edits to the reference length always
// rescale an in-progress measurement consistently.
package session

import (
	"errors"
	"fmt"

	"photo-ruler/internal/units"
	"photo-ruler/pkg/geometry"
)

// ErrMissingCalibrationInput is returned when a reference-mode click arrives
// before the user has entered a reference length. The click is discarded and
// no state is mutated.
var ErrMissingCalibrationInput = errors.New("set the reference length before placing reference points")

// Mode selects how incoming clicks are interpreted.
type Mode int

const (
	ModeReference   Mode = iota // Clicks place reference calibration points
	ModeMeasurement             // Clicks extend the measurement path
)

func (m Mode) String() string {
	switch m {
	case ModeReference:
		return "Reference"
	case ModeMeasurement:
		return "Measurement"
	default:
		return "Unknown"
	}
}

// State describes where the session is in the calibration workflow.
type State int

const (
	AwaitingReference   State = iota // Fewer than two reference points placed
	AwaitingCalibration              // Two reference points, scale not yet derivable
	Measuring                        // Scale factor defined
)

func (s State) String() string {
	switch s {
	case AwaitingReference:
		return "AwaitingReference"
	case AwaitingCalibration:
		return "AwaitingCalibration"
	case Measuring:
		return "Measuring"
	default:
		return "Unknown"
	}
}

// Guidance tells the user what to do next when no numeric result exists.
type Guidance int

const (
	GuidanceNone Guidance = iota
	GuidanceSetReferenceLength
	GuidanceAddReferencePoints
	GuidanceAddMeasurementPoints
)

// Message returns the placeholder text shown in place of a measurement.
func (g Guidance) Message() string {
	switch g {
	case GuidanceSetReferenceLength:
		return "Enter the reference object's length to begin"
	case GuidanceAddReferencePoints:
		return "Click both ends of the reference object"
	case GuidanceAddMeasurementPoints:
		return "Click along the path to measure"
	default:
		return ""
	}
}

// Measurement is the result of CurrentMeasurement: either a formatted length
// or a guidance value describing the next step, never both.
type Measurement struct {
	Value    float64
	Unit     units.Unit
	Valid    bool
	Guidance Guidance
}

// String formats the measurement to two decimal places with its unit label,
// or returns the guidance message when no numeric result exists.
func (m Measurement) String() string {
	if m.Valid {
		return fmt.Sprintf("%.2f %s", m.Value, m.Unit.Label())
	}
	return m.Guidance.Message()
}

// Session tracks one calibration and one measurement path over a loaded
// photo. It is event-driven and synchronous: each click or edit is handled
// to completion on the caller's goroutine, so no locking is needed.
type Session struct {
	hasImage bool
	imageW   int
	imageH   int

	mode      Mode
	refPoints []geometry.Point2D
	refLength float64 // 0 = unset
	unit      units.Unit

	measurePoints []geometry.Point2D
}

// New creates a session in its initial state, with no photo attached.
func New() *Session {
	return &Session{unit: units.DefaultUnit}
}

// SetImage attaches a freshly loaded photo's pixel dimensions and resets all
// interaction state. Clicks are rejected until this has been called.
func (s *Session) SetImage(width, height int) {
	s.hasImage = true
	s.imageW = width
	s.imageH = height
	s.Reset()
}

// HasImage reports whether a photo has been attached.
func (s *Session) HasImage() bool {
	return s.hasImage
}

// ImageSize returns the attached photo's pixel dimensions.
func (s *Session) ImageSize() (w, h int) {
	return s.imageW, s.imageH
}

// Reset clears both point lists and the reference length, returns the unit
// to the default, and puts the session back in reference mode. The photo
// stays attached; the renderer keeps displaying it.
func (s *Session) Reset() {
	s.mode = ModeReference
	s.refPoints = nil
	s.refLength = 0
	s.unit = units.DefaultUnit
	s.measurePoints = nil
}

// SetReferenceLength records the user-entered length of the reference
// object. A no-op when no photo is loaded; non-positive values are ignored.
// May be called before, between, or after the reference clicks — the scale
// factor is recomputed on read, so the value takes effect retroactively.
func (s *Session) SetReferenceLength(value float64, unit units.Unit) {
	if !s.hasImage || value <= 0 {
		return
	}
	s.refLength = value
	s.unit = unit
}

// SetUnit changes only the displayed unit label. The stored reference
// length and the derived scale factor are numerically untouched.
func (s *Session) SetUnit(unit units.Unit) {
	s.unit = unit
}

// RecordClick handles a click at image coordinates (x, y). Points outside
// the image bounds are accepted unclamped. In reference mode the click is
// rejected with ErrMissingCalibrationInput until a reference length has
// been set; the second reference point completes calibration and switches
// the session to measurement mode.
func (s *Session) RecordClick(x, y float64) error {
	if !s.hasImage {
		return nil
	}
	p := geometry.NewPoint2D(x, y)

	switch s.mode {
	case ModeReference:
		if len(s.refPoints) >= 2 {
			return nil
		}
		if s.refLength <= 0 {
			return ErrMissingCalibrationInput
		}
		s.refPoints = append(s.refPoints, p)
		if len(s.refPoints) == 2 {
			s.mode = ModeMeasurement
		}
	case ModeMeasurement:
		if _, ok := s.ScaleFactor(); !ok {
			return nil
		}
		s.measurePoints = append(s.measurePoints, p)
	}
	return nil
}

// Mode returns the current click-dispatch mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// State derives the workflow state from the current point lists.
func (s *Session) State() State {
	if len(s.refPoints) < 2 {
		return AwaitingReference
	}
	if _, ok := s.ScaleFactor(); !ok {
		return AwaitingCalibration
	}
	return Measuring
}

// ReferencePoints returns a copy of the reference point list.
func (s *Session) ReferencePoints() []geometry.Point2D {
	return append([]geometry.Point2D(nil), s.refPoints...)
}

// MeasurementPoints returns a copy of the measurement path.
func (s *Session) MeasurementPoints() []geometry.Point2D {
	return append([]geometry.Point2D(nil), s.measurePoints...)
}

// ReferenceLength returns the user-entered reference length, or 0 if unset.
func (s *Session) ReferenceLength() float64 {
	return s.refLength
}

// Unit returns the currently selected display unit.
func (s *Session) Unit() units.Unit {
	return s.unit
}

// ScaleFactor derives real-world units per pixel from the two reference
// points and the user-entered length. It is defined only when both points
// exist, the length is positive, and the points are distinct.
func (s *Session) ScaleFactor() (float64, bool) {
	if len(s.refPoints) != 2 || s.refLength <= 0 {
		return 0, false
	}
	dist := s.refPoints[0].Distance(s.refPoints[1])
	if dist <= 0 {
		return 0, false
	}
	return s.refLength / dist, true
}

// PixelLength returns the cumulative pixel length of the measurement path.
func (s *Session) PixelLength() float64 {
	return geometry.PathLength(s.measurePoints)
}

// MeasuredLength returns the scaled path length, if derivable.
func (s *Session) MeasuredLength() (float64, bool) {
	scale, ok := s.ScaleFactor()
	if !ok || len(s.measurePoints) < 2 {
		return 0, false
	}
	return s.PixelLength() * scale, true
}

// CurrentMeasurement returns the formatted length when one exists, or the
// single guidance value describing the next step. Repeated calls without
// intervening events return the same value.
func (s *Session) CurrentMeasurement() Measurement {
	if length, ok := s.MeasuredLength(); ok {
		return Measurement{Value: length, Unit: s.unit, Valid: true}
	}
	switch {
	case s.refLength <= 0:
		return Measurement{Unit: s.unit, Guidance: GuidanceSetReferenceLength}
	case len(s.refPoints) < 2:
		return Measurement{Unit: s.unit, Guidance: GuidanceAddReferencePoints}
	default:
		return Measurement{Unit: s.unit, Guidance: GuidanceAddMeasurementPoints}
	}
}
