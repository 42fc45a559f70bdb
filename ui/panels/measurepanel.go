// Package panels provides UI panels for the application.
package panels

import (
	"fmt"
	"strconv"

	"photo-ruler/internal/app"
	"photo-ruler/internal/session"
	"photo-ruler/internal/units"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// lengthStep is the granularity of the reference length stepper buttons.
const lengthStep = 0.125

// MeasurePanel holds the calibration inputs and the live measurement
// readout: reference length entry, unit selection, guidance/result label,
// and the reset button.
type MeasurePanel struct {
	state     *app.State
	container fyne.CanvasObject

	lengthEntry *widget.Entry
	unitRadio   *widget.RadioGroup
	resultLabel *widget.Label
	statusLabel *widget.Label
	resetButton *widget.Button
}

// NewMeasurePanel creates the measurement side panel.
func NewMeasurePanel(state *app.State) *MeasurePanel {
	mp := &MeasurePanel{
		state: state,
	}

	mp.lengthEntry = widget.NewEntry()
	mp.lengthEntry.SetPlaceHolder("Reference length")
	mp.lengthEntry.OnChanged = func(text string) {
		mp.applyLength(text)
	}

	stepDown := widget.NewButton("-", func() { mp.stepLength(-lengthStep) })
	stepUp := widget.NewButton("+", func() { mp.stepLength(lengthStep) })

	labels := make([]string, 0, 4)
	for _, u := range units.All() {
		labels = append(labels, u.Label())
	}
	mp.unitRadio = widget.NewRadioGroup(labels, func(selected string) {
		mp.applyUnit(selected)
	})
	mp.unitRadio.Horizontal = true
	mp.unitRadio.SetSelected(units.DefaultUnit.Label())

	mp.resultLabel = widget.NewLabel(session.GuidanceSetReferenceLength.Message())
	mp.resultLabel.TextStyle = fyne.TextStyle{Bold: true}
	mp.resultLabel.Wrapping = fyne.TextWrapWord

	mp.statusLabel = widget.NewLabel("")
	mp.statusLabel.Wrapping = fyne.TextWrapWord

	mp.resetButton = widget.NewButton("Reset", func() {
		mp.state.ResetSession()
	})

	mp.container = container.NewVBox(
		widget.NewLabelWithStyle("Calibration", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, stepDown, stepUp, mp.lengthEntry),
		mp.unitRadio,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Measurement", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mp.resultLabel,
		mp.statusLabel,
		widget.NewSeparator(),
		mp.resetButton,
	)

	mp.setupEventHandlers()
	return mp
}

// Container returns the panel container.
func (mp *MeasurePanel) Container() fyne.CanvasObject {
	return mp.container
}

func (mp *MeasurePanel) setupEventHandlers() {
	mp.state.On(app.EventSessionChanged, func(data interface{}) {
		if m, ok := data.(session.Measurement); ok {
			mp.resultLabel.SetText(m.String())
		}
		mp.updateStatus()
	})

	mp.state.On(app.EventSessionReset, func(data interface{}) {
		mp.lengthEntry.SetText("")
		mp.unitRadio.SetSelected(units.DefaultUnit.Label())
	})

	mp.state.On(app.EventImageLoaded, func(data interface{}) {
		// Loading a photo resets the session; clear the inputs to match.
		mp.lengthEntry.SetText("")
		mp.unitRadio.SetSelected(units.DefaultUnit.Label())
	})
}

// applyLength parses the entry text and forwards positive values to the
// session. Invalid or non-positive input is left to the entry; the session
// keeps its previous length.
func (mp *MeasurePanel) applyLength(text string) {
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || value <= 0 {
		return
	}
	mp.state.SetReferenceLength(value, mp.selectedUnit())
}

// applyUnit handles unit button changes. With a valid length in the entry
// the pair is re-submitted; otherwise only the display label changes.
func (mp *MeasurePanel) applyUnit(label string) {
	unit, err := units.Parse(label)
	if err != nil {
		return
	}
	if value, err := strconv.ParseFloat(mp.lengthEntry.Text, 64); err == nil && value > 0 {
		mp.state.SetReferenceLength(value, unit)
		return
	}
	mp.state.SetUnit(unit)
}

// stepLength nudges the entry value by the stepper granularity, never
// below zero.
func (mp *MeasurePanel) stepLength(delta float64) {
	value, err := strconv.ParseFloat(mp.lengthEntry.Text, 64)
	if err != nil {
		value = 0
	}
	value += delta
	if value < 0 {
		value = 0
	}
	mp.lengthEntry.SetText(strconv.FormatFloat(value, 'f', -1, 64))
}

func (mp *MeasurePanel) selectedUnit() units.Unit {
	unit, err := units.Parse(mp.unitRadio.Selected)
	if err != nil {
		return units.DefaultUnit
	}
	return unit
}

// updateStatus refreshes the point-count and scale-factor readout.
func (mp *MeasurePanel) updateStatus() {
	sess := mp.state.Session

	text := fmt.Sprintf("Reference points: %d/2\nPath points: %d",
		len(sess.ReferencePoints()), len(sess.MeasurementPoints()))
	if scale, ok := sess.ScaleFactor(); ok {
		text += fmt.Sprintf("\nScale: %.4f %s/px", scale, sess.Unit().Label())
	}
	mp.statusLabel.SetText(text)
}
