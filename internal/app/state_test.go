package app

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"photo-ruler/internal/session"
	"photo-ruler/internal/units"
)

func writeTestPhoto(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 120, 90))
	for y := 0; y < 90; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.RGBA{R: 90, G: 140, B: 60, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "animal.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClicksDroppedBeforePhotoLoads(t *testing.T) {
	state := NewState()

	if err := state.RecordClick(10, 10); err != nil {
		t.Fatalf("click before load returned error: %v", err)
	}
	if n := len(state.Session.ReferencePoints()); n != 0 {
		t.Errorf("reference point count = %d before any photo, want 0", n)
	}
}

func TestLoadPhotoResetsSessionAndEmits(t *testing.T) {
	state := NewState()

	var loaded, changed int
	state.On(EventImageLoaded, func(data interface{}) { loaded++ })
	state.On(EventSessionChanged, func(data interface{}) { changed++ })

	if err := state.LoadPhoto(writeTestPhoto(t)); err != nil {
		t.Fatalf("LoadPhoto failed: %v", err)
	}
	if loaded != 1 {
		t.Errorf("EventImageLoaded fired %d times, want 1", loaded)
	}
	if changed != 1 {
		t.Errorf("EventSessionChanged fired %d times, want 1", changed)
	}
	if w, h := state.Session.ImageSize(); w != 120 || h != 90 {
		t.Errorf("session image size = %dx%d, want 120x90", w, h)
	}
}

func TestLoadPhotoFailureLeavesStateAlone(t *testing.T) {
	state := NewState()
	if err := state.LoadPhoto(writeTestPhoto(t)); err != nil {
		t.Fatal(err)
	}
	state.SetReferenceLength(4, units.Centimeters)

	err := state.LoadPhoto(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("expected error loading a missing file")
	}
	if state.Session.ReferenceLength() != 4 {
		t.Error("failed load must not reset the session")
	}
}

func TestCalibrationEventFiresOnce(t *testing.T) {
	state := NewState()
	if err := state.LoadPhoto(writeTestPhoto(t)); err != nil {
		t.Fatal(err)
	}

	var scales []float64
	state.On(EventCalibrated, func(data interface{}) {
		if scale, ok := data.(float64); ok {
			scales = append(scales, scale)
		}
	})

	state.SetReferenceLength(10, units.Inches)
	state.RecordClick(0, 0)
	state.RecordClick(100, 0)
	state.RecordClick(10, 10) // first measurement point, not a recalibration

	if len(scales) != 1 {
		t.Fatalf("EventCalibrated fired %d times, want 1", len(scales))
	}
	if scales[0] != 0.1 {
		t.Errorf("calibrated scale = %v, want 0.1", scales[0])
	}
}

func TestMissingCalibrationInputPropagates(t *testing.T) {
	state := NewState()
	if err := state.LoadPhoto(writeTestPhoto(t)); err != nil {
		t.Fatal(err)
	}

	err := state.RecordClick(5, 5)
	if !errors.Is(err, session.ErrMissingCalibrationInput) {
		t.Errorf("expected ErrMissingCalibrationInput, got %v", err)
	}
}

func TestResetSessionEmits(t *testing.T) {
	state := NewState()
	if err := state.LoadPhoto(writeTestPhoto(t)); err != nil {
		t.Fatal(err)
	}

	var resets int
	state.On(EventSessionReset, func(data interface{}) { resets++ })

	state.ResetSession()
	if resets != 1 {
		t.Errorf("EventSessionReset fired %d times, want 1", resets)
	}
	if !state.HasPhoto() {
		t.Error("reset must not unload the photo")
	}
	if g := state.Session.CurrentMeasurement().Guidance; g != session.GuidanceSetReferenceLength {
		t.Errorf("guidance after reset = %v, want SetReferenceLength", g)
	}
}
