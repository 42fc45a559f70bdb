// Package app provides application lifecycle management and events.
package app

import (
	"sync"

	"photo-ruler/internal/photo"
	"photo-ruler/internal/session"
	"photo-ruler/internal/units"
)

// State holds the application state: the loaded photo, the measurement
// session, and the event listeners that keep the UI in sync.
type State struct {
	mu sync.RWMutex

	// Loaded photo (nil until the first successful load)
	Photo *photo.Layer

	// Measurement session over the current photo
	Session *session.Session

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded    EventType = iota // data: *photo.Layer
	EventSessionChanged                  // data: session.Measurement
	EventCalibrated                      // data: scale factor (float64)
	EventSessionReset                    // data: nil
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with an empty session.
func NewState() *State {
	return &State{
		Session:   session.New(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// LoadPhoto validates, decodes, and installs a photo, resetting the session
// for it. The previous photo and all session state are replaced only on
// success; a rejected file leaves everything as it was.
func (s *State) LoadPhoto(path string) error {
	layer, err := photo.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Photo = layer
	s.mu.Unlock()
	s.Session.SetImage(layer.Width, layer.Height)

	s.Emit(EventImageLoaded, layer)
	s.Emit(EventSessionChanged, s.Session.CurrentMeasurement())
	return nil
}

// HasPhoto reports whether a photo is currently loaded.
func (s *State) HasPhoto() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Photo != nil
}

// RecordClick forwards a click in image coordinates to the session. Clicks
// arriving before any photo has loaded are dropped here, so a slow decode
// can never attribute points to the wrong image.
func (s *State) RecordClick(x, y float64) error {
	if !s.HasPhoto() {
		return nil
	}

	wasCalibrated := s.Session.State() == session.Measuring
	if err := s.Session.RecordClick(x, y); err != nil {
		return err
	}

	if !wasCalibrated && s.Session.State() == session.Measuring {
		if scale, ok := s.Session.ScaleFactor(); ok {
			s.Emit(EventCalibrated, scale)
		}
	}
	s.Emit(EventSessionChanged, s.Session.CurrentMeasurement())
	return nil
}

// SetReferenceLength updates the reference length and unit.
func (s *State) SetReferenceLength(value float64, unit units.Unit) {
	s.Session.SetReferenceLength(value, unit)
	s.Emit(EventSessionChanged, s.Session.CurrentMeasurement())
}

// SetUnit changes the display unit label only.
func (s *State) SetUnit(unit units.Unit) {
	s.Session.SetUnit(unit)
	s.Emit(EventSessionChanged, s.Session.CurrentMeasurement())
}

// ResetSession clears the session back to its initial state. The photo
// stays loaded.
func (s *State) ResetSession() {
	s.Session.Reset()
	s.Emit(EventSessionReset, nil)
	s.Emit(EventSessionChanged, s.Session.CurrentMeasurement())
}
