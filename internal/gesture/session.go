package gesture

import (
	"image"
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// Session owns all per-process gesture state. It is not safe for concurrent
// use; the frame loop is its only caller.
type Session struct {
	classifier *Classifier
	tracker    *Tracker
	stabilizer *Stabilizer
}

// Result is the outcome of one frame.
type Result struct {
	Label      Label
	Dispatch   Dispatch
	Dispatched bool
}

// NewSession creates a session dispatching to table.
func NewSession(table ActionTable) *Session {
	return &Session{
		classifier: NewClassifier(),
		tracker:    NewTracker(),
		stabilizer: NewStabilizer(table),
	}
}

// Step classifies one frame and runs the stabilizer on the result.
func (s *Session) Step(hands []detector.HandLandmarks, frame image.Point, now time.Time) Result {
	label := s.classifier.Classify(hands, frame, s.tracker)
	d, ok := s.stabilizer.Observe(label, now)
	return Result{Label: label, Dispatch: d, Dispatched: ok}
}

// Tracker exposes the motion tracker.
func (s *Session) Tracker() *Tracker {
	return s.tracker
}

// Stabilizer exposes the dispatch state.
func (s *Session) Stabilizer() *Stabilizer {
	return s.stabilizer
}
