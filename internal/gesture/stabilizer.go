package gesture

import "time"

// Cooldown is the minimum time between two dispatches, whatever the gesture.
const Cooldown = 2 * time.Second

// ActionTable fires the effect bound to a label. It reports false when the
// label has no binding.
type ActionTable interface {
	Dispatch(label Label) (action string, ok bool)
}

// Dispatch records one fired gesture.
type Dispatch struct {
	Label  Label
	Action string
	At     time.Time
}

// Stabilizer decides whether a classified gesture fires. A gesture fires
// when it differs from the previous frame's gesture and the cooldown since
// the last dispatch has elapsed.
type Stabilizer struct {
	table    ActionTable
	cooldown time.Duration

	previous       Label
	lastDispatched Label
	lastDispatch   time.Time
	dispatched     bool
}

// NewStabilizer returns a stabilizer dispatching to table with Cooldown.
func NewStabilizer(table ActionTable) *Stabilizer {
	return &Stabilizer{
		table:    table,
		cooldown: Cooldown,
	}
}

// Observe feeds one frame's label. The previous-frame label is always
// updated; dispatch state changes only when the table had a binding.
func (s *Stabilizer) Observe(label Label, now time.Time) (Dispatch, bool) {
	changed := label != s.previous
	s.previous = label

	if label == None || !changed || !s.cooledDown(now) {
		return Dispatch{}, false
	}

	action, ok := s.table.Dispatch(label)
	if !ok {
		return Dispatch{}, false
	}

	s.lastDispatched = label
	s.lastDispatch = now
	s.dispatched = true

	return Dispatch{Label: label, Action: action, At: now}, true
}

func (s *Stabilizer) cooledDown(now time.Time) bool {
	return !s.dispatched || now.Sub(s.lastDispatch) > s.cooldown
}

// LastDispatch returns the last dispatched label and when it fired.
// The time is zero before the first dispatch.
func (s *Stabilizer) LastDispatch() (Label, time.Time) {
	return s.lastDispatched, s.lastDispatch
}

// Previous returns the label observed on the previous frame.
func (s *Stabilizer) Previous() Label {
	return s.previous
}
