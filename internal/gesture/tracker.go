package gesture

import "image"

// SwipeThreshold is the upward wrist travel in pixels between two
// consecutive single-hand frames that counts as a swipe up.
const SwipeThreshold = 50

// Tracker remembers the wrist position of the last single-hand frame.
type Tracker struct {
	prev image.Point
	set  bool
}

// NewTracker returns a tracker with no previous position.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Update compares pos with the previous position and records pos.
// Any horizontal movement wins over vertical movement: there is no deadzone
// on x, while a swipe up needs more than SwipeThreshold pixels.
func (t *Tracker) Update(pos image.Point) Label {
	label := None

	if t.set {
		delta := pos.Sub(t.prev)
		switch {
		case delta.X > 0:
			label = SwipeLeft
		case delta.X < 0:
			label = SwipeRight
		case delta.Y < -SwipeThreshold:
			label = SwipeUp
		}
	}

	t.prev = pos
	t.set = true

	return label
}

// Position returns the remembered wrist position and whether one is set.
func (t *Tracker) Position() (image.Point, bool) {
	return t.prev, t.set
}

// Reset forgets the remembered position.
func (t *Tracker) Reset() {
	t.prev = image.Point{}
	t.set = false
}
