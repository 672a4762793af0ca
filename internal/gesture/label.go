// Package gesture turns per-frame hand landmarks into stabilized gesture
// dispatches: a motion tracker, an ordered-rule classifier and a
// cooldown-gated stabilizer.
package gesture

// Label is the classifier's per-frame symbolic output.
type Label string

// Recognized gestures. The swipe labels keep the action names they have
// always been reported under.
const (
	None        Label = ""
	PalmOpen    Label = "palm_open"
	PeaceSign   Label = "peace_sign"
	ThumbUp     Label = "thumb_up"
	OkSign      Label = "ok_sign"
	RingUp      Label = "ring_up"
	SwipeLeft   Label = "switch_left"
	SwipeRight  Label = "switch_right"
	SwipeUp     Label = "close_app"
	TwoIndexUp  Label = "two_index_up"
	TwoMiddleUp Label = "two_middle_up"
)

// Labels lists every non-None label.
var Labels = []Label{
	PalmOpen, PeaceSign, ThumbUp, OkSign, RingUp,
	SwipeLeft, SwipeRight, SwipeUp, TwoIndexUp, TwoMiddleUp,
}

// String returns the label name, or "none".
func (l Label) String() string {
	if l == None {
		return "none"
	}
	return string(l)
}
