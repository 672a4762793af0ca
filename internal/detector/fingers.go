package detector

import (
	"image"
	"math"
)

// OkSignDistance is the maximum normalized xy distance between the thumb tip
// and the index tip for the hand to count as an OK sign.
const OkSignDistance = 0.05

// Finger pairs a fingertip with the joint it is compared against.
type Finger struct {
	Tip int
	PIP int
}

// Finger tip/pip pairs. The thumb has no pip, so its tip is compared with
// the interphalangeal joint.
var (
	Thumb  = Finger{Tip: ThumbTip, PIP: ThumbIP}
	Index  = Finger{Tip: IndexTip, PIP: IndexPIP}
	Middle = Finger{Tip: MiddleTip, PIP: MiddlePIP}
	Ring   = Finger{Tip: RingTip, PIP: RingPIP}
	Pinky  = Finger{Tip: PinkyTip, PIP: PinkyPIP}
)

// FingerExtended reports whether the tip sits above the pip joint. Image y
// grows downward, so a smaller y is higher on screen.
func FingerExtended(hand *HandLandmarks, tip, pip int) bool {
	return hand.Points[tip].Y < hand.Points[pip].Y
}

func (f Finger) extended(hand *HandLandmarks) bool {
	return FingerExtended(hand, f.Tip, f.PIP)
}

// IsPalmOpen reports whether all five fingers are extended.
func IsPalmOpen(hand *HandLandmarks) bool {
	for _, f := range []Finger{Thumb, Index, Middle, Ring, Pinky} {
		if !f.extended(hand) {
			return false
		}
	}
	return true
}

// IsPalmClosed reports whether the four fingers are curled. The thumb is
// not considered.
func IsPalmClosed(hand *HandLandmarks) bool {
	for _, f := range []Finger{Index, Middle, Ring, Pinky} {
		if f.extended(hand) {
			return false
		}
	}
	return true
}

// IsPeaceSign reports index and middle up with the ring finger down.
func IsPeaceSign(hand *HandLandmarks) bool {
	return IndexUp(hand) && MiddleUp(hand) && !RingUp(hand)
}

// IsOkSign reports whether the thumb tip and index tip are pinched together.
func IsOkSign(hand *HandLandmarks) bool {
	return pinchDistance(hand) < OkSignDistance
}

func pinchDistance(hand *HandLandmarks) float64 {
	thumb := hand.Points[ThumbTip]
	index := hand.Points[IndexTip]
	return math.Hypot(thumb.X-index.X, thumb.Y-index.Y)
}

// IndexUp, MiddleUp, RingUp, PinkyUp and ThumbUp report whether that single
// finger is extended, judged by its tip against the joint below it.
func IndexUp(hand *HandLandmarks) bool  { return Index.extended(hand) }
func MiddleUp(hand *HandLandmarks) bool { return Middle.extended(hand) }
func RingUp(hand *HandLandmarks) bool   { return Ring.extended(hand) }
func PinkyUp(hand *HandLandmarks) bool  { return Pinky.extended(hand) }
func ThumbUp(hand *HandLandmarks) bool  { return Thumb.extended(hand) }

// WristPosition converts the wrist landmark to pixel coordinates for a
// frame of the given size, truncating toward zero.
func WristPosition(hand *HandLandmarks, width, height int) image.Point {
	wrist := hand.Points[Wrist]
	return image.Point{
		X: int(wrist.X * float64(width)),
		Y: int(wrist.Y * float64(height)),
	}
}
