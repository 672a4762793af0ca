package gesture

import (
	"image"

	"github.com/ayusman/mudra/internal/detector"
)

// Rule is a single-hand static pose check.
type Rule struct {
	Label Label
	Match func(hand *detector.HandLandmarks) bool
}

// PairRule is a check over both hands of a two-hand frame.
type PairRule struct {
	Label Label
	Match func(a, b *detector.HandLandmarks) bool
}

// StaticRules are evaluated in order for single-hand frames without motion;
// the first match wins.
var StaticRules = []Rule{
	{Label: PalmOpen, Match: detector.IsPalmOpen},
	{Label: PeaceSign, Match: detector.IsPeaceSign},
	{Label: ThumbUp, Match: detector.ThumbUp},
	{Label: OkSign, Match: detector.IsOkSign},
	{Label: RingUp, Match: detector.RingUp},
}

// PairRules are evaluated in order for two-hand frames; the first match wins.
var PairRules = []PairRule{
	{Label: TwoIndexUp, Match: both(detector.IndexUp)},
	{Label: TwoMiddleUp, Match: both(detector.MiddleUp)},
}

func both(pred func(*detector.HandLandmarks) bool) func(a, b *detector.HandLandmarks) bool {
	return func(a, b *detector.HandLandmarks) bool {
		return pred(a) && pred(b)
	}
}

// Classifier picks one label per frame.
type Classifier struct {
	static []Rule
	pair   []PairRule
}

// NewClassifier returns a classifier using StaticRules and PairRules.
func NewClassifier() *Classifier {
	return &Classifier{
		static: StaticRules,
		pair:   PairRules,
	}
}

// Classify returns the gesture for one frame of size frame (width, height in
// pixels). Only single-hand frames read or write the tracker; motion found
// by the tracker takes priority over every static pose.
func (c *Classifier) Classify(hands []detector.HandLandmarks, frame image.Point, tracker *Tracker) Label {
	switch len(hands) {
	case 1:
		hand := &hands[0]
		if motion := tracker.Update(detector.WristPosition(hand, frame.X, frame.Y)); motion != None {
			return motion
		}
		for _, r := range c.static {
			if r.Match(hand) {
				return r.Label
			}
		}
	case 2:
		for _, r := range c.pair {
			if r.Match(&hands[0], &hands[1]) {
				return r.Label
			}
		}
	}
	return None
}
