package liveness

import "time"

// Frame is one step of an animation: a glyph shown for a fixed time.
type Frame struct {
	Glyph    string
	Duration time.Duration
}

// Sequence is the ordered frames of an animation.
type Sequence []Frame

// Total returns the wall-clock length of s.
func (s Sequence) Total() time.Duration {
	var d time.Duration
	for _, f := range s {
		d += f.Duration
	}
	return d
}

// Resting glyphs per state.
var restGlyphs = map[State]string{
	Normal:   "♥",
	Dying:    "♡",
	Dead:     "✕",
	Reviving: "♡",
}

// RestGlyph is the glyph for s when no animation is playing.
func RestGlyph(s State) string {
	return restGlyphs[s]
}

var sequences = map[Animation]Sequence{
	AnimDying: {
		{"♥", 250 * time.Millisecond},
		{"❥", 250 * time.Millisecond},
		{"♡", 300 * time.Millisecond},
		{"·", 400 * time.Millisecond},
	},
	AnimReviving: {
		{"·", 200 * time.Millisecond},
		{"♡", 250 * time.Millisecond},
		{"❥", 250 * time.Millisecond},
		{"♥", 300 * time.Millisecond},
	},
	// Two beats, then a rest.
	AnimHeartbeat: {
		{"❤", 150 * time.Millisecond},
		{"♥", 150 * time.Millisecond},
		{"❤", 150 * time.Millisecond},
		{"♥", 750 * time.Millisecond},
	},
}

// SequenceFor returns the frames of a.
func SequenceFor(a Animation) Sequence {
	return sequences[a]
}
