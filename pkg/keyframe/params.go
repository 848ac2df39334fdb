// Package keyframe implements slide-keyframe selection: it turns raw
// scene-boundary intervals from a detector into a minimal, ordered,
// deduplicated set of timestamps, one per distinct slide, ready for
// frame extraction and document assembly.
package keyframe

import "fmt"

// Epsilon is the tolerance for timestamp equality, in seconds.
// Synthetic fill points can land exactly on an existing candidate;
// comparing with a 1ms tolerance keeps the sequence strictly increasing
// without depending on exact float equality.
const Epsilon = 1e-3

// RepresentativePolicy selects how a boundary interval maps to a single
// candidate timestamp.
type RepresentativePolicy int

const (
	// Midpoint takes (start+end)/2. Use when the detector isolates
	// tight scene boundaries.
	Midpoint RepresentativePolicy = iota

	// IntervalStart takes the interval start. Use for static slide
	// material: content settles right after a cut, and the start avoids
	// catching a half-rendered transition frame.
	IntervalStart
)

// Window restricts selection to a time range, in seconds.
type Window struct {
	Start float64
	End   float64
}

// Params is the immutable configuration for one selection run.
type Params struct {
	// BoundarySensitivity is passed through to the detector.
	// Lower values produce more candidates.
	BoundarySensitivity float64

	// MinBoundaryGapFrames is the detector's minimum scene length in
	// frames, independent of the time-based gaps below.
	MinBoundaryGapFrames int

	// StaticThreshold drops frames whose sharpness score falls below
	// it; such frames are noise (black screen, codec artifact).
	// Zero disables static filtering.
	StaticThreshold float64

	// DuplicateThreshold drops frames whose dissimilarity to the
	// previously kept frame falls below it. Zero disables duplicate
	// filtering.
	DuplicateThreshold float64

	// MinTimeGap is the minimum seconds between two kept candidates.
	MinTimeGap float64

	// MaxTimeGap is the gap size beyond which gap filling activates.
	// Zero or negative disables filling.
	MaxTimeGap float64

	// FillInterval is the seconds between synthetic fill points.
	// Zero or negative disables filling.
	FillInterval float64

	// Policy maps detector intervals to candidate timestamps.
	Policy RepresentativePolicy

	// Window restricts selection to a time range. Nil means the whole
	// video.
	Window *Window
}

// DefaultParams returns the tuning that works for typical lecture
// recordings with the content detector.
func DefaultParams() Params {
	return Params{
		BoundarySensitivity:  12.0,
		MinBoundaryGapFrames: 5,
		StaticThreshold:      2.0,
		DuplicateThreshold:   1.5,
		MinTimeGap:           0.5,
		MaxTimeGap:           45.0,
		FillInterval:         15.0,
		Policy:               Midpoint,
	}
}

// Validate rejects parameters outside their documented domains.
// Runs before any sampling so bad input never costs decode work.
// MaxTimeGap and FillInterval are exempt: non-positive values are the
// documented way to disable gap filling.
func (p Params) Validate() error {
	if p.BoundarySensitivity < 0 {
		return fmt.Errorf("%w: boundary sensitivity %v is negative", ErrInvalidParams, p.BoundarySensitivity)
	}
	if p.MinBoundaryGapFrames < 0 {
		return fmt.Errorf("%w: min boundary gap %d frames is negative", ErrInvalidParams, p.MinBoundaryGapFrames)
	}
	if p.StaticThreshold < 0 {
		return fmt.Errorf("%w: static threshold %v is negative", ErrInvalidParams, p.StaticThreshold)
	}
	if p.DuplicateThreshold < 0 {
		return fmt.Errorf("%w: duplicate threshold %v is negative", ErrInvalidParams, p.DuplicateThreshold)
	}
	if p.MinTimeGap < 0 {
		return fmt.Errorf("%w: min time gap %v is negative", ErrInvalidParams, p.MinTimeGap)
	}
	if p.Policy != Midpoint && p.Policy != IntervalStart {
		return fmt.Errorf("%w: unknown representative policy %d", ErrInvalidParams, p.Policy)
	}
	if p.Window != nil {
		if p.Window.Start < 0 {
			return fmt.Errorf("%w: window start %v is negative", ErrInvalidParams, p.Window.Start)
		}
		if p.Window.End < p.Window.Start {
			return fmt.Errorf("%w: window end %v before start %v", ErrInvalidParams, p.Window.End, p.Window.Start)
		}
	}
	return nil
}

// fallbackStart is where the single fallback candidate lands when
// detection produced nothing usable.
func (p Params) fallbackStart() float64 {
	if p.Window != nil {
		return p.Window.Start
	}
	return 0
}
