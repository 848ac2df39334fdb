// Package detect provides scene-boundary detection backends for
// recorded presentation video. A detector scans a video and returns the
// intervals of likely visual content change; downstream selection turns
// those into slide keyframes.
package detect

import (
	"context"
	"fmt"
	"sort"
)

// TimeInterval is a detected span of visual content, in seconds.
// Start is always <= End.
type TimeInterval struct {
	Start float64
	End   float64
}

// Midpoint returns the center of the interval.
func (ti TimeInterval) Midpoint() float64 {
	return (ti.Start + ti.End) / 2
}

// Duration returns the interval length in seconds.
func (ti TimeInterval) Duration() float64 {
	return ti.End - ti.Start
}

// Options holds detector tuning.
type Options struct {
	// Sensitivity controls how readily a boundary is reported. Unit
	// and direction depend on the backend. Content: an HSV delta in
	// 0..255 units, lower values produce more candidates. Threshold:
	// a similarity ratio in (0,1), higher values produce more
	// candidates; values outside that range fall back to
	// DefaultThresholdSensitivity.
	Sensitivity float64

	// MinSceneLen is the minimum scene length in frames. Cuts closer
	// together than this are ignored by the backend.
	MinSceneLen int
}

// DefaultOptions returns the recommended tuning for lecture recordings.
func DefaultOptions() Options {
	return Options{
		Sensitivity: 27.0,
		MinSceneLen: 15,
	}
}

// Detector is the interface for scene-boundary detection backends.
type Detector interface {
	// Detect scans the video and returns content-change intervals in
	// roughly ascending order. An empty result is not an error; it
	// means no boundary was found at the given sensitivity.
	Detect(ctx context.Context, videoPath string, opts Options) ([]TimeInterval, error)

	// Close releases scratch resources.
	Close() error
}

// Kind selects a detection backend at construction time.
type Kind int

const (
	// Content detects scene changes from HSV frame-to-frame deltas.
	// Best when the recording contains motion around the slides.
	Content Kind = iota

	// Threshold detects page flips from grayscale frame similarity.
	// Best for static slide material with no narrator motion.
	Threshold
)

// String returns the backend name.
func (k Kind) String() string {
	switch k {
	case Content:
		return "content"
	case Threshold:
		return "threshold"
	}
	return "unknown"
}

// ParseKind maps a backend name to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "content":
		return Content, nil
	case "threshold":
		return Threshold, nil
	}
	return 0, fmt.Errorf("detect: unknown backend %q", s)
}

// New constructs the detector for the given kind.
func New(kind Kind) (Detector, error) {
	switch kind {
	case Content:
		return NewContent(), nil
	case Threshold:
		return NewThreshold(), nil
	}
	return nil, fmt.Errorf("detect: unknown backend %d", kind)
}

// sortIntervals orders intervals by start time. Detector backends emit
// in order already; this guards against "roughly sorted" output from
// degenerate seeks.
func sortIntervals(ivs []TimeInterval) {
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].Start != ivs[j].Start {
			return ivs[i].Start < ivs[j].Start
		}
		return ivs[i].End < ivs[j].End
	})
}
