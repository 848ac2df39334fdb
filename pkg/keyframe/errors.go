package keyframe

import "errors"

// Sentinel errors for the keyframe package. These are the only two
// conditions that escape to the caller; everything else degrades through
// fallbacks and is observable via the diagnostic channel.
var (
	// ErrInvalidParams indicates parameters outside their documented
	// domains, rejected before any sampling begins.
	ErrInvalidParams = errors.New("keyframe: invalid parameters")

	// ErrNoKeyframes indicates the consolidated result set is empty;
	// there is nothing meaningful to assemble into a document.
	ErrNoKeyframes = errors.New("keyframe: no keyframes found")
)

// DiagKind classifies a non-fatal pipeline event.
type DiagKind int

const (
	// DiagDegradedDetection means the detector returned zero usable
	// candidates and the single-fallback-candidate policy kicked in.
	DiagDegradedDetection DiagKind = iota

	// DiagUnreadableFrame means sampling failed for one timestamp; the
	// candidate is treated as maximally static and dropped by the
	// normal filters.
	DiagUnreadableFrame
)

// String returns the event name.
func (k DiagKind) String() string {
	switch k {
	case DiagDegradedDetection:
		return "degraded_detection"
	case DiagUnreadableFrame:
		return "unreadable_frame"
	}
	return "unknown"
}

// Diag is a non-fatal diagnostic event.
type Diag struct {
	Kind      DiagKind
	Timestamp float64
	Message   string
}

// Observer receives diagnostic events during a run. May be nil.
type Observer func(Diag)

// notify delivers a diagnostic to the observer if one is set.
func notify(obs Observer, d Diag) {
	if obs != nil {
		obs(d)
	}
}
