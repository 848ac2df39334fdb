package keyframe

import (
	"sort"

	"github.com/slidegrab/slidegrab/pkg/detect"
)

// Normalize converts raw detector output into the initial candidate
// sequence: one representative timestamp per interval, clipped to the
// window, sorted ascending, duplicates within Epsilon collapsed.
//
// An empty detector result propagates as an empty sequence; the caller
// decides fallback policy.
func Normalize(intervals []detect.TimeInterval, policy RepresentativePolicy, window *Window) []float64 {
	cands := make([]float64, 0, len(intervals))
	for _, iv := range intervals {
		var t float64
		switch policy {
		case IntervalStart:
			t = iv.Start
		default:
			t = iv.Midpoint()
		}
		if window != nil && (t < window.Start || t > window.End) {
			continue
		}
		cands = append(cands, t)
	}
	sort.Float64s(cands)
	return dedupeSorted(cands)
}

// dedupeSorted collapses timestamps closer than Epsilon in an already
// sorted sequence, keeping the first of each cluster. The result is
// strictly increasing.
func dedupeSorted(ts []float64) []float64 {
	if len(ts) == 0 {
		return ts
	}
	out := ts[:1]
	for _, t := range ts[1:] {
		if t-out[len(out)-1] > Epsilon {
			out = append(out, t)
		}
	}
	return out
}
