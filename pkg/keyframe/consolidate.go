package keyframe

import (
	"fmt"

	"github.com/slidegrab/slidegrab/pkg/frame"
)

// Keyframe is a candidate that survived all filtering stages, paired
// with its materialized frame. Read-only after consolidation.
type Keyframe struct {
	Timestamp float64
	Frame     *frame.Frame
}

// Consolidate performs the final adjacency-based duplicate pass over
// the materialized frame set. Gap filling can introduce adjacent
// duplicates the pre-fill pass could not have seen; this is the same
// running comparison applied once more, and it runs only when
// dupThreshold is positive. The first valid frame is always kept.
//
// It returns the definitive ordered keyframes plus the matching
// timestamps restricted to the retained indices. The timestamps are
// returned separately because a parallel full-screen extraction pass
// samples the same slide boundaries from a differently-cropped copy of
// the video; the timestamps, not just these frames, must survive.
//
// Candidates whose frame failed to decode are dropped regardless of
// threshold; an unreadable frame cannot represent a slide. An empty
// result is the pipeline's only fatal condition: ErrNoKeyframes.
func Consolidate(cands []Keyframe, dupThreshold float64) ([]Keyframe, []float64, error) {
	kept := make([]Keyframe, 0, len(cands))

	if dupThreshold > 0 {
		frames := make([]*frame.Frame, len(cands))
		for i := range cands {
			frames[i] = cands[i].Frame
		}
		for _, i := range runningKeep(frames, dupThreshold) {
			kept = append(kept, cands[i])
		}
	} else {
		for _, c := range cands {
			if c.Frame.Valid() {
				kept = append(kept, c)
			}
		}
	}

	if len(kept) == 0 {
		return nil, nil, fmt.Errorf("%w: %d candidates, none materialized", ErrNoKeyframes, len(cands))
	}

	ts := make([]float64, len(kept))
	for i, k := range kept {
		ts[i] = k.Timestamp
	}
	return kept, ts, nil
}
