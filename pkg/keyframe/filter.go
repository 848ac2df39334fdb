package keyframe

import (
	"context"

	"github.com/slidegrab/slidegrab/pkg/frame"
	"github.com/slidegrab/slidegrab/pkg/sample"
)

// Filter removes candidates that are too close together, static, or
// duplicates of their nearest surviving predecessor. Each check is a
// single left-to-right pass. The context is consulted before every
// frame sample, making a long run abortable between candidates.
//
// If every candidate is filtered out the result is a single fallback
// candidate at the window start (or zero), reported through the
// observer as DiagDegradedDetection; the returned bool is true on that
// path so callers can tell the user detection effectively failed.
func Filter(ctx context.Context, cands []float64, s sample.Sampler, p Params, obs Observer) ([]float64, bool, error) {
	kept := coalesce(cands, p.MinTimeGap)

	if len(kept) > 0 && (p.StaticThreshold > 0 || p.DuplicateThreshold > 0) {
		frames := make([]*frame.Frame, len(kept))
		for i, t := range kept {
			if err := ctx.Err(); err != nil {
				return nil, false, err
			}
			f, err := s.Sample(ctx, t)
			if err != nil {
				return nil, false, err
			}
			if !f.Valid() {
				notify(obs, Diag{Kind: DiagUnreadableFrame, Timestamp: t, Message: "frame sample failed; treating as static"})
			}
			frames[i] = f
		}

		if p.StaticThreshold > 0 {
			nts := kept[:0:0]
			nfs := frames[:0:0]
			for i, f := range frames {
				if frame.Sharpness(f) < p.StaticThreshold {
					continue
				}
				nts = append(nts, kept[i])
				nfs = append(nfs, f)
			}
			kept, frames = nts, nfs
		}

		if p.DuplicateThreshold > 0 {
			nts := kept[:0:0]
			for _, i := range runningKeep(frames, p.DuplicateThreshold) {
				nts = append(nts, kept[i])
			}
			kept = nts
		}
	}

	if len(kept) == 0 {
		fb := p.fallbackStart()
		notify(obs, Diag{Kind: DiagDegradedDetection, Timestamp: fb, Message: "no usable candidates; falling back to a single frame"})
		return []float64{fb}, true, nil
	}
	return kept, false, nil
}

// coalesce drops candidates closer than minGap seconds to the
// previously kept one. The first candidate is always provisionally
// kept.
func coalesce(cands []float64, minGap float64) []float64 {
	if len(cands) == 0 {
		return nil
	}
	out := make([]float64, 0, len(cands))
	for _, t := range cands {
		if len(out) > 0 && t-out[len(out)-1] < minGap {
			continue
		}
		out = append(out, t)
	}
	return out
}

// runningKeep returns the indices surviving a running duplicate
// comparison: each frame is compared against the nearest surviving
// predecessor, which collapses slow fades and near-duplicates from
// repeated cuts into one representative. Invalid frames can neither
// anchor a comparison nor survive one. The same pass runs twice in the
// pipeline, once before gap filling and once on the materialized frame
// set.
func runningKeep(frames []*frame.Frame, threshold float64) []int {
	keep := make([]int, 0, len(frames))
	var anchor *frame.Frame
	for i, f := range frames {
		if !f.Valid() {
			continue
		}
		if anchor != nil && frame.Dissimilarity(anchor, f) < threshold {
			continue
		}
		keep = append(keep, i)
		anchor = f
	}
	return keep
}
