package keyframe

// FillGaps inserts synthetic candidates into excessively large gaps
// between surviving candidates. Scene-change detectors tuned for motion
// miss slide transitions between visually similar slides (incremental
// bullet reveals); periodic sampling inside long static stretches
// recovers them without re-running detection.
//
// For every adjacent pair (a, b) with b-a > maxGap, points are inserted
// at a+fillInterval, a+2*fillInterval, ... strictly below b. Insertion
// is ordered per segment, so the merge stays sorted without a re-sort.
// Disabled entirely when maxGap or fillInterval is non-positive.
func FillGaps(cands []float64, maxGap, fillInterval float64) []float64 {
	if maxGap <= 0 || fillInterval <= 0 || len(cands) < 2 {
		return cands
	}
	out := make([]float64, 0, len(cands))
	for i, a := range cands {
		out = append(out, a)
		if i+1 >= len(cands) {
			break
		}
		b := cands[i+1]
		if b-a <= maxGap {
			continue
		}
		for t := a + fillInterval; t < b-Epsilon; t += fillInterval {
			out = append(out, t)
		}
	}
	return dedupeSorted(out)
}
