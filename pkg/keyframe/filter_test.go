package keyframe

import (
	"context"
	"image"
	"testing"

	"github.com/slidegrab/slidegrab/pkg/frame"
)

// offsetFrame returns a 40x25 frame of base gray with diffPixels pixels
// raised by one level. Against a uniform base frame its mean absolute
// difference is diffPixels/1000.
func offsetFrame(base uint8, diffPixels int, ts float64) *frame.Frame {
	g := image.NewGray(image.Rect(0, 0, 40, 25))
	for i := range g.Pix {
		g.Pix[i] = base
	}
	for i := 0; i < diffPixels; i++ {
		g.Pix[i] = base + 1
	}
	return frame.New(g, ts)
}

func TestFilter_MinTimeGap(t *testing.T) {
	p := Params{MinTimeGap: 2.0}
	cands := []float64{0, 1, 2.5, 3, 5, 5.5, 9}
	got, degraded, err := Filter(context.Background(), cands, &MockSampler{}, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if degraded {
		t.Error("Unexpected degraded flag")
	}
	want := []float64{0, 2.5, 5, 9}
	if !floatsEqual(got, want) {
		t.Errorf("Got %v, want %v", got, want)
	}
	// No two adjacent survivors closer than the gap.
	for i := 1; i < len(got); i++ {
		if got[i]-got[i-1] < p.MinTimeGap {
			t.Fatalf("Gap invariant violated at %d: %v", i, got)
		}
	}
}

func TestFilter_NoThresholdsNoSampling(t *testing.T) {
	// With both thresholds disabled the stage must not touch the decoder.
	ms := &MockSampler{}
	p := Params{MinTimeGap: 1}
	_, _, err := Filter(context.Background(), []float64{0, 5, 10}, ms, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms.Calls) != 0 {
		t.Errorf("Expected no samples, decoder was hit %d times", len(ms.Calls))
	}
}

func TestFilter_StaticFrames(t *testing.T) {
	// Textured frames survive; uniform (zero sharpness) frames drop.
	ms := &MockSampler{FrameFn: func(ts float64) *frame.Frame {
		if ts == 5 {
			return UniformFrame(0, ts) // black screen artifact
		}
		return TexturedFrame(0, ts)
	}}
	p := Params{StaticThreshold: 2.0}
	got, degraded, err := Filter(context.Background(), []float64{0, 5, 10}, ms, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if degraded {
		t.Error("Unexpected degraded flag")
	}
	want := []float64{0, 10}
	if !floatsEqual(got, want) {
		t.Errorf("Got %v, want %v", got, want)
	}
}

func TestFilter_DuplicateBelowThreshold(t *testing.T) {
	// Second frame differs from the first by mean absolute difference
	// 0.8, below the 1.5 threshold: it is a repeat and drops.
	ms := &MockSampler{FrameFn: func(ts float64) *frame.Frame {
		switch ts {
		case 0:
			return offsetFrame(100, 0, ts)
		case 5:
			return offsetFrame(100, 800, ts) // mad 0.8 vs previous
		default:
			return offsetFrame(200, 0, ts) // clearly different slide
		}
	}}
	p := Params{DuplicateThreshold: 1.5}
	got, _, err := Filter(context.Background(), []float64{0, 5, 10}, ms, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 10}
	if !floatsEqual(got, want) {
		t.Errorf("Got %v, want %v", got, want)
	}
}

func TestFilter_RunningComparisonCollapsesSlowFade(t *testing.T) {
	// Each step differs by 1.0 from its neighbor, below threshold 1.5,
	// but the accumulated drift from the anchor eventually exceeds it.
	// A running comparison keeps only the frames that moved far enough
	// from the last kept one, not from their immediate neighbor.
	levels := map[float64]int{0: 0, 1: 1000, 2: 2000, 3: 3000}
	ms := &MockSampler{FrameFn: func(ts float64) *frame.Frame {
		// diffPixels beyond 1000 wraps into +1 levels across all pixels.
		n := levels[ts]
		g := image.NewGray(image.Rect(0, 0, 40, 25))
		for i := range g.Pix {
			g.Pix[i] = uint8(100 + n/1000)
		}
		for i := 0; i < n%1000; i++ {
			g.Pix[i]++
		}
		return frame.New(g, ts)
	}}
	p := Params{DuplicateThreshold: 1.5}
	got, _, err := Filter(context.Background(), []float64{0, 1, 2, 3}, ms, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	// 0 anchors; 1 (mad 1.0) drops; 2 (mad 2.0 vs anchor) keeps and
	// re-anchors; 3 (mad 1.0 vs new anchor) drops.
	want := []float64{0, 2}
	if !floatsEqual(got, want) {
		t.Errorf("Got %v, want %v", got, want)
	}
}

func TestFilter_UnreadableFrameDropsAsStatic(t *testing.T) {
	var diags []Diag
	ms := &MockSampler{FrameFn: func(ts float64) *frame.Frame {
		if ts == 5 {
			return nil // transient decode failure
		}
		return TexturedFrame(int(ts), ts)
	}}
	p := Params{StaticThreshold: 2.0}
	got, _, err := Filter(context.Background(), []float64{0, 5, 10}, ms, p, func(d Diag) {
		diags = append(diags, d)
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 10}
	if !floatsEqual(got, want) {
		t.Errorf("Got %v, want %v", got, want)
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnreadableFrame {
		t.Errorf("Expected one unreadable-frame diagnostic, got %v", diags)
	}
}

func TestFilter_AllFilteredFallsBack(t *testing.T) {
	// Absurdly high static threshold kills everything; the stage falls
	// back to a single candidate instead of returning an empty list.
	var diags []Diag
	p := Params{StaticThreshold: 1e9}
	got, degraded, err := Filter(context.Background(), []float64{3, 6, 9}, &MockSampler{}, p, func(d Diag) {
		diags = append(diags, d)
	})
	if err != nil {
		t.Fatal(err)
	}
	if !degraded {
		t.Error("Expected degraded flag")
	}
	if !floatsEqual(got, []float64{0}) {
		t.Errorf("Expected fallback [0], got %v", got)
	}
	found := false
	for _, d := range diags {
		if d.Kind == DiagDegradedDetection {
			found = true
		}
	}
	if !found {
		t.Error("Expected a degraded-detection diagnostic")
	}
}

func TestFilter_FallbackUsesWindowStart(t *testing.T) {
	p := Params{Window: &Window{Start: 42, End: 100}}
	got, degraded, err := Filter(context.Background(), nil, &MockSampler{}, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !degraded {
		t.Error("Expected degraded flag for empty candidate list")
	}
	if !floatsEqual(got, []float64{42}) {
		t.Errorf("Expected fallback at window start, got %v", got)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	// Running the filter on its own output is a fixed point.
	ms := &MockSampler{FrameFn: func(ts float64) *frame.Frame {
		return TexturedFrame(int(ts), ts)
	}}
	p := Params{MinTimeGap: 1.5, StaticThreshold: 2.0, DuplicateThreshold: 1.0}
	cands := []float64{0, 1, 2, 4, 4.5, 8, 8.2, 12}

	once, _, err := Filter(context.Background(), cands, ms, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	twice, _, err := Filter(context.Background(), once, ms, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !floatsEqual(once, twice) {
		t.Errorf("Not a fixed point: %v then %v", once, twice)
	}
}

func TestFilter_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := Params{StaticThreshold: 2.0}
	_, _, err := Filter(ctx, []float64{0, 1, 2}, &MockSampler{}, p, nil)
	if err == nil {
		t.Fatal("Expected error from cancelled context")
	}
}
