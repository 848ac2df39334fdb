package keyframe

import (
	"context"
	"fmt"

	"github.com/slidegrab/slidegrab/internal/log"
	"github.com/slidegrab/slidegrab/pkg/detect"
	"github.com/slidegrab/slidegrab/pkg/sample"
)

// Pipeline runs the full selection sequence: detect boundaries,
// normalize, filter, fill gaps, materialize frames, consolidate.
//
// A Pipeline holds no mutable state across runs, so separate pipelines
// can run in parallel (a parameter sweep, for example) as long as each
// gets its own detector and sampler handle; video decoders keep
// internal seek state and must not be shared.
type Pipeline struct {
	detector detect.Detector
	sampler  sample.Sampler
	params   Params
	observer Observer
}

// Result is the output of one pipeline run.
type Result struct {
	// Keyframes is the definitive ordered (timestamp, frame) list.
	Keyframes []Keyframe

	// Timestamps are the retained timestamps, for parallel extraction
	// passes over differently-cropped copies of the same video.
	Timestamps []float64

	// Degraded is true when detection found nothing usable and the
	// single-fallback-candidate policy produced the result.
	Degraded bool
}

// NewPipeline builds a pipeline. Parameters are validated here, before
// any decode work. The observer may be nil.
func NewPipeline(d detect.Detector, s sample.Sampler, p Params, obs Observer) (*Pipeline, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{detector: d, sampler: s, params: p, observer: obs}, nil
}

// Run executes the selection pipeline against one video. The context is
// checked before every frame sample; cancellation is cooperative and
// never interrupts a metric computation mid-frame.
func (pl *Pipeline) Run(ctx context.Context, videoPath string) (*Result, error) {
	p := pl.params

	intervals, err := pl.detector.Detect(ctx, videoPath, detect.Options{
		Sensitivity: p.BoundarySensitivity,
		MinSceneLen: p.MinBoundaryGapFrames,
	})
	if err != nil {
		return nil, fmt.Errorf("keyframe: boundary detection: %w", err)
	}
	log.Debug("boundaries detected", "video", videoPath, "intervals", len(intervals))

	cands := Normalize(intervals, p.Policy, p.Window)
	log.Debug("candidates normalized", "count", len(cands))

	cands, degraded, err := Filter(ctx, cands, pl.sampler, p, pl.observer)
	if err != nil {
		return nil, err
	}
	if degraded {
		log.Warn("no scene changes detected, using single frame", "timestamp", cands[0])
	}

	filled := FillGaps(cands, p.MaxTimeGap, p.FillInterval)
	if n := len(filled) - len(cands); n > 0 {
		log.Debug("gaps filled", "synthetic", n)
	}

	pairs, err := pl.materialize(ctx, filled)
	if err != nil {
		return nil, err
	}

	keyframes, ts, err := Consolidate(pairs, p.DuplicateThreshold)
	if err != nil {
		return nil, err
	}
	log.Info("keyframes selected", "count", len(keyframes), "degraded", degraded)

	return &Result{Keyframes: keyframes, Timestamps: ts, Degraded: degraded}, nil
}

// materialize samples a fresh frame for every candidate, in order, one
// at a time; sampling is sequential I/O against a single decoder.
// Unreadable frames are reported and carried as nil for the
// consolidator to drop.
func (pl *Pipeline) materialize(ctx context.Context, cands []float64) ([]Keyframe, error) {
	pairs := make([]Keyframe, 0, len(cands))
	for _, t := range cands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := pl.sampler.Sample(ctx, t)
		if err != nil {
			return nil, err
		}
		if !f.Valid() {
			notify(pl.observer, Diag{Kind: DiagUnreadableFrame, Timestamp: t, Message: "frame sample failed at materialization"})
			f = nil
		}
		pairs = append(pairs, Keyframe{Timestamp: t, Frame: f})
	}
	return pairs, nil
}
