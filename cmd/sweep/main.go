// Command sweep runs the selection pipeline headless across several
// parameter sets, one output subdirectory per set, so tunings can be
// compared side by side on the same recording.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/slidegrab/slidegrab/internal/config"
	"github.com/slidegrab/slidegrab/internal/log"
	"github.com/slidegrab/slidegrab/pkg/detect"
	"github.com/slidegrab/slidegrab/pkg/document"
	"github.com/slidegrab/slidegrab/pkg/keyframe"
	"github.com/slidegrab/slidegrab/pkg/sample"
)

// paramSet is one named tuning in the sweep.
type paramSet struct {
	name   string
	params keyframe.Params
}

// sweepSets covers the tunings worth comparing on a new recording: the
// default, looser and tighter detection, filtering off, and gap filling
// variants.
func sweepSets() []paramSet {
	mk := func(sens float64, minLen int, static, dup, gap, maxGap, fill float64) keyframe.Params {
		return keyframe.Params{
			BoundarySensitivity:  sens,
			MinBoundaryGapFrames: minLen,
			StaticThreshold:      static,
			DuplicateThreshold:   dup,
			MinTimeGap:           gap,
			MaxTimeGap:           maxGap,
			FillInterval:         fill,
		}
	}
	return []paramSet{
		{"01_default", mk(12, 5, 2.0, 1.5, 0.5, 45, 15)},
		{"02_sensitive", mk(8, 3, 0, 0, 0.5, 45, 15)},
		{"03_medium", mk(10, 5, 0, 0, 0.5, 45, 15)},
		{"04_low_filter", mk(12, 5, 0, 0, 0.5, 45, 15)},
		{"05_conservative", mk(18, 8, 5.0, 3.0, 1.0, 0, 15)},
		{"06_very_sensitive", mk(6, 3, 0, 0, 0.3, 45, 15)},
		{"07_fill_aggressive", mk(10, 5, 0, 0, 0.5, 30, 10)},
		{"08_no_fill", mk(10, 5, 0, 0, 0.5, 0, 15)},
	}
}

func main() {
	var (
		videoPath = flag.String("video", "", "input video file (or SLIDEGRAB_VIDEO)")
		outBase   = flag.String("out-base", "", "base directory; each set writes to its own subdirectory")
		method    = flag.String("method", "content", "detection backend: content or threshold")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log.Init(cfg.LogLevel)

	if *videoPath == "" {
		*videoPath = cfg.VideoPath
	}
	if *videoPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -video (or SLIDEGRAB_VIDEO) is required")
		os.Exit(1)
	}
	if *outBase == "" {
		*outBase = filepath.Join(cfg.OutputDir, "param_sweep")
	}

	kind, err := detect.ParseKind(*method)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Short run ID so repeated sweeps over the same video do not
	// clobber each other.
	runID := uuid.NewString()[:8]
	ctx := context.Background()

	sets := sweepSets()
	type outcome struct {
		name  string
		count int
		err   error
	}
	results := make([]outcome, 0, len(sets))

	for i, set := range sets {
		fmt.Printf("[%d/%d] %s\n", i+1, len(sets), set.name)
		count, err := runOne(ctx, kind, *videoPath, filepath.Join(*outBase, runID, set.name), set.params, cfg)
		if err != nil {
			log.Error("sweep run failed", "set", set.name, "err", err)
		}
		results = append(results, outcome{set.name, count, err})
	}

	fmt.Printf("\nSweep %s over %s:\n", runID, *videoPath)
	for _, r := range results {
		if r.err != nil {
			fmt.Printf("  %-20s FAILED: %v\n", r.name, r.err)
			continue
		}
		fmt.Printf("  %-20s %3d keyframes\n", r.name, r.count)
	}
}

// runOne executes one independent pipeline run. Every run gets its own
// sampler handle; decoders keep seek state and cannot be shared.
func runOne(ctx context.Context, kind detect.Kind, videoPath, outDir string, params keyframe.Params, cfg *config.Config) (int, error) {
	detector, err := detect.New(kind)
	if err != nil {
		return 0, err
	}
	defer detector.Close()

	sampler := sample.NewFFmpeg(videoPath, cfg.FFmpegBin, cfg.FFprobeBin)
	defer sampler.Close()

	pipeline, err := keyframe.NewPipeline(detector, sampler, params, nil)
	if err != nil {
		return 0, err
	}

	res, err := pipeline.Run(ctx, videoPath)
	if err != nil {
		return 0, err
	}

	if err := document.NewImageDir(outDir).Assemble(ctx, res.Keyframes); err != nil {
		return 0, err
	}
	return len(res.Keyframes), nil
}
