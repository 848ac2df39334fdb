// Command slidegrab extracts one keyframe per slide from a recorded
// presentation video and writes the frames as a numbered page sequence.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/slidegrab/slidegrab/internal/config"
	"github.com/slidegrab/slidegrab/internal/log"
	"github.com/slidegrab/slidegrab/pkg/detect"
	"github.com/slidegrab/slidegrab/pkg/document"
	"github.com/slidegrab/slidegrab/pkg/keyframe"
	"github.com/slidegrab/slidegrab/pkg/sample"
)

func main() {
	var (
		videoPath  = flag.String("video", "", "input video file (or SLIDEGRAB_VIDEO)")
		outDir     = flag.String("out", "", "output directory (or SLIDEGRAB_OUTPUT)")
		presetPath = flag.String("preset", "", "TOML preset file with extraction parameters")
		method     = flag.String("method", "", "detection backend: content or threshold (overrides preset)")
		startTime  = flag.String("start", "", "start of selection window, HH:MM:SS (overrides preset)")
		endTime    = flag.String("end", "", "end of selection window, HH:MM:SS (overrides preset)")
		useOpenCV  = flag.Bool("opencv-sampler", false, "sample frames through OpenCV instead of ffmpeg")
		savePreset = flag.Bool("save-preset", false, "write the effective parameters back to the preset file")
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
	if *outDir == "" {
		*outDir = cfg.OutputDir
	}

	preset := config.DefaultPreset()
	if *presetPath != "" {
		preset, err = config.LoadPreset(*presetPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *method != "" {
		preset.Method = *method
	}
	if *startTime != "" {
		preset.StartTime = *startTime
	}
	if *endTime != "" {
		preset.EndTime = *endTime
	}

	kind, err := detect.ParseKind(preset.Method)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	detector, err := detect.New(kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer detector.Close()

	var sampler sample.Sampler
	if *useOpenCV {
		sampler, err = sample.NewVideo(*videoPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		sampler = sample.NewFFmpeg(*videoPath, cfg.FFmpegBin, cfg.FFprobeBin)
	}
	defer sampler.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params, err := resolveParams(ctx, preset, sampler)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Persist only parameters that survived validation; a preset that
	// would abort the run must not be written back.
	if *savePreset && *presetPath != "" {
		if err := config.SavePreset(*presetPath, preset); err != nil {
			log.Warn("could not save preset", "err", err)
		}
	}

	pipeline, err := keyframe.NewPipeline(detector, sampler, params, func(d keyframe.Diag) {
		log.Warn("pipeline diagnostic", "kind", d.Kind.String(), "timestamp", d.Timestamp, "msg", d.Message)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	res, err := pipeline.Run(ctx, *videoPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if res.Degraded {
		fmt.Println("No scene changes detected; extracted a single frame.")
	}

	assembler := document.NewImageDir(*outDir)
	if err := assembler.Assemble(ctx, res.Keyframes); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("%d keyframes -> %s\n", len(res.Keyframes), *outDir)
	for i, ts := range res.Timestamps {
		fmt.Printf("  page_%03d.png  %8.2fs\n", i+1, ts)
	}
}

// resolveParams turns the preset into validated engine parameters. A
// window with a start time but no end time is closed against the video
// duration; the duration probe is skipped when no window needs it.
func resolveParams(ctx context.Context, preset config.Preset, sampler sample.Sampler) (keyframe.Params, error) {
	var duration float64
	if preset.StartTime != "" && preset.EndTime == "" {
		d, err := sampler.Duration(ctx)
		if err != nil {
			return keyframe.Params{}, fmt.Errorf("probe video duration: %w", err)
		}
		duration = d
	}
	params, err := preset.Params(duration)
	if err != nil {
		return params, err
	}
	return params, params.Validate()
}
