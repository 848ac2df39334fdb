package sample

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os/exec"
	"strconv"
	"strings"

	"github.com/slidegrab/slidegrab/internal/log"
	"github.com/slidegrab/slidegrab/pkg/frame"
)

// FFmpegSampler decodes frames by spawning ffmpeg per request, piping a
// single PNG through stdout. No temp files. Slower per frame than a
// persistent decoder but stateless and robust against damaged streams.
type FFmpegSampler struct {
	videoPath string
	ffmpeg    string
	ffprobe   string

	duration float64 // cached after first probe
}

// NewFFmpeg creates an ffmpeg-backed sampler for the given video.
// ffmpegBin and ffprobeBin override the binaries looked up on PATH;
// pass "" for the defaults.
func NewFFmpeg(videoPath, ffmpegBin, ffprobeBin string) *FFmpegSampler {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	return &FFmpegSampler{
		videoPath: videoPath,
		ffmpeg:    ffmpegBin,
		ffprobe:   ffprobeBin,
		duration:  -1,
	}
}

// Sample decodes the frame at the given timestamp.
func (s *FFmpegSampler) Sample(ctx context.Context, timestamp float64) (*frame.Frame, error) {
	cmd := exec.CommandContext(ctx, s.ffmpeg,
		"-ss", strconv.FormatFloat(timestamp, 'f', 3, 64),
		"-i", s.videoPath,
		"-vframes", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"pipe:1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Debug("ffmpeg frame decode failed",
			"timestamp", timestamp, "err", err, "stderr", tail(stderr.String()))
		return nil, nil
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		log.Debug("ffmpeg produced undecodable frame", "timestamp", timestamp, "err", err)
		return nil, nil
	}
	return frame.New(img, timestamp), nil
}

// Duration returns the video length via ffprobe.
func (s *FFmpegSampler) Duration(ctx context.Context) (float64, error) {
	if s.duration >= 0 {
		return s.duration, nil
	}
	cmd := exec.CommandContext(ctx, s.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		s.videoPath,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("sample: ffprobe %s: %w", s.videoPath, err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("sample: parse duration: %w", err)
	}
	s.duration = d
	return d, nil
}

// Close implements Sampler. Nothing persistent to release.
func (s *FFmpegSampler) Close() error {
	return nil
}

// tail keeps the last line of ffmpeg stderr for logging.
func tail(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
