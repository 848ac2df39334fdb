package sample

import (
	"context"
	"fmt"
	"sync"

	"gocv.io/x/gocv"

	"github.com/slidegrab/slidegrab/internal/log"
	"github.com/slidegrab/slidegrab/pkg/frame"
)

// VideoSampler decodes frames through one persistent OpenCV capture.
// Much faster than per-frame process spawning when sampling many
// timestamps from the same file. The capture keeps internal seek state,
// so a mutex serializes access; use one VideoSampler per pipeline run.
type VideoSampler struct {
	vc *gocv.VideoCapture
	mu sync.Mutex
}

// NewVideo opens a gocv-backed sampler for the given video.
func NewVideo(videoPath string) (*VideoSampler, error) {
	vc, err := gocv.OpenVideoCapture(videoPath)
	if err != nil {
		return nil, fmt.Errorf("sample: open video %s: %w", videoPath, err)
	}
	return &VideoSampler{vc: vc}, nil
}

// Sample seeks to the timestamp and decodes one frame.
func (s *VideoSampler) Sample(ctx context.Context, timestamp float64) (*frame.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.vc.Set(gocv.VideoCapturePosMsec, timestamp*1000)

	mat := gocv.NewMat()
	defer mat.Close()
	if ok := s.vc.Read(&mat); !ok || mat.Empty() {
		log.Debug("seek produced no frame", "timestamp", timestamp)
		return nil, nil
	}

	img, err := mat.ToImage()
	if err != nil {
		log.Debug("frame conversion failed", "timestamp", timestamp, "err", err)
		return nil, nil
	}
	return frame.New(img, timestamp), nil
}

// Duration returns the video length from the container frame count.
func (s *VideoSampler) Duration(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fps := s.vc.Get(gocv.VideoCaptureFPS)
	frames := s.vc.Get(gocv.VideoCaptureFrameCount)
	if fps <= 0 || frames <= 0 {
		return 0, fmt.Errorf("sample: container reports fps=%v frames=%v", fps, frames)
	}
	return frames / fps, nil
}

// Close releases the capture.
func (s *VideoSampler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vc.Close()
}
