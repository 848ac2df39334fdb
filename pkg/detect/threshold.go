package detect

import (
	"context"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// ThresholdDetector finds page flips by comparing successive grayscale
// frames. Each frame pair gets a similarity ratio in 0..1 (1 means
// identical); a ratio below the sensitivity marks a boundary. Suited to
// static slide material where anything but a page flip leaves the image
// untouched.
type ThresholdDetector struct {
	mu sync.Mutex
}

// NewThreshold creates a similarity-threshold detector.
func NewThreshold() *ThresholdDetector {
	return &ThresholdDetector{}
}

// DefaultThresholdSensitivity is the similarity cutoff that works for
// most slide recordings with this backend. Options.Sensitivity above 1
// (a content-delta tuning) is replaced by this value.
const DefaultThresholdSensitivity = 0.45

// Detect scans the video and returns one interval per detected page.
func (d *ThresholdDetector) Detect(ctx context.Context, videoPath string, opts Options) ([]TimeInterval, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sensitivity := opts.Sensitivity
	if sensitivity <= 0 || sensitivity >= 1 {
		sensitivity = DefaultThresholdSensitivity
	}

	vc, err := gocv.OpenVideoCapture(videoPath)
	if err != nil {
		return nil, fmt.Errorf("detect: open video %s: %w", videoPath, err)
	}
	defer vc.Close()

	fps := vc.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		return nil, fmt.Errorf("detect: video %s reports fps=%v", videoPath, fps)
	}

	raw := gocv.NewMat()
	defer raw.Close()
	small := gocv.NewMat()
	defer small.Close()
	gray := gocv.NewMat()
	defer gray.Close()
	prev := gocv.NewMat()
	defer prev.Close()
	diff := gocv.NewMat()
	defer diff.Close()

	var cuts []int
	frameIdx := 0
	lastCut := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ok := vc.Read(&raw); !ok || raw.Empty() {
			break
		}

		downscale(raw, &small)
		gocv.CvtColor(small, &gray, gocv.ColorBGRToGray)

		if !prev.Empty() {
			gocv.AbsDiff(gray, prev, &diff)
			similarity := 1 - diff.Mean().Val1/255
			if similarity < sensitivity && frameIdx-lastCut >= opts.MinSceneLen {
				cuts = append(cuts, frameIdx)
				lastCut = frameIdx
			}
		}
		gray.CopyTo(&prev)
		frameIdx++
	}

	ivs := cutsToIntervals(cuts, frameIdx, fps)
	sortIntervals(ivs)
	return ivs, nil
}

// Close implements Detector. The backend keeps no state between scans.
func (d *ThresholdDetector) Close() error {
	return nil
}
