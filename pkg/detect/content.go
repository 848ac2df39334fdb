package detect

import (
	"context"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// analysisWidth is the width frames are downscaled to before scoring.
// Boundary detection does not need full resolution and the decode walk
// dominates run time.
const analysisWidth = 320

// ContentDetector finds scene boundaries by walking every decoded frame
// and scoring the HSV delta against the previous frame. A delta at or
// above the sensitivity opens a new scene.
type ContentDetector struct {
	mu sync.Mutex // one decode walk at a time
}

// NewContent creates a content-delta detector.
func NewContent() *ContentDetector {
	return &ContentDetector{}
}

// Detect scans the video and returns one interval per detected scene.
func (d *ContentDetector) Detect(ctx context.Context, videoPath string, opts Options) ([]TimeInterval, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

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
	hsv := gocv.NewMat()
	defer hsv.Close()
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
		gocv.CvtColor(small, &hsv, gocv.ColorBGRToHSV)

		if !prev.Empty() {
			gocv.AbsDiff(hsv, prev, &diff)
			m := diff.Mean()
			delta := (m.Val1 + m.Val2 + m.Val3) / 3
			if delta >= opts.Sensitivity && frameIdx-lastCut >= opts.MinSceneLen {
				cuts = append(cuts, frameIdx)
				lastCut = frameIdx
			}
		}
		hsv.CopyTo(&prev)
		frameIdx++
	}

	ivs := cutsToIntervals(cuts, frameIdx, fps)
	sortIntervals(ivs)
	return ivs, nil
}

// Close implements Detector. The backend keeps no state between scans.
func (d *ContentDetector) Close() error {
	return nil
}

// downscale resizes a frame to the analysis width, preserving aspect.
func downscale(src gocv.Mat, dst *gocv.Mat) {
	w := src.Cols()
	if w <= analysisWidth {
		src.CopyTo(dst)
		return
	}
	h := src.Rows() * analysisWidth / w
	gocv.Resize(src, dst, image.Pt(analysisWidth, h), 0, 0, gocv.InterpolationArea)
}

// cutsToIntervals converts cut frame indices into scene intervals in
// seconds. The first scene starts at frame zero; the last one ends at
// the final decoded frame.
func cutsToIntervals(cuts []int, totalFrames int, fps float64) []TimeInterval {
	if totalFrames == 0 {
		return nil
	}
	bounds := make([]int, 0, len(cuts)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, cuts...)
	bounds = append(bounds, totalFrames)

	ivs := make([]TimeInterval, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		ivs = append(ivs, TimeInterval{
			Start: float64(bounds[i]) / fps,
			End:   float64(bounds[i+1]) / fps,
		})
	}
	return ivs
}
