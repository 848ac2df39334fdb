package keyframe

import (
	"context"
	"image"

	"github.com/slidegrab/slidegrab/pkg/detect"
	"github.com/slidegrab/slidegrab/pkg/frame"
)

// MockSampler is an in-memory Sampler for testing the selection stages
// without a video file or decoder.
type MockSampler struct {
	// FrameFn produces the frame for a timestamp. Return nil to
	// simulate a transient decode failure. When unset every sample
	// yields a uniform mid-gray frame.
	FrameFn func(timestamp float64) *frame.Frame

	// VideoDuration is returned by Duration.
	VideoDuration float64

	// Calls records every sampled timestamp, in order.
	Calls []float64

	// DurationCalls counts Duration invocations.
	DurationCalls int
}

// Sample implements sample.Sampler.
func (m *MockSampler) Sample(_ context.Context, timestamp float64) (*frame.Frame, error) {
	m.Calls = append(m.Calls, timestamp)
	if m.FrameFn == nil {
		return UniformFrame(128, timestamp), nil
	}
	return m.FrameFn(timestamp), nil
}

// Duration implements sample.Sampler.
func (m *MockSampler) Duration(context.Context) (float64, error) {
	m.DurationCalls++
	return m.VideoDuration, nil
}

// Close implements sample.Sampler.
func (m *MockSampler) Close() error {
	return nil
}

// MockDetector is a canned-response Detector for pipeline tests.
type MockDetector struct {
	Intervals []detect.TimeInterval
	Err       error

	// Opts records the options of the last Detect call.
	Opts detect.Options
}

// Detect implements detect.Detector.
func (m *MockDetector) Detect(_ context.Context, _ string, opts detect.Options) ([]detect.TimeInterval, error) {
	m.Opts = opts
	return m.Intervals, m.Err
}

// Close implements detect.Detector.
func (m *MockDetector) Close() error {
	return nil
}

// UniformFrame builds a 32x32 frame filled with one gray level.
// Uniform frames score zero sharpness and their pairwise dissimilarity
// is exactly the level difference, which makes threshold arithmetic in
// tests readable.
func UniformFrame(level uint8, timestamp float64) *frame.Frame {
	g := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range g.Pix {
		g.Pix[i] = level
	}
	return frame.New(g, timestamp)
}

// TexturedFrame builds a 32x32 frame with a strong checker pattern
// offset by phase, so frames with different phases are both sharp and
// mutually dissimilar.
func TexturedFrame(phase int, timestamp float64) *frame.Frame {
	g := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if (x+y+phase)%2 == 0 {
				g.Pix[y*g.Stride+x] = 255
			}
		}
	}
	return frame.New(g, timestamp)
}
