// Package frame provides the decoded frame type and the pure image
// metrics used to judge slide keyframes: a sharpness score for a single
// frame and a dissimilarity score between two frames.
package frame

import "image"

// Frame is a decoded raster image tied to a position in the video.
// Each pipeline stage owns the frames it requested; frames are never
// shared across stages.
type Frame struct {
	// Image is the decoded raster. Nil when sampling failed.
	Image image.Image

	// Timestamp is the frame position in seconds from the start of the video.
	Timestamp float64
}

// New creates a frame at the given timestamp.
func New(img image.Image, timestamp float64) *Frame {
	return &Frame{Image: img, Timestamp: timestamp}
}

// Valid reports whether the frame carries a usable image.
// A nil frame, nil image, or zero-area image is not valid.
func (f *Frame) Valid() bool {
	if f == nil || f.Image == nil {
		return false
	}
	b := f.Image.Bounds()
	return b.Dx() > 0 && b.Dy() > 0
}
