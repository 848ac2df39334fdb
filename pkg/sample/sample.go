// Package sample provides frame samplers: given a video and a timestamp,
// a sampler returns the decoded frame at that position. A transient
// decode failure yields a nil frame, never an error — compressed streams
// drop frames routinely and the selection filters absorb the gap.
package sample

import (
	"context"

	"github.com/slidegrab/slidegrab/pkg/frame"
)

// Sampler decodes single frames from one video.
//
// Samplers hold decoder seek state and must not be shared across
// concurrent pipeline runs; give each run its own handle.
type Sampler interface {
	// Sample decodes the frame at the given timestamp in seconds.
	// Returns (nil, nil) when the frame cannot be decoded; an error is
	// reserved for non-transient failures such as a cancelled context.
	Sample(ctx context.Context, timestamp float64) (*frame.Frame, error)

	// Duration returns the video length in seconds.
	Duration(ctx context.Context) (float64, error)

	// Close releases the decoder.
	Close() error
}
