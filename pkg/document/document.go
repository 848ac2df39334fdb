// Package document turns consolidated keyframes into a paged artifact.
// The selection engine guarantees frames arrive in final display order
// with no duplicates beyond the configured thresholds; assemblers only
// lay them out.
package document

import (
	"context"

	"github.com/slidegrab/slidegrab/pkg/keyframe"
)

// Assembler writes an ordered frame list as a paged artifact.
type Assembler interface {
	// Assemble writes one page per keyframe, in order.
	Assemble(ctx context.Context, frames []keyframe.Keyframe) error
}
