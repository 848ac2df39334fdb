package document

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/slidegrab/slidegrab/internal/log"
	"github.com/slidegrab/slidegrab/pkg/keyframe"
)

// ImageDir assembles keyframes as a numbered PNG sequence in a
// directory: page_001.png, page_002.png, and so on. Page numbering
// follows display order.
type ImageDir struct {
	// Dir is the output directory, created if missing.
	Dir string
}

// NewImageDir creates an image-sequence assembler for the directory.
func NewImageDir(dir string) *ImageDir {
	return &ImageDir{Dir: dir}
}

// Assemble writes every keyframe as a PNG page.
func (a *ImageDir) Assemble(ctx context.Context, frames []keyframe.Keyframe) error {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return fmt.Errorf("document: create %s: %w", a.Dir, err)
	}
	for i, kf := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(a.Dir, fmt.Sprintf("page_%03d.png", i+1))
		if err := writePNG(path, kf); err != nil {
			return err
		}
	}
	log.Info("pages written", "dir", a.Dir, "count", len(frames))
	return nil
}

func writePNG(path string, kf keyframe.Keyframe) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("document: create %s: %w", path, err)
	}
	if err := png.Encode(f, kf.Frame.Image); err != nil {
		f.Close()
		return fmt.Errorf("document: encode page at %vs: %w", kf.Timestamp, err)
	}
	return f.Close()
}
