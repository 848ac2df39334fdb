package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/slidegrab/slidegrab/pkg/keyframe"
)

// Preset is a persisted set of extraction parameters. Presets live in
// an explicit caller-supplied file, never in an ambient working
// directory.
type Preset struct {
	// Method selects the detection backend: "content" or "threshold".
	Method string `toml:"method"`

	Sensitivity        float64 `toml:"sensitivity"`
	MinSceneLenFrames  int     `toml:"min_scene_len_frames"`
	StaticThreshold    float64 `toml:"static_threshold"`
	DuplicateThreshold float64 `toml:"duplicate_threshold"`
	MinTimeGap         float64 `toml:"min_time_gap"`
	MaxTimeGap         float64 `toml:"max_time_gap"`
	FillInterval       float64 `toml:"fill_interval"`

	// UseIntervalStart switches the representative policy from
	// midpoint to start-of-interval.
	UseIntervalStart bool `toml:"use_interval_start"`

	// StartTime and EndTime bound selection, "HH:MM:SS" or empty.
	StartTime string `toml:"start_time"`
	EndTime   string `toml:"end_time"`
}

// DefaultPreset mirrors keyframe.DefaultParams.
func DefaultPreset() Preset {
	p := keyframe.DefaultParams()
	return Preset{
		Method:             "content",
		Sensitivity:        p.BoundarySensitivity,
		MinSceneLenFrames:  p.MinBoundaryGapFrames,
		StaticThreshold:    p.StaticThreshold,
		DuplicateThreshold: p.DuplicateThreshold,
		MinTimeGap:         p.MinTimeGap,
		MaxTimeGap:         p.MaxTimeGap,
		FillInterval:       p.FillInterval,
	}
}

// Params converts the preset into engine parameters. videoDuration
// closes an open-ended window (a start time with no end time); it is
// ignored when both bounds are set or neither is.
func (pr Preset) Params(videoDuration float64) (keyframe.Params, error) {
	p := keyframe.Params{
		BoundarySensitivity:  pr.Sensitivity,
		MinBoundaryGapFrames: pr.MinSceneLenFrames,
		StaticThreshold:      pr.StaticThreshold,
		DuplicateThreshold:   pr.DuplicateThreshold,
		MinTimeGap:           pr.MinTimeGap,
		MaxTimeGap:           pr.MaxTimeGap,
		FillInterval:         pr.FillInterval,
	}
	if pr.UseIntervalStart {
		p.Policy = keyframe.IntervalStart
	}

	start, err := ParseHMS(pr.StartTime)
	if err != nil {
		return p, fmt.Errorf("config: start_time: %w", err)
	}
	end, err := ParseHMS(pr.EndTime)
	if err != nil {
		return p, fmt.Errorf("config: end_time: %w", err)
	}
	if start >= 0 || end >= 0 {
		w := &keyframe.Window{}
		if start >= 0 {
			w.Start = start
		}
		if end >= 0 {
			w.End = end
		} else {
			if videoDuration <= 0 {
				return p, fmt.Errorf("config: video duration required to close window starting at %s", pr.StartTime)
			}
			w.End = videoDuration
		}
		p.Window = w
	}
	return p, nil
}

// LoadPreset reads a preset from a TOML file. A missing file yields the
// defaults, matching how a first run behaves before anything is saved.
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultPreset(), nil
	}
	if err != nil {
		return Preset{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	pr := DefaultPreset()
	if err := toml.Unmarshal(data, &pr); err != nil {
		return Preset{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return pr, nil
}

// SavePreset writes a preset to a TOML file.
func SavePreset(path string, pr Preset) error {
	data, err := toml.Marshal(pr)
	if err != nil {
		return fmt.Errorf("config: marshal preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
