package config

import (
	"path/filepath"
	"testing"

	"github.com/slidegrab/slidegrab/pkg/keyframe"
)

func TestParseHMS(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", -1, false},
		{"  ", -1, false},
		{"00:00:05", 5, false},
		{"01:02:03", 3723, false},
		{"10:00:00", 36000, false},
		{"5", 0, true},
		{"1:2", 0, true},
		{"aa:bb:cc", 0, true},
		{"00:-1:00", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseHMS(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseHMS(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHMS(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHMS(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPreset_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.toml")

	pr := DefaultPreset()
	pr.Method = "threshold"
	pr.Sensitivity = 0.45
	pr.StartTime = "00:01:00"
	if err := SavePreset(path, pr); err != nil {
		t.Fatal(err)
	}

	got, err := LoadPreset(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != pr {
		t.Errorf("Round trip changed preset:\n got %+v\nwant %+v", got, pr)
	}
}

func TestLoadPreset_MissingFileYieldsDefaults(t *testing.T) {
	got, err := LoadPreset(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if got != DefaultPreset() {
		t.Errorf("Expected defaults, got %+v", got)
	}
}

func TestPreset_Params(t *testing.T) {
	pr := DefaultPreset()
	pr.StartTime = "00:00:30"
	pr.EndTime = "00:10:00"
	pr.UseIntervalStart = true

	p, err := pr.Params(0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Policy != keyframe.IntervalStart {
		t.Error("Expected interval-start policy")
	}
	if p.Window == nil || p.Window.Start != 30 || p.Window.End != 600 {
		t.Errorf("Unexpected window: %+v", p.Window)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Converted params should validate: %v", err)
	}
}

func TestPreset_ParamsNoWindow(t *testing.T) {
	p, err := DefaultPreset().Params(3600)
	if err != nil {
		t.Fatal(err)
	}
	if p.Window != nil {
		t.Errorf("Expected nil window, got %+v", p.Window)
	}
}

func TestPreset_ParamsOpenEndedWindow(t *testing.T) {
	// A start time with no end time bounds the window by the video
	// duration.
	pr := DefaultPreset()
	pr.StartTime = "00:00:30"

	p, err := pr.Params(3600)
	if err != nil {
		t.Fatal(err)
	}
	if p.Window == nil || p.Window.Start != 30 || p.Window.End != 3600 {
		t.Errorf("Unexpected window: %+v", p.Window)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Converted params should validate: %v", err)
	}

	// Without a known duration the window cannot be closed.
	if _, err := pr.Params(0); err == nil {
		t.Error("Expected error when duration is unknown")
	}
}

func TestPreset_ParamsEndOnlyWindow(t *testing.T) {
	// An end time alone needs no duration probe.
	pr := DefaultPreset()
	pr.EndTime = "00:10:00"

	p, err := pr.Params(0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Window == nil || p.Window.Start != 0 || p.Window.End != 600 {
		t.Errorf("Unexpected window: %+v", p.Window)
	}
}

func TestPreset_ParamsBadTime(t *testing.T) {
	pr := DefaultPreset()
	pr.StartTime = "ten past"
	if _, err := pr.Params(0); err == nil {
		t.Error("Expected error for malformed start_time")
	}
}
