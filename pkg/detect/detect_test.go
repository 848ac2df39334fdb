package detect

import (
	"math"
	"testing"
)

func TestCutsToIntervals(t *testing.T) {
	// 300 frames at 30fps with cuts at frames 60 and 150.
	ivs := cutsToIntervals([]int{60, 150}, 300, 30)
	want := []TimeInterval{{0, 2}, {2, 5}, {5, 10}}
	if len(ivs) != len(want) {
		t.Fatalf("Expected %d intervals, got %d", len(want), len(ivs))
	}
	for i := range want {
		if math.Abs(ivs[i].Start-want[i].Start) > 1e-9 || math.Abs(ivs[i].End-want[i].End) > 1e-9 {
			t.Errorf("Interval %d: got %+v, want %+v", i, ivs[i], want[i])
		}
	}
}

func TestCutsToIntervals_NoCuts(t *testing.T) {
	// A video with no detected cuts is still one scene.
	ivs := cutsToIntervals(nil, 120, 24)
	if len(ivs) != 1 {
		t.Fatalf("Expected 1 interval, got %d", len(ivs))
	}
	if ivs[0].Start != 0 || ivs[0].End != 5 {
		t.Errorf("Got %+v, want {0 5}", ivs[0])
	}
}

func TestCutsToIntervals_EmptyVideo(t *testing.T) {
	if ivs := cutsToIntervals(nil, 0, 30); ivs != nil {
		t.Errorf("Expected nil for zero frames, got %v", ivs)
	}
}

func TestSortIntervals_RoughlySorted(t *testing.T) {
	ivs := []TimeInterval{{5, 8}, {0, 2}, {2, 5}}
	sortIntervals(ivs)
	for i := 1; i < len(ivs); i++ {
		if ivs[i].Start < ivs[i-1].Start {
			t.Fatalf("Not sorted at %d: %v", i, ivs)
		}
	}
}

func TestTimeInterval_Midpoint(t *testing.T) {
	ti := TimeInterval{Start: 2, End: 5}
	if m := ti.Midpoint(); m != 3.5 {
		t.Errorf("Expected midpoint 3.5, got %v", m)
	}
	if d := ti.Duration(); d != 3 {
		t.Errorf("Expected duration 3, got %v", d)
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"content", Content, false},
		{"threshold", Threshold, false},
		{"evp", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseKind(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNew_KnownKinds(t *testing.T) {
	for _, k := range []Kind{Content, Threshold} {
		d, err := New(k)
		if err != nil {
			t.Fatalf("New(%v): %v", k, err)
		}
		if d == nil {
			t.Fatalf("New(%v): nil detector", k)
		}
		d.Close()
	}
	if _, err := New(Kind(99)); err == nil {
		t.Error("Expected error for unknown kind")
	}
}
