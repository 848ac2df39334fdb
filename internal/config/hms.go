package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHMS converts a "HH:MM:SS" string to seconds. An empty string
// returns -1, meaning "not set".
func ParseHMS(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("want HH:MM:SS, got %q", s)
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("want HH:MM:SS, got %q", s)
		}
		vals[i] = v
	}
	return float64(vals[0]*3600 + vals[1]*60 + vals[2]), nil
}
