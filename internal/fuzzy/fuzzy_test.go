//nolint:testpackage // using package name 'fuzzy' to access unexported fields for testing
package fuzzy

import (
	"testing"
)

func TestMatcher_FindBest(t *testing.T) {
	matcher := NewMatcher(2)

	tests := []struct {
		name       string
		input      string
		candidates []string
		expected   string
	}{
		{
			name:       "exact match excluded",
			input:      "-Wall",
			candidates: []string{"-Wall", "-Werror"},
			expected:   "",
		},
		{
			name:       "missing letter",
			input:      "-Wal",
			candidates: []string{"-Wall", "-Wl,", "-w"},
			expected:   "-Wall",
		},
		{
			name:       "case sensitive",
			input:      "-o",
			candidates: []string{"-O"},
			expected:   "-O", // different options, so -o is a typo of -O
		},
		{
			name:       "no good match",
			input:      "--xyz",
			candidates: []string{"-Wall", "-O"},
			expected:   "",
		},
		{
			name:       "too short",
			input:      "x",
			candidates: []string{"-x", "-o"},
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.FindBest(tt.input, tt.candidates)
			if result != tt.expected {
				t.Errorf("FindBest(%q, %v) = %q, want %q", tt.input, tt.candidates, result, tt.expected)
			}
		})
	}
}

func TestMatcher_FindMatchesSorted(t *testing.T) {
	matcher := NewMatcher(2)
	matches := matcher.FindMatches("-Wal", []string{"-Wl,", "-Wall", "-Wextra"})

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(matches), matches)
	}
	if matches[0].Value != "-Wall" || matches[1].Value != "-Wl," {
		t.Errorf("unexpected order: %+v", matches)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i-1].Score < matches[i].Score {
			t.Errorf("matches not sorted by score: %f < %f", matches[i-1].Score, matches[i].Score)
		}
	}
	for _, m := range matches {
		if m.Distance > matcher.maxDistance {
			t.Errorf("match distance %d exceeds max %d", m.Distance, matcher.maxDistance)
		}
	}
}

func TestMatcher_Distance(t *testing.T) {
	matcher := NewMatcher(10)

	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "-g", 2},
		{"-O2", "-O3", 1},
		{"-fpic", "-fPIC", 3},
		{"-march", "-mtune", 4},
		{"-Wall", "-Wall", 0},
	}

	for _, tt := range tests {
		if got := matcher.distance(tt.a, tt.b); got != tt.expected {
			t.Errorf("distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestMatcher_EarlyTermination(t *testing.T) {
	matcher := NewMatcher(1)
	if got := matcher.distance("-fsanitize", "-O"); got != 2 {
		t.Errorf("expected cut-off distance 2, got %d", got)
	}
	if got := matcher.distance("-march", "-mtune"); got != 2 {
		t.Errorf("expected cut-off distance 2, got %d", got)
	}
}

func TestFindSuggestions(t *testing.T) {
	candidates := []string{"-Wall", "-Wl,", "-Wextra"}

	if got := FindSuggestions("-Wal", candidates, 2, 1); len(got) != 1 || got[0] != "-Wall" {
		t.Errorf("limit 1: got %v", got)
	}
	if got := FindSuggestions("-Wal", candidates, 2, 5); len(got) != 2 {
		t.Errorf("limit 5: expected 2 suggestions, got %v", got)
	}
	if got := FindBestOption("-Wextr", candidates, 2); got != "-Wextra" {
		t.Errorf("FindBestOption = %q, want -Wextra", got)
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"-O", "-o", 1},
		{"-Wall", "-Wl,", 2},
		{"-g", "-gdwarf", 2},
	}
	for _, tt := range tests {
		if got := commonPrefix(tt.a, tt.b); got != tt.expected {
			t.Errorf("commonPrefix(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}
