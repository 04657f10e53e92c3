package roster

import (
	"strings"
	"testing"
)

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"jonson", "johnson", 1},
		{"smith", "smith", 0},
		{"flaw", "lawn", 2},
	}
	for _, tc := range cases {
		if got := Distance(tc.a, tc.b); got != tc.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestNewResolverRejectsEmptyRoster(t *testing.T) {
	if _, err := NewResolver(nil, DefaultThreshold); err != ErrEmptyRoster {
		t.Fatalf("NewResolver(nil) error = %v, want ErrEmptyRoster", err)
	}
}

func TestFindClosestMatch(t *testing.T) {
	r, err := NewResolver([]string{"Johnson", "Smith"}, DefaultThreshold)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		input string
		want  string
	}{
		{"Jonson", "Johnson"},       // one edit away
		{"  smith ", "Smith"},       // trimmed, case-insensitive
		{"Johnson", "Johnson"},      // exact
		{"Xyzzyplugh", "Xyzzyplugh"}, // beyond threshold: original returned
		{"  Xyzzyplugh  ", "Xyzzyplugh"}, // still trimmed on fallback
	}
	for _, tc := range cases {
		if got := r.FindClosestMatch(tc.input); got != tc.want {
			t.Errorf("FindClosestMatch(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTieBreaksToFirstRosterEntry(t *testing.T) {
	// "Jon" is distance 2 from both "Jones" and "Jonas"; roster order wins.
	r, err := NewResolver([]string{"Jones", "Jonas"}, DefaultThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.FindClosestMatch("Jon"); got != "Jones" {
		t.Errorf("FindClosestMatch(\"Jon\") = %q, want first entry \"Jones\"", got)
	}
}

func TestNormalizeMatchesLoweredClosest(t *testing.T) {
	r, err := NewResolver([]string{"Johnson", "Smith"}, DefaultThreshold)
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{"Jonson", "SMITH", "Xyzzyplugh"} {
		want := strings.ToLower(r.FindClosestMatch(input))
		if got := r.Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestThresholdIsConfigurable(t *testing.T) {
	strict, err := NewResolver([]string{"Johnson"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := strict.FindClosestMatch("Jonson"); got != "Jonson" {
		t.Errorf("threshold 0: FindClosestMatch(\"Jonson\") = %q, want unchanged input", got)
	}

	loose, err := NewResolver([]string{"Johnson"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := loose.FindClosestMatch("Jsn"); got != "Johnson" {
		t.Errorf("threshold 10: FindClosestMatch(\"Jsn\") = %q, want \"Johnson\"", got)
	}
}
