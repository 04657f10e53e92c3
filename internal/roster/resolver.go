// Package roster resolves free-text teacher names typed at login against
// the configured teacher roster using edit distance.
package roster

import (
	"errors"
	"strings"
)

// DefaultThreshold is the edit-distance cutoff beyond which no roster match
// is forced. Three edits tolerates typos without merging distinct teachers.
const DefaultThreshold = 3

var ErrEmptyRoster = errors.New("roster: no teacher names configured")

// Resolver fuzzy-matches input names against a fixed, ordered roster.
// It is stateless after construction and safe for concurrent use.
type Resolver struct {
	names     []string
	threshold int
}

// NewResolver builds a Resolver from the configured names, preserving
// order: ties resolve to the earliest entry. threshold < 0 selects
// DefaultThreshold.
func NewResolver(names []string, threshold int) (*Resolver, error) {
	if len(names) == 0 {
		return nil, ErrEmptyRoster
	}
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	return &Resolver{names: names, threshold: threshold}, nil
}

// Names returns the roster in configuration order.
func (r *Resolver) Names() []string {
	return r.names
}

// FindClosestMatch returns the roster entry with the minimum
// case-insensitive edit distance from the trimmed input. When the best
// distance exceeds the threshold the trimmed input comes back unchanged,
// so an unknown teacher is stored as typed rather than mis-grouped.
func (r *Resolver) FindClosestMatch(input string) string {
	trimmed := strings.TrimSpace(input)
	lowered := strings.ToLower(trimmed)

	best := r.names[0]
	bestDist := Distance(lowered, strings.ToLower(r.names[0]))
	for _, name := range r.names[1:] {
		if d := Distance(lowered, strings.ToLower(name)); d < bestDist {
			bestDist = d
			best = name
		}
	}

	if bestDist > r.threshold {
		return trimmed
	}
	return best
}

// Normalize returns the lowercase canonical key used to group attempts.
func (r *Resolver) Normalize(input string) string {
	return strings.ToLower(r.FindClosestMatch(input))
}

// Distance computes the Levenshtein edit distance between a and b with the
// classic dynamic program, rolled into two rows. Roster names are short,
// so the quadratic cost is irrelevant.
func Distance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)

	prev := make([]int, len(ar)+1)
	curr := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(br); j++ {
		curr[0] = j
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[i] = min3(curr[i-1]+1, prev[i]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ar)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
