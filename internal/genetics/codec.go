// Package genetics implements the nucleotide transformations the game is
// built around: random strand generation, DNA complement pairing, and
// DNA→mRNA transcription.
//
// All transforms are pure table lookups. Symbols outside {A,T,G,C} map to
// the '?' sentinel instead of returning an error, so malformed input stays
// visible in the output without breaking the game loop.
package genetics

import (
	"math/rand"
	"strings"
)

// Bases is the DNA alphabet used for strand generation.
var Bases = []byte{'A', 'T', 'G', 'C'}

// InvalidBase marks a symbol outside the DNA alphabet in transform output.
const InvalidBase = '?'

// QuestionType selects which transformation the player must perform.
type QuestionType string

const (
	QuestionDNAComplement QuestionType = "DNA_COMPLEMENT"
	QuestionMRNA          QuestionType = "MRNA_TRANSCRIPTION"
)

// Valid reports whether q is a known question type.
func (q QuestionType) Valid() bool {
	return q == QuestionDNAComplement || q == QuestionMRNA
}

// GenerateStrand produces a strand of the given length with each base drawn
// independently and uniformly from the DNA alphabet. length must be >= 1;
// the caller validates it (level configs are checked at startup).
func GenerateStrand(r *rand.Rand, length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(Bases[r.Intn(len(Bases))])
	}
	return b.String()
}

// Complement maps a DNA strand to its complementary strand: A↔T, G↔C.
func Complement(strand string) string {
	return mapBases(strand, func(base byte) byte {
		switch base {
		case 'A':
			return 'T'
		case 'T':
			return 'A'
		case 'G':
			return 'C'
		case 'C':
			return 'G'
		default:
			return InvalidBase
		}
	})
}

// TranscribeMRNA maps a DNA strand to its mRNA transcript:
// A→U, T→A, G→C, C→G.
func TranscribeMRNA(strand string) string {
	return mapBases(strand, func(base byte) byte {
		switch base {
		case 'A':
			return 'U'
		case 'T':
			return 'A'
		case 'G':
			return 'C'
		case 'C':
			return 'G'
		default:
			return InvalidBase
		}
	})
}

// ExpectedAnswer dispatches to the transform matching the question type.
// Unknown question types fall through to mRNA, but handlers validate the
// type before it gets here.
func ExpectedAnswer(strand string, q QuestionType) string {
	if q == QuestionDNAComplement {
		return Complement(strand)
	}
	return TranscribeMRNA(strand)
}

// mapBases applies fn per base, uppercasing first so the tables stay small.
func mapBases(strand string, fn func(byte) byte) string {
	upper := strings.ToUpper(strand)
	out := make([]byte, len(upper))
	for i := 0; i < len(upper); i++ {
		out[i] = fn(upper[i])
	}
	return string(out)
}
