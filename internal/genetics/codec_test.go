package genetics

import (
	"math/rand"
	"strings"
	"testing"
)

func TestComplementTable(t *testing.T) {
	cases := map[string]string{
		"A": "T",
		"T": "A",
		"G": "C",
		"C": "G",
	}
	for in, want := range cases {
		if got := Complement(in); got != want {
			t.Errorf("Complement(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestComplementIsInvolution(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		s := GenerateStrand(r, 1+r.Intn(30))
		if got := Complement(Complement(s)); got != s {
			t.Fatalf("Complement(Complement(%q)) = %q, want original", s, got)
		}
	}
}

func TestTranscribeMRNATable(t *testing.T) {
	cases := map[string]string{
		"A": "U",
		"T": "A",
		"G": "C",
		"C": "G",
	}
	for in, want := range cases {
		if got := TranscribeMRNA(in); got != want {
			t.Errorf("TranscribeMRNA(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTranscribeMRNAHasNoThymine(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		s := GenerateStrand(r, 20)
		if m := TranscribeMRNA(s); strings.ContainsRune(m, 'T') {
			t.Fatalf("TranscribeMRNA(%q) = %q contains T", s, m)
		}
	}
}

func TestInvalidSymbolsBecomeSentinel(t *testing.T) {
	if got := Complement("AXGC"); got != "T?CG" {
		t.Errorf("Complement(\"AXGC\") = %q, want \"T?CG\"", got)
	}
	if got := TranscribeMRNA("A-GC"); got != "U?CG" {
		t.Errorf("TranscribeMRNA(\"A-GC\") = %q, want \"U?CG\"", got)
	}
}

func TestTransformsAreCaseInsensitive(t *testing.T) {
	if got := Complement("atgc"); got != "TACG" {
		t.Errorf("Complement(\"atgc\") = %q, want \"TACG\"", got)
	}
	if got := TranscribeMRNA("atgc"); got != "UACG" {
		t.Errorf("TranscribeMRNA(\"atgc\") = %q, want \"UACG\"", got)
	}
}

func TestExpectedAnswerDispatch(t *testing.T) {
	strand := "ATGCAT"
	if got := ExpectedAnswer(strand, QuestionDNAComplement); got != "TACGTA" {
		t.Errorf("ExpectedAnswer(%q, complement) = %q, want \"TACGTA\"", strand, got)
	}
	if got := ExpectedAnswer(strand, QuestionMRNA); got != "UACGUA" {
		t.Errorf("ExpectedAnswer(%q, mRNA) = %q, want \"UACGUA\"", strand, got)
	}
}

func TestGenerateStrandLengthAndAlphabet(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 6, 13, 20} {
		s := GenerateStrand(r, n)
		if len(s) != n {
			t.Fatalf("GenerateStrand(%d) returned %d bases", n, len(s))
		}
		for _, c := range s {
			if !strings.ContainsRune("ATGC", c) {
				t.Fatalf("GenerateStrand(%d) produced invalid base %q in %q", n, c, s)
			}
		}
	}
}

func TestGenerateStrandDistribution(t *testing.T) {
	// Each base should land near 25% over a large sample. The bound is
	// loose enough to keep the test deterministic-in-practice.
	r := rand.New(rand.NewSource(99))
	counts := map[rune]int{}
	const samples = 200
	const length = 50
	for i := 0; i < samples; i++ {
		for _, c := range GenerateStrand(r, length) {
			counts[c]++
		}
	}
	total := samples * length
	for _, base := range "ATGC" {
		freq := float64(counts[base]) / float64(total)
		if freq < 0.20 || freq > 0.30 {
			t.Errorf("base %q frequency %.3f outside [0.20, 0.30]", base, freq)
		}
	}
}
