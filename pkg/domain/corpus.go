package domain

import (
	"fmt"
	"strings"
)

// DefaultAlphabetStart is the rune mapped to symbol 0.
const DefaultAlphabetStart = 'A'

// Alphabet maps a contiguous rune range onto symbols 0..Size-1.
type Alphabet struct {
	First rune
	Size  int
}

// NewAlphabet returns an alphabet of the given size starting at DefaultAlphabetStart.
func NewAlphabet(size int) Alphabet {
	return Alphabet{First: DefaultAlphabetStart, Size: size}
}

// Symbol maps r to its symbol index.
func (a Alphabet) Symbol(r rune) (int, bool) {
	s := int(r - a.First)
	if s < 0 || s >= a.Size {
		return 0, false
	}
	return s, true
}

// Rune maps a symbol index back to its rune.
func (a Alphabet) Rune(symbol int) rune {
	return a.First + rune(symbol)
}

// Encode converts a line of runes into a Sequence.
func (a Alphabet) Encode(line string) (Sequence, error) {
	seq := make(Sequence, 0, len(line))
	for _, r := range line {
		s, ok := a.Symbol(r)
		if !ok {
			return nil, &CorpusError{Reason: fmt.Sprintf("symbol %q outside alphabet %c..%c", r, a.First, a.Rune(a.Size-1))}
		}
		seq = append(seq, s)
	}
	return seq, nil
}

// Decode converts a Sequence back into its textual form.
func (a Alphabet) Decode(seq Sequence) string {
	var b strings.Builder
	for _, s := range seq {
		b.WriteRune(a.Rune(s))
	}
	return b.String()
}

// Sequence is an ordered list of symbol indices. It is never modified after loading.
type Sequence []int

// Corpus is an ordered collection of sequences of equal length.
type Corpus struct {
	// Length is the common sequence length T. Zero means "set by the first Append".
	Length    int
	Sequences []Sequence
}

// NewCorpus creates an empty corpus expecting sequences of the given length.
func NewCorpus(length int) *Corpus {
	return &Corpus{Length: length}
}

// Append adds seq, enforcing the corpus length.
func (c *Corpus) Append(seq Sequence) error {
	if len(seq) == 0 {
		return &CorpusError{Reason: "empty sequence"}
	}
	if c.Length == 0 {
		c.Length = len(seq)
	}
	if len(seq) != c.Length {
		return &CorpusError{Reason: fmt.Sprintf("sequence has length %d, want %d", len(seq), c.Length)}
	}
	c.Sequences = append(c.Sequences, seq)
	return nil
}

// Len returns the number of sequences.
func (c *Corpus) Len() int {
	return len(c.Sequences)
}

// Validate checks that the corpus is non-empty and every symbol is below symbols.
func (c *Corpus) Validate(symbols int) error {
	if len(c.Sequences) == 0 {
		return &CorpusError{Reason: "no sequences"}
	}
	for n, seq := range c.Sequences {
		if len(seq) != c.Length {
			return &CorpusError{Line: n + 1, Reason: fmt.Sprintf("sequence has length %d, want %d", len(seq), c.Length)}
		}
		for t, s := range seq {
			if s < 0 || s >= symbols {
				return &CorpusError{Line: n + 1, Reason: fmt.Sprintf("symbol %d at position %d outside 0..%d", s, t, symbols-1)}
			}
		}
	}
	return nil
}
