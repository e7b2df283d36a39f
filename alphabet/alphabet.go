/*
Package alphabet fixes the canonical base order that cm indexes its emission
vectors against: every CM's SingleEmissions and PairEmissions slice is
ordered by position in this alphabet, so two CMs being compared always agree
on which slot means which base.

Trimmed from poly/alphabet's general-purpose Alphabet type down to the
ordered-symbol-list surface cm actually consumes (see cm.go's bases table);
byte encode/decode and arbitrary-symbol extension have no caller in this
domain and are left out.
*/
package alphabet

// Alphabet is a fixed, ordered list of one-letter symbols.
type Alphabet struct {
	symbols []string
}

// NewAlphabet creates an Alphabet from an ordered list of symbols.
func NewAlphabet(symbols []string) *Alphabet {
	return &Alphabet{symbols: symbols}
}

// Symbols returns the ordered list of symbols in the alphabet.
func (a *Alphabet) Symbols() []string {
	return a.symbols
}

// RNA is the canonical base order (A, C, G, U) used to index CM single and
// pair emission vectors.
var RNA = NewAlphabet([]string{"A", "C", "G", "U"})
