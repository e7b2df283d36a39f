package alphabet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimothyStiles/cmlink/alphabet"
	"github.com/TimothyStiles/cmlink/cm"
)

func TestRNASymbolsAreInCanonicalOrder(t *testing.T) {
	assert.Equal(t, []string{"A", "C", "G", "U"}, alphabet.RNA.Symbols())
}

func TestRNAOrderMatchesCMBases(t *testing.T) {
	bases := cm.Bases()
	for i, s := range alphabet.RNA.Symbols() {
		assert.Equal(t, s[0], bases[i], "cm.Bases()[%d] should match alphabet.RNA's symbol order", i)
	}
}

func TestNewAlphabetPreservesGivenOrder(t *testing.T) {
	a := alphabet.NewAlphabet([]string{"U", "G", "C", "A"})
	assert.Equal(t, []string{"U", "G", "C", "A"}, a.Symbols())
}
