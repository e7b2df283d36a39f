package algebra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimothyStiles/cmlink/algebra"
	"github.com/TimothyStiles/cmlink/bitscore"
)

func TestProductEndCombinesBothWitnesses(t *testing.T) {
	prod := algebra.New(algebra.MaxMin, algebra.RNAString)
	m := twoStateCM(-1.0)
	got := prod.End(m, 1)
	assert.Equal(t, 0.0, got.X.Value())
	assert.Equal(t, "", got.Y)
}

func TestProductOptSelectsOnFirstAlgebraThenSecond(t *testing.T) {
	prod := algebra.New(algebra.MaxMin, algebra.RNAString)

	// The two candidates differ on Link score (min(1,1) == 1 against
	// min(9,8) == 8), so MaxMin's phase keeps only the better one; the
	// second algebra's Opt (RNAString: identity) then runs over that single
	// survivor, leaving the unique scalar winner.
	worse := algebra.Pair[algebra.Joined[bitscore.Score, string]]{
		A1: algebra.Joined[bitscore.Score, string]{X: bitscore.Finite(1), Y: "AAAA"},
		A2: algebra.Joined[bitscore.Score, string]{X: bitscore.Finite(1), Y: "CCCC"},
	}
	best := algebra.Pair[algebra.Joined[bitscore.Score, string]]{
		A1: algebra.Joined[bitscore.Score, string]{X: bitscore.Finite(9), Y: "GGGG"},
		A2: algebra.Joined[bitscore.Score, string]{X: bitscore.Finite(8), Y: "UUUU"},
	}

	got := prod.Opt([]algebra.Pair[algebra.Joined[bitscore.Score, string]]{worse, best})
	assert.Len(t, got, 1)
	assert.Equal(t, best, got[0])
}

func TestProductOptDedupesIdenticalWitnessAcrossMultipleTiedCandidates(t *testing.T) {
	prod := algebra.New(algebra.MaxMin, algebra.RNAString)

	a := algebra.Pair[algebra.Joined[bitscore.Score, string]]{
		A1: algebra.Joined[bitscore.Score, string]{X: bitscore.Finite(5), Y: "AAAA"},
		A2: algebra.Joined[bitscore.Score, string]{X: bitscore.Finite(5), Y: "AAAA"},
	}
	// Same joint score and same RNA witness, reached via a different path;
	// Product's dedup must collapse these to one surviving candidate.
	aAgain := a

	got := prod.Opt([]algebra.Pair[algebra.Joined[bitscore.Score, string]]{a, aAgain})
	assert.Len(t, got, 1)
}

func TestProductFinalizeJoinsBothFormattedWitnesses(t *testing.T) {
	prod := algebra.New(algebra.MaxMin, algebra.RNAString)
	got := prod.Finalize(algebra.Joined[bitscore.Score, string]{X: bitscore.Finite(1.5), Y: "ACGU"})
	assert.Equal(t, "1.500\tACGU", got)
}
