package algebra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimothyStiles/cmlink/algebra"
)

func TestRNAStringMatchLPrepends(t *testing.T) {
	m := twoStateCM(-1.0)
	e := m.State(0).SingleEmissions[0] // A
	s := algebra.RNAString.End(m, 1)
	got := algebra.RNAString.MatchL(m, 0, m.State(0).Transitions[0].Score, e, s)
	assert.Equal(t, "A", got)
}

func TestRNAStringMatchPWrapsEmission(t *testing.T) {
	m := twoStateCM(-1.0)
	e := struct {
		Left, Right byte
	}{'G', 'C'}
	got := algebra.RNAString.MatchP(m, 0, algebraZeroScore(), pairEmission(e.Left, e.Right), "AU")
	assert.Equal(t, "GAUC", got)
}

func TestRNAStringBranchConcatenatesLeftThenRight(t *testing.T) {
	assert.Equal(t, "AUGC", algebra.RNAString.Branch(nil, 0, "AU", "GC"))
}

func TestRNAStringFinalizeEmptyIsUnderscore(t *testing.T) {
	assert.Equal(t, "_", algebra.RNAString.Finalize(""))
	assert.Equal(t, "ACGU", algebra.RNAString.Finalize("ACGU"))
}

func TestDotBracketMatchPWrapsParens(t *testing.T) {
	got := algebra.DotBracket.MatchP(nil, 0, algebraZeroScore(), pairEmission('G', 'C'), "..")
	assert.Equal(t, "(..)", got)
}

func TestDotBracketInsertUsesComma(t *testing.T) {
	e := singleEmission('A')
	got := algebra.DotBracket.InsertL(nil, 0, algebraZeroScore(), e, "")
	assert.Equal(t, ",", got)
}

func TestDotBracketFinalizeEmptyIsUnderscore(t *testing.T) {
	assert.Equal(t, "_", algebra.DotBracket.Finalize(""))
}
