package algebra

import (
	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/cm"
)

// RNAString builds the nucleotide sequence along a trace: left emissions
// prepend, right emissions append, MP emissions wrap, and Branch
// concatenates the left subtree's string before the right's — exactly the
// 5'-to-3' order CYK traversal visits them in. Because it carries no score,
// its Opt is the identity: a witness-only algebra cannot choose among
// co-optima on its own (see Product, which supplies the missing selection).
var RNAString Algebra[string] = rnaString{}

type rnaString struct{}

func (rnaString) End(m *cm.CM, k cm.StateID) string { return "" }

func (rnaString) LBegin(m *cm.CM, k cm.StateID, t bitscore.Score, s string) string { return s }

func (rnaString) Start(m *cm.CM, k cm.StateID, t bitscore.Score, s string) string { return s }

func (rnaString) Delete(m *cm.CM, k cm.StateID, t bitscore.Score, s string) string { return s }

func (rnaString) MatchP(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.PairEmission, s string) string {
	return string(e.Left) + s + string(e.Right)
}

func (rnaString) MatchL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s string) string {
	return string(e.Base) + s
}

func (rnaString) InsertL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s string) string {
	return string(e.Base) + s
}

func (rnaString) MatchR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s string) string {
	return s + string(e.Base)
}

func (rnaString) InsertR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s string) string {
	return s + string(e.Base)
}

func (rnaString) Branch(m *cm.CM, k cm.StateID, s, t string) string { return s + t }

func (rnaString) Opt(xs []Pair[string]) []Pair[string] { return xs }

func (rnaString) Finalize(a string) string {
	if a == "" {
		return "_"
	}
	return a
}

// DotBracket mirrors RNAString's traversal, emitting the matching-bracket
// secondary structure string instead of nucleotides: MP contributes the
// matched pair '(' ')'; left/right match emissions contribute an unpaired
// '.', and left/right insert emissions an unpaired ','; Branch concatenates
// subtrees in the same 5'-to-3' order.
var DotBracket Algebra[string] = dotBracket{}

type dotBracket struct{}

func (dotBracket) End(m *cm.CM, k cm.StateID) string { return "" }

func (dotBracket) LBegin(m *cm.CM, k cm.StateID, t bitscore.Score, s string) string { return s }

func (dotBracket) Start(m *cm.CM, k cm.StateID, t bitscore.Score, s string) string { return s }

func (dotBracket) Delete(m *cm.CM, k cm.StateID, t bitscore.Score, s string) string { return s }

func (dotBracket) MatchP(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.PairEmission, s string) string {
	return "(" + s + ")"
}

func (dotBracket) MatchL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s string) string {
	return "." + s
}

func (dotBracket) InsertL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s string) string {
	return "," + s
}

func (dotBracket) MatchR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s string) string {
	return s + "."
}

func (dotBracket) InsertR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s string) string {
	return s + ","
}

func (dotBracket) Branch(m *cm.CM, k cm.StateID, s, t string) string { return s + t }

func (dotBracket) Opt(xs []Pair[string]) []Pair[string] { return xs }

func (dotBracket) Finalize(a string) string {
	if a == "" {
		return "_"
	}
	return a
}
