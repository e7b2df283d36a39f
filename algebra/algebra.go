/*
Package algebra defines the capability set that parameterises cmlink's
two-model dynamic program (see package dp): a record of pure per-rule
evaluators, a selector, and an output formatter.

The DP engine never looks at witness values directly; it only ever calls
into an Algebra[A]. This keeps the max-min score, the witnessing sequence,
its dot-bracket structure, the visited-node trace, and the verbose per-state
trace all expressible as the *same* recursion, instantiated with a different
witness type A — and lets Product combine two of them into one that computes
both simultaneously while preserving co-optimal witnesses.
*/
package algebra

import (
	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/cm"
)

// Pair holds one joint witness: the partial-alignment value contributed by
// model 1 (A1) alongside the one contributed by model 2 (A2), for the same
// DP cell.
type Pair[A any] struct {
	A1, A2 A
}

// Algebra is the per-rule evaluator set dp.Compare is parameterised over.
// Every evaluator except Opt and Finalize operates on a single model's
// component of a joint witness; the DP engine calls each evaluator once per
// model, then pairs the two results into a Pair[A] before handing the list
// of candidates to Opt.
type Algebra[A any] interface {
	// End returns the witness at an E cell, the recursion's base case.
	End(m *cm.CM, k cm.StateID) A

	// LBegin applies a local-begin transition of score t to child witness s.
	LBegin(m *cm.CM, k cm.StateID, t bitscore.Score, s A) A

	// Start consumes an S-state transition of score t.
	Start(m *cm.CM, k cm.StateID, t bitscore.Score, s A) A

	// Delete consumes a D-state transition of score t (also used for the
	// sentinel local-end edge, scored by the state's own LocalEnd entry).
	Delete(m *cm.CM, k cm.StateID, t bitscore.Score, s A) A

	// MatchP consumes an MP transition of score t plus a paired emission e.
	MatchP(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.PairEmission, s A) A

	// MatchL consumes an ML transition of score t plus a left emission e.
	MatchL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s A) A

	// InsertL consumes an IL transition of score t plus a left emission e.
	InsertL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s A) A

	// MatchR consumes an MR transition of score t plus a right emission e.
	MatchR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s A) A

	// InsertR consumes an IR transition of score t plus a right emission e.
	InsertR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s A) A

	// Branch combines the left (s) and right (t) subtree witnesses at a B
	// state.
	Branch(m *cm.CM, k cm.StateID, s, t A) A

	// Opt selects the co-optima from a list of joint witnesses. It may
	// return more than one element when ties are meaningful (a
	// witness-only algebra's Opt is the identity: it has no basis to
	// choose, so every candidate survives and it is the caller's — or
	// Product's — job to narrow the list down by score).
	Opt(xs []Pair[A]) []Pair[A]

	// Finalize formats a single witness for output.
	Finalize(a A) string
}
