/*
Package dp implements the joint two-model dynamic program at the heart of
cmlink: a recursion indexed by a pair of CM state IDs (k1, k2) that walks both
models in lock-step, dispatching on the pair of state types at each cell and
parameterised over an algebra.Algebra[A] so that the same recursion produces
the Link score, the Link sequence, its dot-bracket, the visited-node trace,
or any product of these.
*/
package dp

import (
	"fmt"

	"github.com/TimothyStiles/cmlink/algebra"
	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/cm"
)

// InternalInvariantError reports a DP cell that referenced an out-of-range
// child, the signature of a corrupted CM or an engine bug rather than
// anything a caller can recover from. cm.Validate is expected to have
// already ruled out malformed transition targets; seeing this means the two
// models disagree on their own invariants in a way Validate cannot catch
// (e.g. a state count inconsistent with the transitions actually stored).
type InternalInvariantError struct {
	Msg string
}

func (e *InternalInvariantError) Error() string {
	return "dp: internal invariant violated: " + e.Msg
}

type cell[A any] []algebra.Pair[A]

// engine carries the fixed inputs to one Compare invocation through the
// case analysis and owns the memo table.
type engine[A any] struct {
	m1, m2  *cm.CM
	alg     algebra.Algebra[A]
	fastIns bool
	arr     [][]cell[A]
}

// Compare fills the joint DP table bottom-up and returns the co-optima list
// at the local-begin-wrapped root cell, locarr[root1, root2]. Each returned
// Pair holds the witness model 1 and model 2 each contribute to the same
// optimal joint alignment.
func Compare[A any](m1, m2 *cm.CM, alg algebra.Algebra[A], fastIns bool) ([]algebra.Pair[A], error) {
	n1, n2 := m1.NumStates(), m2.NumStates()
	e := &engine[A]{m1: m1, m2: m2, alg: alg, fastIns: fastIns, arr: make([][]cell[A], n1)}
	for i := range e.arr {
		e.arr[i] = make([]cell[A], n2)
	}

	// Eager dense fill in decreasing (k1, k2) order. Every transition target
	// a cell's case analysis dereferences is either a strictly greater
	// state ID on the same or the other model (already filled, since that
	// dimension's loop counts down from the top) or, for an IL/IR self-loop,
	// the same k1 with a strictly greater k2 (same outer iteration, already
	// filled by the inner loop) or the same k2 with a strictly greater k1
	// (an earlier outer iteration) — never the cell itself: a pure
	// self-loop on both sides simultaneously is exactly what the insertion
	// guard forbids.
	for k1 := n1 - 1; k1 >= 0; k1-- {
		for k2 := n2 - 1; k2 >= 0; k2-- {
			c, err := e.fill(cm.StateID(k1), cm.StateID(k2))
			if err != nil {
				return nil, err
			}
			e.arr[k1][k2] = c
		}
	}

	root1, root2 := m1.Root(), m2.Root()
	return e.localBegin(root1, root2), nil
}

func (e *engine[A]) at(k1, k2 cm.StateID) (cell[A], error) {
	if int(k1) < 0 || int(k1) >= len(e.arr) || int(k2) < 0 || int(k2) >= len(e.arr[0]) {
		return nil, &InternalInvariantError{Msg: fmt.Sprintf("cell (%d,%d) out of range", k1, k2)}
	}
	row := e.arr[k1]
	if row == nil {
		return nil, &InternalInvariantError{Msg: fmt.Sprintf("cell (%d,%d) not yet filled", k1, k2)}
	}
	return row[k2], nil
}

// localBegin wraps arr[k1,k2] with each model's own local-begin score,
// computed on demand rather than materialised over the whole grid: nothing
// in the recursive case analysis ever reads a locarr cell, only the driver
// does, and only ever at the root.
func (e *engine[A]) localBegin(k1, k2 cm.StateID) []algebra.Pair[A] {
	base, err := e.at(k1, k2)
	if err != nil {
		return nil
	}
	lb1 := e.m1.LocalBeginAt(k1)
	lb2 := e.m2.LocalBeginAt(k2)
	out := make([]algebra.Pair[A], len(base))
	for i, r := range base {
		out[i] = algebra.Pair[A]{
			A1: e.alg.LBegin(e.m1, k1, lb1, r.A1),
			A2: e.alg.LBegin(e.m2, k2, lb2, r.A2),
		}
	}
	return e.alg.Opt(out)
}

// elTarget is model m's implicit EL landing state: a sentinel transition to
// its unique E state, scored by that state's own localEnd entry.
func elTarget(m *cm.CM) cm.StateID { return m.End() }

// transitions returns state k's ordinary transitions plus the sentinel
// local-end edge to the model's own E state.
func transitions(m *cm.CM, k cm.StateID) []cm.Transition {
	base := m.State(k).Transitions
	out := make([]cm.Transition, len(base), len(base)+1)
	copy(out, base)
	return append(out, cm.Transition{Child: elTarget(m), Score: m.LocalEndAt(k)})
}

func (e *engine[A]) fill(k1, k2 cm.StateID) (cell[A], error) {
	s1, s2 := e.m1.State(k1), e.m2.State(k2)
	t1, t2 := s1.Type, s2.Type

	switch {
	case t1 == cm.E && t2 == cm.E:
		return cell[A]{{A1: e.alg.End(e.m1, k1), A2: e.alg.End(e.m2, k2)}}, nil

	case t1 == cm.S && t2 == cm.S:
		return e.startOrDelete(k1, k2, e.alg.Start, e.alg.Start)
	case t1 == cm.D && t2 == cm.D:
		return e.startOrDelete(k1, k2, e.alg.Delete, e.alg.Delete)

	case t1 == cm.MP && t2 == cm.MP:
		return e.matchPair(k1, k2)

	case isLeft(t1) && isLeft(t2):
		return e.singleEmit(k1, k2, t1, t2, true)
	case isRight(t1) && isRight(t2):
		return e.singleEmit(k1, k2, t1, t2, false)

	case t1 == cm.E && t2 == cm.D:
		return e.advanceSecondOnly(k1, k2, e.alg.Delete)
	case t1 == cm.E && t2 == cm.S:
		return e.advanceSecondOnly(k1, k2, e.alg.Start)
	case t1 == cm.D && t2 == cm.E:
		return e.advanceFirstOnly(k1, k2, e.alg.Delete)
	case t1 == cm.S && t2 == cm.E:
		return e.advanceFirstOnly(k1, k2, e.alg.Start)

	case t1 == cm.B && t2 == cm.B:
		return e.branchBranch(k1, k2)
	case t1 == cm.B && t2 != cm.B:
		return e.branchNonBranch(k1, k2, true)
	case t1 != cm.B && t2 == cm.B:
		return e.branchNonBranch(k1, k2, false)

	case t1 == cm.S:
		return e.advanceFirstOnly(k1, k2, e.alg.Start)
	case t2 == cm.S:
		return e.advanceSecondOnly(k1, k2, e.alg.Start)

	default:
		return nil, nil
	}
}

type binaryRule[A any] func(m *cm.CM, k cm.StateID, t bitscore.Score, s A) A

// startOrDelete implements cases 2: (S,S) and (D,D). Enumerate the full
// transition cross product (including each side's local-end sentinel),
// apply rule1/rule2 to the child cell's two components.
func (e *engine[A]) startOrDelete(k1, k2 cm.StateID, rule1, rule2 binaryRule[A]) (cell[A], error) {
	trans1 := transitions(e.m1, k1)
	trans2 := transitions(e.m2, k2)

	var out cell[A]
	for _, tr1 := range trans1 {
		for _, tr2 := range trans2 {
			child, err := e.at(tr1.Child, tr2.Child)
			if err != nil {
				return nil, err
			}
			for _, r := range child {
				out = append(out, algebra.Pair[A]{
					A1: rule1(e.m1, k1, tr1.Score, r.A1),
					A2: rule2(e.m2, k2, tr2.Score, r.A2),
				})
			}
		}
	}
	return e.alg.Opt(out), nil
}

// matchPair implements case 3: (MP, MP). Same transition cross product as
// startOrDelete, but zipping the 16-entry pair emission vectors positionally
// and applying MatchP with each paired emission.
func (e *engine[A]) matchPair(k1, k2 cm.StateID) (cell[A], error) {
	s1, s2 := e.m1.State(k1), e.m2.State(k2)
	trans1 := transitions(e.m1, k1)
	trans2 := transitions(e.m2, k2)

	var out cell[A]
	for _, tr1 := range trans1 {
		for _, tr2 := range trans2 {
			child, err := e.at(tr1.Child, tr2.Child)
			if err != nil {
				return nil, err
			}
			for i := range s1.PairEmissions {
				e1 := s1.PairEmissions[i]
				e2 := s2.PairEmissions[i]
				for _, r := range child {
					out = append(out, algebra.Pair[A]{
						A1: e.alg.MatchP(e.m1, k1, tr1.Score, e1, r.A1),
						A2: e.alg.MatchP(e.m2, k2, tr2.Score, e2, r.A2),
					})
				}
			}
		}
	}
	return e.alg.Opt(out), nil
}

func isLeft(t cm.StateType) bool  { return t == cm.ML || t == cm.IL }
func isRight(t cm.StateType) bool { return t == cm.MR || t == cm.IR }

type emitRule[A any] func(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s A) A

// singleEmit implements cases 4 and 5: left-emit x left-emit (match/insert
// L) and right-emit x right-emit (match/insert R). Enumerates transitions
// (including each side's local-end sentinel), zips the 4-entry single
// emission vectors positionally, applies matchL or
// insertL (resp. R) per side according to that side's own state type, and
// enforces the insertion guard: a pure self-loop on both sides is always
// forbidden, and when fastIns is set a self-loop on either side alone is
// also forbidden.
func (e *engine[A]) singleEmit(k1, k2 cm.StateID, t1, t2 cm.StateType, left bool) (cell[A], error) {
	s1, s2 := e.m1.State(k1), e.m2.State(k2)
	rule1 := e.emitRuleFor(t1, left)
	rule2 := e.emitRuleFor(t2, left)

	var out cell[A]
	for _, tr1 := range transitions(e.m1, k1) {
		for _, tr2 := range transitions(e.m2, k2) {
			selfLoop1 := tr1.Child == k1
			selfLoop2 := tr2.Child == k2
			if selfLoop1 && selfLoop2 {
				continue
			}
			if e.fastIns && (selfLoop1 || selfLoop2) {
				continue
			}
			child, err := e.at(tr1.Child, tr2.Child)
			if err != nil {
				return nil, err
			}
			for i := 0; i < 4; i++ {
				em1 := s1.SingleEmissions[i]
				em2 := s2.SingleEmissions[i]
				for _, r := range child {
					out = append(out, algebra.Pair[A]{
						A1: rule1(e.m1, k1, tr1.Score, em1, r.A1),
						A2: rule2(e.m2, k2, tr2.Score, em2, r.A2),
					})
				}
			}
		}
	}
	return e.alg.Opt(out), nil
}

func (e *engine[A]) emitRuleFor(t cm.StateType, left bool) emitRule[A] {
	switch {
	case left && t == cm.ML:
		return e.alg.MatchL
	case left && t == cm.IL:
		return e.alg.InsertL
	case !left && t == cm.MR:
		return e.alg.MatchR
	default:
		return e.alg.InsertR
	}
}

// advanceSecondOnly implements cases 6: (E,D) and (E,S), and the (any, S)
// half of case 10. Only model 2 advances; model 1's index k1 (its E state in
// case 6, any non-S state in case 10) stays fixed.
func (e *engine[A]) advanceSecondOnly(k1, k2 cm.StateID, rule binaryRule[A]) (cell[A], error) {
	trans2 := transitions(e.m2, k2)
	var out cell[A]
	for _, tr2 := range trans2 {
		child, err := e.at(k1, tr2.Child)
		if err != nil {
			return nil, err
		}
		for _, r := range child {
			out = append(out, algebra.Pair[A]{
				A1: r.A1,
				A2: rule(e.m2, k2, tr2.Score, r.A2),
			})
		}
	}
	return e.alg.Opt(out), nil
}

// advanceFirstOnly implements cases 7: (D,E) and (S,E), and the (S, any)
// half of case 10, symmetric to advanceSecondOnly.
func (e *engine[A]) advanceFirstOnly(k1, k2 cm.StateID, rule binaryRule[A]) (cell[A], error) {
	trans1 := transitions(e.m1, k1)
	var out cell[A]
	for _, tr1 := range trans1 {
		child, err := e.at(tr1.Child, k2)
		if err != nil {
			return nil, err
		}
		for _, r := range child {
			out = append(out, algebra.Pair[A]{
				A1: rule(e.m1, k1, tr1.Score, r.A1),
				A2: r.A2,
			})
		}
	}
	return e.alg.Opt(out), nil
}

// branchBranch implements case 8: (B, B). Three families of joint traces —
// both branches matched; M1's right branch matched against M2's left branch
// while each model's other branch is taken as a local-end deletion; and the
// mirror image — are collected before a single Opt narrows them to the
// joint co-optima.
func (e *engine[A]) branchBranch(k1, k2 cm.StateID) (cell[A], error) {
	s1, s2 := e.m1.State(k1), e.m2.State(k2)
	l1, r1 := s1.Transitions[0].Child, s1.Transitions[1].Child
	l2, r2 := s2.Transitions[0].Child, s2.Transitions[1].Child

	var out cell[A]

	both, err := e.at(l1, l2)
	if err != nil {
		return nil, err
	}
	rights, err := e.at(r1, r2)
	if err != nil {
		return nil, err
	}
	for _, s := range both {
		for _, t := range rights {
			out = append(out, algebra.Pair[A]{
				A1: e.alg.Branch(e.m1, k1, s.A1, t.A1),
				A2: e.alg.Branch(e.m2, k2, s.A2, t.A2),
			})
		}
	}

	// M1's right branch against M2's left branch; M1's left deleted via its
	// own local-end, M2's right deleted via its own local-end.
	crossRL, err := e.at(r1, l2)
	if err != nil {
		return nil, err
	}
	end1, end2 := elTarget(e.m1), elTarget(e.m2)
	deletedLeft, err := e.at(end1, end2)
	if err != nil {
		return nil, err
	}
	for _, rl := range crossRL {
		for _, d := range deletedLeft {
			left1 := e.alg.Delete(e.m1, l1, e.m1.LocalEndAt(l1), d.A1)
			left2 := e.alg.Delete(e.m2, r2, e.m2.LocalEndAt(r2), d.A2)
			out = append(out, algebra.Pair[A]{
				A1: e.alg.Branch(e.m1, k1, left1, rl.A1),
				A2: e.alg.Branch(e.m2, k2, rl.A2, left2),
			})
		}
	}

	// Mirror: M1's left branch against M2's right branch.
	crossLR, err := e.at(l1, r2)
	if err != nil {
		return nil, err
	}
	for _, lr := range crossLR {
		for _, d := range deletedLeft {
			right1 := e.alg.Delete(e.m1, r1, e.m1.LocalEndAt(r1), d.A1)
			right2 := e.alg.Delete(e.m2, l2, e.m2.LocalEndAt(l2), d.A2)
			out = append(out, algebra.Pair[A]{
				A1: e.alg.Branch(e.m1, k1, lr.A1, right1),
				A2: e.alg.Branch(e.m2, k2, right2, lr.A2),
			})
		}
	}

	return e.alg.Opt(out), nil
}

// branchNonBranch implements case 9: (B, non-B) when branchIsFirst, and its
// (non-B, B) mirror otherwise. Each of the branch state's two children is in
// turn treated as "the branch taken" (paired against the other model's
// fixed index) while the sibling branch is folded in as a local-end
// deletion.
func (e *engine[A]) branchNonBranch(k1, k2 cm.StateID, branchIsFirst bool) (cell[A], error) {
	var out cell[A]

	if branchIsFirst {
		s1 := e.m1.State(k1)
		l1, r1 := s1.Transitions[0].Child, s1.Transitions[1].Child
		otherEnd := e.alg.End(e.m1, elTarget(e.m1))
		for _, chosen := range [2]struct{ taken, other cm.StateID }{{l1, r1}, {r1, l1}} {
			taken, err := e.at(chosen.taken, k2)
			if err != nil {
				return nil, err
			}
			deleted := e.alg.Delete(e.m1, chosen.other, e.m1.LocalEndAt(chosen.other), otherEnd)
			for _, t := range taken {
				if chosen.taken == l1 {
					out = append(out, algebra.Pair[A]{A1: e.alg.Branch(e.m1, k1, t.A1, deleted), A2: t.A2})
				} else {
					out = append(out, algebra.Pair[A]{A1: e.alg.Branch(e.m1, k1, deleted, t.A1), A2: t.A2})
				}
			}
		}
		return e.alg.Opt(out), nil
	}

	s2 := e.m2.State(k2)
	l2, r2 := s2.Transitions[0].Child, s2.Transitions[1].Child
	otherEnd := e.alg.End(e.m2, elTarget(e.m2))
	for _, chosen := range [2]struct{ taken, other cm.StateID }{{l2, r2}, {r2, l2}} {
		taken, err := e.at(k1, chosen.taken)
		if err != nil {
			return nil, err
		}
		deleted := e.alg.Delete(e.m2, chosen.other, e.m2.LocalEndAt(chosen.other), otherEnd)
		for _, t := range taken {
			if chosen.taken == l2 {
				out = append(out, algebra.Pair[A]{A1: t.A1, A2: e.alg.Branch(e.m2, k2, t.A2, deleted)})
			} else {
				out = append(out, algebra.Pair[A]{A1: t.A1, A2: e.alg.Branch(e.m2, k2, deleted, t.A2)})
			}
		}
	}
	return e.alg.Opt(out), nil
}
