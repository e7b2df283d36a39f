/*
Package cm provides a read-only view over a parsed Covariance Model (CM): a
stochastic context-free grammar over RNA that models both the sequence and
secondary structure of an RNA family.

Parsing an Infernal .cm file into this value is the job of an external
collaborator (see package io/cm for cmlink's own, deliberately simplified,
line-oriented stand-in format); this package only defines the shape of a CM
and validates it once at ingest time, so that package dp never has to guard
against malformed state tables mid-recursion.
*/
package cm

import (
	"fmt"

	"github.com/TimothyStiles/cmlink/alphabet"
	"github.com/TimothyStiles/cmlink/bitscore"
)

// StateID is a dense, non-negative state identifier. State IDs run 0..N,
// with 0 the root and N the unique sink end state.
type StateID int

// NodeID is a dense, non-negative node identifier; several states typically
// share one NodeID.
type NodeID int

// StateType tags the grammar role a State plays.
type StateType int

// The nine CM state types stored in a state table. The tenth, EL (local
// end), is not a distinct entry — the dp package models it implicitly via a
// sentinel transition to the End state, scored by the departing state's
// LocalEnd entry.
const (
	S StateType = iota
	D
	MP
	ML
	IL
	MR
	IR
	B
	E
)

func (t StateType) String() string {
	switch t {
	case S:
		return "S"
	case D:
		return "D"
	case MP:
		return "MP"
	case ML:
		return "ML"
	case IL:
		return "IL"
	case MR:
		return "MR"
	case IR:
		return "IR"
	case B:
		return "B"
	case E:
		return "E"
	default:
		return "?"
	}
}

// IsLeftEmitter reports whether t consumes a residue on the left (5') side.
func (t StateType) IsLeftEmitter() bool { return t == ML || t == IL }

// IsRightEmitter reports whether t consumes a residue on the right (3') side.
func (t StateType) IsRightEmitter() bool { return t == MR || t == IR }

// bases fixes the canonical single-nucleotide order used to index
// SingleEmissions (len 4) and, pairwise, PairEmissions (len 16). It is
// derived from alphabet.RNA so that two CM views always agree on emission
// vector layout.
var bases = func() [4]byte {
	var b [4]byte
	for i, s := range alphabet.RNA.Symbols() {
		b[i] = s[0]
	}
	return b
}()

// Bases returns the canonical single-nucleotide order (A, C, G, U).
func Bases() [4]byte { return bases }

// PairBases returns the canonical 16-entry pair order (AA, AC, ..., UU),
// position i*4+j pairing Bases()[i] with Bases()[j].
func PairBases() [16][2]byte {
	var pb [16][2]byte
	for i, c1 := range bases {
		for j, c2 := range bases {
			pb[i*4+j] = [2]byte{c1, c2}
		}
	}
	return pb
}

// Transition is one outgoing edge from a state, scored in bits.
type Transition struct {
	Child StateID
	Score bitscore.Score
}

// PairEmission is one entry of an MP state's 16-wide emission vector.
type PairEmission struct {
	Left, Right byte
	Score       bitscore.Score
}

// SingleEmission is one entry of an ML/IL/MR/IR state's 4-wide emission
// vector.
type SingleEmission struct {
	Base  byte
	Score bitscore.Score
}

// State is one node in the CM's state graph.
type State struct {
	Type            StateType
	Node            NodeID
	Transitions     []Transition
	PairEmissions   []PairEmission   // length 16 iff Type == MP, else empty
	SingleEmissions []SingleEmission // length 4 iff Type is ML/IL/MR/IR, else empty
}

// CM is a read-only Covariance Model: a dense state table plus the optional
// local begin/end score at each state. Missing LocalBegin/LocalEnd entries
// are absent by design (queried through LocalBeginAt/LocalEndAt, which
// report bitscore.NegInf), not stored as explicit -10000 values.
type CM struct {
	Name       string
	States     []State
	LocalBegin map[StateID]bitscore.Score
	LocalEnd   map[StateID]bitscore.Score
}

// NumStates returns the number of states, i.e. the highest valid StateID + 1.
func (m *CM) NumStates() int { return len(m.States) }

// State returns a pointer to the state at k. Callers are expected to have
// already validated k is in range (dp does this once, at the frame level).
func (m *CM) State(k StateID) *State { return &m.States[k] }

// Root is the CM's start state, always state 0.
func (m *CM) Root() StateID { return 0 }

// End is the CM's unique sink end state, the highest StateID.
func (m *CM) End() StateID { return StateID(len(m.States) - 1) }

// LocalBeginAt returns the local-begin score for k, or bitscore.NegInf if
// none is defined.
func (m *CM) LocalBeginAt(k StateID) bitscore.Score {
	if v, ok := m.LocalBegin[k]; ok {
		return v
	}
	return bitscore.NegInf
}

// LocalEndAt returns the local-end score for k, or bitscore.NegInf if none
// is defined.
func (m *CM) LocalEndAt(k StateID) bitscore.Score {
	if v, ok := m.LocalEnd[k]; ok {
		return v
	}
	return bitscore.NegInf
}

// ModelShapeError reports a CM that violates the state-table invariants:
// non-empty, strictly-increasing transitions (except an IL/IR state's own
// self-loop); exactly two ordered transitions for a B state; a terminal E
// state at the maximum ID; and fixed-width emission vectors.
type ModelShapeError struct {
	Msg string
}

func (e *ModelShapeError) Error() string { return "model shape: " + e.Msg }

// Validate checks the §3 invariants of SPEC_FULL.md. It is run once, at CM
// ingest time (see io/cm.Parse), so that dp's recursion can assume every
// transition target is in range and every B/E state well-formed.
func (m *CM) Validate() error {
	n := len(m.States)
	if n == 0 {
		return &ModelShapeError{Msg: "CM has no states"}
	}
	maxID := StateID(n - 1)
	if m.States[maxID].Type != E {
		return &ModelShapeError{Msg: fmt.Sprintf("state at max id %d is %s, want E", maxID, m.States[maxID].Type)}
	}
	for id := range m.States {
		k := StateID(id)
		s := &m.States[id]
		switch s.Type {
		case E:
			if len(s.Transitions) != 0 {
				return &ModelShapeError{Msg: fmt.Sprintf("E state %d has transitions", k)}
			}
		case B:
			if len(s.Transitions) != 2 {
				return &ModelShapeError{Msg: fmt.Sprintf("B state %d has %d transitions, want 2", k, len(s.Transitions))}
			}
			if err := checkTargets(k, s.Transitions); err != nil {
				return err
			}
		default:
			if len(s.Transitions) == 0 {
				return &ModelShapeError{Msg: fmt.Sprintf("state %d (%s) has no transitions", k, s.Type)}
			}
			// IL/IR states are the one documented exception to "strictly
			// greater": Infernal insert states carry a genuine self-loop
			// transition, which the DP engine's fastIns guard exists to bound.
			if s.Type == IL || s.Type == IR {
				if err := checkTargetsAllowSelf(k, s.Transitions); err != nil {
					return err
				}
			} else if err := checkTargets(k, s.Transitions); err != nil {
				return err
			}
		}
		if s.Type == MP && len(s.PairEmissions) != 16 {
			return &ModelShapeError{Msg: fmt.Sprintf("MP state %d has %d pair emissions, want 16", k, len(s.PairEmissions))}
		}
		if (s.Type == ML || s.Type == IL || s.Type == MR || s.Type == IR) && len(s.SingleEmissions) != 4 {
			return &ModelShapeError{Msg: fmt.Sprintf("%s state %d has %d single emissions, want 4", s.Type, k, len(s.SingleEmissions))}
		}
	}
	return nil
}

func checkTargets(k StateID, transitions []Transition) error {
	for _, t := range transitions {
		if t.Child <= k {
			return &ModelShapeError{Msg: fmt.Sprintf("state %d transitions to %d, not strictly greater", k, t.Child)}
		}
	}
	return nil
}

// checkTargetsAllowSelf is checkTargets relaxed for IL/IR states: a
// transition may target the state's own ID (the insert self-loop) in
// addition to any strictly greater ID, but never a lesser one.
func checkTargetsAllowSelf(k StateID, transitions []Transition) error {
	for _, t := range transitions {
		if t.Child < k {
			return &ModelShapeError{Msg: fmt.Sprintf("state %d transitions to %d, not self or strictly greater", k, t.Child)}
		}
	}
	return nil
}
