package algebra

import (
	"fmt"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/cm"
)

// Joined is the witness type of a Product algebra: one model-side
// contribution from each of the two combined algebras, carried side by side
// through the same recursion.
type Joined[A, B any] struct {
	X A
	Y B
}

// New combines two algebras into one that computes both simultaneously,
// preserving co-optimal witnesses: its Opt selects the A-optima first (this
// is almost always MaxMin, so the selection is by Link score), then narrows
// to the B-optima among only the witnesses that attained an A-optimum.
// Composing more than two algebras works by nesting, e.g.
// New(MaxMin, New(RNAString, DotBracket)).
func New[A, B any](a Algebra[A], b Algebra[B]) Algebra[Joined[A, B]] {
	return product[A, B]{a: a, b: b}
}

type product[A, B any] struct {
	a Algebra[A]
	b Algebra[B]
}

func (p product[A, B]) End(m *cm.CM, k cm.StateID) Joined[A, B] {
	return Joined[A, B]{X: p.a.End(m, k), Y: p.b.End(m, k)}
}

func (p product[A, B]) LBegin(m *cm.CM, k cm.StateID, t bitscore.Score, s Joined[A, B]) Joined[A, B] {
	return Joined[A, B]{X: p.a.LBegin(m, k, t, s.X), Y: p.b.LBegin(m, k, t, s.Y)}
}

func (p product[A, B]) Start(m *cm.CM, k cm.StateID, t bitscore.Score, s Joined[A, B]) Joined[A, B] {
	return Joined[A, B]{X: p.a.Start(m, k, t, s.X), Y: p.b.Start(m, k, t, s.Y)}
}

func (p product[A, B]) Delete(m *cm.CM, k cm.StateID, t bitscore.Score, s Joined[A, B]) Joined[A, B] {
	return Joined[A, B]{X: p.a.Delete(m, k, t, s.X), Y: p.b.Delete(m, k, t, s.Y)}
}

func (p product[A, B]) MatchP(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.PairEmission, s Joined[A, B]) Joined[A, B] {
	return Joined[A, B]{X: p.a.MatchP(m, k, t, e, s.X), Y: p.b.MatchP(m, k, t, e, s.Y)}
}

func (p product[A, B]) MatchL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s Joined[A, B]) Joined[A, B] {
	return Joined[A, B]{X: p.a.MatchL(m, k, t, e, s.X), Y: p.b.MatchL(m, k, t, e, s.Y)}
}

func (p product[A, B]) InsertL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s Joined[A, B]) Joined[A, B] {
	return Joined[A, B]{X: p.a.InsertL(m, k, t, e, s.X), Y: p.b.InsertL(m, k, t, e, s.Y)}
}

func (p product[A, B]) MatchR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s Joined[A, B]) Joined[A, B] {
	return Joined[A, B]{X: p.a.MatchR(m, k, t, e, s.X), Y: p.b.MatchR(m, k, t, e, s.Y)}
}

func (p product[A, B]) InsertR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s Joined[A, B]) Joined[A, B] {
	return Joined[A, B]{X: p.a.InsertR(m, k, t, e, s.X), Y: p.b.InsertR(m, k, t, e, s.Y)}
}

func (p product[A, B]) Branch(m *cm.CM, k cm.StateID, s, t Joined[A, B]) Joined[A, B] {
	return Joined[A, B]{X: p.a.Branch(m, k, s.X, t.X), Y: p.b.Branch(m, k, s.Y, t.Y)}
}

// Opt is the two-phase selection described in the package doc: select the
// A-optima, then restrict to the witnesses that realize one of them and
// select the B-optima among those. A plain equality-based set can't hold
// witness types that aren't comparable (e.g. []cm.NodeID), so membership is
// tracked by a linkedhashset of each witness's %v key, which also keeps the
// first-occurrence order the rest of the DP engine relies on for ties.
func (p product[A, B]) Opt(xs []Pair[Joined[A, B]]) []Pair[Joined[A, B]] {
	if len(xs) == 0 {
		return nil
	}

	aPairs := make([]Pair[A], len(xs))
	for i, x := range xs {
		aPairs[i] = Pair[A]{A1: x.A1.X, A2: x.A2.X}
	}
	aOpt := p.a.Opt(aPairs)

	aKeys := linkedhashset.New()
	for _, a := range aOpt {
		aKeys.Add(pairKey(a))
	}

	restricted := make([]Pair[Joined[A, B]], 0, len(xs))
	for _, x := range xs {
		key := pairKey(Pair[A]{A1: x.A1.X, A2: x.A2.X})
		if aKeys.Contains(key) {
			restricted = append(restricted, x)
		}
	}

	bPairs := make([]Pair[B], len(restricted))
	for i, x := range restricted {
		bPairs[i] = Pair[B]{A1: x.A1.Y, A2: x.A2.Y}
	}
	bOpt := p.b.Opt(bPairs)

	bKeys := linkedhashset.New()
	for _, b := range bOpt {
		bKeys.Add(pairKey(b))
	}

	seen := linkedhashset.New()
	out := make([]Pair[Joined[A, B]], 0, len(restricted))
	for _, x := range restricted {
		key := pairKey(Pair[B]{A1: x.A1.Y, A2: x.A2.Y})
		if bKeys.Contains(key) && !seen.Contains(key) {
			seen.Add(key)
			out = append(out, x)
		}
	}
	return out
}

func pairKey[A any](p Pair[A]) string {
	return fmt.Sprintf("%v\x00%v", p.A1, p.A2)
}

func (p product[A, B]) Finalize(a Joined[A, B]) string {
	return p.a.Finalize(a.X) + "\t" + p.b.Finalize(a.Y)
}
