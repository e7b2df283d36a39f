package algebra

import (
	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/cm"
)

// MaxMin is the scoring algebra: its witness is a bitscore.Score, and its
// Opt keeps the single joint witness maximizing min(a1, a2) — the Link
// score itself. Ties are broken by first occurrence in the candidate list,
// which the DP engine always builds in a fixed, deterministic traversal
// order (transitions, then emissions, then children), resolving the
// tie-break Open Question left unspecified in SPEC_FULL.md §9.
var MaxMin Algebra[bitscore.Score] = maxMin{}

type maxMin struct{}

func (maxMin) End(m *cm.CM, k cm.StateID) bitscore.Score { return bitscore.Finite(0) }

func (maxMin) LBegin(m *cm.CM, k cm.StateID, t bitscore.Score, s bitscore.Score) bitscore.Score {
	return t.Add(s)
}

func (maxMin) Start(m *cm.CM, k cm.StateID, t bitscore.Score, s bitscore.Score) bitscore.Score {
	return t.Add(s)
}

func (maxMin) Delete(m *cm.CM, k cm.StateID, t bitscore.Score, s bitscore.Score) bitscore.Score {
	return t.Add(s)
}

func (maxMin) MatchP(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.PairEmission, s bitscore.Score) bitscore.Score {
	return t.Add(e.Score).Add(s)
}

func (maxMin) MatchL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s bitscore.Score) bitscore.Score {
	return t.Add(e.Score).Add(s)
}

func (maxMin) InsertL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s bitscore.Score) bitscore.Score {
	return t.Add(e.Score).Add(s)
}

func (maxMin) MatchR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s bitscore.Score) bitscore.Score {
	return t.Add(e.Score).Add(s)
}

func (maxMin) InsertR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s bitscore.Score) bitscore.Score {
	return t.Add(e.Score).Add(s)
}

func (maxMin) Branch(m *cm.CM, k cm.StateID, s, t bitscore.Score) bitscore.Score {
	return s.Add(t)
}

func (maxMin) Opt(xs []Pair[bitscore.Score]) []Pair[bitscore.Score] {
	if len(xs) == 0 {
		return nil
	}
	best := xs[0]
	bestMin := bitscore.Min(best.A1, best.A2)
	for _, x := range xs[1:] {
		m := bitscore.Min(x.A1, x.A2)
		if bestMin.Less(m) {
			best = x
			bestMin = m
		}
	}
	return []Pair[bitscore.Score]{best}
}

func (maxMin) Finalize(a bitscore.Score) string { return a.String() }
