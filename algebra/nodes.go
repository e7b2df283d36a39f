package algebra

import (
	"fmt"
	"strings"

	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/cm"
)

// VisitedNodes records the NodeID visited at every rule application, in
// traversal order, not sorted and not deduplicated. A local-end jump shows
// up as the departing state's node followed directly by the E state's node;
// it does not repeat the trailing node, so a node appears twice in a row
// only where two consecutive rules apply at states of the same node (e.g.
// LBegin and Start at the root).
var VisitedNodes Algebra[[]cm.NodeID] = visitedNodes{}

type visitedNodes struct{}

func prependNode(m *cm.CM, k cm.StateID, s []cm.NodeID) []cm.NodeID {
	out := make([]cm.NodeID, 0, len(s)+1)
	out = append(out, m.State(k).Node)
	out = append(out, s...)
	return out
}

func (visitedNodes) End(m *cm.CM, k cm.StateID) []cm.NodeID {
	return []cm.NodeID{m.State(k).Node}
}

func (visitedNodes) LBegin(m *cm.CM, k cm.StateID, t bitscore.Score, s []cm.NodeID) []cm.NodeID {
	return prependNode(m, k, s)
}

func (visitedNodes) Start(m *cm.CM, k cm.StateID, t bitscore.Score, s []cm.NodeID) []cm.NodeID {
	return prependNode(m, k, s)
}

func (visitedNodes) Delete(m *cm.CM, k cm.StateID, t bitscore.Score, s []cm.NodeID) []cm.NodeID {
	return prependNode(m, k, s)
}

func (visitedNodes) MatchP(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.PairEmission, s []cm.NodeID) []cm.NodeID {
	return prependNode(m, k, s)
}

func (visitedNodes) MatchL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s []cm.NodeID) []cm.NodeID {
	return prependNode(m, k, s)
}

func (visitedNodes) InsertL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s []cm.NodeID) []cm.NodeID {
	return prependNode(m, k, s)
}

func (visitedNodes) MatchR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s []cm.NodeID) []cm.NodeID {
	return prependNode(m, k, s)
}

func (visitedNodes) InsertR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s []cm.NodeID) []cm.NodeID {
	return prependNode(m, k, s)
}

func (visitedNodes) Branch(m *cm.CM, k cm.StateID, s, t []cm.NodeID) []cm.NodeID {
	out := make([]cm.NodeID, 0, len(s)+len(t)+1)
	out = append(out, m.State(k).Node)
	out = append(out, s...)
	out = append(out, t...)
	return out
}

func (visitedNodes) Opt(xs []Pair[[]cm.NodeID]) []Pair[[]cm.NodeID] { return xs }

func (visitedNodes) Finalize(a []cm.NodeID) string {
	parts := make([]string, len(a))
	for i, n := range a {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
