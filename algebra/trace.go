package algebra

import (
	"fmt"
	"strings"

	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/cm"
)

// TraceRow is one line of the extended, per-state trace: the rule applied
// (Label), the state and node it applied at, the transition score consumed
// (Trans), and any emission consumed (Emis).
type TraceRow struct {
	Label string
	State cm.StateID
	Node  cm.NodeID
	Trans string
	Emis  string
}

// ExtendedTrace accumulates one TraceRow per rule fired along the trace, in
// traversal order. It is the witness behind the driver's "extended" output
// mode's Label/State/Node/Trans/Emis table.
var ExtendedTrace Algebra[[]TraceRow] = extendedTrace{}

type extendedTrace struct{}

func row(label string, m *cm.CM, k cm.StateID, trans bitscore.Score, emis string, s []TraceRow) []TraceRow {
	out := make([]TraceRow, 0, len(s)+1)
	out = append(out, TraceRow{Label: label, State: k, Node: m.State(k).Node, Trans: trans.String(), Emis: emis})
	out = append(out, s...)
	return out
}

func (extendedTrace) End(m *cm.CM, k cm.StateID) []TraceRow {
	return []TraceRow{{Label: "end", State: k, Node: m.State(k).Node}}
}

func (extendedTrace) LBegin(m *cm.CM, k cm.StateID, t bitscore.Score, s []TraceRow) []TraceRow {
	return row("lbegin", m, k, t, "", s)
}

func (extendedTrace) Start(m *cm.CM, k cm.StateID, t bitscore.Score, s []TraceRow) []TraceRow {
	return row("start", m, k, t, "", s)
}

func (extendedTrace) Delete(m *cm.CM, k cm.StateID, t bitscore.Score, s []TraceRow) []TraceRow {
	return row("delete", m, k, t, "", s)
}

func (extendedTrace) MatchP(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.PairEmission, s []TraceRow) []TraceRow {
	return row("matchP", m, k, t, string(e.Left)+string(e.Right), s)
}

func (extendedTrace) MatchL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s []TraceRow) []TraceRow {
	return row("matchL", m, k, t, string(e.Base), s)
}

func (extendedTrace) InsertL(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s []TraceRow) []TraceRow {
	return row("insertL", m, k, t, string(e.Base), s)
}

func (extendedTrace) MatchR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s []TraceRow) []TraceRow {
	return row("matchR", m, k, t, string(e.Base), s)
}

func (extendedTrace) InsertR(m *cm.CM, k cm.StateID, t bitscore.Score, e cm.SingleEmission, s []TraceRow) []TraceRow {
	return row("insertR", m, k, t, string(e.Base), s)
}

func (extendedTrace) Branch(m *cm.CM, k cm.StateID, s, t []TraceRow) []TraceRow {
	out := make([]TraceRow, 0, len(s)+len(t)+1)
	out = append(out, TraceRow{Label: "branch", State: k, Node: m.State(k).Node})
	out = append(out, s...)
	out = append(out, t...)
	return out
}

func (extendedTrace) Opt(xs []Pair[[]TraceRow]) []Pair[[]TraceRow] { return xs }

func (extendedTrace) Finalize(a []TraceRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s%-8s%-8s%-10s%-6s\n", "Label", "State", "Node", "Trans", "Emis")
	for _, r := range a {
		fmt.Fprintf(&b, "%-8s%-8d%-8d%-10s%-6s\n", r.Label, r.State, r.Node, r.Trans, r.Emis)
	}
	return b.String()
}
