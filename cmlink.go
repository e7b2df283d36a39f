package cmlink

import (
	"fmt"
	"strings"

	"github.com/TimothyStiles/cmlink/algebra"
	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/cm"
	"github.com/TimothyStiles/cmlink/dp"
	"github.com/TimothyStiles/cmlink/internal/fingerprint"
)

// NamedModel pairs a parsed CM with the name the driver's output line
// identifies it by (typically the file it was read from).
type NamedModel struct {
	Name  string
	Model *cm.CM
}

// Options controls which algebra(s) dp.Compare runs under and whether the
// result carries a fingerprint pair.
type Options struct {
	// Mode is the CLI selector grammar of SPEC_FULL.md §6: "score", "rna",
	// "bracket", "nodes", "extended", or any "+"-joined combination of the
	// first four (extended is exclusive of the others). Empty means "score".
	Mode string

	// FastIns forbids any single-sided insert self-loop, not only the
	// simultaneous double self-loop dp.Compare always forbids.
	FastIns bool

	// Hash attaches a fingerprint.Model pair and a fingerprint.Sequence hash
	// of the winning Link sequence to the Report.
	Hash bool
}

// InvalidModeError reports an Options.Mode string the selector grammar
// doesn't recognize.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("cmlink: invalid mode %q", e.Mode)
}

type modeSet struct {
	rna, bracket, nodes, extended bool
}

func parseMode(mode string) (modeSet, error) {
	if mode == "" {
		return modeSet{}, nil
	}
	var ms modeSet
	for _, tok := range strings.Split(mode, "+") {
		switch tok {
		case "score":
			// always reported; no-op.
		case "rna":
			ms.rna = true
		case "bracket":
			ms.bracket = true
		case "nodes":
			ms.nodes = true
		case "extended":
			ms.extended = true
		default:
			return modeSet{}, &InvalidModeError{Mode: mode}
		}
	}
	if ms.extended && (ms.rna || ms.bracket || ms.nodes) {
		return modeSet{}, &InvalidModeError{Mode: mode}
	}
	return ms, nil
}

// fullWitness is the joint witness dp.Compare always computes internally:
// score, RNA string, dot-bracket structure, and visited-node trace, all in
// one pass. A Report then projects only the fields opts.Mode asked for.
// Computing all four unconditionally avoids a combinatorial explosion of
// compile-time algebra-product types for every subset of {rna, bracket,
// nodes} the selector grammar can name; SPEC_FULL.md's own resource model
// (§5) allows storing full witness lists per cell as the unoptimised
// baseline this trades off against.
type fullWitness = algebra.Joined[bitscore.Score, algebra.Joined[string, algebra.Joined[string, []cm.NodeID]]]

var fullAlgebra algebra.Algebra[fullWitness] = algebra.New(algebra.MaxMin, algebra.New(algebra.RNAString, algebra.New(algebra.DotBracket, algebra.VisitedNodes)))

// extendedWitness pins the per-state trace (and, for the hash path, the
// winning RNA sequence) to the same co-optimum MaxMin selects, by running all
// three under one product rather than as independent dp.Compare calls whose
// Opts could each land on a different, merely-co-enumerated witness.
type extendedWitness = algebra.Joined[bitscore.Score, algebra.Joined[[]algebra.TraceRow, string]]

var extendedAlgebra algebra.Algebra[extendedWitness] = algebra.New(algebra.MaxMin, algebra.New(algebra.ExtendedTrace, algebra.RNAString))

// Report holds one comparison's result, projected to the fields opts.Mode
// requested.
type Report struct {
	Name1, Name2   string
	MinScore       bitscore.Score
	Score1, Score2 bitscore.Score

	HasRNA bool
	RNA1   string
	RNA2   string

	HasBracket bool
	Bracket1   string
	Bracket2   string

	HasNodes bool
	Nodes1   []cm.NodeID
	Nodes2   []cm.NodeID

	Extended bool
	Trace1   []algebra.TraceRow
	Trace2   []algebra.TraceRow

	HasHash      bool
	ModelHash1   string
	ModelHash2   string
	SequenceHash string
}

// Compare runs the DP engine under whichever algebra opts.Mode selects and
// projects the root co-optimum into a Report. An unreachable root (no legal
// joint alignment) is not an error: it is reported as a NegInf MinScore with
// every witness field at its zero value, per SPEC_FULL.md §7's
// UnreachableRoot taxonomy entry.
func Compare(m1, m2 NamedModel, opts Options) (Report, error) {
	ms, err := parseMode(opts.Mode)
	if err != nil {
		return Report{}, err
	}

	report := Report{Name1: m1.Name, Name2: m2.Name}

	if ms.extended {
		return extendedCompare(m1, m2, opts, report)
	}

	results, err := dp.Compare(m1.Model, m2.Model, fullAlgebra, opts.FastIns)
	if err != nil {
		return Report{}, err
	}
	if len(results) == 0 {
		report.MinScore = bitscore.NegInf
		report.Score1 = bitscore.NegInf
		report.Score2 = bitscore.NegInf
		return report, nil
	}

	best := results[0]
	report.Score1 = best.A1.X
	report.Score2 = best.A2.X
	report.MinScore = bitscore.Min(report.Score1, report.Score2)

	if ms.rna {
		report.HasRNA = true
		report.RNA1 = best.A1.Y.X
		report.RNA2 = best.A2.Y.X
	}
	if ms.bracket {
		report.HasBracket = true
		report.Bracket1 = best.A1.Y.Y.X
		report.Bracket2 = best.A2.Y.Y.X
	}
	if ms.nodes {
		report.HasNodes = true
		report.Nodes1 = best.A1.Y.Y.Y
		report.Nodes2 = best.A2.Y.Y.Y
	}

	if opts.Hash {
		if err := attachHash(&report, m1.Model, m2.Model, best.A1.Y.X); err != nil {
			return Report{}, err
		}
	}
	return report, nil
}

func extendedCompare(m1, m2 NamedModel, opts Options, report Report) (Report, error) {
	report.Extended = true

	results, err := dp.Compare(m1.Model, m2.Model, extendedAlgebra, opts.FastIns)
	if err != nil {
		return Report{}, err
	}
	if len(results) == 0 {
		report.MinScore = bitscore.NegInf
		report.Score1 = bitscore.NegInf
		report.Score2 = bitscore.NegInf
		return report, nil
	}

	best := results[0]
	report.Score1 = best.A1.X
	report.Score2 = best.A2.X
	report.MinScore = bitscore.Min(report.Score1, report.Score2)
	report.Trace1 = best.A1.Y.X
	report.Trace2 = best.A2.Y.X

	if opts.Hash {
		if err := attachHash(&report, m1.Model, m2.Model, best.A1.Y.Y); err != nil {
			return Report{}, err
		}
	}
	return report, nil
}

func attachHash(report *Report, m1, m2 *cm.CM, winningSeq string) error {
	h1, err := fingerprint.Model(m1)
	if err != nil {
		return err
	}
	h2, err := fingerprint.Model(m2)
	if err != nil {
		return err
	}
	report.HasHash = true
	report.ModelHash1 = h1
	report.ModelHash2 = h2
	report.SequenceHash = fingerprint.Sequence(winningSeq)
	return nil
}

// Line formats the non-extended §6 output line: name1 name2 minScore score1
// score2 [rnaString] [dotBracket] [nodes1] [nodes2], trailing fields present
// only when their witness was requested via Options.Mode, plus a trailing
// hash triple when Options.Hash is set.
func (r Report) Line() string {
	fields := []string{
		r.Name1, r.Name2,
		r.MinScore.String(), r.Score1.String(), r.Score2.String(),
	}
	if r.HasRNA {
		fields = append(fields, finalizeOrUnderscore(r.RNA1), finalizeOrUnderscore(r.RNA2))
	}
	if r.HasBracket {
		fields = append(fields, finalizeOrUnderscore(r.Bracket1), finalizeOrUnderscore(r.Bracket2))
	}
	if r.HasNodes {
		fields = append(fields, algebra.VisitedNodes.Finalize(r.Nodes1), algebra.VisitedNodes.Finalize(r.Nodes2))
	}
	if r.HasHash {
		fields = append(fields, r.ModelHash1, r.ModelHash2, r.SequenceHash)
	}
	return strings.Join(fields, " ")
}

func finalizeOrUnderscore(s string) string {
	if s == "" {
		return "_"
	}
	return s
}

// ExtendedTable renders the multi-line Label/State/Node/Trans/Emis table for
// each model in turn, headed by its name, followed by the joint min score.
func (r Report) ExtendedTable() string {
	var b strings.Builder
	b.WriteString(r.Name1 + "\n")
	b.WriteString(algebra.ExtendedTrace.Finalize(r.Trace1))
	b.WriteString(r.Name2 + "\n")
	b.WriteString(algebra.ExtendedTrace.Finalize(r.Trace2))
	b.WriteString("minScore " + r.MinScore.String() + "\n")
	return b.String()
}
