/*
Package cm provides a reader and writer for cmlink's own line-oriented
Covariance Model file format — a deliberately small, fully-specified stand-in
for the out-of-scope Infernal .cm grammar (SPEC_FULL.md §6). It is the one
place a *cm.CM value is ever produced from or serialized back to bytes; every
other package only ever sees the already-validated in-memory view.

Format, one model per file, fields whitespace-separated:

	NAME <name>
	STATE <id> <type> <node>
	TRANS <id> <child> <score>
	EMIT <id> <base> <score>
	EMITP <id> <left> <right> <score>
	LBEGIN <id> <score>
	LEND <id> <score>

STATE lines must appear in increasing id order, one per state; TRANS/EMIT/
EMITP lines reference the id of the state they belong to and may be
interleaved freely as long as they follow their STATE line. <score> is
either a decimal float or the literal "-inf". <type> is one of S, D, MP, ML,
IL, MR, IR, B, E (case-sensitive, matching cm.StateType.String()).
*/
package cm

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/cm"
)

// InputParseError reports a syntactically malformed model file: an unknown
// directive, a field count mismatch, or a reference to a state id that
// hasn't been declared yet. It is always fatal to the caller.
type InputParseError struct {
	Line int
	Msg  string
}

func (e *InputParseError) Error() string {
	return fmt.Sprintf("io/cm: line %d: %s", e.Line, e.Msg)
}

var typeByName = map[string]cm.StateType{
	"S": cm.S, "D": cm.D, "MP": cm.MP, "ML": cm.ML, "IL": cm.IL,
	"MR": cm.MR, "IR": cm.IR, "B": cm.B, "E": cm.E,
}

// Parse reads a model from r and validates its shape (cm.CM.Validate) before
// returning it, so nothing downstream has to guard against a malformed
// state table.
func Parse(r io.Reader) (*cm.CM, error) {
	model := &cm.CM{
		LocalBegin: map[cm.StateID]bitscore.Score{},
		LocalEnd:   map[cm.StateID]bitscore.Score{},
	}
	byID := map[cm.StateID]*cm.State{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		directive := fields[0]
		args := fields[1:]

		var err error
		switch directive {
		case "NAME":
			model.Name = strings.Join(args, " ")
		case "STATE":
			err = parseState(model, byID, args)
		case "TRANS":
			err = parseTrans(byID, args)
		case "EMIT":
			err = parseEmit(byID, args)
		case "EMITP":
			err = parseEmitP(byID, args)
		case "LBEGIN":
			err = parseLocal(model.LocalBegin, args)
		case "LEND":
			err = parseLocal(model.LocalEnd, args)
		default:
			err = fmt.Errorf("unknown directive %q", directive)
		}
		if err != nil {
			return nil, &InputParseError{Line: lineNo, Msg: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &InputParseError{Line: lineNo, Msg: err.Error()}
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

func parseState(model *cm.CM, byID map[cm.StateID]*cm.State, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("STATE wants 3 fields, got %d", len(args))
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("STATE id: %w", err)
	}
	typ, ok := typeByName[args[1]]
	if !ok {
		return fmt.Errorf("STATE unknown type %q", args[1])
	}
	node, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("STATE node: %w", err)
	}
	if cm.StateID(id) != cm.StateID(len(model.States)) {
		return fmt.Errorf("STATE id %d out of order, want %d", id, len(model.States))
	}
	model.States = append(model.States, cm.State{Type: typ, Node: cm.NodeID(node)})
	// append may have moved the backing array, so every stored pointer is
	// refreshed, not only the new one.
	for i := range model.States {
		byID[cm.StateID(i)] = &model.States[i]
	}
	return nil
}

func parseScore(s string) (bitscore.Score, error) {
	if s == "-inf" {
		return bitscore.NegInf, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return bitscore.Score{}, err
	}
	return bitscore.Finite(v), nil
}

func stateFor(byID map[cm.StateID]*cm.State, raw string) (*cm.State, cm.StateID, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, 0, err
	}
	s, ok := byID[cm.StateID(id)]
	if !ok {
		return nil, 0, fmt.Errorf("reference to undeclared state %d", id)
	}
	return s, cm.StateID(id), nil
}

func parseTrans(byID map[cm.StateID]*cm.State, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("TRANS wants 3 fields, got %d", len(args))
	}
	s, _, err := stateFor(byID, args[0])
	if err != nil {
		return err
	}
	child, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("TRANS child: %w", err)
	}
	score, err := parseScore(args[2])
	if err != nil {
		return fmt.Errorf("TRANS score: %w", err)
	}
	s.Transitions = append(s.Transitions, cm.Transition{Child: cm.StateID(child), Score: score})
	return nil
}

func parseEmit(byID map[cm.StateID]*cm.State, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("EMIT wants 3 fields, got %d", len(args))
	}
	s, _, err := stateFor(byID, args[0])
	if err != nil {
		return err
	}
	if len(args[1]) != 1 {
		return fmt.Errorf("EMIT base must be one character, got %q", args[1])
	}
	score, err := parseScore(args[2])
	if err != nil {
		return fmt.Errorf("EMIT score: %w", err)
	}
	s.SingleEmissions = append(s.SingleEmissions, cm.SingleEmission{Base: args[1][0], Score: score})
	return nil
}

func parseEmitP(byID map[cm.StateID]*cm.State, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("EMITP wants 4 fields, got %d", len(args))
	}
	s, _, err := stateFor(byID, args[0])
	if err != nil {
		return err
	}
	if len(args[1]) != 1 || len(args[2]) != 1 {
		return fmt.Errorf("EMITP left/right must be one character each")
	}
	score, err := parseScore(args[3])
	if err != nil {
		return fmt.Errorf("EMITP score: %w", err)
	}
	s.PairEmissions = append(s.PairEmissions, cm.PairEmission{Left: args[1][0], Right: args[2][0], Score: score})
	return nil
}

func parseLocal(into map[cm.StateID]bitscore.Score, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("wants 2 fields, got %d", len(args))
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	score, err := parseScore(args[1])
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	into[cm.StateID(id)] = score
	return nil
}

// Write serializes m to w in the format Parse accepts. It does not call
// Validate: the caller is expected to write only models it already trusts.
func Write(w io.Writer, m *cm.CM) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "NAME %s\n", m.Name)
	for id, s := range m.States {
		fmt.Fprintf(bw, "STATE %d %s %d\n", id, s.Type, s.Node)
		for _, t := range s.Transitions {
			fmt.Fprintf(bw, "TRANS %d %d %s\n", id, t.Child, scoreLiteral(t.Score))
		}
		for _, e := range s.SingleEmissions {
			fmt.Fprintf(bw, "EMIT %d %c %s\n", id, e.Base, scoreLiteral(e.Score))
		}
		for _, e := range s.PairEmissions {
			fmt.Fprintf(bw, "EMITP %d %c %c %s\n", id, e.Left, e.Right, scoreLiteral(e.Score))
		}
	}
	for _, id := range sortedIDs(m.LocalBegin) {
		fmt.Fprintf(bw, "LBEGIN %d %s\n", id, scoreLiteral(m.LocalBegin[id]))
	}
	for _, id := range sortedIDs(m.LocalEnd) {
		fmt.Fprintf(bw, "LEND %d %s\n", id, scoreLiteral(m.LocalEnd[id]))
	}
	return bw.Flush()
}

// sortedIDs returns a map's keys in increasing order, so Write's LBEGIN/LEND
// blocks are byte-stable across repeated writes of the same model: map
// iteration order is randomized and the score values carry no ordering of
// their own to fall back on.
func sortedIDs(m map[cm.StateID]bitscore.Score) []cm.StateID {
	ids := make([]cm.StateID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func scoreLiteral(s bitscore.Score) string {
	if s.IsNegInf() {
		return "-inf"
	}
	return strconv.FormatFloat(s.Value(), 'f', -1, 64)
}
