package cmlink_test

import (
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/cmlink"
	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/cm"
)

func pairEmissions(left, right byte, score float64) []cm.PairEmission {
	out := make([]cm.PairEmission, 16)
	for i, p := range cm.PairBases() {
		s := bitscore.NegInf
		if p[0] == left && p[1] == right {
			s = bitscore.Finite(score)
		}
		out[i] = cm.PairEmission{Left: p[0], Right: p[1], Score: s}
	}
	return out
}

func mpModel(name string, base1, base2 byte, score float64) cmlink.NamedModel {
	return cmlink.NamedModel{
		Name: name,
		Model: &cm.CM{
			Name:       name,
			LocalBegin: map[cm.StateID]bitscore.Score{0: bitscore.Finite(0)},
			States: []cm.State{
				{Type: cm.S, Node: 0, Transitions: []cm.Transition{{Child: 1, Score: bitscore.Finite(0)}}},
				{Type: cm.MP, Node: 1, Transitions: []cm.Transition{{Child: 2, Score: bitscore.Finite(0)}}, PairEmissions: pairEmissions(base1, base2, score)},
				{Type: cm.E, Node: 2},
			},
		},
	}
}

func TestCompareScoreOnlyReportsMinAndIndividualScores(t *testing.T) {
	m1 := mpModel("m1", 'A', 'U', -1.0)
	m2 := mpModel("m2", 'A', 'U', -3.0)

	report, err := cmlink.Compare(m1, m2, cmlink.Options{Mode: "score"})
	require.NoError(t, err)
	assert.Equal(t, -3.0, report.MinScore.Value())
	assert.Equal(t, -1.0, report.Score1.Value())
	assert.Equal(t, -3.0, report.Score2.Value())
	assert.False(t, report.HasRNA)
	assert.False(t, report.HasBracket)
	assert.False(t, report.HasNodes)
}

func TestCompareDefaultModeMatchesExplicitScore(t *testing.T) {
	m1 := mpModel("m1", 'A', 'U', -1.0)
	m2 := mpModel("m2", 'A', 'U', -1.0)

	withDefault, err := cmlink.Compare(m1, m2, cmlink.Options{})
	require.NoError(t, err)
	explicit, err := cmlink.Compare(m1, m2, cmlink.Options{Mode: "score"})
	require.NoError(t, err)
	assert.Equal(t, explicit.Line(), withDefault.Line())
}

func TestCompareRNABracketModePopulatesWitnesses(t *testing.T) {
	m1 := mpModel("m1", 'A', 'U', -1.0)
	m2 := mpModel("m2", 'A', 'U', -1.0)

	report, err := cmlink.Compare(m1, m2, cmlink.Options{Mode: "rna+bracket"})
	require.NoError(t, err)
	assert.Equal(t, "AU", report.RNA1)
	assert.Equal(t, "()", report.Bracket1)
	assert.False(t, report.HasNodes)
}

func TestCompareInvalidModeReturnsError(t *testing.T) {
	m1 := mpModel("m1", 'A', 'U', -1.0)
	m2 := mpModel("m2", 'A', 'U', -1.0)

	_, err := cmlink.Compare(m1, m2, cmlink.Options{Mode: "bogus"})
	require.Error(t, err)
	var modeErr *cmlink.InvalidModeError
	require.ErrorAs(t, err, &modeErr)
}

func TestCompareExtendedModeRejectsCombinationWithOtherTokens(t *testing.T) {
	m1 := mpModel("m1", 'A', 'U', -1.0)
	m2 := mpModel("m2", 'A', 'U', -1.0)

	_, err := cmlink.Compare(m1, m2, cmlink.Options{Mode: "extended+rna"})
	require.Error(t, err)
}

func TestCompareExtendedModeRendersPerStateTable(t *testing.T) {
	m1 := mpModel("m1", 'A', 'U', -1.0)
	m2 := mpModel("m2", 'A', 'U', -1.0)

	report, err := cmlink.Compare(m1, m2, cmlink.Options{Mode: "extended"})
	require.NoError(t, err)
	require.True(t, report.Extended)

	table := report.ExtendedTable()
	assert.True(t, strings.Contains(table, "Label"))
	assert.True(t, strings.Contains(table, "m1"))
	assert.True(t, strings.Contains(table, "m2"))
}

func TestCompareExtendedModeHashesTheOptimalSequence(t *testing.T) {
	m1 := mpModel("m1", 'A', 'U', -1.0)
	m2 := mpModel("m2", 'A', 'U', -1.0)

	extended, err := cmlink.Compare(m1, m2, cmlink.Options{Mode: "extended", Hash: true})
	require.NoError(t, err)
	require.True(t, extended.HasHash)

	rna, err := cmlink.Compare(m1, m2, cmlink.Options{Mode: "rna", Hash: true})
	require.NoError(t, err)

	assert.Equal(t, rna.SequenceHash, extended.SequenceHash, "extended+hash should fingerprint the same winning sequence as rna+hash")
}

func TestCompareHashAttachesModelAndSequenceFingerprints(t *testing.T) {
	m1 := mpModel("m1", 'A', 'U', -1.0)
	m2 := mpModel("m2", 'A', 'U', -1.0)

	report, err := cmlink.Compare(m1, m2, cmlink.Options{Mode: "rna", Hash: true})
	require.NoError(t, err)
	require.True(t, report.HasHash)
	assert.NotEmpty(t, report.ModelHash1)
	assert.NotEmpty(t, report.ModelHash2)
	assert.NotEmpty(t, report.SequenceHash)
}

func TestCompareUnreachableRootReportsNegInfNotError(t *testing.T) {
	m1 := mpModel("m1", 'C', 'G', -1.0)
	m1.Model.LocalBegin = map[cm.StateID]bitscore.Score{} // no root begin entry at all
	m2 := mpModel("m2", 'A', 'U', -1.0)

	report, err := cmlink.Compare(m1, m2, cmlink.Options{Mode: "score"})
	require.NoError(t, err)
	assert.True(t, report.MinScore.IsNegInf())
}

func TestCompareRNAWitnessAgreesBetweenModels(t *testing.T) {
	m1 := mpModel("m1", 'A', 'U', -1.0)
	m2 := mpModel("m2", 'A', 'U', -1.0)

	report, err := cmlink.Compare(m1, m2, cmlink.Options{Mode: "rna"})
	require.NoError(t, err)

	if report.RNA1 != report.RNA2 {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(report.RNA1, report.RNA2, false)
		t.Errorf("TestCompareRNAWitnessAgreesBetweenModels() has failed. RNA witnesses diverged.\n%s", dmp.DiffPrettyText(diffs))
	}
}

func TestReportLineIsWhitespaceSeparatedAndStartsWithNames(t *testing.T) {
	m1 := mpModel("alpha", 'A', 'U', -1.0)
	m2 := mpModel("beta", 'A', 'U', -1.0)

	report, err := cmlink.Compare(m1, m2, cmlink.Options{Mode: "rna+bracket+nodes"})
	require.NoError(t, err)

	fields := strings.Fields(report.Line())
	require.True(t, len(fields) >= 9)
	assert.Equal(t, "alpha", fields[0])
	assert.Equal(t, "beta", fields[1])
}
