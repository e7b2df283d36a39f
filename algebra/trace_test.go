package algebra_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimothyStiles/cmlink/algebra"
)

func TestExtendedTraceEndRecordsEndState(t *testing.T) {
	m := twoStateCM(-1.0)
	got := algebra.ExtendedTrace.End(m, 1)
	assert.Len(t, got, 1)
	assert.Equal(t, "end", got[0].Label)
	assert.Equal(t, 1, int(got[0].State))
}

func TestExtendedTraceMatchLRecordsTransAndEmis(t *testing.T) {
	m := twoStateCM(-2.5)
	e := m.State(0).SingleEmissions[0]
	s := algebra.ExtendedTrace.End(m, 1)
	got := algebra.ExtendedTrace.MatchL(m, 0, m.State(0).Transitions[0].Score, e, s)
	assert.Len(t, got, 2)
	assert.Equal(t, "matchL", got[0].Label)
	assert.Equal(t, "A", got[0].Emis)
	assert.Equal(t, "end", got[1].Label)
}

func TestExtendedTraceFinalizeRendersHeaderAndRows(t *testing.T) {
	m := twoStateCM(-1.0)
	s := algebra.ExtendedTrace.End(m, 1)
	out := algebra.ExtendedTrace.Finalize(s)
	assert.True(t, strings.HasPrefix(out, "Label"))
	assert.Contains(t, out, "end")
}
