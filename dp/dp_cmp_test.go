package dp_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/cmlink/algebra"
	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/dp"
)

// scoreComparer treats two bitscore.Score values as equal iff they render
// the same value (handling NegInf, whose unexported fields cmp can't walk
// on its own).
var scoreComparer = cmp.Comparer(func(a, b bitscore.Score) bool {
	return a.IsNegInf() == b.IsNegInf() && a.Value() == b.Value()
})

func TestCompareResultsAreStructurallyIdenticalAcrossRepeatedRuns(t *testing.T) {
	m1 := mpModel("m1", 'A', 'U', -1.0)
	m2 := mpModel("m2", 'A', 'U', -3.0)

	first, err := dp.Compare(m1, m2, algebra.MaxMin, false)
	require.NoError(t, err)
	second, err := dp.Compare(m1, m2, algebra.MaxMin, false)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, scoreComparer); diff != "" {
		t.Errorf("dp.Compare results diverged across runs (-first +second):\n%s", diff)
	}
}
