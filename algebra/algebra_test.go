package algebra_test

import (
	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/cm"
)

// twoStateCM builds a minimal 2-state CM (ML -> E) with a single emission
// score on base 'A', shared across the algebra package's tests.
func twoStateCM(emitScore float64) *cm.CM {
	single := make([]cm.SingleEmission, 4)
	for i, b := range cm.Bases() {
		single[i] = cm.SingleEmission{Base: b, Score: bitscore.NegInf}
	}
	single[0].Score = bitscore.Finite(emitScore) // A

	return &cm.CM{
		Name: "fixture",
		States: []cm.State{
			{
				Type:            cm.ML,
				Node:            0,
				Transitions:     []cm.Transition{{Child: 1, Score: bitscore.Finite(0)}},
				SingleEmissions: single,
			},
			{Type: cm.E, Node: 1},
		},
	}
}

func algebraZeroScore() bitscore.Score { return bitscore.Finite(0) }

func pairEmission(left, right byte) cm.PairEmission {
	return cm.PairEmission{Left: left, Right: right, Score: bitscore.Finite(0)}
}

func singleEmission(base byte) cm.SingleEmission {
	return cm.SingleEmission{Base: base, Score: bitscore.Finite(0)}
}
