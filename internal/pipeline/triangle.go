package pipeline

import (
	"math"

	"github.com/rigsight/gaslog-cli/internal/model"
)

// triangleBracket maps one Q-value interval [lo, hi) onto a triangle label.
// The top bracket is closed at 100.
type triangleBracket struct {
	lo, hi float64
	label  model.TriangleLabel
}

// triangleBrackets covers [-100, 100] in ascending order. Both oil brackets
// carry the same high-gas-oil-ratio label; the split is kept so the interval
// boundaries stay auditable.
var triangleBrackets = []triangleBracket{
	{-100, -75, model.TriangleOilHighGOR},
	{-75, -25, model.TriangleOilHighGOR},
	{-25, 0, model.TriangleTransitionInverted},
	{0, 25, model.TriangleTransitionNormal},
	{25, 75, model.TriangleOilGasOrWater},
	{75, 100, model.TriangleWaterOrGas},
}

// ClassifyTriangle computes the ratio-triangle index for one sample and maps
// it onto a label. Q = 1 − (C2+C3+nC4)/(0.2·ΣC), expressed as a percentage.
// ΣC=0 classifies invalid; Q outside [-100, 100] classifies anomalous.
// The returned Q is NaN for invalid samples.
func ClassifyTriangle(s model.Sample) (q float64, label model.TriangleLabel) {
	sum := s.SumC()
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return math.NaN(), model.TriangleInvalid
	}

	q = (1 - (s.C2+s.C3+s.NC4)/(0.2*sum)) * 100

	if math.IsNaN(q) || q < -100 || q > 100 {
		return q, model.TriangleAnomalous
	}

	for _, b := range triangleBrackets {
		if q >= b.lo && q < b.hi {
			return q, b.label
		}
	}
	// Q == 100 exactly: the top bracket is closed.
	return q, model.TriangleWaterOrGas
}
