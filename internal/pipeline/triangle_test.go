package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rigsight/gaslog-cli/internal/model"
)

func TestClassifyTriangle_PureMethane(t *testing.T) {
	// C2=C3=nC4=0 with ΣC>0 → Q = 100% → water-or-gas
	s := model.Sample{C1: 100}
	q, label := ClassifyTriangle(s)
	assert.InDelta(t, 100.0, q, 1e-9)
	assert.Equal(t, model.TriangleWaterOrGas, label)
}

func TestClassifyTriangle_ZeroSumInvalid(t *testing.T) {
	q, label := ClassifyTriangle(model.Sample{})
	assert.True(t, math.IsNaN(q))
	assert.Equal(t, model.TriangleInvalid, label)
}

func TestClassifyTriangle_Brackets(t *testing.T) {
	// With ΣC fixed at 100, Q% = 100·(1 − w/20) where w = C2+C3+nC4.
	// Choosing w picks the bracket directly.
	cases := []struct {
		name  string
		w     float64
		q     float64
		label model.TriangleLabel
	}{
		{"water-or-gas", 4, 80, model.TriangleWaterOrGas},
		{"oil-gas-or-water", 10, 50, model.TriangleOilGasOrWater},
		{"transition-normal", 18, 10, model.TriangleTransitionNormal},
		{"transition-inverted", 22, -10, model.TriangleTransitionInverted},
		{"oil-high-gor", 30, -50, model.TriangleOilHighGOR},
		{"oil-high-gor deep", 38, -90, model.TriangleOilHighGOR},
		{"anomalous", 45, -125, model.TriangleAnomalous},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := model.Sample{C1: 100 - tc.w, C2: tc.w}
			q, label := ClassifyTriangle(s)
			assert.InDelta(t, tc.q, q, 1e-9)
			assert.Equal(t, tc.label, label)
		})
	}
}

func TestClassifyTriangle_QMonotonicity(t *testing.T) {
	// For fixed ΣC, increasing C2+C3+nC4 strictly decreases Q.
	prev := math.Inf(1)
	for w := 0.0; w <= 20; w += 2 {
		s := model.Sample{C1: 100 - w, C3: w}
		q, _ := ClassifyTriangle(s)
		assert.Less(t, q, prev, "w=%v", w)
		prev = q
	}
}

func TestClassifyTriangle_BracketShiftAt75(t *testing.T) {
	// Crossing Q=75 moves the label from oil-gas-or-water to water-or-gas.
	// ΣC=100: w=5 → Q=75 (closed below on the upper bracket), w=5.2 → Q=74.
	s := model.Sample{C1: 95, C2: 5}
	q, label := ClassifyTriangle(s)
	assert.InDelta(t, 75.0, q, 1e-9)
	assert.Equal(t, model.TriangleWaterOrGas, label)

	s = model.Sample{C1: 94.8, C2: 5.2}
	q, label = ClassifyTriangle(s)
	assert.InDelta(t, 74.0, q, 1e-9)
	assert.Equal(t, model.TriangleOilGasOrWater, label)
}

func TestClassifyTriangle_IsomersCountTowardSum(t *testing.T) {
	// nC4 is in the numerator; iC4/iC5/nC5 only contribute to ΣC.
	s := model.Sample{C1: 80, NC4: 10, IC4: 5, IC5: 2.5, NC5: 2.5}
	// ΣC = 100, w = 10 → Q = 50
	q, label := ClassifyTriangle(s)
	assert.InDelta(t, 50.0, q, 1e-9)
	assert.Equal(t, model.TriangleOilGasOrWater, label)
}
