package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rigsight/gaslog-cli/internal/model"
)

func TestFuse_Agreement(t *testing.T) {
	d := Fuse(MethodVotes{
		TgCategory:       model.CategoryGas,
		TgConfidence:     model.TgConfidenceHigh,
		TriangleLabel:    model.TriangleWaterOrGas,
		ThreeRatioLabel:  model.ThreeRatioWetGas,
		ThreeRatioPoints: 85,
	}, DefaultConfig())

	// gas: 0.5·0.9 + 0.2·0.6·0.5 + 0.3·0.85 = 0.45+0.06+0.255 = 0.765
	// water: 0.06 → gap 0.705, no decay; confidence 76.5
	assert.Equal(t, model.CategoryGas, d.Category)
	assert.InDelta(t, 76.5, d.Confidence, 1e-9)
}

func TestFuse_NarrowGapDecay(t *testing.T) {
	d := Fuse(MethodVotes{
		TgCategory:       model.CategoryWater,
		TgConfidence:     model.TgConfidenceLow,
		TriangleLabel:    model.TriangleOilHighGOR,
		ThreeRatioLabel:  model.ThreeRatioOil,
		ThreeRatioPoints: 50,
	}, DefaultConfig())

	// water: 0.5·0.6 = 0.30; oil: 0.2·0.6 + 0.3·0.5 = 0.27
	// gap 0.03 < 0.05 → confidence 30 × 0.85 = 25.5
	assert.Equal(t, model.CategoryWater, d.Category)
	assert.InDelta(t, 25.5, d.Confidence, 1e-9)
}

func TestFuse_ModerateGapDecay(t *testing.T) {
	d := Fuse(MethodVotes{
		TgCategory:       model.CategoryWater,
		TgConfidence:     model.TgConfidenceMedium,
		TriangleLabel:    model.TriangleOilHighGOR,
		ThreeRatioLabel:  model.ThreeRatioOil,
		ThreeRatioPoints: 55,
	}, DefaultConfig())

	// water: 0.5·0.75 = 0.375; oil: 0.12 + 0.3·0.55 = 0.285
	// gap 0.09 < 0.10 → confidence 37.5 × 0.9 = 33.75
	assert.Equal(t, model.CategoryWater, d.Category)
	assert.InDelta(t, 33.75, d.Confidence, 1e-9)
}

func TestFuse_AllInvalid(t *testing.T) {
	d := Fuse(MethodVotes{
		TgCategory:      model.CategoryInvalid,
		TgConfidence:    model.TgConfidenceLow,
		TriangleLabel:   model.TriangleInvalid,
		ThreeRatioLabel: model.ThreeRatioInvalid,
	}, DefaultConfig())

	assert.Equal(t, model.CategoryInvalid, d.Category)
	assert.Equal(t, 0.0, d.Confidence)
	assert.NotEmpty(t, d.Rationale)
}

func TestFuse_InvalidVotesExcluded(t *testing.T) {
	// Only the triangle votes; its split mass ties water and gas, broken by
	// the fixed category order.
	d := Fuse(MethodVotes{
		TgCategory:      model.CategoryInvalid,
		TgConfidence:    model.TgConfidenceLow,
		TriangleLabel:   model.TriangleWaterOrGas,
		ThreeRatioLabel: model.ThreeRatioInvalid,
	}, DefaultConfig())

	// water = gas = 0.2·0.6·0.5 = 0.06; gap 0 → decay 0.85; 6 × 0.85 = 5.1
	assert.Equal(t, model.CategoryWater, d.Category)
	assert.InDelta(t, 5.1, d.Confidence, 1e-9)
}

func TestFuse_AnomalousTriangleDoesNotVote(t *testing.T) {
	d := Fuse(MethodVotes{
		TgCategory:       model.CategoryGas,
		TgConfidence:     model.TgConfidenceHigh,
		TriangleLabel:    model.TriangleAnomalous,
		ThreeRatioLabel:  model.ThreeRatioWetGas,
		ThreeRatioPoints: 85,
	}, DefaultConfig())

	// gas: 0.45 + 0.255 = 0.705, no triangle mass anywhere
	assert.Equal(t, model.CategoryGas, d.Category)
	assert.InDelta(t, 70.5, d.Confidence, 1e-9)
}

func TestFuse_ThreeRatioConfidenceClampedLow(t *testing.T) {
	d := Fuse(MethodVotes{
		TgCategory:       model.CategoryOil,
		TgConfidence:     model.TgConfidenceHigh,
		TriangleLabel:    model.TriangleOilHighGOR,
		ThreeRatioLabel:  model.ThreeRatioOil,
		ThreeRatioPoints: 20, // clamps to 0.5
	}, DefaultConfig())

	// oil: 0.45 + 0.12 + 0.3·0.5 = 0.72
	assert.Equal(t, model.CategoryOil, d.Category)
	assert.InDelta(t, 72.0, d.Confidence, 1e-9)
}

func TestFuse_ConfidenceBounds(t *testing.T) {
	votes := []MethodVotes{
		{model.CategoryWater, model.TgConfidenceHigh, model.TriangleWaterOrGas, model.ThreeRatioDry, 95},
		{model.CategoryStrongGas, model.TgConfidenceLow, model.TriangleTransitionNormal, model.ThreeRatioTransitional, 50},
		{model.CategoryInvalid, model.TgConfidenceLow, model.TriangleOilGasOrWater, model.ThreeRatioLightOil, 90},
	}
	for i, v := range votes {
		d := Fuse(v, DefaultConfig())
		assert.GreaterOrEqual(t, d.Confidence, 0.0, "case %d", i)
		assert.LessOrEqual(t, d.Confidence, 100.0, "case %d", i)
		assert.True(t, d.Category.Valid(), "case %d", i)
	}
}

func TestFuse_RationaleMentionsAllMethods(t *testing.T) {
	d := Fuse(MethodVotes{
		TgCategory:       model.CategoryGas,
		TgConfidence:     model.TgConfidenceHigh,
		TriangleLabel:    model.TriangleWaterOrGas,
		ThreeRatioLabel:  model.ThreeRatioWetGas,
		ThreeRatioPoints: 85,
	}, DefaultConfig())

	parts := strings.Split(d.Rationale, "; ")
	assert.Len(t, parts, 3)
	assert.Contains(t, d.Rationale, "tg=gas/high")
	assert.Contains(t, d.Rationale, "triangle=water-or-gas")
	assert.Contains(t, d.Rationale, "three-ratio=wet-gas/85")
}

func TestTopTwo_Deterministic(t *testing.T) {
	scores := map[model.Category]float64{
		model.CategoryGas:   0.5,
		model.CategoryWater: 0.5,
	}
	// water precedes gas in the fixed order, so ties resolve to water
	best, second := topTwo(scores)
	assert.Equal(t, model.CategoryWater, best)
	assert.Equal(t, 0.5, second)
}
