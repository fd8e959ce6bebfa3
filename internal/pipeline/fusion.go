package pipeline

import (
	"fmt"
	"strings"

	"github.com/rigsight/gaslog-cli/internal/model"
)

// triangleBaseline is the fixed baseline confidence the triangle method
// carries into fusion; the method has no graded confidence of its own.
const triangleBaseline = 0.6

// MethodVotes carries the per-method outcomes feeding one fused decision.
// The TG vote uses the continuity-corrected label.
type MethodVotes struct {
	TgCategory       model.Category
	TgConfidence     model.TgConfidence
	TriangleLabel    model.TriangleLabel
	ThreeRatioLabel  model.ThreeRatioLabel
	ThreeRatioPoints float64 // 0-100
}

// FusedDecision is the consensus call for one sample.
type FusedDecision struct {
	Category   model.Category
	Confidence float64 // 0-100
	Rationale  string
}

// Fuse combines the three classifiers' outputs into one category, confidence
// and rationale. Invalid votes contribute nothing: they never win the argmax
// and never enter the gap computation. When every method is invalid the
// decision itself is invalid with confidence 0.
func Fuse(v MethodVotes, cfg Config) FusedDecision {
	scores := make(map[model.Category]float64)

	if v.TgCategory != model.CategoryInvalid && v.TgCategory.Valid() {
		scores[v.TgCategory] += cfg.WeightTg * v.TgConfidence.Numeric()
	}

	if split, ok := model.TriangleSplit(v.TriangleLabel); ok {
		for cat, frac := range split {
			scores[cat] += cfg.WeightTriangle * triangleBaseline * frac
		}
	}

	if cat := model.ThreeRatioCategory(v.ThreeRatioLabel); cat != model.CategoryInvalid {
		scores[cat] += cfg.WeightThreeRatio * clamp(v.ThreeRatioPoints/100, 0.5, 1.0)
	}

	if len(scores) == 0 {
		return FusedDecision{
			Category:   model.CategoryInvalid,
			Confidence: 0,
			Rationale:  rationale(v),
		}
	}

	best, second := topTwo(scores)

	total := cfg.WeightTg + cfg.WeightTriangle + cfg.WeightThreeRatio
	confidence := clamp(100*scores[best]/total, 0, 100)

	// Conflict decay: near-equal disagreement between methods is penalized.
	gap := scores[best] - second
	switch {
	case gap < cfg.NarrowGap:
		confidence *= 0.85
	case gap < cfg.ModerateGap:
		confidence *= 0.9
	}

	return FusedDecision{
		Category:   best,
		Confidence: confidence,
		Rationale:  rationale(v),
	}
}

// topTwo returns the best-scoring category and the runner-up score. Ties are
// broken by the fixed category order so the result is deterministic. The
// runner-up score is 0 when only one category received votes.
func topTwo(scores map[model.Category]float64) (model.Category, float64) {
	var best model.Category
	bestScore := -1.0
	for _, cat := range model.AllCategories() {
		if s, ok := scores[cat]; ok && s > bestScore {
			best = cat
			bestScore = s
		}
	}

	second := 0.0
	for cat, s := range scores {
		if cat != best && s > second {
			second = s
		}
	}
	return best, second
}

// rationale summarizes each method's contributing label and confidence for
// auditability.
func rationale(v MethodVotes) string {
	parts := []string{
		fmt.Sprintf("tg=%s/%s", v.TgCategory, v.TgConfidence),
		fmt.Sprintf("triangle=%s/%.2f", v.TriangleLabel, triangleBaseline),
		fmt.Sprintf("three-ratio=%s/%.0f", v.ThreeRatioLabel, v.ThreeRatioPoints),
	}
	return strings.Join(parts, "; ")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
