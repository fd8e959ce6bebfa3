package pipeline

import (
	"math"

	"github.com/rigsight/gaslog-cli/internal/model"
)

// tgRule is one row of the primary TG rule table. A sample matches when its
// value falls in [valueLo, valueHi) and its anomaly ratio in [ratioLo,
// ratioHi). The upper bounds of the last row are open-ended.
type tgRule struct {
	valueLo, valueHi float64
	ratioLo, ratioHi float64
	category         model.Category
	confidence       model.TgConfidence
	// trendUpgrade marks the one rule whose confidence depends on the local
	// trend: high when rising, medium otherwise.
	trendUpgrade bool
}

// tgRules is the primary rule table, both value and anomaly ratio must match
// the same row.
var tgRules = []tgRule{
	{0, 2, 0, 2, model.CategoryWater, model.TgConfidenceHigh, false},
	{2, 5, 2, 3, model.CategoryWeakShow, model.TgConfidenceMedium, false},
	{5, 15, 3, 8, model.CategoryOil, model.TgConfidenceMedium, true},
	{15, 30, 8, 20, model.CategoryGas, model.TgConfidenceHigh, false},
	{30, math.Inf(1), 20, math.Inf(1), model.CategoryStrongGas, model.TgConfidenceHigh, false},
}

// tgFallback is one row of the value-only fallback table, checked high to low
// when no primary rule matches.
type tgFallback struct {
	minValue   float64
	category   model.Category
	confidence model.TgConfidence
}

var tgFallbacks = []tgFallback{
	{15, model.CategoryGas, model.TgConfidenceMedium},
	{5, model.CategoryOil, model.TgConfidenceMedium},
	{2, model.CategoryWeakShow, model.TgConfidenceLow},
}

// ClassifyTg applies the two-tier absolute-value/trend rule table to one
// sample. The primary table requires both the value and the anomaly ratio to
// land in the same bracket; unmatched samples fall back to value-only rules
// checked high to low, bottoming out at water/medium. Non-finite or negative
// values classify invalid.
func ClassifyTg(value, anomalyRatio float64, trend model.Trend) (model.Category, model.TgConfidence) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 ||
		math.IsNaN(anomalyRatio) || math.IsInf(anomalyRatio, 0) || anomalyRatio < 0 {
		return model.CategoryInvalid, model.TgConfidenceLow
	}

	for _, rule := range tgRules {
		if value >= rule.valueLo && value < rule.valueHi &&
			anomalyRatio >= rule.ratioLo && anomalyRatio < rule.ratioHi {
			conf := rule.confidence
			if rule.trendUpgrade && trend == model.TrendRising {
				conf = model.TgConfidenceHigh
			}
			return rule.category, conf
		}
	}

	for _, fb := range tgFallbacks {
		if value >= fb.minValue {
			return fb.category, fb.confidence
		}
	}

	return model.CategoryWater, model.TgConfidenceMedium
}
