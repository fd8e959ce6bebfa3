package pipeline

import "github.com/rigsight/gaslog-cli/internal/model"

// downgrades maps each correctable label to the tier below it. Runs that fail
// the minimum-span check drop exactly one tier.
var downgrades = map[model.Category]model.Category{
	model.CategoryStrongGas: model.CategoryWeakShow,
	model.CategoryGas:       model.CategoryWeakShow,
	model.CategoryOil:       model.CategoryWeakShow,
	model.CategoryWeakShow:  model.CategoryWater,
}

// CorrectContinuity applies the run-length continuity filter to a depth-ordered
// per-well TG category sequence. For each of weak-show, oil, gas and
// strong-gas it finds maximal contiguous runs and downgrades runs whose depth
// span (last−first depth in the run) is below the configured minimum: 1.0 for
// oil, 0.5 for the others by default.
//
// The pass is single-shot over the original labels: downgraded runs are never
// re-examined, so a weak-show run created from a short gas run cannot cascade
// into water.
func CorrectContinuity(depths []float64, categories []model.Category, cfg Config) []model.Category {
	out := make([]model.Category, len(categories))
	copy(out, categories)

	for i := 0; i < len(categories); {
		cat := categories[i]
		j := i + 1
		for j < len(categories) && categories[j] == cat {
			j++
		}

		if replacement, correctable := downgrades[cat]; correctable {
			span := depths[j-1] - depths[i]
			if span < minSpan(cat, cfg) {
				for k := i; k < j; k++ {
					out[k] = replacement
				}
			}
		}

		i = j
	}

	return out
}

// minSpan returns the minimum depth span a run of the given category must
// cover to survive correction.
func minSpan(cat model.Category, cfg Config) float64 {
	if cat == model.CategoryOil {
		return cfg.MinOilSpan
	}
	return cfg.MinShowSpan
}
