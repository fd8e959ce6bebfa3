package pipeline

import (
	"math"

	"github.com/rigsight/gaslog-cli/internal/model"
)

// epsilon floors every ratio denominator so messy field data degrades into
// large-but-finite ratios instead of raising.
const epsilon = 1e-10

// Ratios holds the three derived ratios of the three-ratio classifier.
type Ratios struct {
	WH float64 // wetness: 100·(C2+C3+C4+C5)/ΣC
	BH float64 // balance: (C1+C2)/(C3+C4+C5)
	CH float64 // character: C4/C3
}

// ComputeRatios derives the wetness, balance and character ratios for one
// sample. C4 and C5 totals fall back to iso+normal isomer sums when the
// source does not supply them directly.
func ComputeRatios(s model.Sample) Ratios {
	c4 := s.TotalC4()
	c5 := s.TotalC5()
	sum := s.C1 + s.C2 + s.C3 + c4 + c5

	return Ratios{
		WH: 100 * (s.C2 + s.C3 + c4 + c5) / math.Max(sum, epsilon),
		BH: (s.C1 + s.C2) / math.Max(s.C3+c4+c5, epsilon),
		CH: c4 / math.Max(s.C3, epsilon),
	}
}

// ClassifyThreeRatio walks the ordered decision tree over the three ratios;
// the first matching rule wins. NaN in any ratio classifies invalid with
// confidence 0.
func ClassifyThreeRatio(r Ratios) (model.ThreeRatioLabel, float64) {
	if math.IsNaN(r.WH) || math.IsNaN(r.BH) || math.IsNaN(r.CH) {
		return model.ThreeRatioInvalid, 0
	}

	switch {
	case r.WH < 0.5 && r.BH > 100:
		return model.ThreeRatioDry, dryConfidence(r)

	case r.WH >= 0.5 && r.WH <= 12.5 && r.CH < 0.6:
		label := gasLabel(r.WH)
		return label, gasConfidence(label, r)

	case r.WH > 12.5 && r.WH <= 40 && r.CH >= 0.6:
		label := oilLabel(r.WH)
		return label, oilConfidence(label, r)

	case r.WH > 40:
		return model.ThreeRatioDry, dryConfidence(r)

	default:
		// The WH>40 arm below is unreachable after the rule above; it is kept
		// to mirror the published rule set verbatim.
		switch {
		case r.WH <= 0.5:
			return model.ThreeRatioSuspectedDry, 50
		case r.WH > 40:
			return model.ThreeRatioSuspectedDry, 50
		default:
			return model.ThreeRatioTransitional, 50
		}
	}
}

// gasLabel grades the gas family by wetness.
func gasLabel(wh float64) model.ThreeRatioLabel {
	switch {
	case wh < 2:
		return model.ThreeRatioDryGas
	case wh <= 10:
		return model.ThreeRatioWetGas
	default:
		return model.ThreeRatioCondensateGas
	}
}

// oilLabel grades the oil family by wetness.
func oilLabel(wh float64) model.ThreeRatioLabel {
	if wh >= 30 && wh <= 40 {
		return model.ThreeRatioLightOil
	}
	return model.ThreeRatioOil
}

// dryConfidence is the distance-from-boundary confidence table for dry calls:
// deep inside the dry region scores highest, the WH>40 arm is weaker, and
// anything else bottoms out at 70.
func dryConfidence(r Ratios) float64 {
	switch {
	case r.WH < 0.2 && r.BH > 200:
		return 95
	case r.WH < 0.5 && r.BH > 100:
		return 85
	case r.WH > 40:
		return 80
	default:
		return 70
	}
}

// gasConfidence scores gas-family calls by how far the sample sits from the
// bracket boundaries.
func gasConfidence(label model.ThreeRatioLabel, r Ratios) float64 {
	switch label {
	case model.ThreeRatioDryGas:
		if r.WH < 1 && r.CH < 0.3 {
			return 95
		}
		return 85
	case model.ThreeRatioWetGas:
		if r.WH >= 3 && r.WH <= 9 && r.CH < 0.4 {
			return 90
		}
		return 80
	case model.ThreeRatioCondensateGas:
		if r.WH >= 11 && r.CH < 0.4 {
			return 90
		}
		return 80
	default:
		return 50
	}
}

// oilConfidence scores oil-family calls by distance from the bracket
// boundaries.
func oilConfidence(label model.ThreeRatioLabel, r Ratios) float64 {
	switch label {
	case model.ThreeRatioLightOil:
		if r.WH >= 32 && r.WH <= 38 && r.CH >= 1.0 {
			return 90
		}
		return 80
	case model.ThreeRatioOil:
		if r.WH >= 15 && r.WH <= 28 && r.CH >= 1.0 {
			return 90
		}
		return 80
	default:
		return 50
	}
}
