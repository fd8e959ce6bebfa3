// Package model defines the typed row structures shared across the
// classification pipeline: input samples, derived results, and the closed
// category/label sets each method emits.
package model

import "math"

// Category is the fluid-type universe shared by all classifiers at fusion time.
type Category string

const (
	CategoryWater        Category = "water"
	CategoryWeakShow     Category = "weak-show"
	CategoryOil          Category = "oil"
	CategoryGas          Category = "gas"
	CategoryStrongGas    Category = "strong-gas"
	CategoryDry          Category = "dry"
	CategoryTransitional Category = "transitional"
	CategoryInvalid      Category = "invalid"
)

// AllCategories returns the closed category set in display order.
func AllCategories() []Category {
	return []Category{
		CategoryWater,
		CategoryWeakShow,
		CategoryOil,
		CategoryGas,
		CategoryStrongGas,
		CategoryDry,
		CategoryTransitional,
		CategoryInvalid,
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	for _, k := range AllCategories() {
		if c == k {
			return true
		}
	}
	return false
}

// Trend classifies the local depth trend of a channel.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendStable  Trend = "stable"
	TrendFalling Trend = "falling"
)

// TgConfidence is the three-level confidence emitted by the TG classifier.
type TgConfidence string

const (
	TgConfidenceLow    TgConfidence = "low"
	TgConfidenceMedium TgConfidence = "medium"
	TgConfidenceHigh   TgConfidence = "high"
)

// Numeric maps the three-level confidence onto the [0,1] scale used when the
// TG vote is fused with the other methods.
func (c TgConfidence) Numeric() float64 {
	switch c {
	case TgConfidenceHigh:
		return 0.9
	case TgConfidenceMedium:
		return 0.75
	default:
		return 0.6
	}
}

// Sample is one immutable depth-indexed gas-logging row. Component
// concentrations are in percent; absent isomers are zero. C4 and C5 carry
// directly measured totals when the source provides them; otherwise the
// totals are derived from the iso+normal isomers.
type Sample struct {
	WellID string   `json:"well_id"`
	Depth  float64  `json:"depth"`
	C1     float64  `json:"c1"`
	C2     float64  `json:"c2"`
	C3     float64  `json:"c3"`
	IC4    float64  `json:"ic4"`
	NC4    float64  `json:"nc4"`
	IC5    float64  `json:"ic5"`
	NC5    float64  `json:"nc5"`
	C4     *float64 `json:"c4,omitempty"`
	C5     *float64 `json:"c5,omitempty"`
	Tg     float64  `json:"tg"`
}

// TotalC4 returns the butane total: the direct measurement when supplied,
// otherwise iC4+nC4. Missing isomers contribute zero.
func (s Sample) TotalC4() float64 {
	if s.C4 != nil {
		return *s.C4
	}
	return s.IC4 + s.NC4
}

// TotalC5 returns the pentane total, analogous to TotalC4.
func (s Sample) TotalC5() float64 {
	if s.C5 != nil {
		return *s.C5
	}
	return s.IC5 + s.NC5
}

// SumC returns ΣC = C1+C2+C3+C4+C5, the total hydrocarbon sum used by the
// ratio-triangle and three-ratio classifiers.
func (s Sample) SumC() float64 {
	return s.C1 + s.C2 + s.C3 + s.TotalC4() + s.TotalC5()
}

// Finite reports whether every component concentration and the TG reading are
// finite and non-negative. Rows failing this are classified invalid across
// all derived fields.
func (s Sample) Finite() bool {
	for _, v := range []float64{s.C1, s.C2, s.C3, s.IC4, s.NC4, s.IC5, s.NC5, s.Tg, s.TotalC4(), s.TotalC5()} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

// Result is a Sample augmented with every derived column. Derived fields are
// populated once in pipeline order and never re-mutated.
type Result struct {
	Sample

	BackgroundTg        float64      `json:"background_tg"`
	AnomalyRatio        float64      `json:"anomaly_ratio"`
	DepthTrend          Trend        `json:"depth_trend"`
	TgCategory          Category     `json:"tg_category"`
	TgConfidence        TgConfidence `json:"tg_confidence"`
	TgCategoryCorrected Category     `json:"tg_category_corrected"`

	QValue           float64        `json:"q_value"`
	TriangleCategory TriangleLabel  `json:"triangle_category"`

	WH               float64         `json:"wh"`
	BH               float64         `json:"bh"`
	CH               float64         `json:"ch"`
	ThreeHCategory   ThreeRatioLabel `json:"three_h_category"`
	ThreeHConfidence float64         `json:"three_h_confidence"`

	FinalCategory   Category `json:"final_category"`
	FinalConfidence float64  `json:"final_confidence"`
	Rationale       string   `json:"rationale"`
}
