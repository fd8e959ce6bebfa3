// Package pipeline implements the per-well classification pipeline: robust
// background estimation, depth-trend analysis, three independent fluid-type
// classifiers, continuity correction, and the weighted fusion engine.
package pipeline

import "github.com/rotisserie/eris"

// Config carries every tunable constant of the pipeline. All thresholds are
// fixed domain rules; there is no adaptive fitting. Components receive the
// config explicitly so the package holds no process-wide state.
type Config struct {
	// BackgroundWindow is the centered window used by the robust background
	// estimator. Must be at least 3.
	BackgroundWindow int `yaml:"background_window" mapstructure:"background_window"`

	// TrendWindow is the centered window used by the depth-trend regression.
	TrendWindow int `yaml:"trend_window" mapstructure:"trend_window"`

	// SlopeThreshold separates rising/falling from stable: slope must exceed
	// +SlopeThreshold (or fall below its negation) to leave stable.
	SlopeThreshold float64 `yaml:"slope_threshold" mapstructure:"slope_threshold"`

	// CorrelationThreshold is the minimum |Pearson r| for a trend call;
	// weaker fits classify as stable.
	CorrelationThreshold float64 `yaml:"correlation_threshold" mapstructure:"correlation_threshold"`

	// MinOilSpan and MinShowSpan are the minimum depth spans (in the depth
	// unit of the input) a contiguous run must cover to survive continuity
	// correction: MinOilSpan applies to oil, MinShowSpan to weak-show, gas
	// and strong-gas.
	MinOilSpan  float64 `yaml:"min_oil_span" mapstructure:"min_oil_span"`
	MinShowSpan float64 `yaml:"min_show_span" mapstructure:"min_show_span"`

	// Fusion weights for the three methods.
	WeightTg         float64 `yaml:"weight_tg" mapstructure:"weight_tg"`
	WeightTriangle   float64 `yaml:"weight_triangle" mapstructure:"weight_triangle"`
	WeightThreeRatio float64 `yaml:"weight_three_ratio" mapstructure:"weight_three_ratio"`

	// NarrowGap and ModerateGap bound the conflict decay: a best-vs-second
	// score gap below NarrowGap decays confidence by 0.85, below ModerateGap
	// by 0.9.
	NarrowGap   float64 `yaml:"narrow_gap" mapstructure:"narrow_gap"`
	ModerateGap float64 `yaml:"moderate_gap" mapstructure:"moderate_gap"`
}

// DefaultConfig returns the fixed domain defaults.
func DefaultConfig() Config {
	return Config{
		BackgroundWindow:     10,
		TrendWindow:          5,
		SlopeThreshold:       0.1,
		CorrelationThreshold: 0.5,
		MinOilSpan:           1.0,
		MinShowSpan:          0.5,
		WeightTg:             0.5,
		WeightTriangle:       0.2,
		WeightThreeRatio:     0.3,
		NarrowGap:            0.05,
		ModerateGap:          0.10,
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.BackgroundWindow < 3 {
		return eris.Errorf("pipeline: background window %d below minimum 3", c.BackgroundWindow)
	}
	if c.TrendWindow < 3 {
		return eris.Errorf("pipeline: trend window %d below minimum 3", c.TrendWindow)
	}
	if c.WeightTg+c.WeightTriangle+c.WeightThreeRatio <= 0 {
		return eris.New("pipeline: fusion weights must sum to a positive value")
	}
	return nil
}
