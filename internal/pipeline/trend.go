package pipeline

import (
	"math"

	"github.com/rigsight/gaslog-cli/internal/model"
)

// AnalyzeTrends classifies the local depth trend of one channel. For each
// index it fits an ordinary least-squares slope of value vs depth over a
// centered window. Windows with fewer than 3 points, or whose absolute
// Pearson correlation is at or below the configured threshold, classify as
// stable; otherwise the slope thresholds decide rising or falling.
func AnalyzeTrends(depths, values []float64, cfg Config) []model.Trend {
	windowSize := cfg.TrendWindow
	if windowSize < 3 {
		windowSize = 3
	}
	half := windowSize / 2

	out := make([]model.Trend, len(values))
	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(values) {
			hi = len(values)
		}
		out[i] = classifyTrend(depths[lo:hi], values[lo:hi], cfg)
	}
	return out
}

// classifyTrend runs one OLS fit and maps the slope onto a trend label.
func classifyTrend(x, y []float64, cfg Config) model.Trend {
	if len(x) < 3 {
		return model.TrendStable
	}

	slope, r, ok := olsSlope(x, y)
	if !ok || math.Abs(r) <= cfg.CorrelationThreshold {
		return model.TrendStable
	}

	switch {
	case slope > cfg.SlopeThreshold:
		return model.TrendRising
	case slope < -cfg.SlopeThreshold:
		return model.TrendFalling
	default:
		return model.TrendStable
	}
}

// olsSlope returns the least-squares slope of y on x and the Pearson
// correlation coefficient. ok is false when either variable is degenerate
// (zero variance), in which case no trend call can be made.
func olsSlope(x, y []float64) (slope, r float64, ok bool) {
	n := float64(len(x))

	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, syy, sxy float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	if sxx == 0 || syy == 0 {
		return 0, 0, false
	}

	slope = sxy / sxx
	r = sxy / math.Sqrt(sxx*syy)
	return slope, r, true
}
