package pipeline

import (
	"math"
	"sort"
)

// backgroundFloor prevents the anomaly ratio from blowing up when the local
// background collapses to near zero.
const backgroundFloor = 0.1

// EstimateBackground computes a per-sample local baseline for one channel.
// For each index it takes the centered window (clipped at the array edges),
// discards values above Q3+1.5·IQR, and returns the median of the remainder.
// If every value in the window is discarded as an outlier, the raw window
// median is used instead. This keeps the baseline from being contaminated by
// the very anomalies the classifiers are trying to detect.
//
// The input is never mutated; the returned slice has the same length.
func EstimateBackground(values []float64, windowSize int) []float64 {
	if windowSize < 3 {
		windowSize = 3
	}

	out := make([]float64, len(values))
	half := windowSize / 2

	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(values) {
			hi = len(values)
		}

		window := make([]float64, hi-lo)
		copy(window, values[lo:hi])
		sort.Float64s(window)

		q1 := quantile(window, 0.25)
		q3 := quantile(window, 0.75)
		fence := q3 + 1.5*(q3-q1)

		kept := make([]float64, 0, len(window))
		for _, v := range window {
			if v <= fence {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			kept = window
		}
		out[i] = median(kept)
	}

	return out
}

// AnomalyRatios divides each value by its background, flooring the background
// at backgroundFloor.
func AnomalyRatios(values, background []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / math.Max(background[i], backgroundFloor)
	}
	return out
}

// quantile returns the q-th quantile of sorted data via linear interpolation.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// median returns the median of sorted data.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
