package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestTotalC4_DirectOverridesIsomers(t *testing.T) {
	s := Sample{IC4: 1, NC4: 2, C4: f64(5)}
	assert.Equal(t, 5.0, s.TotalC4())
}

func TestTotalC4_IsomerSum(t *testing.T) {
	s := Sample{IC4: 1, NC4: 2}
	assert.Equal(t, 3.0, s.TotalC4())
}

func TestTotalC5_MissingIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Sample{}.TotalC5())
}

func TestSumC(t *testing.T) {
	s := Sample{C1: 90, C2: 5, C3: 3, IC4: 0.5, NC4: 0.5, IC5: 0.5, NC5: 0.5}
	assert.Equal(t, 100.0, s.SumC())
}

func TestFinite(t *testing.T) {
	assert.True(t, Sample{C1: 1, Tg: 2}.Finite())
	assert.False(t, Sample{Tg: math.NaN()}.Finite())
	assert.False(t, Sample{C2: math.Inf(1)}.Finite())
	assert.False(t, Sample{C3: -0.1}.Finite())
	assert.False(t, Sample{C4: f64(-1)}.Finite())
}

func TestCategoryValid(t *testing.T) {
	for _, c := range AllCategories() {
		assert.True(t, c.Valid())
	}
	assert.False(t, Category("bogus").Valid())
}

func TestTgConfidenceNumeric(t *testing.T) {
	assert.Equal(t, 0.9, TgConfidenceHigh.Numeric())
	assert.Equal(t, 0.75, TgConfidenceMedium.Numeric())
	assert.Equal(t, 0.6, TgConfidenceLow.Numeric())
	// unknown values default to the low mapping
	assert.Equal(t, 0.6, TgConfidence("").Numeric())
}
