package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, -1.5, Mean([]float64{-1, -2}))
}

func TestMax(t *testing.T) {
	assert.Equal(t, 0.0, Max(nil))
	assert.Equal(t, 3.0, Max([]float64{1, 3, 2}))
	assert.Equal(t, -1.0, Max([]float64{-5, -1, -3}))
}

func TestMeanAbs(t *testing.T) {
	assert.Equal(t, 0.0, MeanAbs(nil))
	assert.Equal(t, 2.0, MeanAbs([]float64{-1, 2, -3}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1.0, 0.0, 1.0))
	assert.Equal(t, 1.0, Clamp(2.0, 0.0, 1.0))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
}

func TestHasNaNOrInf(t *testing.T) {
	assert.False(t, HasNaNOrInf(nil))
	assert.False(t, HasNaNOrInf([]float64{1, 2, 3}))
	assert.True(t, HasNaNOrInf([]float64{1, math.NaN()}))
	assert.True(t, HasNaNOrInf([]float64{math.Inf(1)}))
	assert.True(t, HasNaNOrInf([]float64{math.Inf(-1)}))
}
