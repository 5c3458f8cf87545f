package strength

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cretelab/strengthserve/internal/errors"
	"github.com/cretelab/strengthserve/internal/model"
	"github.com/cretelab/strengthserve/pkg/inmemorycache"
)

func highStrengthRequest() map[string]interface{} {
	return map[string]interface{}{
		"cement":             540.0,
		"blast_furnace_slag": 0.0,
		"fly_ash":            0.0,
		"water":              162.0,
		"superplasticizer":   2.5,
		"coarse_aggregate":   1040.0,
		"fine_aggregate":     676.0,
		"age":                28,
	}
}

func readyPredictor(mpa float64) *model.MockPredictor {
	p := &model.MockPredictor{}
	p.On("Predict", mock.AnythingOfType("[]float64")).Return(mpa, nil)
	p.On("IsReady").Return(true)
	p.On("Version").Return("1.0.0")
	return p
}

func TestPredictStrength_TypicalHighStrengthMix(t *testing.T) {
	predictor := readyPredictor(67.3)
	h := NewHandler(predictor, nil, nil)

	result, err := h.PredictStrength(highStrengthRequest(), "")
	require.NoError(t, err)

	assert.False(t, math.IsNaN(result.PredictedStrengthMPa))
	assert.False(t, math.IsInf(result.PredictedStrengthMPa, 0))
	assert.Equal(t, "MPa", result.Units)
	assert.NotEmpty(t, result.StrengthTier)
	assert.NotEmpty(t, result.StrengthClass)
	assert.Equal(t, "C60/75+", result.StrengthClass)
	assert.Equal(t, "1.0.0", result.ModelVersion)
	assert.Len(t, result.FeaturesUsed, 11)
}

func TestPredictStrength_RepeatCallsAreIdentical(t *testing.T) {
	h := NewHandler(readyPredictor(42.5), nil, nil)

	first, err := h.PredictStrength(highStrengthRequest(), "")
	require.NoError(t, err)
	second, err := h.PredictStrength(highStrengthRequest(), "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPredictStrength_ZeroCementFailsDerivation(t *testing.T) {
	predictor := &model.MockPredictor{}
	h := NewHandler(predictor, nil, nil)

	raw := highStrengthRequest()
	raw["cement"] = 0.0
	raw["blast_furnace_slag"] = 0.0
	raw["fly_ash"] = 0.0

	_, err := h.PredictStrength(raw, "")
	require.Error(t, err)
	_, ok := err.(*errors.DegenerateMixError)
	assert.True(t, ok, "expected *errors.DegenerateMixError, got %T", err)
	predictor.AssertNotCalled(t, "Predict", mock.Anything)
}

func TestPredictStrength_NegativeAgeFailsValidation(t *testing.T) {
	predictor := &model.MockPredictor{}
	h := NewHandler(predictor, nil, nil)

	raw := highStrengthRequest()
	raw["age"] = -1

	_, err := h.PredictStrength(raw, "")
	require.Error(t, err)
	vErr, ok := err.(*errors.ValidationError)
	require.True(t, ok, "expected *errors.ValidationError, got %T", err)
	assert.Equal(t, "age", vErr.Field)
	predictor.AssertNotCalled(t, "Predict", mock.Anything)
}

func TestPredictStrength_MissingWaterFailsValidation(t *testing.T) {
	predictor := &model.MockPredictor{}
	h := NewHandler(predictor, nil, nil)

	raw := highStrengthRequest()
	delete(raw, "water")

	_, err := h.PredictStrength(raw, "")
	require.Error(t, err)
	vErr, ok := err.(*errors.ValidationError)
	require.True(t, ok, "expected *errors.ValidationError, got %T", err)
	assert.Equal(t, "water", vErr.Field)
	predictor.AssertNotCalled(t, "Predict", mock.Anything)
}

func TestPredictStrength_ModelErrorPropagates(t *testing.T) {
	predictor := &model.MockPredictor{}
	predictor.On("Predict", mock.AnythingOfType("[]float64")).
		Return(0.0, &errors.ModelUnavailableError{ErrorMsg: "model not loaded"})
	h := NewHandler(predictor, nil, nil)

	_, err := h.PredictStrength(highStrengthRequest(), "")
	require.Error(t, err)
	_, ok := err.(*errors.ModelUnavailableError)
	assert.True(t, ok, "expected *errors.ModelUnavailableError, got %T", err)
}

func TestPredictStrength_CacheMissStoresPrediction(t *testing.T) {
	cache := &inmemorycache.MockInMemoryCacheClient{}
	cache.On("Get", mock.AnythingOfType("[]uint8")).Return(nil, assert.AnError)
	cache.On("SetEx", mock.AnythingOfType("[]uint8"), mock.AnythingOfType("[]uint8"), mock.AnythingOfType("int")).
		Return(nil)

	h := NewHandler(readyPredictor(35.5), cache, nil)
	result, err := h.PredictStrength(highStrengthRequest(), "")
	require.NoError(t, err)
	assert.Equal(t, 35.5, result.PredictedStrengthMPa)

	cache.AssertCalled(t, "SetEx", mock.Anything, mock.Anything, mock.Anything)
}

func TestPredictStrength_CacheHitSkipsModel(t *testing.T) {
	cachedValue := make([]byte, 8)
	binary.BigEndian.PutUint64(cachedValue, math.Float64bits(44.25))

	cache := &inmemorycache.MockInMemoryCacheClient{}
	cache.On("Get", mock.AnythingOfType("[]uint8")).Return(cachedValue, nil)

	predictor := &model.MockPredictor{}
	predictor.On("Version").Return("1.0.0")

	h := NewHandler(predictor, cache, nil)
	result, err := h.PredictStrength(highStrengthRequest(), "")
	require.NoError(t, err)

	assert.Equal(t, 44.25, result.PredictedStrengthMPa)
	predictor.AssertNotCalled(t, "Predict", mock.Anything)
}

func TestDriftingFeatures_NilMonitor(t *testing.T) {
	h := NewHandler(readyPredictor(30), nil, nil)
	assert.Empty(t, h.DriftingFeatures())
}
