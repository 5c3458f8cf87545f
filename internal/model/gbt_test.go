package model

import (
	"testing"

	"github.com/cretelab/strengthserve/internal/errors"
	"github.com/cretelab/strengthserve/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewGBTPredictor_MissingPath(t *testing.T) {
	configs := &config.AppConfigs{}

	_, err := NewGBTPredictor(configs)
	require.Error(t, err)
	_, ok := err.(*errors.ModelUnavailableError)
	assert.True(t, ok, "expected *errors.ModelUnavailableError, got %T", err)
}

func TestNewGBTPredictor_MissingArtifact(t *testing.T) {
	configs := &config.AppConfigs{}
	configs.Configs.ModelPath = "/nonexistent/model.txt"

	_, err := NewGBTPredictor(configs)
	require.Error(t, err)
	_, ok := err.(*errors.ModelUnavailableError)
	assert.True(t, ok, "expected *errors.ModelUnavailableError, got %T", err)
}

func TestGBTPredictor_NotLoaded(t *testing.T) {
	p := &GBTPredictor{}
	assert.False(t, p.IsReady())

	_, err := p.Predict(make([]float64, 11))
	require.Error(t, err)
	_, ok := err.(*errors.ModelUnavailableError)
	assert.True(t, ok)
}

func TestMockPredictor_SatisfiesInterface(t *testing.T) {
	var p Predictor = &MockPredictor{}

	mockP := p.(*MockPredictor)
	mockP.On("Predict", mock.AnythingOfType("[]float64")).Return(42.5, nil)
	mockP.On("IsReady").Return(true)
	mockP.On("Version").Return("test")

	got, err := p.Predict(make([]float64, 11))
	require.NoError(t, err)
	assert.Equal(t, 42.5, got)
	assert.True(t, p.IsReady())
	assert.Equal(t, "test", p.Version())
}
