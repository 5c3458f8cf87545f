package model

import "github.com/stretchr/testify/mock"

type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(features []float64) (float64, error) {
	args := m.Called(features)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPredictor) IsReady() bool {
	args := m.Called()
	return args.Get(0).(bool)
}

func (m *MockPredictor) Version() string {
	args := m.Called()
	return args.String(0)
}
