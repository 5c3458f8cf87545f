package model

// Predictor is the minimal capability surface of the trained regressor.
// The trained artifact is treated as an opaque deterministic function over
// the feature space; tests substitute a mock instead of loading it.
type Predictor interface {
	// Predict returns the estimated compressive strength in MPa for a
	// feature vector in the fixed training order.
	Predict(features []float64) (float64, error)
	// IsReady reports whether the artifact loaded successfully. Consumed by
	// the health check; a service with a non-ready predictor must not serve.
	IsReady() bool
	// Version identifies the deployed artifact in responses and logs.
	Version() string
}
