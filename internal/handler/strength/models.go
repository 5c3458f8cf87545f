package strength

// PredictionResult is the transient response of one prediction call.
type PredictionResult struct {
	PredictedStrengthMPa float64  `json:"predicted_strength_mpa"`
	Units                string   `json:"units"`
	StrengthTier         string   `json:"strength_tier"`
	StrengthClass        string   `json:"strength_class"`
	UseCase              string   `json:"use_case"`
	ModelVersion         string   `json:"model_version"`
	FeaturesUsed         []string `json:"features_used"`
}
