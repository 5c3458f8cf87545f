package model

import (
	"fmt"

	"github.com/dmitryikh/leaves"

	"github.com/cretelab/strengthserve/internal/errors"
	"github.com/cretelab/strengthserve/internal/features"
	"github.com/cretelab/strengthserve/pkg/config"
	"github.com/cretelab/strengthserve/pkg/logger"
)

const defaultModelVersion = "1.0.0"

// GBTPredictor wraps the LightGBM gradient-boosting artifact. The ensemble
// is loaded once at startup and is read-only afterwards, so a single
// instance is safe for unbounded concurrent use.
type GBTPredictor struct {
	ensemble *leaves.Ensemble
	version  string
}

// NewGBTPredictor loads the artifact from MODEL_PATH. A load failure is a
// fatal configuration error: it is reported once here, never retried.
func NewGBTPredictor(configs *config.AppConfigs) (*GBTPredictor, error) {
	path := configs.Configs.ModelPath
	if path == "" {
		return nil, &errors.ModelUnavailableError{ErrorMsg: "MODEL_PATH is not set"}
	}

	ensemble, err := leaves.LGEnsembleFromFile(path, true)
	if err != nil {
		return nil, &errors.ModelUnavailableError{
			ErrorMsg: fmt.Sprintf("failed to load model artifact from %s: %v", path, err),
		}
	}
	if ensemble.NFeatures() != features.NumFeatures {
		return nil, &errors.ModelUnavailableError{
			ErrorMsg: fmt.Sprintf("model artifact expects %d features, pipeline produces %d",
				ensemble.NFeatures(), features.NumFeatures),
		}
	}

	version := configs.Configs.ModelVersion
	if version == "" {
		version = defaultModelVersion
	}
	logger.Info(fmt.Sprintf("Loaded model artifact %s (%s, %d estimators, %d features)",
		path, ensemble.Name(), ensemble.NEstimators(), ensemble.NFeatures()))

	return &GBTPredictor{ensemble: ensemble, version: version}, nil
}

func (p *GBTPredictor) Predict(featureValues []float64) (float64, error) {
	if p.ensemble == nil {
		return 0, &errors.ModelUnavailableError{ErrorMsg: "model artifact is not loaded"}
	}
	if len(featureValues) != features.NumFeatures {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d",
			len(featureValues), features.NumFeatures)
	}
	return p.ensemble.PredictSingle(featureValues, 0), nil
}

func (p *GBTPredictor) IsReady() bool {
	return p.ensemble != nil
}

func (p *GBTPredictor) Version() string {
	return p.version
}
