package strength

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cretelab/strengthserve/internal/classifier"
	svcconfig "github.com/cretelab/strengthserve/internal/config"
	"github.com/cretelab/strengthserve/internal/features"
	"github.com/cretelab/strengthserve/internal/model"
	"github.com/cretelab/strengthserve/internal/monitoring"
	"github.com/cretelab/strengthserve/internal/schema"
	"github.com/cretelab/strengthserve/pkg/etcd"
	"github.com/cretelab/strengthserve/pkg/inmemorycache"
	"github.com/cretelab/strengthserve/pkg/logger"
	"github.com/cretelab/strengthserve/pkg/metric"
	"github.com/cretelab/strengthserve/pkg/utils"
)

var (
	sOnce    sync.Once
	sHandler *Handler
)

// Handler is the stateless prediction facade: validate, derive features,
// invoke the model, classify. The predictor is injected at construction so
// tests can substitute a mock for the real artifact.
type Handler struct {
	predictor model.Predictor
	cache     inmemorycache.InMemoryCache
	drift     *monitoring.DriftMonitor
}

// NewHandler builds a Handler with explicit collaborators. cache and drift
// may be nil to disable memoization and drift monitoring.
func NewHandler(predictor model.Predictor, cache inmemorycache.InMemoryCache, drift *monitoring.DriftMonitor) *Handler {
	return &Handler{predictor: predictor, cache: cache, drift: drift}
}

// InitStrengthHandler initializes the singleton handler, to be called from main.go
func InitStrengthHandler(predictor model.Predictor, cache inmemorycache.InMemoryCache, drift *monitoring.DriftMonitor) *Handler {
	sOnce.Do(func() {
		sHandler = NewHandler(predictor, cache, drift)
		logger.Info("Strength handler initialized")
	})
	return sHandler
}

// Instance returns the singleton handler. Ensure InitStrengthHandler was called first.
func Instance() *Handler {
	if sHandler == nil {
		logger.Panic("strength handler not initialized, call InitStrengthHandler first", nil)
	}
	return sHandler
}

// ReloadServiceConfig re-reads the dynamic service config from etcd. It is
// registered as the etcd watch-path callback from main.go.
func ReloadServiceConfig() error {
	updated, ok := etcd.Instance().GetConfigInstance().(*svcconfig.ServiceConfig)
	if !ok {
		return fmt.Errorf("failed to parse service config from etcd")
	}
	svcconfig.SetServiceConfig(updated)
	logger.Info(fmt.Sprintf("Service config reloaded: %+v", *updated))
	return nil
}

// PredictStrength runs the prediction pipeline on one raw request mapping.
// It fails fast at the first failing step and propagates that step's error
// kind unchanged.
func (h *Handler) PredictStrength(raw map[string]interface{}, trackingID string) (*PredictionResult, error) {
	startTime := time.Now()
	metric.Count(metric.PredictRequestTotal, 1, nil)

	mix, err := schema.ParseAndValidate(raw)
	if err != nil {
		metric.Count(metric.PredictRequestFailed, 1, metric.BuildTag(metric.NewTag(metric.TagStatus, "validation")))
		return nil, err
	}

	featureVector, err := features.Derive(mix)
	if err != nil {
		metric.Count(metric.PredictRequestFailed, 1, metric.BuildTag(metric.NewTag(metric.TagStatus, "degenerate")))
		return nil, err
	}

	mpa, err := h.predict(featureVector)
	if err != nil {
		metric.Count(metric.PredictRequestFailed, 1, metric.BuildTag(metric.NewTag(metric.TagStatus, "model")))
		return nil, err
	}

	tier := classifier.Classify(mpa)
	result := &PredictionResult{
		PredictedStrengthMPa: mpa,
		Units:                "MPa",
		StrengthTier:         tier.Name,
		StrengthClass:        tier.Class,
		UseCase:              tier.UseCase,
		ModelVersion:         h.predictor.Version(),
		FeaturesUsed:         features.FeatureNames,
	}

	h.observe(mix, result, trackingID, time.Since(startTime))
	return result, nil
}

// Predictor exposes the injected predictor for readiness checks.
func (h *Handler) Predictor() model.Predictor {
	return h.predictor
}

// DriftingFeatures reports features whose recent inputs drifted from the
// training distribution. Empty when drift monitoring is disabled.
func (h *Handler) DriftingFeatures() []string {
	if h.drift == nil {
		return nil
	}
	return h.drift.DriftingFeatures()
}

// predict memoizes model calls on the feature vector bytes. The pipeline is
// deterministic, so a cached value is always identical to a fresh one.
func (h *Handler) predict(featureVector features.FeatureVector) (float64, error) {
	if h.cache == nil {
		return h.predictor.Predict(featureVector.Values())
	}

	key := featureVector.Bytes()
	if cached, err := h.cache.Get(key); err == nil && len(cached) == 8 {
		metric.Count(metric.PredictCacheHit, 1, nil)
		return math.Float64frombits(binary.BigEndian.Uint64(cached)), nil
	}
	metric.Count(metric.PredictCacheMiss, 1, nil)

	mpa, err := h.predictor.Predict(featureVector.Values())
	if err != nil {
		return 0, err
	}

	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, math.Float64bits(mpa))
	ttl := svcconfig.GetServiceConfig().PredictionCacheTTLSec
	if cacheErr := h.cache.SetEx(key, value, ttl); cacheErr != nil {
		logger.PercentError("Failed to cache prediction", cacheErr, 10)
	}
	return mpa, nil
}

func (h *Handler) observe(mix *schema.MixComposition, result *PredictionResult, trackingID string, elapsed time.Duration) {
	tierTags := metric.BuildTag(metric.NewTag(metric.TagTier, result.StrengthClass))
	metric.Timing(metric.PredictRequestLatency, elapsed, nil)
	metric.Gauge(metric.ModelPredictionMPa, result.PredictedStrengthMPa, tierTags)

	for _, field := range schema.OutOfTrainingRange(mix) {
		metric.Count(metric.InputOutOfTrainingHull, 1, metric.BuildTag(metric.NewTag(metric.TagField, field)))
	}

	if h.drift != nil && svcconfig.GetServiceConfig().DriftEnabled {
		h.drift.Record(mix)
	}

	loggingPerc := svcconfig.GetServiceConfig().ResponseLoggingPerc
	if trackingID != "" && utils.IsEnabledForTrackingIDForToday(trackingID, loggingPerc) {
		log.Info().
			Str("tracking_id", trackingID).
			Float64("cement", mix.Cement).
			Float64("blast_furnace_slag", mix.BlastFurnaceSlag).
			Float64("fly_ash", mix.FlyAsh).
			Float64("water", mix.Water).
			Float64("superplasticizer", mix.Superplasticizer).
			Float64("coarse_aggregate", mix.CoarseAggregate).
			Float64("fine_aggregate", mix.FineAggregate).
			Int("age", mix.AgeDays).
			Float64("predicted_strength_mpa", result.PredictedStrengthMPa).
			Str("strength_class", result.StrengthClass).
			Str("model_version", result.ModelVersion).
			Dur("latency", elapsed).
			Msg("prediction_made")
	}
}
