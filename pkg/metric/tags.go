package metric

const (
	TagEnv     = "env"
	TagService = "service"
	TagModelID = "model-id"
	TagAPI     = "api"
	TagStatus  = "status"
	TagTier    = "tier"
	TagField   = "field"
	TagCache   = "cache_name"
)

const (
	PredictRequestTotal    = "strengthserve.predict.request.total"
	PredictRequestLatency  = "strengthserve.predict.request.latency"
	PredictRequestFailed   = "strengthserve.predict.request.failed"
	PredictCacheHit        = "strengthserve.predict.cache.hit"
	PredictCacheMiss       = "strengthserve.predict.cache.miss"
	RouterRequestTotal     = "strengthserve.router.api.request.total"
	RouterRequestLatency   = "strengthserve.router.api.request.latency"
	DriftStatistic         = "strengthserve.drift.ks.statistic"
	DriftingFeatureCount   = "strengthserve.drift.feature.count"
	CacheHitRate           = "strengthserve.cache.hit.rate"
	CacheItemCount         = "strengthserve.cache.item.count"
	CacheEvacuateCount     = "strengthserve.cache.evacuate.count"
	CacheExpiryCount       = "strengthserve.cache.expiry.count"
	ModelPredictionMPa     = "strengthserve.model.prediction.mpa"
	InputOutOfTrainingHull = "strengthserve.input.out.of.training.range"
)

type Tag struct {
	Key   string
	Value string
}

func NewTag(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

func TagAsString(key, value string) string {
	return key + ":" + value
}

// BuildTag converts Tag structs into the statsd "key:value" representation.
func BuildTag(tags ...Tag) []string {
	result := make([]string, 0, len(tags))
	for _, t := range tags {
		result = append(result, TagAsString(t.Key, t.Value))
	}
	return result
}
