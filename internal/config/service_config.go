package config

// ServiceConfig carries the knobs that may change at runtime through the
// etcd watcher without a restart.
type ServiceConfig struct {
	ResponseLoggingPerc   int  `json:"response_logging_perc"`
	DriftEnabled          bool `json:"drift_enabled"`
	PredictionCacheTTLSec int  `json:"prediction_cache_ttl_sec"`
}

var sConfig *ServiceConfig

func GetServiceConfig() *ServiceConfig {
	if sConfig == nil {
		return &ServiceConfig{}
	}
	return sConfig
}

func SetServiceConfig(config *ServiceConfig) {
	sConfig = config
}
