package config

type Configs struct {
	ApplicationEnv      string `mapstructure:"app_env"`
	ApplicationLogLevel string `mapstructure:"app_log_level"`
	ApplicationName     string `mapstructure:"app_name"`
	ApplicationPort     int    `mapstructure:"app_port"`
	AppGcPercentage     int    `mapstructure:"app_gc_percentage"`

	//model-artifact-config
	ModelPath    string `mapstructure:"model_path"`
	ModelVersion string `mapstructure:"model_version"`

	//in-memory-cache-config
	InMemoryCacheSizeInBytes int `mapstructure:"in-memory-cache_size-in-bytes"`
	PredictionCacheTTLSec    int `mapstructure:"predictionCache_ttlSec"`

	//telegraf-config
	MetricsSamplingRate string `mapstructure:"metrics_sampling_rate"`
	Telegraf_Host       string `mapstructure:"telegraf_host"`
	Telegraf_Port       string `mapstructure:"telegraf_port"`

	//prediction-logging-config
	ResponseLoggingPerc int `mapstructure:"response_loggingPerc"`

	//drift-monitor-config
	DriftEnabled    bool `mapstructure:"drift_enabled"`
	DriftWindowSize int  `mapstructure:"drift_windowSize"`

	ETCD_WATCHER_ENABLED bool   `mapstructure:"etcd_watcherEnabled"`
	ETCD_SERVER          string `mapstructure:"etcd_server"`
}

type DynamicConfigs struct {
}

type AppConfigs struct {
	Configs        Configs
	DynamicConfigs DynamicConfigs
}

func (a *AppConfigs) GetStaticConfig() interface{} {
	return &a.Configs
}

func (a *AppConfigs) GetDynamicConfig() interface{} {
	return &a.Configs
}
