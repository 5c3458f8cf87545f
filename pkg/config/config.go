package config

import (
	"log"

	"github.com/spf13/viper"
)

// InitConfig loads the static application config from environment variables
// into the AppConfigs struct. To be called once from main before any other
// package is initialized.
func InitConfig(appConfigs *AppConfigs) {
	viper.AutomaticEnv()

	staticConfig := appConfigs.GetStaticConfig()
	cfg, ok := staticConfig.(*Configs)
	if !ok {
		log.Fatal("Failed to cast static config to *Configs")
	}

	// Manually bind environment variables to mapstructure keys
	// This ensures proper mapping from env vars to struct fields
	bindEnvVars()

	if err := viper.Unmarshal(cfg); err != nil {
		log.Fatalf("Failed to unmarshal config from environment: %v", err)
	}

	log.Println("Configuration loaded from environment variables")
}

func bindEnvVars() {
	// Application config
	viper.BindEnv("app_env", "APP_ENV")
	viper.BindEnv("app_log_level", "APP_LOG_LEVEL")
	viper.BindEnv("app_name", "APP_NAME")
	viper.BindEnv("app_port", "APP_PORT")
	viper.BindEnv("app_gc_percentage", "APP_GC_PERCENTAGE")

	// Model artifact config
	viper.BindEnv("model_path", "MODEL_PATH")
	viper.BindEnv("model_version", "MODEL_VERSION")

	// In-memory cache config
	viper.BindEnv("in-memory-cache_size-in-bytes", "IN_MEMORY_CACHE_SIZE_IN_BYTES")
	viper.BindEnv("predictionCache_ttlSec", "PREDICTION_CACHE_TTL_SEC")

	// Metrics / Telegraf config
	viper.BindEnv("metrics_sampling_rate", "METRIC_SAMPLING_RATE")
	viper.BindEnv("telegraf_host", "TELEGRAF_HOST")
	viper.BindEnv("telegraf_port", "TELEGRAF_PORT")

	// Prediction logging config
	viper.BindEnv("response_loggingPerc", "RESPONSE_LOGGING_PERC")

	// Drift monitor config
	viper.BindEnv("drift_enabled", "DRIFT_ENABLED")
	viper.BindEnv("drift_windowSize", "DRIFT_WINDOW_SIZE")

	// ETCD config
	viper.BindEnv("etcd_watcherEnabled", "ETCD_WATCHER_ENABLED")
	viper.BindEnv("etcd_server", "ETCD_SERVER")
}
