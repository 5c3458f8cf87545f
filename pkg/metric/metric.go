package metric

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/cretelab/strengthserve/pkg/config"
	"github.com/cretelab/strengthserve/pkg/logger"
	"github.com/rs/zerolog/log"
)

var (
	// it is safe to use one client from multiple goroutines simultaneously
	statsDClient = getDefaultClient()

	// by default full sampling
	samplingRate = 0.0
	once         sync.Once
)

// Init initializes the statsd metrics client. Non-fatal on connection
// failure so that local environments without Telegraf keep working.
func Init(configs *config.AppConfigs) {
	once.Do(func() {
		var err error
		samplingRate, err = strconv.ParseFloat(configs.Configs.MetricsSamplingRate, 64)
		if err != nil {
			logger.Panic("Error parsing metrics sampling rate", err)
		}
		telegrafAddress := getTelegrafAddress(configs)
		globalTags := getGlobalTags(configs)

		statsDClient, err = statsd.New(
			telegrafAddress,
			statsd.WithTags(globalTags),
		)
		if err != nil {
			logger.Error("StatsD client initialization failed, metrics will be unavailable", err)
			statsDClient = getDefaultClient()
			return
		}
		logger.Info(fmt.Sprintf("Metrics client initialized with telegraf address - %s, global tags - %v, and sampling rate - %f",
			telegrafAddress, globalTags, samplingRate))
	})
}

func getDefaultClient() *statsd.Client {
	client, err := statsd.New("localhost:8125")
	if err != nil {
		client, _ = statsd.New("localhost:8125", statsd.WithoutTelemetry())
	}
	return client
}

func getGlobalTags(configs *config.AppConfigs) []string {
	return []string{
		TagAsString(TagEnv, configs.Configs.ApplicationEnv),
		TagAsString(TagService, configs.Configs.ApplicationName),
	}
}

func getTelegrafAddress(configs *config.AppConfigs) string {
	host := configs.Configs.Telegraf_Host
	port := configs.Configs.Telegraf_Port
	return host + ":" + port
}

// Timing sends timing information
func Timing(name string, value time.Duration, tags []string) {
	err := statsDClient.Timing(name, value, tags, samplingRate)
	if err != nil {
		log.Warn().AnErr("Error occurred while doing statsd timing", err)
	}
}

// Count tracks how many times something happened
func Count(name string, value int64, tags []string) {
	err := statsDClient.Count(name, value, tags, samplingRate)
	if err != nil {
		log.Warn().AnErr("Error occurred while doing statsd count", err)
	}
}

// Gauge measures the value of a metric at a particular time
func Gauge(name string, value float64, tags []string) {
	err := statsDClient.Gauge(name, value, tags, samplingRate)
	if err != nil {
		log.Warn().AnErr("Error occurred while doing statsd gauge", err)
	}
}
