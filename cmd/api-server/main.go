package main

import (
	"fmt"

	_ "go.uber.org/automaxprocs"

	svcconfig "github.com/cretelab/strengthserve/internal/config"
	"github.com/cretelab/strengthserve/internal/handler/strength"
	"github.com/cretelab/strengthserve/internal/model"
	"github.com/cretelab/strengthserve/internal/monitoring"
	httpserver "github.com/cretelab/strengthserve/internal/server/http"
	"github.com/cretelab/strengthserve/pkg/config"
	"github.com/cretelab/strengthserve/pkg/etcd"
	"github.com/cretelab/strengthserve/pkg/inmemorycache"
	"github.com/cretelab/strengthserve/pkg/logger"
	"github.com/cretelab/strengthserve/pkg/metric"
)

var AppConfigs config.AppConfigs

func main() {
	config.InitConfig(&AppConfigs)
	logger.InitLogger(&AppConfigs)
	metric.Init(&AppConfigs)

	predictor, err := model.NewGBTPredictor(&AppConfigs)
	if err != nil {
		logger.Panic("Failed to load model artifact, refusing to serve", err)
	}

	// seed the dynamic config from env; etcd overrides it when enabled
	svcconfig.SetServiceConfig(&svcconfig.ServiceConfig{
		ResponseLoggingPerc:   AppConfigs.Configs.ResponseLoggingPerc,
		DriftEnabled:          AppConfigs.Configs.DriftEnabled,
		PredictionCacheTTLSec: AppConfigs.Configs.PredictionCacheTTLSec,
	})
	if AppConfigs.Configs.ETCD_WATCHER_ENABLED {
		etcd.Init(etcd.DefaultVersion, &svcconfig.ServiceConfig{}, &AppConfigs)
		if err := etcd.Instance().RegisterWatchPathCallback("", strength.ReloadServiceConfig); err != nil {
			logger.Error("Error registering watch path callback for service config", err)
		}
	}

	var cache inmemorycache.InMemoryCache
	if AppConfigs.Configs.InMemoryCacheSizeInBytes > 0 {
		inmemorycache.Init(1)
		cache = inmemorycache.Instance()
	}

	var drift *monitoring.DriftMonitor
	if AppConfigs.Configs.DriftEnabled {
		drift = monitoring.NewDriftMonitor(AppConfigs.Configs.DriftWindowSize)
	}

	handler := strength.InitStrengthHandler(predictor, cache, drift)
	httpserver.Init(handler)

	address := fmt.Sprintf(":%d", AppConfigs.Configs.ApplicationPort)
	logger.Info(fmt.Sprintf("strengthserve started on port %s", address))
	if err := httpserver.Instance().Run(address); err != nil {
		logger.Panic("Failed to start strengthserve application!", err)
	}
}
