package etcd

import (
	"fmt"

	"github.com/cretelab/strengthserve/pkg/config"
	"github.com/cretelab/strengthserve/pkg/logger"
)

var (
	instance       Etcd
	DefaultVersion = 1
)

// Init initializes the Etcd client, to be called from main.go
func Init(version int, conf interface{}, configs *config.AppConfigs) {
	once.Do(func() {
		switch version {
		case DefaultVersion:
			instance = newV1Etcd(conf, configs)
		default:
			logger.Panic(fmt.Sprintf("invalid version %d", version), nil)
		}
	})
}

// Instance returns the Etcd client instance. Ensure that Init is called before calling this function
func Instance() Etcd {
	if instance == nil {
		logger.Panic("etcd client not initialized, call Init first", nil)
	}
	return instance
}
