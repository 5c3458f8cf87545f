package etcd

import (
	"sync"
	"time"
)

const (
	basePath          = "/config/strengthserve"
	configPath        = "/service-config"
	connectionTimeout = 30 * time.Second
)

var (
	once sync.Once
)

type Etcd interface {
	GetConfigInstance() interface{}
	GetBasePath() string
	RegisterWatchPathCallback(path string, callback func() error) error
}
