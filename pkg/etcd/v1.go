package etcd

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/cretelab/strengthserve/pkg/config"
	"github.com/cretelab/strengthserve/pkg/logger"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// V1 keeps a single JSON node under basePath in sync with the provided
// config struct and fans watch events out to registered callbacks.
type V1 struct {
	client    *clientv3.Client
	conf      interface{}
	callbacks map[string][]func() error
	mu        sync.RWMutex
}

func newV1Etcd(conf interface{}, configs *config.AppConfigs) Etcd {
	server := configs.Configs.ETCD_SERVER
	if server == "" {
		logger.Panic("ETCD_SERVER is not set", nil)
	}
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   strings.Split(server, ","),
		DialTimeout: connectionTimeout,
	})
	if err != nil {
		logger.Panic(fmt.Sprintf("Failed to connect to etcd at %s", server), err)
	}

	v1 := &V1{
		client:    client,
		conf:      conf,
		callbacks: make(map[string][]func() error),
	}
	if err := v1.loadConfig(); err != nil {
		logger.Error("Failed to load service config from etcd, keeping defaults", err)
	}
	if configs.Configs.ETCD_WATCHER_ENABLED {
		go v1.watch()
	}
	return v1
}

func (e *V1) GetConfigInstance() interface{} {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.conf
}

func (e *V1) GetBasePath() string {
	return basePath
}

// RegisterWatchPathCallback registers a callback invoked after the config
// node at basePath+path changes and has been re-parsed.
func (e *V1) RegisterWatchPathCallback(path string, callback func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callbacks[path] = append(e.callbacks[path], callback)
	return nil
}

func (e *V1) loadConfig() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()
	resp, err := e.client.Get(ctx, basePath+configPath)
	if err != nil {
		return err
	}
	if len(resp.Kvs) == 0 {
		logger.Warn(fmt.Sprintf("No config found at %s%s, keeping defaults", basePath, configPath))
		return nil
	}
	fresh, err := decodeConfig(resp.Kvs[0].Value, e.conf)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.conf = fresh
	return nil
}

// decodeConfig unmarshals data into a fresh instance of the prototype's
// type. Each watch event produces a new struct, so config pointers handed
// out to callers earlier are never written again.
func decodeConfig(data []byte, prototype interface{}) (interface{}, error) {
	fresh := reflect.New(reflect.TypeOf(prototype).Elem()).Interface()
	if err := json.Unmarshal(data, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (e *V1) watch() {
	watchChan := e.client.Watch(context.Background(), basePath, clientv3.WithPrefix())
	logger.Info(fmt.Sprintf("Watching etcd prefix %s for config changes", basePath))
	for watchResp := range watchChan {
		if watchResp.Err() != nil {
			logger.Error("Etcd watch error", watchResp.Err())
			continue
		}
		if err := e.loadConfig(); err != nil {
			logger.Error("Failed to reload service config from etcd", err)
			continue
		}
		e.runCallbacks()
	}
}

func (e *V1) runCallbacks() {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for path, callbacks := range e.callbacks {
		for _, callback := range callbacks {
			if err := callback(); err != nil {
				logger.Error(fmt.Sprintf("Watch callback failed for path %s", path), err)
			}
		}
	}
}
