package cache

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordcover/config"
)

// The cache holds large prepared objects, like search problems built from a
// word list, so an interactive session does not rebuild them on every
// command.

type cache struct {
	sync.Mutex
	objects map[string]any
}

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache *cache

func (c *cache) get(cfg *config.Config, key string, loadFunc func(*config.Config, string) (any, error)) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := loadFunc(cfg, key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

func CreateGlobalObjectCache() {
	GlobalObjectCache = &cache{objects: make(map[string]any)}
}

// Load returns the object stored under key, calling loadFunc to build it the
// first time.
func Load[T any](cfg *config.Config, key string, loadFunc func(*config.Config, string) (T, error)) (T, error) {
	if GlobalObjectCache == nil {
		CreateGlobalObjectCache()
	}
	obj, err := GlobalObjectCache.get(cfg, key, func(cfg *config.Config, key string) (any, error) {
		return loadFunc(cfg, key)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := obj.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cached object %s has type %T", key, obj)
	}
	return t, nil
}

// Evict drops key from the cache.
func Evict(key string) {
	if GlobalObjectCache == nil {
		return
	}
	GlobalObjectCache.Lock()
	defer GlobalObjectCache.Unlock()
	delete(GlobalObjectCache.objects, key)
}
