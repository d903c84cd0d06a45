package core

import (
	"github.com/patrickmn/go-cache"
)

// SettingsStoreKey is the key the loaders mirror the current settings under.
const SettingsStoreKey = "settings"

// Datastore is a fast in-process key-value cache. It is never the source of
// truth: the settings file is.
type Datastore[T any] interface {
	Fetch(key string) (T, bool)
	Store(key string, data T)
	Delete(key string)
}

type CacheDatastore[T any] struct {
	cache *cache.Cache
}

func NewCacheDatastore[T any]() *CacheDatastore[T] {
	return &CacheDatastore[T]{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (c *CacheDatastore[T]) Fetch(key string) (T, bool) {
	var zero T
	value, ok := c.cache.Get(key)
	if !ok {
		return zero, false
	}

	data, ok := value.(T)
	if !ok {
		return zero, false
	}
	return data, true
}

func (c *CacheDatastore[T]) Store(key string, data T) {
	c.cache.Set(key, data, cache.NoExpiration)
}

func (c *CacheDatastore[T]) Delete(key string) {
	c.cache.Delete(key)
}
