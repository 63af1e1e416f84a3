package cache

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"

	"propertypulse/internal/config"
	"propertypulse/internal/models"
)

// AllListingsKey caches the full fetch-all view.
const AllListingsKey = "properties:all"

// ListingCache caches rendered listing views. Reads hit the in-process tier
// first and fall through to memcached; mutations invalidate both tiers.
type ListingCache interface {
	Get(key string) ([]models.Property, bool)
	Set(key string, properties []models.Property)
	Invalidate(key string)
}

type listingCache struct {
	local  *ccache.Cache[[]models.Property]
	remote *memcache.Client
	ttl    time.Duration
}

func NewListingCache(cfg *config.Config) ListingCache {
	return &listingCache{
		local:  ccache.New(ccache.Configure[[]models.Property]().MaxSize(100)),
		remote: memcache.New(cfg.Cache.MemcachedHost),
		ttl:    cfg.Cache.TTL,
	}
}

func (c *listingCache) Get(key string) ([]models.Property, bool) {
	item := c.local.Get(key)
	if item != nil && !item.Expired() {
		return item.Value(), true
	}

	remoteItem, err := c.remote.Get(key)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			log.Printf("listing cache: memcached get failed: key=%s err=%v", key, err)
		}
		return nil, false
	}

	var properties []models.Property
	if err := json.Unmarshal(remoteItem.Value, &properties); err != nil {
		log.Printf("listing cache: bad cached payload: key=%s err=%v", key, err)
		return nil, false
	}

	// Warm the local tier for the next read.
	c.local.Set(key, properties, c.ttl)

	return properties, true
}

func (c *listingCache) Set(key string, properties []models.Property) {
	c.local.Set(key, properties, c.ttl)

	payload, err := json.Marshal(properties)
	if err != nil {
		log.Printf("listing cache: marshal failed: key=%s err=%v", key, err)
		return
	}

	err = c.remote.Set(&memcache.Item{
		Key:        key,
		Value:      payload,
		Expiration: int32(c.ttl / time.Second),
	})
	if err != nil {
		log.Printf("listing cache: memcached set failed: key=%s err=%v", key, err)
	}
}

func (c *listingCache) Invalidate(key string) {
	c.local.Delete(key)

	if err := c.remote.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		log.Printf("listing cache: memcached delete failed: key=%s err=%v", key, err)
	}
}
