package service

import (
	"sync"

	"go.uber.org/zap"
)

// SiteCache is the batch-scoped bidirectional id<->name mapping the resolver
// uses to avoid redundant directory calls. Both maps are kept inverses of
// each other; an absent entry means "not yet observed this batch", never
// "does not exist remotely". One cache serves exactly one batch and is
// discarded with it.
type SiteCache struct {
	mu       sync.RWMutex
	idToName map[string]string
	nameToID map[string]string
	logger   *zap.Logger
}

// NewSiteCache returns an empty cache for one batch.
func NewSiteCache(logger *zap.Logger) *SiteCache {
	return &SiteCache{
		idToName: map[string]string{},
		nameToID: map[string]string{},
		logger:   logger,
	}
}

// NameByID returns the cached name for a site id.
func (c *SiteCache) NameByID(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.idToName[id]
	return name, ok
}

// IDByName returns the cached id for a site name.
func (c *SiteCache) IDByName(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.nameToID[name]
	return id, ok
}

// Set records an id<->name pair, dropping the reverse entry of any name this
// id was previously cached under so it cannot dangle. If the name was already
// cached for a different id the last write wins, with a warning: the same
// name was observed for two site ids within one batch.
func (c *SiteCache) Set(id, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if previous, ok := c.idToName[id]; ok && previous != name && c.nameToID[previous] == id {
		delete(c.nameToID, previous)
	}
	c.idToName[id] = name

	if other, ok := c.nameToID[name]; ok && other != id {
		c.logger.Warn("site name remapped to a different id",
			zap.String("name", name),
			zap.String("previous_id", other),
			zap.String("id", id),
		)
	}
	c.nameToID[name] = id
}
