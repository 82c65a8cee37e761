package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/healthchat-backend/internal/config"
	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

const doctorsCacheTTL = 30 * time.Minute

type availabilityCache struct {
	cache *lru.Cache[string, []domain.AvailabilityWindow]
}

// doctorsCache — список врачей меняется редко, держим его целиком с TTL
type doctorsCache struct {
	cache     []domain.Doctor
	timestamp time.Time
	ttl       time.Duration
}

type CacheAdapter struct {
	availabilityCache *availabilityCache
	doctorsCache      *doctorsCache
	mu                sync.RWMutex
	logger            out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruAvailabilityCache, err := lru.New[string, []domain.AvailabilityWindow](cfg.Cache.AvailabilitySize)
	if err != nil {
		logger.Error("cache.availability.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.AvailabilitySize,
		})
		return nil, err
	}

	return &CacheAdapter{
		availabilityCache: &availabilityCache{cache: lruAvailabilityCache},
		doctorsCache:      &doctorsCache{ttl: doctorsCacheTTL},
		logger:            logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetAvailability(ctx context.Context, doctorID string) ([]domain.AvailabilityWindow, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	windows, exists := c.availabilityCache.cache.Get(doctorID)
	if !exists {
		c.logger.Debug("cache.availability.get.miss", out.LogFields{
			"doctorId": doctorID,
		})
		return nil, false
	}

	c.logger.Debug("cache.availability.get.hit", out.LogFields{
		"doctorId":     doctorID,
		"windowsCount": len(windows),
	})
	return windows, true
}

func (c *CacheAdapter) StoreAvailability(ctx context.Context, doctorID string, windows []domain.AvailabilityWindow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.availability.store", out.LogFields{
		"doctorId":     doctorID,
		"windowsCount": len(windows),
	})

	c.availabilityCache.cache.Add(doctorID, windows)
}

func (c *CacheAdapter) InvalidateAvailabilityCache(ctx context.Context, doctorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.availabilityCache.cache.Remove(doctorID)
}

// Кэширование списка врачей

func (c *CacheAdapter) GetDoctors(ctx context.Context) ([]domain.Doctor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.doctorsCache.cache == nil || time.Since(c.doctorsCache.timestamp) > c.doctorsCache.ttl {
		return nil, false
	}

	return c.doctorsCache.cache, true
}

func (c *CacheAdapter) StoreDoctors(ctx context.Context, doctors []domain.Doctor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doctorsCache.cache = doctors
	c.doctorsCache.timestamp = time.Now()
}

func (c *CacheAdapter) InvalidateDoctorsCache(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doctorsCache.cache = nil
	c.doctorsCache.timestamp = time.Time{}
}
