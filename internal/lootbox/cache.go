package lootbox

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// CacheConfig sizes the reward read cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// CacheStats reports reward cache effectiveness
type CacheStats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
	Size      int    `json:"size"`
}

// rewardCache keeps recent reward summaries keyed by account. Entries are
// dropped whenever the account opens a box. Every invalidation bumps a
// generation; a fill that started under an older generation is discarded, so a
// read that raced a commit never lands in the cache.
type rewardCache struct {
	lru *expirable.LRU[string, domain.UserRewards]

	mu  sync.Mutex
	gen uint64

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

func newRewardCache(cfg CacheConfig) *rewardCache {
	if cfg.Size <= 0 {
		cfg.Size = DefaultRewardCacheSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultRewardCacheTTL
	}
	c := &rewardCache{}
	c.lru = expirable.NewLRU[string, domain.UserRewards](cfg.Size, func(string, domain.UserRewards) {
		c.evictions.Add(1)
	}, cfg.TTL)
	return c
}

func (c *rewardCache) Get(account string) (domain.UserRewards, bool) {
	rewards, ok := c.lru.Get(account)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return rewards, ok
}

// Generation is read before loading the value that will be passed to Fill
func (c *rewardCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Fill stores rewards unless an invalidation happened since gen was read
func (c *rewardCache) Fill(account string, rewards domain.UserRewards, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.lru.Add(account, rewards)
	return true
}

func (c *rewardCache) Invalidate(account string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.lru.Remove(account)
}

// Stats returns the counters since startup. Evictions include invalidations.
func (c *rewardCache) Stats() CacheStats {
	return CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.lru.Len(),
	}
}
