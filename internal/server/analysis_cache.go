// Package server exposes the HTTP API over the statistics cache and the tip
// inference engine.
package server

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/matchtips/internal/metrics"
	"github.com/yourusername/matchtips/internal/stats"
	"github.com/yourusername/matchtips/internal/tips"
)

// AnalysisKey identifies one analysis request for caching.
type AnalysisKey struct {
	LeagueID int
	HomeTeam string
	AwayTeam string
}

// String returns the cache key string. Team names are normalized so casing
// and spacing differences hit the same entry.
func (k AnalysisKey) String() string {
	return fmt.Sprintf("%d:%s:%s", k.LeagueID, stats.NormalizeTeamName(k.HomeTeam), stats.NormalizeTeamName(k.AwayTeam))
}

// AnalysisCache is a short-TTL cache of analysis responses. It only absorbs
// repeated queries for the same fixture; the statistics underneath change at
// most once per refresh interval anyway.
type AnalysisCache struct {
	cache *cache.Cache
	ttl   time.Duration

	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewAnalysisCache creates an analysis response cache. A zero ttl disables
// caching entirely.
func NewAnalysisCache(ttl time.Duration) *AnalysisCache {
	if ttl <= 0 {
		return &AnalysisCache{ttl: 0}
	}
	return &AnalysisCache{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Get retrieves a cached analysis result, or nil on a miss.
func (ac *AnalysisCache) Get(key AnalysisKey) *tips.AnalysisResult {
	if ac.cache == nil {
		return nil
	}

	if cached, found := ac.cache.Get(key.String()); found {
		if result, ok := cached.(*tips.AnalysisResult); ok {
			ac.recordHit(true)
			return result
		}
	}
	ac.recordHit(false)
	return nil
}

// Set stores an analysis result.
func (ac *AnalysisCache) Set(key AnalysisKey, result *tips.AnalysisResult) {
	if ac.cache == nil {
		return
	}
	ac.cache.Set(key.String(), result, ac.ttl)
}

// Stats returns hit/miss counts and the hit ratio.
func (ac *AnalysisCache) Stats() (hits, misses uint64, ratio float64) {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	hits = ac.hitCount
	misses = ac.missCount
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (ac *AnalysisCache) recordHit(hit bool) {
	ac.mu.Lock()
	if hit {
		ac.hitCount++
	} else {
		ac.missCount++
	}
	hits, misses := ac.hitCount, ac.missCount
	ac.mu.Unlock()

	if total := hits + misses; total > 0 {
		metrics.AnalysisCacheHitRatio.Set(float64(hits) / float64(total))
	}
}
