// Package carousel holds the featured-strip logic that does not depend on
// a render surface: sampling the featured set, the slide position state
// machine with its auto-advance timer, and swipe classification.
package carousel

import (
	"math/rand"
	"sort"
	"time"

	"github.com/pders01/featured/internal/apps"
)

const (
	DefaultPoolSize      = 20
	DefaultFeaturedCount = 5
)

// Selector samples the featured set from the newest records.
type Selector struct {
	PoolSize      int
	FeaturedCount int
	rng           *rand.Rand
}

func NewSelector(poolSize, featuredCount int, rng *rand.Rand) *Selector {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	if featuredCount <= 0 {
		featuredCount = DefaultFeaturedCount
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{PoolSize: poolSize, FeaturedCount: featuredCount, rng: rng}
}

func (s *Selector) Select(list []apps.App) []apps.App {
	return Select(list, s.PoolSize, s.FeaturedCount, s.rng)
}

// Select sorts a copy of list by numeric id descending, keeps the first
// poolSize, shuffles that window and returns its first count records.
// The result has min(count, min(poolSize, len(list))) entries.
func Select(list []apps.App, poolSize, count int, rng *rand.Rand) []apps.App {
	if len(list) == 0 || poolSize <= 0 || count <= 0 {
		return []apps.App{}
	}

	sorted := make([]apps.App, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID.Int() > sorted[j].ID.Int()
	})

	pool := sorted[:min(poolSize, len(sorted))]
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	out := make([]apps.App, min(count, len(pool)))
	copy(out, pool)
	return out
}
