package service

import (
	"time"

	"codemasti/internal/api/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cachedProblem struct {
	problem  models.Problem
	loadedAt time.Time
}

// configCache keeps recently used problems so repeated generations for the
// same problem skip the database. Entries older than ttl are reloaded.
type configCache struct {
	entries *lru.Cache[uint, cachedProblem]
	ttl     time.Duration
	now     func() time.Time
}

// newConfigCache returns nil, a disabled cache, when size is not positive
func newConfigCache(size int, ttl time.Duration) *configCache {
	if size <= 0 {
		return nil
	}
	entries, err := lru.New[uint, cachedProblem](size)
	if err != nil {
		return nil
	}
	return &configCache{entries: entries, ttl: ttl, now: time.Now}
}

func (c *configCache) Get(id uint) (models.Problem, bool) {
	if c == nil {
		return models.Problem{}, false
	}
	entry, ok := c.entries.Get(id)
	if !ok {
		return models.Problem{}, false
	}
	if c.ttl > 0 && c.now().Sub(entry.loadedAt) > c.ttl {
		c.entries.Remove(id)
		return models.Problem{}, false
	}
	return entry.problem, true
}

func (c *configCache) Add(problem models.Problem) {
	if c == nil {
		return
	}
	c.entries.Add(problem.ID, cachedProblem{problem: problem, loadedAt: c.now()})
}

func (c *configCache) Remove(id uint) {
	if c == nil {
		return
	}
	c.entries.Remove(id)
}
