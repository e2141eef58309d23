package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const templatesKey = "templates"

// Memory is a process-local TemplateCache on go-cache. Entries expire after
// ttl; a zero ttl never expires.
type Memory struct {
	// mu serialises writers so MarkStale never rewrites an older entry.
	mu sync.Mutex
	c  *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := ttl * 2
	if ttl == gocache.NoExpiration {
		cleanup = 0
	}
	return &Memory{c: gocache.New(ttl, cleanup)}
}

func (m *Memory) Load(_ context.Context) (Entry, bool, error) {
	v, found := m.c.Get(templatesKey)
	if !found {
		return Entry{}, false, nil
	}
	return v.(Entry).Clone(), true, nil
}

func (m *Memory) Store(_ context.Context, e Entry) error {
	if e.StoredAt.IsZero() {
		e.StoredAt = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c.Set(templatesKey, e.Clone(), gocache.DefaultExpiration)
	return nil
}

func (m *Memory) MarkStale(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, expires, found := m.c.GetWithExpiration(templatesKey)
	if !found {
		return nil
	}
	e := v.(Entry)
	e.Stale = true
	ttl := gocache.NoExpiration
	if !expires.IsZero() {
		if ttl = time.Until(expires); ttl <= 0 {
			return nil
		}
	}
	m.c.Set(templatesKey, e, ttl)
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c.Delete(templatesKey)
	return nil
}
