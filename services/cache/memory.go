package cache

import (
	"sync"
	"time"
)

type entry struct {
	value   []byte
	expires time.Time
}

// MemoryService is the in-process CacheService used when no memcache server
// is configured. Entries expire lazily on read.
type MemoryService struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryService() *MemoryService {
	return &MemoryService{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *MemoryService) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, ErrMiss
	}
	return e.value, nil
}

// Set stores value; a zero expiration never expires.
func (m *MemoryService) Set(key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: append([]byte(nil), value...)}
	if expiration > 0 {
		e.expires = m.now().Add(expiration)
	}
	m.entries[key] = e
	return nil
}

func (m *MemoryService) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
