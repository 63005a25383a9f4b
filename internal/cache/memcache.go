package cache

import "sync"

// Memcache keeps blobs in memory only. Used in tests and as the fallback
// when no durable cache is configured.
type Memcache struct {
	blobs sync.Map // string -> []byte
}

func NewMemcache() *Memcache {
	return &Memcache{}
}

func (m *Memcache) Load(key string) ([]byte, error) {
	val, ok := m.blobs.Load(key)
	if !ok {
		return nil, ErrNotFound
	}
	data := val.([]byte)
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memcache) Store(key string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	m.blobs.Store(key, stored)
	return nil
}

func (m *Memcache) Delete(key string) error {
	m.blobs.Delete(key)
	return nil
}

func (m *Memcache) Close() error {
	return nil
}
