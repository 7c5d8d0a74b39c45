package recency

import (
	"context"
	"sync"

	pkgredis "github.com/angelmondragon/packfinderz-storefront/pkg/redis"
)

// Slot is one named key of durable client storage holding a serialized
// payload. An absent key reads as ("", false, nil).
type Slot interface {
	Read(ctx context.Context) (payload string, found bool, err error)
	Write(ctx context.Context, payload string) error
}

// MemorySlot keeps the payload in process memory. It is the fallback when no
// durable backend is configured and the workhorse slot in tests; recency then
// simply does not survive a restart.
type MemorySlot struct {
	mu      sync.Mutex
	payload string
	set     bool
}

func (s *MemorySlot) Read(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payload, s.set, nil
}

func (s *MemorySlot) Write(ctx context.Context, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = payload
	s.set = true
	return nil
}

// RedisSlot persists the payload under a namespaced Redis key. Writes are
// plain read-modify-write with no cross-process locking: two storefront
// shells racing on the same slot end up last-writer-wins, which is accepted
// for a convenience feature like recent searches.
type RedisSlot struct {
	client *pkgredis.Client
	name   string
}

// NewRedisSlot binds a slot name to the shared Redis client.
func NewRedisSlot(client *pkgredis.Client, name string) *RedisSlot {
	return &RedisSlot{client: client, name: name}
}

func (s *RedisSlot) Read(ctx context.Context) (string, bool, error) {
	return s.client.ReadSlot(ctx, s.name)
}

func (s *RedisSlot) Write(ctx context.Context, payload string) error {
	return s.client.WriteSlot(ctx, s.name, payload)
}
