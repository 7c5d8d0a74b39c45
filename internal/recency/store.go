package recency

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
)

// DefaultCap bounds the recent-search list.
const DefaultCap = 5

// DefaultSlotName is the storage slot key for recent searches.
const DefaultSlotName = "recentSearches"

// Store is the bounded, deduplicated, most-recent-first list of committed
// search terms. Storage failures never surface to the caller: a failed read
// acts like an empty list and a failed write keeps the in-memory state, since
// recency is a convenience, not a source of truth.
type Store struct {
	mu    sync.Mutex
	slot  Slot
	cap   int
	terms []string
	log   *logger.Logger
}

// NewStore builds a store over the given slot. A cap below one falls back to
// DefaultCap.
func NewStore(slot Slot, cap int, log *logger.Logger) *Store {
	if cap < 1 {
		cap = DefaultCap
	}
	return &Store{slot: slot, cap: cap, log: log}
}

// Load reads the persisted list once, typically at UI mount. Any read or
// decode failure degrades to an empty list.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.terms = nil
	payload, found, err := s.slot.Read(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Warn(ctx, "recent searches unavailable, starting empty")
		}
		return
	}
	if !found {
		return
	}

	var terms []string
	if err := json.Unmarshal([]byte(payload), &terms); err != nil {
		if s.log != nil {
			s.log.Warn(ctx, "recent searches corrupted, starting empty")
		}
		return
	}
	if len(terms) > s.cap {
		terms = terms[:s.cap]
	}
	s.terms = terms
}

// Push records a committed search term: exact-match dedup moves an existing
// term to the front, a new term evicts the least-recent past the cap. The
// updated list is persisted best-effort.
func (s *Store) Push(ctx context.Context, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	s.mu.Lock()
	next := make([]string, 0, s.cap)
	next = append(next, term)
	for _, existing := range s.terms {
		if existing == term {
			continue
		}
		if len(next) >= s.cap {
			break
		}
		next = append(next, existing)
	}
	s.terms = next
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// Remove drops a single term by exact match; absent terms are a no-op.
func (s *Store) Remove(ctx context.Context, term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.terms {
		if existing == term {
			s.terms = append(s.terms[:i:i], s.terms[i+1:]...)
			s.persistLocked(ctx)
			return
		}
	}
}

// Terms returns the list, most recent first.
func (s *Store) Terms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.terms...)
}

// Len reports the number of stored terms.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.terms)
}

func (s *Store) persistLocked(ctx context.Context) {
	payload, err := json.Marshal(s.terms)
	if err != nil {
		return
	}
	if err := s.slot.Write(ctx, string(payload)); err != nil && s.log != nil {
		s.log.Warn(ctx, "persisting recent searches failed")
	}
}
