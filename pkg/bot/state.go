package bot

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Await identifies what kind of input the conversation expects next.
type Await int

const (
	// AwaitNone means no input is expected.
	AwaitNone Await = iota
	// AwaitAmount means the next plain-text message is read as an amount.
	AwaitAmount
	// AwaitCategory means a category button press completes the entry.
	AwaitCategory
)

// Entry is the in-progress transaction entry for one user. Only one entry per
// user is representable; a new amount overwrites any incomplete one.
type Entry struct {
	Await    Await
	Amount   decimal.Decimal
	Reversal bool

	updatedAt time.Time
}

// StateStore keeps per-user dialogue state in memory. Entries untouched for
// longer than the TTL are evicted on writes, so an abandoned flow cannot grow
// the table without bound.
type StateStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[int64]*Entry
}

// NewStateStore creates an empty store with the given eviction TTL.
func NewStateStore(ttl time.Duration) *StateStore {
	return &StateStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[int64]*Entry),
	}
}

// Get returns the entry for a user, if one exists.
func (s *StateStore) Get(userID int64) (*Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	return entry, ok
}

// Set stores the entry for a user, replacing any previous one, and evicts
// stale entries while it holds the lock.
func (s *StateStore) Set(userID int64, entry *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry.updatedAt = now
	s.entries[userID] = entry

	for id, e := range s.entries {
		if now.Sub(e.updatedAt) > s.ttl {
			delete(s.entries, id)
		}
	}
}

// Clear removes the entry for a user.
func (s *StateStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userID)
}
