package memory

import (
	"context"
	"fmt"
	"sync"
)

const (
	// DefaultMaxInMemory is the per-user cap on cached turns.
	DefaultMaxInMemory = 100

	// DefaultMaxLoad caps how much durable history is pulled into the cache
	// on the initial load. Must be >= the in-memory cap.
	DefaultMaxLoad = 200

	// reloadKeep is how many recent turns survive a ForceReload. Keeping a
	// short window avoids a context gap before the next load completes.
	reloadKeep = 20
)

// HistorySource is the durable conversation store the cache reconstructs
// itself from. Implementations must return messages in chronological order.
type HistorySource interface {
	FetchHistory(ctx context.Context, userID string) ([]Message, error)
}

// Store is a bounded, de-duplicated, per-user buffer of conversation turns,
// backed lazily by a durable history source. It is a pure reconstruction
// cache: evicting from it never deletes anything durable.
//
// Store is safe for concurrent use. Mutating operations for the same user
// are serialized on a per-user lock, so overlapping webhook deliveries
// cannot race the initial load or interleave appends out of order.
type Store struct {
	mu    sync.RWMutex
	users map[string]*userState

	maxInMemory int
	maxLoad     int
}

type userState struct {
	mu       sync.Mutex
	messages []Message
	loaded   bool
}

// NewStore creates a Store. Non-positive caps fall back to the defaults, and
// maxLoad is raised to maxInMemory when configured smaller.
func NewStore(maxInMemory, maxLoad int) *Store {
	if maxInMemory <= 0 {
		maxInMemory = DefaultMaxInMemory
	}
	if maxLoad <= 0 {
		maxLoad = DefaultMaxLoad
	}
	if maxLoad < maxInMemory {
		maxLoad = maxInMemory
	}
	return &Store{
		users:       make(map[string]*userState),
		maxInMemory: maxInMemory,
		maxLoad:     maxLoad,
	}
}

// InitUser ensures state exists for userID. Idempotent.
func (s *Store) InitUser(userID string) {
	s.state(userID)
}

// state returns the per-user state, allocating it on first reference.
func (s *Store) state(userID string) *userState {
	s.mu.RLock()
	st, ok := s.users[userID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.users[userID]; ok {
		return st
	}
	st = &userState{}
	s.users[userID] = st
	return st
}

// LoadHistory fetches the user's durable history into the cache, at most
// once per process lifetime. Subsequent calls are no-ops until ForceReload.
// Only the most recent maxLoad entries are kept. Fetch failures propagate
// and leave the loaded flag unset, so the next turn retries safely.
func (s *Store) LoadHistory(ctx context.Context, userID string, src HistorySource) error {
	st := s.state(userID)

	st.mu.Lock()
	defer st.mu.Unlock()

	// Double-checked under the per-user lock: a concurrent turn that lost
	// the race finds loaded already set and returns without a second fetch.
	if st.loaded {
		return nil
	}

	history, err := src.FetchHistory(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch history for %s: %w", userID, err)
	}

	if len(history) > s.maxLoad {
		history = history[len(history)-s.maxLoad:]
	}
	st.messages = append([]Message(nil), history...)
	st.loaded = true
	return nil
}

// Loaded reports whether the durable history has been fetched for userID.
func (s *Store) Loaded(userID string) bool {
	s.mu.RLock()
	st, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.loaded
}

// AddMessage appends a turn to the user's buffer. An append whose role and
// content both exactly match the current last entry is skipped, guarding
// against duplicate-save races between the upstream handler and the
// completion pipeline. Only an exact duplicate of the immediate predecessor
// is filtered; a duplicate separated by any other message is not caught.
// Once the buffer exceeds the in-memory cap, the oldest entries are evicted.
func (s *Store) AddMessage(userID string, role Role, content string) {
	st := s.state(userID)

	st.mu.Lock()
	defer st.mu.Unlock()

	if n := len(st.messages); n > 0 {
		last := st.messages[n-1]
		if last.Role == role && last.Content == content {
			return
		}
	}

	st.messages = append(st.messages, Message{Role: role, Content: content})
	if len(st.messages) > s.maxInMemory {
		st.messages = st.messages[len(st.messages)-s.maxInMemory:]
	}
}

// Messages returns a snapshot of the user's buffer in chronological order.
// Unknown users yield an empty slice. The returned slice is a copy; callers
// may not reach the cache's internal state through it.
func (s *Store) Messages(userID string) []Message {
	s.mu.RLock()
	st, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]Message(nil), st.messages...)
}

// ForceReload marks the user's history stale so the next LoadHistory
// re-fetches, truncating the buffer to the most recent turns as an immediate
// stopgap rather than clearing it entirely.
func (s *Store) ForceReload(userID string) {
	st := s.state(userID)

	st.mu.Lock()
	defer st.mu.Unlock()

	st.loaded = false
	if len(st.messages) > reloadKeep {
		st.messages = st.messages[len(st.messages)-reloadKeep:]
	}
}
