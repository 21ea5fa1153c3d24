package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	token   string
	expires time.Time
}

// MemoryStore is the production Store: a mutex-guarded map from email to the
// single live token. Stale entries are overwritten on the next Issue, so
// memory stays bounded by the number of identities that ever logged in.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]entry
	ttl    time.Duration
	now    func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]entry),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *MemoryStore) Issue(email string) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[email] = entry{token: token, expires: s.now().Add(s.ttl)}

	return token
}

func (s *MemoryStore) Validate(email string, token string) bool {
	s.mu.RLock()
	e, ok := s.tokens[email]
	s.mu.RUnlock()

	if !ok || e.token != token {
		return false
	}
	return s.now().Before(e.expires)
}
