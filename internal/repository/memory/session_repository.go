package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/yamanekazuki/hr-qa-assistant/pkg/store"
)

// SessionRepository keeps one live QuerySession per user in memory. Sessions
// idle for an hour are purged; a purged session simply starts fresh on the
// next submit.
type SessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{cache: c}
}

// GetOrCreate returns the user's session, creating it on first use. The
// returned pointer stays valid for concurrent transitions; each call
// refreshes the TTL.
func (r *SessionRepository) GetOrCreate(userID string) *store.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(userID); found {
		sess := x.(*store.Session)
		r.cache.Set(userID, sess, cache.DefaultExpiration)
		return sess
	}
	sess := store.NewSession(userID)
	r.cache.Set(userID, sess, cache.DefaultExpiration)
	return sess
}

// Get returns the user's session if one exists.
func (r *SessionRepository) Get(userID string) (*store.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(userID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(userID)
}
