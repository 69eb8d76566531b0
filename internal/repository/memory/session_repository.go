package memory

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Session is the in-memory record of an authenticated user. It tracks
// the last observed identity so callers can tell signed-in, signed-out
// and unknown apart.
type Session struct {
	UserId    uuid.UUID
	Email     string
	LoginAt   time.Time
	LastSeen  time.Time
	IpAddress string
	UserAgent string
}

type SessionRepository struct {
	cache *gocache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

func (r *SessionRepository) Put(session *Session) {
	session.LastSeen = time.Now()
	r.cache.Set(session.UserId.String(), session, gocache.DefaultExpiration)
}

func (r *SessionRepository) Get(userID uuid.UUID) (*Session, bool) {
	v, ok := r.cache.Get(userID.String())
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

// Touch refreshes the TTL of an active session.
func (r *SessionRepository) Touch(userID uuid.UUID) {
	if s, ok := r.Get(userID); ok {
		r.Put(s)
	}
}

func (r *SessionRepository) Delete(userID uuid.UUID) {
	r.cache.Delete(userID.String())
}
