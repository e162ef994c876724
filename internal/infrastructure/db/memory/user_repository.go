// Package memory is the in-process storage adapter used when no MongoDB URI
// is configured. Records are kept in insertion order.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
	"github.com/SinghShreyansh/users-service/internal/core/ports"
)

type UserRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*domain.UserRecord
	now   func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID: make(map[string]*domain.UserRecord),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *UserRepository) Find(_ context.Context) ([]*domain.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.UserRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clone(r.byID[id]))
	}
	return out, nil
}

func (r *UserRepository) Insert(_ context.Context, rec *domain.UserRecord) (*domain.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return clone(r.insertLocked(rec)), nil
}

func (r *UserRepository) InsertMany(_ context.Context, recs []*domain.UserRecord) ([]*domain.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.UserRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, clone(r.insertLocked(rec)))
	}
	return out, nil
}

func (r *UserRepository) UpdateByID(_ context.Context, id string, patch ports.UserPatch) (*domain.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	rec.Name = patch.Name
	rec.Password = patch.Password
	rec.UpdatedAt = r.now()
	return clone(rec), nil
}

func (r *UserRepository) RemoveByID(_ context.Context, id string) (*domain.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return rec, nil
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.order)), nil
}

// insertLocked stores a copy of rec under a fresh id. Caller holds mu.
func (r *UserRepository) insertLocked(rec *domain.UserRecord) *domain.UserRecord {
	stored := clone(rec)
	stored.ID = uuid.NewString()
	now := r.now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return stored
}

func clone(rec *domain.UserRecord) *domain.UserRecord {
	c := *rec
	c.Extra = maps.Clone(rec.Extra)
	return &c
}
