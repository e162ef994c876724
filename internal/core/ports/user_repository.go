package ports

import (
	"context"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
)

// UserRepository is the storage adapter for the users collection.
// Implementations assign IDs on insert and return domain.ErrUserNotFound
// from UpdateByID and RemoveByID when no record has the given id.
type UserRepository interface {
	Find(ctx context.Context) ([]*domain.UserRecord, error)
	Insert(ctx context.Context, rec *domain.UserRecord) (*domain.UserRecord, error)
	InsertMany(ctx context.Context, recs []*domain.UserRecord) ([]*domain.UserRecord, error)
	// UpdateByID overwrites name and password and returns the record after the update.
	UpdateByID(ctx context.Context, id string, patch UserPatch) (*domain.UserRecord, error)
	// RemoveByID deletes the record and returns it as it was before removal.
	RemoveByID(ctx context.Context, id string) (*domain.UserRecord, error)
	Count(ctx context.Context) (int64, error)
}

// UserPatch is the set of fields replaced by an update.
type UserPatch struct {
	Name     string
	Password domain.Password
}
