package ports

import (
	"context"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
)

// Projector reduces stored records to an allowlisted field set.
type Projector interface {
	Project(ctx context.Context, rec *domain.UserRecord, fields []string) domain.Projection
	ProjectMany(ctx context.Context, recs []*domain.UserRecord, fields []string) []domain.Projection
}
