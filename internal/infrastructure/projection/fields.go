// Package projection reduces stored records to an allowlisted field set.
package projection

import (
	"context"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
)

// FieldProjector keeps only allowlisted top-level fields of a record.
// Allowlisted fields the record does not carry are left out.
type FieldProjector struct{}

func NewFieldProjector() *FieldProjector {
	return &FieldProjector{}
}

func (FieldProjector) Project(_ context.Context, rec *domain.UserRecord, fields []string) domain.Projection {
	if rec == nil {
		return nil
	}
	doc := rec.Document()
	out := make(domain.Projection, len(fields))
	for _, f := range fields {
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	return out
}

func (p FieldProjector) ProjectMany(ctx context.Context, recs []*domain.UserRecord, fields []string) []domain.Projection {
	out := make([]domain.Projection, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		out = append(out, p.Project(ctx, rec, fields))
	}
	return out
}
