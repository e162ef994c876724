package projection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
)

func TestFieldProjector_DropsMetadata(t *testing.T) {
	rec := &domain.UserRecord{
		ID:        "65f1c2a4e4b0a1b2c3d4e5f6",
		Name:      "Shreyansh",
		Password:  domain.TextPassword("1234"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Extra:     map[string]any{"__v": 0, "role": "admin"},
	}

	got := NewFieldProjector().Project(context.Background(), rec, domain.PublicFields)

	assert.Equal(t, domain.Projection{
		"id":       "65f1c2a4e4b0a1b2c3d4e5f6",
		"name":     "Shreyansh",
		"password": "1234",
	}, got)
}

func TestFieldProjector_CustomAllowlist(t *testing.T) {
	rec := &domain.UserRecord{ID: "1", Name: "Rahul", Password: domain.IntegerPassword(123)}

	got := NewFieldProjector().Project(context.Background(), rec, []string{"name", "unknown"})

	assert.Equal(t, domain.Projection{"name": "Rahul"}, got)
}

func TestFieldProjector_ProjectMany(t *testing.T) {
	p := NewFieldProjector()
	recs := []*domain.UserRecord{
		{ID: "1", Name: "A", Password: domain.IntegerPassword(1)},
		nil,
		{ID: "2", Name: "B", Password: domain.NumberPassword(2.5)},
	}

	got := p.ProjectMany(context.Background(), recs, domain.PublicFields)

	assert.Len(t, got, 2)
	assert.Equal(t, "2", got[1].ID())
	assert.Equal(t, 2.5, got[1]["password"])

	empty := p.ProjectMany(context.Background(), nil, domain.PublicFields)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
