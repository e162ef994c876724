package ports

import (
	"context"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
)

// CreateUserInput carries the parameters of POST /users.
type CreateUserInput struct {
	Name     string          `validate:"required"`
	Password domain.Password `validate:"password"`
}

// UpdateUserInput carries the parameters of PUT /users.
type UpdateUserInput struct {
	ID       string          `validate:"required"`
	Name     string          `validate:"required"`
	Password domain.Password `validate:"password"`
}

// DeleteUserInput carries the parameters of DELETE /users.
type DeleteUserInput struct {
	ID string `validate:"required"`
}

// UserService defines the use-case operations over the users collection.
type UserService interface {
	List(ctx context.Context) ([]domain.Projection, error)
	Create(ctx context.Context, input CreateUserInput) (domain.Projection, error)
	Update(ctx context.Context, input UpdateUserInput) (domain.Projection, error)
	Delete(ctx context.Context, input DeleteUserInput) (domain.Projection, error)
}
