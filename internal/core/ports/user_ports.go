package ports

import (
	"context"

	"github.com/votehub/api/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
