package ports

import (
	"context"

	"github.com/votehub/api/internal/core/domain"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login validates credentials and returns a signed access token and
	// the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
