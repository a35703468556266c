package ports

import (
	"context"

	"github.com/staffboard/statusboard/internal/core/domain"
)

// AuthService covers the session lifecycle: account creation,
// credential verification, and token revocation on sign-out.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
}
