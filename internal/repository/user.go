package repository

import (
	"context"

	"taskhub/internal/domain"
)

type UserRepository interface {
	// Create returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListAll feeds the reminder digest; out of the request path.
	ListAll(ctx context.Context) ([]*domain.User, error)
}
