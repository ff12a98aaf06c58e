package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskhub/internal/domain"
	"taskhub/internal/email"
	"taskhub/internal/repository"
)

// hasher and tokenIssuer are the slices of internal/auth this usecase
// needs; narrow interfaces keep the fakes in tests small.
type hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type tokenIssuer interface {
	Issue(userID string) (string, error)
}

type AuthUsecase struct {
	users  repository.UserRepository
	hasher hasher
	tokens tokenIssuer
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, h hasher, tokens tokenIssuer, sender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: h,
		tokens: tokens,
		email:  sender,
		logger: logger.With("component", "auth_usecase"),
	}
}

// Register creates the user and returns a session token. A duplicate
// email surfaces as domain.ErrUserExists. The welcome email is best
// effort: a delivery failure never fails the registration.
func (u *AuthUsecase) Register(ctx context.Context, name, emailAddr, password string) (string, error) {
	passwordHash, err := u.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, name, emailAddr, passwordHash)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return "", domain.ErrUserExists
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	subject := "Welcome to TaskHub"
	body := fmt.Sprintf("<p>Hi %s, your account is ready. Start adding tasks!</p>", user.Name)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.WarnContext(ctx, "welcome email", "error", err)
	}

	return token, nil
}

// Login verifies the password and returns a session token. Unknown
// email and wrong password both map to domain.ErrInvalidCredentials so
// the response never reveals whether the account exists.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
