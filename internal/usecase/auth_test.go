package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"taskhub/internal/domain"
	"taskhub/internal/usecase"
)

// ---- fakes ----

type fakeUserRepo struct {
	create      func(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	findByEmail func(ctx context.Context, email string) (*domain.User, error)
	findByID    func(ctx context.Context, id string) (*domain.User, error)
}

func (r *fakeUserRepo) Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	return r.create(ctx, name, email, passwordHash)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

func (r *fakeUserRepo) ListAll(ctx context.Context) ([]*domain.User, error) {
	return nil, nil
}

type fakeHasher struct {
	hash   func(plaintext string) (string, error)
	verify func(plaintext, digest string) bool
}

func (h *fakeHasher) Hash(plaintext string) (string, error) { return h.hash(plaintext) }
func (h *fakeHasher) Verify(plaintext, digest string) bool  { return h.verify(plaintext, digest) }

type fakeIssuer struct {
	issue func(userID string) (string, error)
}

func (i *fakeIssuer) Issue(userID string) (string, error) { return i.issue(userID) }

type fakeSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}

// ---- helpers ----

var testUser = &domain.User{ID: "user-1", Name: "Ann", Email: "ann@x.com", PasswordHash: "digest"}

func okHasher() *fakeHasher {
	return &fakeHasher{
		hash:   func(string) (string, error) { return "digest", nil },
		verify: func(_, _ string) bool { return true },
	}
}

func okIssuer() *fakeIssuer {
	return &fakeIssuer{issue: func(string) (string, error) { return "signed-token", nil }}
}

func okSender() *fakeSender {
	return &fakeSender{send: func(context.Context, string, string, string) error { return nil }}
}

func newAuthUsecase(repo *fakeUserRepo, h *fakeHasher, i *fakeIssuer, s *fakeSender) *usecase.AuthUsecase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return usecase.NewAuthUsecase(repo, h, i, s, logger)
}

// ---- Register ----

func TestRegister_ReturnsToken(t *testing.T) {
	repo := &fakeUserRepo{
		create: func(_ context.Context, name, email, passwordHash string) (*domain.User, error) {
			if passwordHash != "digest" {
				t.Errorf("stored hash = %q, want the hasher output", passwordHash)
			}
			return testUser, nil
		},
	}

	token, err := newAuthUsecase(repo, okHasher(), okIssuer(), okSender()).
		Register(context.Background(), "Ann", "ann@x.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "signed-token" {
		t.Errorf("token = %q, want %q", token, "signed-token")
	}
}

func TestRegister_DuplicateEmail_ReturnsErrUserExists(t *testing.T) {
	repo := &fakeUserRepo{
		create: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}

	_, err := newAuthUsecase(repo, okHasher(), okIssuer(), okSender()).
		Register(context.Background(), "Ann", "ann@x.com", "secret1")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("want ErrUserExists, got %v", err)
	}
}

func TestRegister_HashFailure_IsFatal(t *testing.T) {
	hashErr := errors.New("bcrypt exploded")
	h := &fakeHasher{hash: func(string) (string, error) { return "", hashErr }}
	repo := &fakeUserRepo{
		create: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			t.Fatal("user must not be created when hashing fails")
			return nil, nil
		},
	}

	_, err := newAuthUsecase(repo, h, okIssuer(), okSender()).
		Register(context.Background(), "Ann", "ann@x.com", "secret1")
	if !errors.Is(err, hashErr) {
		t.Errorf("want wrapped hash error, got %v", err)
	}
}

func TestRegister_WelcomeEmailFailure_DoesNotFailRegistration(t *testing.T) {
	repo := &fakeUserRepo{
		create: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			return testUser, nil
		},
	}
	sender := &fakeSender{
		send: func(context.Context, string, string, string) error {
			return errors.New("smtp unavailable")
		},
	}

	token, err := newAuthUsecase(repo, okHasher(), okIssuer(), sender).
		Register(context.Background(), "Ann", "ann@x.com", "secret1")
	if err != nil {
		t.Fatalf("registration failed on email error: %v", err)
	}
	if token == "" {
		t.Error("no token issued")
	}
}

// ---- Login ----

func TestLogin_ReturnsToken(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, email string) (*domain.User, error) {
			return testUser, nil
		},
	}
	h := &fakeHasher{verify: func(plaintext, digest string) bool {
		return plaintext == "secret1" && digest == testUser.PasswordHash
	}}

	token, err := newAuthUsecase(repo, h, okIssuer(), okSender()).
		Login(context.Background(), "ann@x.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "signed-token" {
		t.Errorf("token = %q, want %q", token, "signed-token")
	}
}

func TestLogin_UnknownEmail_ReturnsErrInvalidCredentials(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	_, err := newAuthUsecase(repo, okHasher(), okIssuer(), okSender()).
		Login(context.Background(), "nobody@x.com", "secret1")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_WrongPassword_ReturnsErrInvalidCredentials(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return testUser, nil
		},
	}
	h := &fakeHasher{verify: func(_, _ string) bool { return false }}
	issuer := &fakeIssuer{issue: func(string) (string, error) {
		t.Fatal("no token may be issued for a wrong password")
		return "", nil
	}}

	_, err := newAuthUsecase(repo, h, issuer, okSender()).
		Login(context.Background(), "ann@x.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_StoreError_Propagates(t *testing.T) {
	storeErr := errors.New("db down")
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, storeErr
		},
	}

	_, err := newAuthUsecase(repo, okHasher(), okIssuer(), okSender()).
		Login(context.Background(), "ann@x.com", "secret1")
	if !errors.Is(err, storeErr) {
		t.Errorf("want wrapped store error, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Error("store errors must not masquerade as bad credentials")
	}
}
