package auth

import (
	"context"
	"errors"
	"testing"

	"joblens/internal/domain/user"

	"github.com/google/uuid"
)

type memoryUserRepo struct {
	byID    map[uuid.UUID]user.User
	byEmail map[string]user.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		byID:    map[uuid.UUID]user.User{},
		byEmail: map[string]user.User{},
	}
}

func (m *memoryUserRepo) Create(_ context.Context, u user.User) error {
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memoryUserRepo) Update(_ context.Context, u user.User) error {
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memoryUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func TestRegister(t *testing.T) {
	svc := NewService(newMemoryUserRepo())

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Dev@Example.COM ",
		FullName: "Dev One",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "dev@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.FullName != "Dev One" {
		t.Fatalf("unexpected full name: %q", u.FullName)
	}
	if u.PasswordHash != "" {
		t.Fatalf("expected password hash stripped from result")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	in := RegisterInput{Email: "dev@example.com", Password: "supersecret"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := NewService(newMemoryUserRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "", Password: "supersecret"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "short"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "dev@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{Email: "DEV@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "dev@example.com" {
		t.Fatalf("unexpected email: %q", u.Email)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "dev@example.com", Password: "wrongpass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "supersecret"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
