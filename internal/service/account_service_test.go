package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"inkwell/api/internal/models"
	"inkwell/api/internal/repository"
)

type stubUserStore struct {
	byEmail map[string]models.User
	created []models.User
}

func (s *stubUserStore) Create(_ context.Context, user models.User) error {
	if s.byEmail == nil {
		s.byEmail = map[string]models.User{}
	}
	s.byEmail[user.Email] = user
	s.created = append(s.created, user)
	return nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAccountService(&stubUserStore{}, nil, zerolog.Nop())
	ctx := context.Background()

	cases := map[string]RegisterInput{
		"blank name":     {Name: "   ", Email: "a@example.com", Password: "longenough"},
		"bad email":      {Name: "Alice", Email: "not-an-email", Password: "longenough"},
		"short password": {Name: "Alice", Email: "a@example.com", Password: "short"},
	}
	for name, input := range cases {
		var validation *ValidationError
		if _, err := svc.Register(ctx, input); !errors.As(err, &validation) {
			t.Fatalf("%s: expected ValidationError, got %v", name, err)
		}
	}
}

func TestRegisterAndLogin(t *testing.T) {
	store := &stubUserStore{}
	svc := NewAccountService(store, nil, zerolog.Nop())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Name: " Alice ", Email: "Alice@Example.COM", Password: "longenough"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.Name != "Alice" {
		t.Fatalf("name not trimmed: %q", user.Name)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "longenough" {
		t.Fatalf("password not hashed")
	}
	if !strings.Contains(user.ImageURL, "gravatar.com") {
		t.Fatalf("unexpected avatar url: %q", user.ImageURL)
	}
	if user.IsAdmin {
		t.Fatalf("new users must not be admin")
	}

	logged, err := svc.Login(ctx, "alice@example.com", "longenough")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("login returned wrong user")
	}

	if _, err := svc.Login(ctx, "alice@example.com", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "longenough"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := &stubUserStore{}
	svc := NewAccountService(store, nil, zerolog.Nop())
	ctx := context.Background()

	input := RegisterInput{Name: "Alice", Email: "a@example.com", Password: "longenough"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	if _, err := svc.Register(ctx, input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
