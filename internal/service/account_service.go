package service

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"inkwell/api/internal/ids"
	"inkwell/api/internal/models"
	"inkwell/api/internal/repository"
	"inkwell/api/internal/security"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// ValidationError names the offending field so handlers can return it.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s", e.Field)
}

var emailRe = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// UserStore is the persistence surface registration and login need;
// satisfied by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

type AccountService struct {
	users    UserStore
	throttle *LoginThrottle
	log      zerolog.Logger
}

func NewAccountService(users UserStore, throttle *LoginThrottle, log zerolog.Logger) *AccountService {
	return &AccountService{users: users, throttle: throttle, log: log}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *AccountService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if name == "" {
		return models.User{}, &ValidationError{Field: "name"}
	}
	if !emailRe.MatchString(email) {
		return models.User{}, &ValidationError{Field: "email"}
	}
	if len(input.Password) < 8 {
		return models.User{}, &ValidationError{Field: "password"}
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	digest, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		ImageURL:     gravatarURL(email),
		IsAdmin:      false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	if !s.throttle.Allow(ctx, email) {
		return models.User{}, ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = s.throttle.Fail(ctx, email)
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		_ = s.throttle.Fail(ctx, email)
		return models.User{}, ErrInvalidCredentials
	}

	_ = s.throttle.Reset(ctx, email)
	return user, nil
}

func gravatarURL(email string) string {
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=mm&s=120", md5.Sum([]byte(email)))
}
