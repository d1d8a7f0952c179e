package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"inkwell/api/internal/models"
	"inkwell/api/internal/security"
)

// UserFinder is the lookup collaborator Resolve needs; satisfied by
// repository.UserRepository.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

// SessionService mints and validates stateless session tokens. No session
// record exists anywhere: validity is recomputed from the token itself,
// the user's current password digest and the server secret on every
// request.
type SessionService struct {
	users  UserFinder
	secret string
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

func NewSessionService(users UserFinder, secret string, ttl time.Duration, log zerolog.Logger) *SessionService {
	return &SessionService{
		users:  users,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
		log:    log,
	}
}

// WithClock overrides the time source. Test hook.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

// TTL is the configured token lifetime, exposed so handlers can align the
// cookie Max-Age with the token expiry.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Issue returns a signed token for the user, valid for the configured TTL.
// Pure function of its inputs and the current time.
func (s *SessionService) Issue(user models.User) string {
	return s.IssueWithTTL(user, s.ttl)
}

func (s *SessionService) IssueWithTTL(user models.User, ttl time.Duration) string {
	expiresAt := s.now().Add(ttl).Unix()
	signature := security.SignToken(s.secret, user.ID, user.PasswordHash, expiresAt)
	return security.EncodeToken(user.ID, expiresAt, signature)
}

// Resolve maps a transport string to the authenticated user. Every failure
// mode (malformed, expired, unknown user, bad signature) yields the
// anonymous result, never an error: an invalid cookie is equivalent to no
// cookie. On success the returned user has its digest redacted.
func (s *SessionService) Resolve(ctx context.Context, tokenStr string) (models.User, bool) {
	if tokenStr == "" {
		return models.User{}, false
	}

	tok, err := security.DecodeToken(tokenStr)
	if err != nil {
		s.log.Debug().Msg("session token malformed")
		return models.User{}, false
	}

	if tok.ExpiresAt < s.now().Unix() {
		s.log.Debug().Str("user_id", tok.UserID).Msg("session token expired")
		return models.User{}, false
	}

	user, err := s.users.GetByID(ctx, tok.UserID)
	if err != nil {
		s.log.Debug().Str("user_id", tok.UserID).Msg("session user not found")
		return models.User{}, false
	}

	expected := security.SignToken(s.secret, user.ID, user.PasswordHash, tok.ExpiresAt)
	if !security.VerifySignature(tok.Signature, expected) {
		s.log.Debug().Str("user_id", tok.UserID).Msg("session signature mismatch")
		return models.User{}, false
	}

	return user.Redacted(), true
}
