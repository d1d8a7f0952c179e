package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"inkwell/api/internal/models"
	"inkwell/api/internal/repository"
	"inkwell/api/internal/security"
)

type stubUserFinder struct {
	users map[string]models.User
}

func (s *stubUserFinder) GetByID(_ context.Context, id string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func fixedClock(epoch int64) func() time.Time {
	return func() time.Time { return time.Unix(epoch, 0) }
}

func newTestSessions(users ...models.User) (*SessionService, *stubUserFinder) {
	finder := &stubUserFinder{users: map[string]models.User{}}
	for _, u := range users {
		finder.users[u.ID] = u
	}
	svc := NewSessionService(finder, "test-secret", 24*time.Hour, zerolog.Nop())
	return svc, finder
}

func TestIssueResolveRoundTrip(t *testing.T) {
	user := models.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "abc"}
	svc, _ := newTestSessions(user)
	svc.WithClock(fixedClock(1000))

	token := svc.Issue(user)

	resolved, ok := svc.Resolve(context.Background(), token)
	if !ok {
		t.Fatalf("expected token to resolve")
	}
	if resolved.ID != "u1" || resolved.Email != "alice@example.com" {
		t.Fatalf("unexpected identity: %+v", resolved)
	}
	if resolved.PasswordHash != models.RedactedDigest {
		t.Fatalf("digest not redacted: %q", resolved.PasswordHash)
	}
}

func TestResolveExpired(t *testing.T) {
	user := models.User{ID: "u1", PasswordHash: "abc"}
	svc, _ := newTestSessions(user)

	svc.WithClock(fixedClock(1000))
	token := svc.IssueWithTTL(user, 86400*time.Second)

	// One second past expiry.
	svc.WithClock(fixedClock(1000 + 86400 + 1))
	if _, ok := svc.Resolve(context.Background(), token); ok {
		t.Fatalf("expected expired token to resolve anonymous")
	}

	// At expiry boundary the token is still valid.
	svc.WithClock(fixedClock(1000 + 86400))
	if _, ok := svc.Resolve(context.Background(), token); !ok {
		t.Fatalf("expected token valid at expiry instant")
	}
}

func TestResolvePasswordChangeInvalidates(t *testing.T) {
	user := models.User{ID: "u1", PasswordHash: "abc"}
	svc, finder := newTestSessions(user)
	svc.WithClock(fixedClock(1000))

	token := svc.Issue(user)

	changed := user
	changed.PasswordHash = "different"
	finder.users["u1"] = changed

	if _, ok := svc.Resolve(context.Background(), token); ok {
		t.Fatalf("expected token signed with old digest to resolve anonymous")
	}
}

func TestResolveUnknownUser(t *testing.T) {
	user := models.User{ID: "ghost", PasswordHash: "abc"}
	svc, _ := newTestSessions() // finder knows nobody
	svc.WithClock(fixedClock(1000))

	if _, ok := svc.Resolve(context.Background(), svc.Issue(user)); ok {
		t.Fatalf("expected unknown user to resolve anonymous")
	}
}

func TestResolveMalformedNeverErrors(t *testing.T) {
	svc, _ := newTestSessions()
	svc.WithClock(fixedClock(1000))

	for _, token := range []string{
		"",
		"garbage",
		"a-b",
		"a-b-c-d",
		"u1-notanumber-ffff",
	} {
		if _, ok := svc.Resolve(context.Background(), token); ok {
			t.Fatalf("token %q unexpectedly resolved", token)
		}
	}
}

func TestResolveTamperedSignature(t *testing.T) {
	user := models.User{ID: "u1", PasswordHash: "abc"}
	svc, _ := newTestSessions(user)
	svc.WithClock(fixedClock(1000))

	expiresAt := time.Unix(1000, 0).Add(24 * time.Hour).Unix()
	forged := security.EncodeToken("u1", expiresAt, "0000000000000000000000000000000000000000000000000000000000000000")
	if _, ok := svc.Resolve(context.Background(), forged); ok {
		t.Fatalf("expected forged signature to resolve anonymous")
	}
}
