package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/campus-scheduler/internal/persistence"
)

func authServiceFixture(users *userRepoStub, sessions *sessionRepoStub, now time.Time) *AuthService {
	verify := func(hash, password string) error {
		if hash == "hashed:"+password {
			return nil
		}
		return ErrInvalidCredentials
	}
	tokens := 0
	tokenGenerator := func() string {
		tokens++
		switch tokens {
		case 1:
			return "session-1"
		default:
			return "token-1"
		}
	}
	return NewAuthService(users, sessions, verify, tokenGenerator, fixedClock(now), time.Hour, nil)
}

func TestAuthService_Authenticate(t *testing.T) {
	now := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	account := persistence.User{
		ID:           "user-7",
		Username:     "budi",
		FullName:     "Budi Santoso",
		PasswordHash: "hashed:rahasia-besar",
	}

	t.Run("issues a session for valid credentials", func(t *testing.T) {
		sessions := newSessionRepoStub()
		svc := authServiceFixture(newUserRepoStub(account), sessions, now)

		result, err := svc.Authenticate(context.Background(), AuthenticateParams{
			Username: "  Budi ",
			Password: "rahasia-besar",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if result.User.ID != "user-7" {
			t.Fatalf("unexpected user: %+v", result.User)
		}
		if result.Session.Token != "token-1" {
			t.Fatalf("unexpected token: %q", result.Session.Token)
		}
		if !result.Session.ExpiresAt.Equal(now.Add(time.Hour)) {
			t.Fatalf("unexpected expiry: %v", result.Session.ExpiresAt)
		}
		if _, ok := sessions.sessions["token-1"]; !ok {
			t.Fatal("expected session persisted")
		}
	})

	t.Run("rejects wrong passwords", func(t *testing.T) {
		svc := authServiceFixture(newUserRepoStub(account), newSessionRepoStub(), now)

		_, err := svc.Authenticate(context.Background(), AuthenticateParams{
			Username: "budi",
			Password: "salah",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects unknown usernames without leaking existence", func(t *testing.T) {
		svc := authServiceFixture(newUserRepoStub(), newSessionRepoStub(), now)

		_, err := svc.Authenticate(context.Background(), AuthenticateParams{
			Username: "ghost",
			Password: "rahasia-besar",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("prunes expired sessions on login", func(t *testing.T) {
		sessions := newSessionRepoStub(persistence.Session{
			ID: "old", Token: "stale", UserID: "user-7",
			ExpiresAt: now.Add(-time.Minute),
		})
		svc := authServiceFixture(newUserRepoStub(account), sessions, now)

		if _, err := svc.Authenticate(context.Background(), AuthenticateParams{
			Username: "budi",
			Password: "rahasia-besar",
		}); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if _, ok := sessions.sessions["stale"]; ok {
			t.Fatal("expected stale session pruned")
		}
	})
}

func TestAuthService_ValidateSession(t *testing.T) {
	now := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	account := persistence.User{ID: "user-7", Username: "budi", IsAdmin: true}

	t.Run("returns the principal for an active session", func(t *testing.T) {
		sessions := newSessionRepoStub(persistence.Session{
			ID: "sess-1", Token: "token-1", UserID: "user-7",
			ExpiresAt: now.Add(time.Hour),
		})
		svc := authServiceFixture(newUserRepoStub(account), sessions, now)

		principal, err := svc.ValidateSession(context.Background(), "token-1")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if principal.UserID != "user-7" || !principal.IsAdmin {
			t.Fatalf("unexpected principal: %+v", principal)
		}
	})

	t.Run("rejects expired sessions", func(t *testing.T) {
		sessions := newSessionRepoStub(persistence.Session{
			ID: "sess-1", Token: "token-1", UserID: "user-7",
			ExpiresAt: now.Add(-time.Minute),
		})
		svc := authServiceFixture(newUserRepoStub(account), sessions, now)

		_, err := svc.ValidateSession(context.Background(), "token-1")
		if !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
	})

	t.Run("rejects revoked sessions", func(t *testing.T) {
		revokedAt := now.Add(-time.Minute)
		sessions := newSessionRepoStub(persistence.Session{
			ID: "sess-1", Token: "token-1", UserID: "user-7",
			ExpiresAt: now.Add(time.Hour),
			RevokedAt: &revokedAt,
		})
		svc := authServiceFixture(newUserRepoStub(account), sessions, now)

		_, err := svc.ValidateSession(context.Background(), "token-1")
		if !errors.Is(err, ErrSessionRevoked) {
			t.Fatalf("expected ErrSessionRevoked, got %v", err)
		}
	})

	t.Run("rejects unknown tokens", func(t *testing.T) {
		svc := authServiceFixture(newUserRepoStub(account), newSessionRepoStub(), now)

		_, err := svc.ValidateSession(context.Background(), "ghost")
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestAuthService_RevokeSession(t *testing.T) {
	now := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	account := persistence.User{ID: "user-7", Username: "budi"}

	t.Run("marks the session revoked", func(t *testing.T) {
		sessions := newSessionRepoStub(persistence.Session{
			ID: "sess-1", Token: "token-1", UserID: "user-7",
			ExpiresAt: now.Add(time.Hour),
		})
		svc := authServiceFixture(newUserRepoStub(account), sessions, now)

		if err := svc.RevokeSession(context.Background(), "token-1"); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if sessions.sessions["token-1"].RevokedAt == nil {
			t.Fatal("expected revocation timestamp")
		}
	})

	t.Run("treats unknown tokens as invalid credentials", func(t *testing.T) {
		svc := authServiceFixture(newUserRepoStub(account), newSessionRepoStub(), now)

		err := svc.RevokeSession(context.Background(), "ghost")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
