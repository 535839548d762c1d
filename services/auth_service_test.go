package services

import (
	"context"
	"testing"
	"time"

	"pousada/constants"
	apperrors "pousada/errors"
)

func newTestAuth(t *testing.T, secret string) *AuthService {
	t.Helper()
	svc, err := NewAuthService(AuthServiceOptions{Secret: secret, Cache: NewMemoryCache()})
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return svc
}

func TestLoginAndVerify(t *testing.T) {
	svc := newTestAuth(t, "test-secret")

	user, token, err := svc.Login(" Gerente@Example.com ", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Role != constants.RoleManager || token == "" {
		t.Fatalf("user = %+v token = %q", user, token)
	}

	verified, err := svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verified.ID != user.ID || verified.Email != "gerente@example.com" {
		t.Errorf("verified = %+v, want %+v", verified, user)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuth(t, "test-secret")

	for _, c := range []struct{ email, password string }{
		{"admin@example.com", "wrong"},
		{"nobody@example.com", "password"},
	} {
		if _, _, err := svc.Login(c.email, c.password); !apperrors.HasCode(err, apperrors.ErrCodeInvalidPassword) {
			t.Errorf("Login(%s) err = %v, want INVALID_PASSWORD", c.email, err)
		}
	}
}

func TestVerifyRejectsForeignAndExpiredTokens(t *testing.T) {
	svc := newTestAuth(t, "test-secret")
	other := newTestAuth(t, "other-secret")
	ctx := context.Background()

	_, foreign, err := other.Login("admin@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Verify(ctx, foreign); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("foreign token: err = %v, want INVALID_TOKEN", err)
	}

	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	_, expired, err := svc.Login("admin@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Verify(ctx, expired); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expired token: err = %v, want INVALID_TOKEN", err)
	}
	if _, err := svc.Verify(ctx, "not-a-token"); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("garbage: err = %v, want INVALID_TOKEN", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newTestAuth(t, "test-secret")
	ctx := context.Background()
	_, token, err := svc.Login("user@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Verify(ctx, token); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("err = %v, want INVALID_TOKEN after logout", err)
	}
	if err := svc.Logout(ctx, "garbage"); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("err = %v, want INVALID_TOKEN", err)
	}
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	if _, err := NewAuthService(AuthServiceOptions{}); err == nil {
		t.Fatal("expected an error without a secret")
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	if err := cache.Set(ctx, "k", map[string]int{"rooms": 3}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got map[string]int
	hit, err := cache.Get(ctx, "k", &got)
	if err != nil || !hit || got["rooms"] != 3 {
		t.Fatalf("get = %v %v %v", got, hit, err)
	}

	if err := cache.Set(ctx, "short", 1, time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(time.Millisecond)
	var n int
	if hit, _ := cache.Get(ctx, "short", &n); hit {
		t.Error("expired entry still served")
	}

	if err := cache.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if hit, _ := cache.Get(ctx, "k", &got); hit {
		t.Error("deleted entry still served")
	}

	if _, ok := NewCache(nil).(NopCache); !ok {
		t.Error("NewCache(nil) should fall back to NopCache")
	}
}
