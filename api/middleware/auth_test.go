package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/oyehq/oye-backend/pkg/auth"
	"github.com/oyehq/oye-backend/pkg/config"
)

type stubSessionChecker struct {
	active map[string]bool
	err    error
}

func (s *stubSessionChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.active[accessID], nil
}

func authTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-test-secret-test-secret",
		Issuer:            "oye-test",
		ExpirationMinutes: 15,
	}
}

func mintToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, jti string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthSeedsContextForValidToken(t *testing.T) {
	cfg := authTestConfig()
	userID := uuid.New()
	token := mintToken(t, cfg, userID, "session-1")
	checker := &stubSessionChecker{active: map[string]bool{"session-1": true}}

	var seenUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Auth(cfg, checker, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d (%s)", rec.Code, rec.Body.String())
	}
	if seenUser != userID.String() {
		t.Fatalf("expected user id in context, got %q", seenUser)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})
	Auth(authTestConfig(), &stubSessionChecker{}, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	cfg := authTestConfig()
	token := mintToken(t, cfg, uuid.New(), "stale-session")
	checker := &stubSessionChecker{active: map[string]bool{}}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})
	Auth(cfg, checker, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})
	Auth(authTestConfig(), &stubSessionChecker{}, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
