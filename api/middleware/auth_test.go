package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/teastore-backend/pkg/auth"
	"github.com/angelmondragon/teastore-backend/pkg/auth/session"
	"github.com/angelmondragon/teastore-backend/pkg/config"
)

const testCookie = "teastore_session"

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}

func authProbe(captured *struct{ user, access string }) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.user = UserIDFromContext(r.Context())
		captured.access = AccessIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	var captured struct{ user, access string }
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, testCookie, nil)(authProbe(&captured))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	var captured struct{ user, access string }
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, testCookie, nil)(authProbe(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthAllowsBearerToken(t *testing.T) {
	userID := uuid.New()
	token, jti := mintTestToken(t, userID)

	var captured struct{ user, access string }
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, testCookie, nil)(authProbe(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.user != userID.String() {
		t.Fatalf("expected user %s got %s", userID, captured.user)
	}
	if captured.access != jti {
		t.Fatalf("expected access id %s got %s", jti, captured.access)
	}
}

func TestAuthAllowsSessionCookie(t *testing.T) {
	userID := uuid.New()
	token, _ := mintTestToken(t, userID)

	var captured struct{ user, access string }
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, testCookie, nil)(authProbe(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.user != userID.String() {
		t.Fatalf("expected user from cookie, got %q", captured.user)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	token, _ := mintTestToken(t, uuid.New())
	var captured struct{ user, access string }
	handler := Auth(testJWT, stubSessionVerifier{ok: false}, testCookie, nil)(authProbe(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSessionStoreFailureIsDependencyError(t *testing.T) {
	token, _ := mintTestToken(t, uuid.New())
	var captured struct{ user, access string }
	handler := Auth(testJWT, stubSessionVerifier{err: errors.New("redis down")}, testCookie, nil)(authProbe(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestTokenFromRequestPrefersHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer header-token")
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "cookie-token"})
	if got := TokenFromRequest(req, testCookie); got != "header-token" {
		t.Fatalf("expected header token, got %q", got)
	}
	if got := TokenFromRequest(httptest.NewRequest(http.MethodGet, "/", nil), ""); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}

func mintTestToken(t *testing.T, userID uuid.UUID) (string, string) {
	t.Helper()
	jti := session.NewAccessID()
	token, err := auth.MintAccessToken(testJWT, time.Now(), auth.AccessTokenPayload{
		UserID:   userID,
		Username: "tester",
		JTI:      jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token, jti
}

type stubSessionVerifier struct {
	ok  bool
	err error
}

func (s stubSessionVerifier) HasSession(ctx context.Context, accessID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.ok, nil
}
