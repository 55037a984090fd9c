package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	pkgAuth "github.com/caribvital/seamoss-backend/pkg/auth"
	"github.com/caribvital/seamoss-backend/pkg/config"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

func testMiddlewareLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func testMiddlewareJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "caribvital"}
}

func mintToken(t *testing.T, cfg config.JWTConfig, userID string, admin bool) string {
	t.Helper()

	claims := &pkgAuth.SessionClaims{
		UserID: userID,
		Admin:  admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestAuthSeedsContext(t *testing.T) {
	t.Parallel()

	cfg := testMiddlewareJWT()
	var gotUser string
	var gotAdmin bool
	handler := Auth(cfg, testMiddlewareLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotAdmin = IsAdminFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, "user-1", true))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if gotUser != "user-1" || !gotAdmin {
		t.Fatalf("context not seeded: user=%q admin=%v", gotUser, gotAdmin)
	}
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	t.Parallel()

	cfg := testMiddlewareJWT()
	handler := Auth(cfg, testMiddlewareLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: unexpected status %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: unexpected status %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	cfg := testMiddlewareJWT()
	chain := Auth(cfg, testMiddlewareLogger())(
		RequireAdmin(testMiddlewareLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, "user-1", false))
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin: unexpected status %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, "user-1", true))
	rec = httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("admin: unexpected status %d", rec.Code)
	}
}

func TestCartSessionRequiresHeader(t *testing.T) {
	t.Parallel()

	handler := CartSession(testMiddlewareLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CartSessionFromContext(r.Context()) != "sess-1" {
			t.Fatal("session not seeded")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing header: unexpected status %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Cart-Session", "sess-1")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("with header: unexpected status %d", rec.Code)
	}
}
