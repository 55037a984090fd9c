package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/caribvital/seamoss-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "caribvital"}
}

func signToken(t *testing.T, secret string, claims *SessionClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func baseClaims() *SessionClaims {
	return &SessionClaims{
		UserID: "user-1",
		Email:  "amara@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "caribvital",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestParseSessionTokenValid(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	claims := baseClaims()
	claims.Admin = true

	got, err := ParseSessionToken(cfg, signToken(t, cfg.Secret, claims))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "user-1" || !got.Admin {
		t.Fatalf("unexpected claims: %+v", got)
	}
}

func TestParseSessionTokenBadSignature(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	token := signToken(t, "some-other-secret", baseClaims())

	if _, err := ParseSessionToken(cfg, token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseSessionTokenWrongIssuer(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	claims := baseClaims()
	claims.Issuer = "someone-else"

	if _, err := ParseSessionToken(cfg, signToken(t, cfg.Secret, claims)); err == nil {
		t.Fatal("expected issuer error")
	}
}

func TestParseSessionTokenExpired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	claims := baseClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	if _, err := ParseSessionToken(cfg, signToken(t, cfg.Secret, claims)); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseSessionTokenSubjectFallback(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	claims := baseClaims()
	claims.UserID = ""
	claims.Subject = "subject-user"

	got, err := ParseSessionToken(cfg, signToken(t, cfg.Secret, claims))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "subject-user" {
		t.Fatalf("expected subject fallback, got %q", got.UserID)
	}
}

func TestParseSessionTokenMissingUser(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	claims := baseClaims()
	claims.UserID = ""

	if _, err := ParseSessionToken(cfg, signToken(t, cfg.Secret, claims)); err == nil {
		t.Fatal("expected error for token without a user id")
	}
}

func TestParseSessionTokenRejectsUnsignedAlg(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	token := jwt.NewWithClaims(jwt.SigningMethodNone, baseClaims())
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	if _, err := ParseSessionToken(cfg, raw); err == nil {
		t.Fatal("expected alg=none to be rejected")
	}
}
