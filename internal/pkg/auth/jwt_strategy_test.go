package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewJWTStrategy_Defaults(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
	if strategy.issuer != defaultIssuer {
		t.Fatalf("unexpected issuer: %q", strategy.issuer)
	}

	custom := NewJWTStrategy("secret", Options{TTL: 2 * time.Hour, Issuer: "tests"})
	if custom.ttl != 2*time.Hour || custom.issuer != "tests" {
		t.Fatalf("unexpected options: ttl=%s issuer=%q", custom.ttl, custom.issuer)
	}
}

func TestJWTStrategy_IssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken("user-42")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	userID, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if userID != "user-42" {
		t.Fatalf("unexpected user id: %q", userID)
	}
}

func TestJWTStrategy_IssueRequiresUser(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if _, err := strategy.IssueToken(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseRejects(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	valid, err := strategy.IssueToken("u1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	other, err := NewJWTStrategy("other-secret", Options{TTL: time.Minute}).IssueToken("u1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	foreignIssuer, err := NewJWTStrategy("secret", Options{TTL: time.Minute, Issuer: "someone-else"}).IssueToken("u1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	expired := NewJWTStrategy("secret", Options{TTL: time.Minute})
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	stale, err := expired.IssueToken("u1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    defaultIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  defaultIssuer,
		Subject: "u1",
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	tests := map[string]string{
		"garbage":        "not-a-token",
		"tampered":       valid + "x",
		"wrong secret":   other,
		"wrong issuer":   foreignIssuer,
		"expired":        stale,
		"missing sub":    noSubject,
		"missing expiry": noExpiry,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
