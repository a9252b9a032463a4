package auth

import (
	"testing"
	"time"

	"github.com/subediaakash/zomato-mcp/internal/config"
)

func TestNewTokenStrategy(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{JWTSecret: "top-secret"}})
	jwtStrategy, ok := strategy.(*JWTStrategy)
	if !ok {
		t.Fatalf("expected *JWTStrategy, got %T", strategy)
	}
	if string(jwtStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(jwtStrategy.secret))
	}
	if jwtStrategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", jwtStrategy.ttl)
	}
	if strategy.Name() != "jwt" {
		t.Fatalf("unexpected name: %q", strategy.Name())
	}
}
