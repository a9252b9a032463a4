package auth

import "time"

// Strategy issues and verifies bearer tokens carrying an opaque user id.
type Strategy interface {
	IssueToken(userID string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
}
