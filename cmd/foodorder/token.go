package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	pkgAuth "github.com/subediaakash/zomato-mcp/internal/pkg/auth"
)

const defaultTokenSecret = "change-me-in-production"

// issueToken prints a signed bearer token for a user id. It is a local
// development aid; production identities come from the external provider.
func issueToken(args []string, lookup func(string) (string, bool), out io.Writer) error {
	flags := flag.NewFlagSet("token", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	secret := defaultTokenSecret
	if v, ok := lookup("JWT_SECRET"); ok && v != "" {
		secret = v
	}
	userID := flags.String("user", "", "user id placed in the sub claim")
	ttl := flags.Duration("ttl", 24*time.Hour, "token lifetime")
	flags.StringVar(&secret, "jwt-secret", secret, "signing secret")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *userID == "" && flags.NArg() > 0 {
		*userID = flags.Arg(0)
	}
	if *userID == "" {
		return errors.New("user id is required")
	}

	token, err := pkgAuth.NewJWTStrategy(secret, pkgAuth.Options{TTL: *ttl}).IssueToken(*userID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
