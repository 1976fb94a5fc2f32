// ABOUTME: Local inspection of stored access tokens
// ABOUTME: Decodes JWT claims without verification for display purposes only

package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Info describes what a stored access token claims about itself.
// Claims are read without signature verification, so Info is suitable
// for display and hinting only; the server remains the authority on
// whether a token is actually accepted.
type Info struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Expired reports whether the token claims to be past its expiry.
// Tokens without an exp claim are never reported expired.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Inspect decodes the claims of a JWT without verifying its signature.
// It returns false for opaque or malformed tokens.
func Inspect(raw string) (Info, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return Info{}, false
	}

	var info Info
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	return info, true
}
