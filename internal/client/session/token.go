package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo describes the stored bearer token. The remote service may hand
// out JWTs or opaque strings; only the former carry claims.
type TokenInfo struct {
	Present   bool
	Opaque    bool
	Subject   string
	ExpiresAt *time.Time
}

// Expired reports whether the token carries an expiry that is before now.
func (t TokenInfo) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(now)
}

// inspectToken decodes JWT claims without verifying the signature: the client
// never holds the service key and uses the claims for display only.
func inspectToken(token string) TokenInfo {
	if token == "" {
		return TokenInfo{}
	}

	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return TokenInfo{Present: true, Opaque: true}
	}

	info := TokenInfo{Present: true, Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		info.ExpiresAt = &exp
	}
	return info
}
