// Package auth issues and validates HMAC-signed JWT service tokens for
// machine-to-machine access to the gateway's REST API. There is no
// notion of interactive users here, only a caller identity (client_id)
// and a set of scopes it was issued.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by a gateway service token.
type Claims struct {
	jwt.RegisteredClaims

	// ClientID identifies the calling service or tool.
	ClientID string `json:"client_id"`

	// Scopes lists the operations this token authorizes, e.g.
	// "diagnostics:read", "diagnostics:write", "actuators:control".
	Scopes []string `json:"scopes,omitempty"`
}

// HasScope reports whether the token was issued the given scope.
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
