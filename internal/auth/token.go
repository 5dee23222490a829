package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// tokenBytes is the entropy of an issued token. 32 bytes = 256 bits, far
// beyond the point where collisions or guessing are a concern.
const tokenBytes = 32

// TokenService issues the opaque bearer tokens this API uses for sessions.
//
// WHY OPAQUE TOKENS INSTEAD OF JWT?
// The token is stored on the user row and looked up on every request, which
// buys instant revocation: logout (or a fresh login) overwrites the row and
// the old token stops working immediately. A JWT would save the lookup but
// can't be revoked without a denylist — at which point you're doing the
// lookup anyway. For a single-store app the opaque token is strictly simpler.
//
// The token itself carries no information. All meaning (owner, expiry) lives
// in the users table.
type TokenService struct {
	ttl time.Duration
}

// NewTokenService creates a TokenService issuing tokens valid for ttl.
// The window is configuration (TOKEN_TTL), not a constant — see cmd/server.
func NewTokenService(ttl time.Duration) (*TokenService, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("auth: token TTL must be positive, got %v", ttl)
	}
	return &TokenService{ttl: ttl}, nil
}

// Generate draws a fresh token from crypto/rand and returns it with its
// expiry instant. Uniqueness is probabilistic but overwhelming at 256 bits;
// the UNIQUE constraint on the token column is the backstop.
func (s *TokenService) Generate() (token string, expiresAt time.Time, err error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", time.Time{}, fmt.Errorf("auth: generating token: %w", err)
	}
	return hex.EncodeToString(b), time.Now().Add(s.ttl), nil
}

// TTL returns the configured validity window.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
