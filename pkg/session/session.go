package session

import (
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims mirrors the claims the marketplace backend mints. The
// storefront only reads them; it never verifies the signature because it does
// not hold the signing secret. The backend remains the authority on every
// call, this predicate just avoids firing mutations that are certain to 401.
type AccessTokenClaims struct {
	UserID        uuid.UUID  `json:"user_id"`
	ActiveStoreID *uuid.UUID `json:"active_store_id,omitempty"`
	Role          string     `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenSource yields the current access token, empty when signed out.
type TokenSource interface {
	AccessToken() string
}

// StaticToken is a TokenSource for a fixed token, mostly for tests and the
// shell's bootstrap path.
type StaticToken string

func (s StaticToken) AccessToken() string { return string(s) }

// Store is a mutable TokenSource the sign-in/sign-out flows update in place.
type Store struct {
	mu    sync.RWMutex
	token string
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

func (s *Store) Clear() {
	s.SetToken("")
}

// Checker implements the session predicate consulted before mutating calls.
type Checker struct {
	source TokenSource
	now    func() time.Time
	parser *jwt.Parser
}

// NewChecker builds a Checker over the given token source.
func NewChecker(source TokenSource) *Checker {
	return &Checker{
		source: source,
		now:    time.Now,
		parser: jwt.NewParser(),
	}
}

// IsAuthenticated reports whether a well-formed, unexpired access token is
// present. Malformed tokens count as signed out.
func (c *Checker) IsAuthenticated() bool {
	claims := c.Claims()
	if claims == nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.After(c.now())
}

// Claims returns the decoded claims of the current token, or nil when signed
// out or the token cannot be decoded.
func (c *Checker) Claims() *AccessTokenClaims {
	if c == nil || c.source == nil {
		return nil
	}
	raw := strings.TrimSpace(c.source.AccessToken())
	if raw == "" {
		return nil
	}
	claims := &AccessTokenClaims{}
	if _, _, err := c.parser.ParseUnverified(raw, claims); err != nil {
		return nil
	}
	return claims
}
