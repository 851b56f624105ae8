package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"shopx/internal/cache"
)

const blacklistKeyPrefix = "blacklist:token:"

// TokenStoreInterface defines the logout blacklist operations.
type TokenStoreInterface interface {
	BlacklistToken(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// TokenStore records logged-out bearer tokens in Redis until their natural
// expiry. Tokens are keyed by digest so the raw token never sits in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// BlacklistToken marks a token as logged out for the given TTL.
func (s *TokenStore) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = TokenExpiry
	}
	return s.cache.Set(ctx, blacklistKey(token), []byte("1"), ttl)
}

// IsBlacklisted reports whether a token was logged out. Redis errors read
// as "not blacklisted" (fail safe).
func (s *TokenStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	data, err := s.cache.Get(ctx, blacklistKey(token))
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistKeyPrefix + hex.EncodeToString(sum[:])
}
