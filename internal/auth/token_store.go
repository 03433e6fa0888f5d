package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recipehub/internal/cache"
)

const refreshTokenKeyPrefix = "refresh_token:"

// ErrTokenNotFound is returned when a refresh token is unknown or expired.
var ErrTokenNotFound = errors.New("refresh token not found")

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, userID int, username string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (userID int, username string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore keeps refresh tokens in Redis. Without Redis every lookup
// misses, so refresh is unavailable and login still works.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

type refreshRecord struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID int, username string, ttl time.Duration) error {
	payload, err := json.Marshal(refreshRecord{UserID: userID, Username: username})
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}
	return s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl)
}

// GetRefreshToken retrieves refresh token data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (int, string, error) {
	data, err := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil || data == nil {
		return 0, "", ErrTokenNotFound
	}

	var rec refreshRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, "", fmt.Errorf("unmarshal token data: %w", err)
	}
	return rec.UserID, rec.Username, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}
