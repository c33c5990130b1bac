package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/csdwebpro/notesphp/internal/cache"
)

const refreshTokenKeyPrefix = "refresh_token:"

// SessionData is the identity snapshot stored alongside a refresh token.
type SessionData struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenStoreInterface defines the interface for refresh token storage.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, session SessionData, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (SessionData, error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore handles storage and retrieval of refresh tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token session in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, session SessionData, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}
	return s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl)
}

// GetRefreshToken retrieves refresh token session data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (SessionData, error) {
	data, err := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil || data == nil {
		return SessionData{}, fmt.Errorf("refresh token not found")
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return SessionData{}, fmt.Errorf("unmarshal session data: %w", err)
	}
	return session, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}
