package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vitalrec/health-api/internal/repository"
)

// tokenRepository keeps issued refresh tokens in Redis, keyed by user, so a
// logout revokes every outstanding session for that account at once.
type tokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(url string) (repository.TokenRepository, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &tokenRepository{client: client}, nil
}

func tokenKey(userID uuid.UUID) string {
	return "refresh_token:" + userID.String()
}

func (r *tokenRepository) Save(ctx context.Context, userID uuid.UUID, token string, expiry time.Duration) error {
	if err := r.client.Set(ctx, tokenKey(userID), token, expiry).Err(); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (r *tokenRepository) IsValid(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	stored, err := r.client.Get(ctx, tokenKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	return stored == token, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, userID uuid.UUID) error {
	if err := r.client.Del(ctx, tokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
