package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisTokenRepository stores auth tokens in Redis. Two keys per user: a hash
// under the token key for lookups by bearer value, and a reverse mapping from
// user id to token key so a new login can revoke the previous session.
type RedisTokenRepository struct {
	client *redis.Client
}

// NewRedisTokenRepository creates a new instance of RedisTokenRepository.
func NewRedisTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{
		client: client,
	}
}

func tokenKey(key string) string {
	return fmt.Sprintf("auth_token:%s", key)
}

func userTokenKey(userID string) string {
	return fmt.Sprintf("user_token:%s", userID)
}

// Store replaces the user's current token with the given one.
func (r *RedisTokenRepository) Store(token *models.AuthToken) error {
	ctx := context.Background()

	oldKey, err := r.client.Get(ctx, userTokenKey(token.UserID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to look up previous token: %w", err)
	}

	pipe := r.client.TxPipeline()
	if oldKey != "" {
		pipe.Del(ctx, tokenKey(oldKey))
	}
	pipe.HSet(ctx, tokenKey(token.Key), map[string]any{
		"user_id":    token.UserID,
		"created_at": token.CreatedAt.Unix(),
	})
	pipe.Set(ctx, userTokenKey(token.UserID), token.Key, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// GetByKey retrieves a token by its key.
func (r *RedisTokenRepository) GetByKey(key string) (*models.AuthToken, error) {
	ctx := context.Background()

	fields, err := r.client.HGetAll(ctx, tokenKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	if len(fields) == 0 {
		return nil, apperrors.NotFound("token not found")
	}

	createdAt, _ := strconv.ParseInt(fields["created_at"], 10, 64)
	return &models.AuthToken{
		Key:       key,
		UserID:    fields["user_id"],
		CreatedAt: time.Unix(createdAt, 0),
	}, nil
}

// DeleteByKey revokes a single token.
func (r *RedisTokenRepository) DeleteByKey(key string) error {
	ctx := context.Background()

	userID, err := r.client.HGet(ctx, tokenKey(key), "user_id").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to look up token: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, tokenKey(key))
	pipe.Del(ctx, userTokenKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// DeleteByUser revokes whatever token the user currently holds.
func (r *RedisTokenRepository) DeleteByUser(userID string) error {
	ctx := context.Background()

	key, err := r.client.Get(ctx, userTokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to look up token for user %s: %w", userID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, tokenKey(key))
	pipe.Del(ctx, userTokenKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete token for user %s: %w", userID, err)
	}
	return nil
}
