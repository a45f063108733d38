package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeTTL is how long a verification code stays valid. Expiry is enforced by
// the store itself, not by application polling.
const CodeTTL = 300 * time.Second

// ErrCodeNotFound is returned when no code is on record for an email, either
// because it expired or because none was ever issued.
var ErrCodeNotFound = errors.New("verification code expired or not found")

// Store holds pending verification codes keyed by email. Codes are single
// use: a successful verification deletes the entry.
type Store interface {
	Set(ctx context.Context, email, code string) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

// GenerateCode returns a 6-digit numeric code from crypto/rand.
func GenerateCode() string {
	code := ""
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			code += "0"
			continue
		}
		code += n.String()
	}
	return code
}

// RedisStore keeps codes in Redis with a per-key TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(email string) string { return "otp:" + email }

func (s *RedisStore) Set(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, key(email), code, CodeTTL).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	return code, err
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, key(email)).Err()
}
