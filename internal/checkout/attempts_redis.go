package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	attemptKeyPrefix = "checkout:attempt:"
	attemptTTL       = 30 * time.Minute
)

// RedisAttemptStore keeps attempts in Redis so they survive process restarts
// and work across instances. Values expire with the TTL; an expired attempt
// simply trips the missing-context guards on the payment pages.
type RedisAttemptStore struct {
	client *redis.Client
}

func NewRedisAttemptStore(client *redis.Client) *RedisAttemptStore {
	return &RedisAttemptStore{client: client}
}

func (s *RedisAttemptStore) Save(ctx context.Context, attempt *Attempt) error {
	payload, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("encode attempt: %w", err)
	}
	return s.client.Set(ctx, attemptKeyPrefix+attempt.ID, payload, attemptTTL).Err()
}

func (s *RedisAttemptStore) Get(ctx context.Context, id string) (*Attempt, error) {
	payload, err := s.client.Get(ctx, attemptKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}

	var attempt Attempt
	if err := json.Unmarshal(payload, &attempt); err != nil {
		return nil, fmt.Errorf("decode attempt: %w", err)
	}
	return &attempt, nil
}
