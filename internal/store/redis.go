package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/staff-roster/internal/domain"
)

// redisStore keeps the whole roster as a single JSON snapshot under one
// key, mirroring the blob-style load/save contract of the storage
// collaborator.
type redisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore instantiates the Redis snapshot driver.
func NewRedisStore(client *redis.Client, key string) RosterStore {
	if key == "" {
		key = "staff:roster"
	}
	return &redisStore{client: client, key: key}
}

func (s *redisStore) Load(ctx context.Context) ([]*domain.StaffMember, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var roster []*domain.StaffMember
	if err := json.Unmarshal(payload, &roster); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for _, member := range roster {
		if member == nil || member.ID == "" {
			return nil, fmt.Errorf("%w: entry without id", ErrMalformed)
		}
	}
	if roster == nil {
		return nil, ErrNotFound
	}
	return roster, nil
}

func (s *redisStore) Save(ctx context.Context, roster []*domain.StaffMember) error {
	payload, err := json.Marshal(roster)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, payload, 0).Err()
}
