package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"cotillion/backend/internal/session"
)

const sessionKeyPrefix = "session:"

// LoadSession reads a session blob from Redis. Unknown or expired ids
// yield (nil, nil).
func (s *Service) LoadSession(id string) (*session.Session, error) {
	val, err := s.Redis.Get(s.Ctx, sessionKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess session.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// SaveSession writes a session blob to Redis with the idle TTL.
func (s *Service) SaveSession(sess *session.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.Redis.Set(s.Ctx, sessionKeyPrefix+sess.ID, data, ttl).Err()
}

// DeleteSession drops a session.
func (s *Service) DeleteSession(id string) error {
	return s.Redis.Del(s.Ctx, sessionKeyPrefix+id).Err()
}
