package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "user:session:"
	scanBatch        = 200
)

// SessionKey is the hash key holding a logged-in user's session.
func SessionKey(userID string) string {
	return sessionKeyPrefix + userID
}

// SessionStore manages cached user sessions in Redis.
type SessionStore struct {
	rdb redis.Cmdable
}

func NewSessionStore(rdb redis.Cmdable) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// PurgeAll drops every cached session and returns how many keys were removed.
// Sessions outlive the users they point at once the users table is wiped.
// Keys are collected before deleting so the SCAN cursor never skips any.
func (s *SessionStore) PurgeAll(ctx context.Context) (int64, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, sessionKeyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}

	var purged int64
	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		n, err := s.rdb.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return purged, err
		}
		purged += n
	}
	return purged, nil
}
