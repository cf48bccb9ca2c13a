package sessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps each session as a hash under "<namespace>:<id>"
// holding email, name and the creation/expiry instants in unix millis. Redis
// drops the key at expiry.
type RedisRepository struct {
	client    *redis.Client
	namespace string
}

// NewRedisRepository namespaces keys by the session cookie name, so two sites
// sharing a Redis keep separate sessions.
func NewRedisRepository(client *redis.Client, cookieName string) *RedisRepository {
	if cookieName == "" {
		cookieName = "session_cookie"
	}
	return &RedisRepository{client: client, namespace: cookieName}
}

func (r *RedisRepository) key(id string) string {
	return r.namespace + ":" + id
}

func (r *RedisRepository) Create(ctx context.Context, s *Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	k := r.key(s.ID)
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, k,
			"email", s.Email,
			"name", s.Name,
			"created", s.CreatedAt.UnixMilli(),
			"expires", s.ExpiresAt.UnixMilli(),
		)
		p.PExpire(ctx, k, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis store session: %w", err)
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, id string) (*Session, error) {
	fields, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis load session: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	created, err1 := strconv.ParseInt(fields["created"], 10, 64)
	expires, err2 := strconv.ParseInt(fields["expires"], 10, 64)
	if err := errors.Join(err1, err2); err != nil {
		return nil, fmt.Errorf("redis session %s: %w", id, err)
	}
	s := &Session{
		ID:        id,
		Email:     fields["email"],
		Name:      fields["name"],
		CreatedAt: time.UnixMilli(created).UTC(),
		ExpiresAt: time.UnixMilli(expires).UTC(),
	}
	if s.Expired(time.Now().UTC()) {
		return nil, nil
	}
	return s, nil
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}
