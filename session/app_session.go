package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps login sessions in redis, with a per-reader set so every
// session of one reader can be revoked at once.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

type Session struct {
	ReaderID  string `json:"rid"`
	IsStaff   bool   `json:"staff"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

func key(id string) string           { return fmt.Sprintf("lib:sess:%s", id) }
func readerSetKey(rid string) string { return fmt.Sprintf("lib:reader_sessions:%s", rid) }

func (s *Store) Create(ctx context.Context, id, readerID string, isStaff bool) error {
	now := time.Now()
	b, _ := json.Marshal(Session{
		ReaderID:  readerID,
		IsStaff:   isStaff,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	})
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(id), b, s.ttl)
	pipe.SAdd(ctx, readerSetKey(readerID), id)
	pipe.Expire(ctx, readerSetKey(readerID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	sess, _ := s.Get(ctx, id)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(id))
	if sess != nil {
		pipe.SRem(ctx, readerSetKey(sess.ReaderID), id)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeAllForReader drops every session of one reader.
func (s *Store) RevokeAllForReader(ctx context.Context, readerID string) error {
	ids, err := s.rdb.SMembers(ctx, readerSetKey(readerID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, sid := range ids {
		pipe.Del(ctx, key(sid))
	}
	pipe.Del(ctx, readerSetKey(readerID))
	_, err = pipe.Exec(ctx)
	return err
}
