package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	redisconn "github.com/dmitrymomot/sportkit/pkg/redis"
)

// RedisStore implements Store on Redis. Each session is a JSON document under
// its own key, with an index set holding all ids for full-collection scans.
// Update uses WATCH/MULTI so the revision check and the write are one atomic
// unit; a concurrent writer aborts the transaction and surfaces
// ErrRevisionMismatch for the service to retry.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore creates a Redis-backed session store over an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: "sportkit:",
	}
}

// NewRedisStoreFromConfig connects to Redis, verifies connectivity, and
// returns a ready store.
func NewRedisStoreFromConfig(ctx context.Context, cfg redisconn.Config) (*RedisStore, error) {
	client, err := redisconn.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := redisconn.Healthcheck(client)(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisStore(client), nil
}

func (r *RedisStore) key(id string) string {
	return r.keyPrefix + "session:" + id
}

func (r *RedisStore) indexKey() string {
	return r.keyPrefix + "sessions"
}

// Create stores a new session document. The document write and the index
// insert run in one MULTI/EXEC transaction, so a session can never exist
// without its index entry. A duplicate id leaves the index untouched in
// effect: re-adding an existing member is a no-op.
func (r *RedisStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	var created *redis.BoolCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		created = pipe.SetNX(ctx, r.key(sess.ID), payload, 0)
		pipe.SAdd(ctx, r.indexKey(), sess.ID)
		return nil
	})
	if err != nil {
		return err
	}
	if !created.Val() {
		return ErrAlreadyExists
	}
	return nil
}

// Get retrieves a session document by id.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Update replaces the document if the revision chain is intact.
func (r *RedisStore) Update(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	key := r.key(sess.ID)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var stored Session
		if err := json.Unmarshal(payload, &stored); err != nil {
			return err
		}
		if stored.Revision != sess.Revision-1 {
			return ErrRevisionMismatch
		}

		updated, err := json.Marshal(sess)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrRevisionMismatch
	}
	return err
}

// All returns every stored session.
func (r *RedisStore) All(ctx context.Context) ([]*Session, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*Session, 0, len(values))
	for _, value := range values {
		payload, ok := value.(string)
		if !ok {
			// Index entry without a document; skip rather than fail the scan.
			continue
		}
		var sess Session
		if err := json.Unmarshal([]byte(payload), &sess); err != nil {
			return nil, err
		}
		out = append(out, &sess)
	}
	return out, nil
}
