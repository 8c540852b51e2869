// Copyright 2025 Tastegraph
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package redis provides a Redis-backed session repository. It is an
// alternative to the BadgerDB session store for deployments where the API
// server is replicated and sessions must be shared across instances.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/storage"
)

const sessionKeyPrefix = "recipechat:session:"

// Config holds connection settings for the session store.
type Config struct {
	// Addr is the Redis server address, host:port.
	Addr string

	// Password is optional.
	Password string

	// DB selects the Redis logical database.
	DB int

	// SessionTTL expires idle sessions. Zero means sessions never expire.
	SessionTTL time.Duration
}

// SessionRepository implements storage.SessionRepository on Redis.
// Sessions are stored as single serialized values, so a save is
// all-or-nothing just like the BadgerDB store.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

var _ storage.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository connects to Redis and verifies the connection.
func NewSessionRepository(cfg Config) (storage.SessionRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &SessionRepository{
		client: client,
		ttl:    cfg.SessionTTL,
	}, nil
}

// WithTransaction runs fn directly. Session saves are single-key writes,
// so there is no multi-key state to protect.
func (r *SessionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Close closes the Redis client.
func (r *SessionRepository) Close() error {
	return r.client.Close()
}

// LoadSession retrieves the session state for a key.
func (r *SessionRepository) LoadSession(ctx context.Context, key string) (*core.SessionState, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	state, err := storage.UnmarshalSessionState(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return state, nil
}

// SaveSession stores the complete session state, replacing any previous
// state under the same key.
func (r *SessionRepository) SaveSession(ctx context.Context, state *core.SessionState) error {
	state.UpdatedAt = time.Now().UTC()
	data := storage.MarshalSessionState(state)
	return r.client.Set(ctx, sessionKeyPrefix+state.Key, data, r.ttl).Err()
}

// DeleteSession removes a session by key. Missing sessions are ignored.
func (r *SessionRepository) DeleteSession(ctx context.Context, key string) error {
	return r.client.Del(ctx, sessionKeyPrefix+key).Err()
}

// ListSessionKeys returns the keys of all stored sessions.
func (r *SessionRepository) ListSessionKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(sessionKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
