package badger

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/storage"
)

// SessionRepository implements storage.SessionRepository for BadgerDB.
// Each session is stored as a single value, so a save is all-or-nothing
// and readers never observe a partially updated session.
type SessionRepository struct {
	backend *Backend
}

var _ storage.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(backend *Backend) (*SessionRepository, error) {
	return &SessionRepository{
		backend: backend,
	}, nil
}

// Close releases resources. SessionRepository has no resources to release.
func (r *SessionRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *SessionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// LoadSession retrieves the session state for a key.
func (r *SessionRepository) LoadSession(ctx context.Context, key string) (*core.SessionState, error) {
	var result *core.SessionState
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSessionKey(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalSessionState(val)
			return err
		})
	}, false)
	return result, err
}

// SaveSession stores the complete session state, replacing any previous
// state under the same key.
func (r *SessionRepository) SaveSession(ctx context.Context, state *core.SessionState) error {
	state.UpdatedAt = time.Now().UTC()
	return r.backend.WithTx(func(tx *badger.Txn) error {
		value := storage.MarshalSessionState(state)
		if err := tx.Set(makeSessionKey(state.Key), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// DeleteSession removes a session by key. Missing sessions are ignored.
func (r *SessionRepository) DeleteSession(ctx context.Context, key string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeSessionKey(key)); err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListSessionKeys returns the keys of all stored sessions.
func (r *SessionRepository) ListSessionKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(sessionRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !hasPrefix(key, prefix) {
				break
			}
			keys = append(keys, strings.TrimPrefix(string(key), sessionRecordPrefix+":"))
		}
		return nil
	}, false)
	return keys, err
}
