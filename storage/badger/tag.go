package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/storage"
)

// TagRepository implements storage.TagRepository for BadgerDB.
type TagRepository struct {
	backend *Backend
}

var _ storage.TagRepository = (*TagRepository)(nil)

// NewTagRepository creates a new TagRepository.
func NewTagRepository(backend *Backend) (*TagRepository, error) {
	return &TagRepository{
		backend: backend,
	}, nil
}

// Close releases resources. TagRepository has no resources to release.
func (r *TagRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TagRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddTags adds one or more tags to storage.
func (r *TagRepository) AddTags(ctx context.Context, tags ...*core.Tag) ([]*core.Tag, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, tag := range tags {
			// Use content-based ID if not set
			if tag.Id == 0 {
				tag.Id = core.TagIDFromName(tag.Group, tag.Name)
			}

			// Set timestamps
			if tag.InsertedAt.IsZero() {
				tag.InsertedAt = time.Now().UTC()
			}
			tag.UpdatedAt = tag.InsertedAt

			// Store primary record
			key := makeTagKey(tag.Id)
			value := storage.MarshalTag(tag)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Store name index
			nameKey := makeTagNameKey(tag.Group, tag.Name)
			if err := tx.Set(nameKey, storage.MarshalID(tag.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return tags, err
}

// UpdateTags updates existing tags.
func (r *TagRepository) UpdateTags(ctx context.Context, tags ...*core.Tag) ([]*core.Tag, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, tag := range tags {
			key := makeTagKey(tag.Id)

			old, err := readTag(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			tag.UpdatedAt = time.Now().UTC()

			value := storage.MarshalTag(tag)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update name index if group or name changed
			if old.Name != tag.Name || old.Group != tag.Group {
				oldNameKey := makeTagNameKey(old.Group, old.Name)
				if err := tx.Delete(oldNameKey); err != nil {
					return err
				}
				newNameKey := makeTagNameKey(tag.Group, tag.Name)
				if err := tx.Set(newNameKey, storage.MarshalID(tag.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return tags, err
}

// DeleteTags removes tags by their IDs.
func (r *TagRepository) DeleteTags(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTagKey(id)

			tag, err := readTag(tx, key)
			if err != nil {
				return err
			}
			if tag == nil {
				return storage.ErrNotFound
			}

			nameKey := makeTagNameKey(tag.Group, tag.Name)
			if err := tx.Delete(nameKey); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetTag retrieves a single tag by ID.
func (r *TagRepository) GetTag(ctx context.Context, id core.ID) (*core.Tag, error) {
	var result *core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTagKey(id)
		var err error
		result, err = readTag(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetTags retrieves multiple tags by their IDs.
func (r *TagRepository) GetTags(ctx context.Context, ids ...core.ID) ([]*core.Tag, error) {
	var result []*core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTagKey(id)
			tag, err := readTag(tx, key)
			if err != nil {
				return err
			}
			if tag != nil {
				result = append(result, tag)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetAllTags retrieves the full tag vocabulary.
func (r *TagRepository) GetAllTags(ctx context.Context) ([]*core.Tag, error) {
	var results []*core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(tagRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			if !hasPrefix(key, prefix) {
				break
			}

			var tag *core.Tag
			err := item.Value(func(val []byte) error {
				var err error
				tag, err = storage.UnmarshalTag(val)
				return err
			})
			if err != nil {
				return err
			}

			if tag != nil {
				results = append(results, tag)
			}
		}
		return nil
	}, false)

	return results, err
}

// FindTagByName finds a tag by its group and normalized name.
func (r *TagRepository) FindTagByName(ctx context.Context, group core.TagGroup, name string) (*core.Tag, error) {
	var result *core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Look up ID from name index
		nameKey := makeTagNameKey(group, name)
		item, err := tx.Get(nameKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var tagID core.ID
		err = item.Value(func(val []byte) error {
			tagID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		// Look up full tag
		tagKey := makeTagKey(tagID)
		result, err = readTag(tx, tagKey)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// FindSimilarTag finds the most similar tag within the given group.
// An Unknown group searches all groups.
// Returns ErrNotFound if nothing reaches minSimilarity.
func (r *TagRepository) FindSimilarTag(ctx context.Context, group core.TagGroup, vector []float32, minSimilarity float32) (*core.Tag, float32, error) {
	var best *core.Tag
	var bestScore float32

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(tagRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var tag *core.Tag
			err := item.Value(func(val []byte) error {
				var err error
				tag, err = storage.UnmarshalTag(val)
				return err
			})
			if err != nil {
				return err
			}
			if tag == nil || len(tag.Vector) == 0 {
				continue
			}

			if group != core.TagGroupUnknown && tag.Group != group {
				continue
			}

			score := dotProduct(vector, tag.Vector)
			if score >= minSimilarity && (best == nil || score > bestScore) {
				best = tag
				bestScore = score
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, 0, err
	}
	if best == nil {
		return nil, 0, storage.ErrNotFound
	}
	return best, bestScore, nil
}

// readTag reads a tag from the transaction.
func readTag(tx *badger.Txn, key []byte) (*core.Tag, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var tag *core.Tag
	err = item.Value(func(val []byte) error {
		var err error
		tag, err = storage.UnmarshalTag(val)
		return err
	})
	return tag, err
}
