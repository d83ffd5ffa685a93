package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const (
	boltBucketLastSeen = "last_seen" // key: "<account>/<feed>" -> status id
	boltBucketMeta     = "meta"      // key: "instance" -> Meta JSON
)

var metaKey = []byte("instance")

// Bolt is a Store backed by a BoltDB file.
type Bolt struct {
	storage *bbolt.DB
}

var _ Store = (*Bolt)(nil)

// NewBolt opens or creates the state file at path.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(boltBucketLastSeen)); err != nil {
			return err
		}

		meta, err := tx.CreateBucketIfNotExists([]byte(boltBucketMeta))
		if err != nil {
			return err
		}

		if meta.Get(metaKey) != nil {
			return nil
		}

		data, err := json.Marshal(Meta{
			InstanceID: uuid.NewString(),
			CreatedAt:  time.Now().UTC(),
		})
		if err != nil {
			return err
		}

		return meta.Put(metaKey, data)
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func lastSeenKey(account, feed string) []byte {
	return []byte(account + "/" + feed)
}

func (b *Bolt) LastSeen(account, feed string) (string, error) {
	var id string

	err := b.storage.View(func(tx *bbolt.Tx) error {
		// seek instead of Get so a stored empty id is told apart from a
		// missing key
		key := lastSeenKey(account, feed)

		k, v := tx.Bucket([]byte(boltBucketLastSeen)).Cursor().Seek(key)
		if !bytes.Equal(k, key) {
			return ErrNotFound
		}

		id = string(v)

		return nil
	})

	return id, err
}

func (b *Bolt) SetLastSeen(account, feed, id string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketLastSeen)).Put(lastSeenKey(account, feed), []byte(id))
	})
}

func (b *Bolt) Meta() (Meta, error) {
	var meta Meta

	err := b.storage.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketMeta)).Get(metaKey)
		if v == nil {
			return ErrNotFound
		}

		return json.Unmarshal(v, &meta)
	})

	return meta, err
}

func (b *Bolt) RecordPoll(at time.Time, notified int) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketMeta))

		var meta Meta
		if v := bucket.Get(metaKey); v != nil {
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
		}

		meta.LastPollAt = at.UTC()
		meta.Polls++
		meta.Notified += int64(notified)

		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}

		return bucket.Put(metaKey, data)
	})
}

// Reset removes the state file at path. A missing file is not an error.
func Reset(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}
