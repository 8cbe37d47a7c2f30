package repository

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/duosplit/receipt-split-service/internal/split"
)

const preferenceBucket = "label_preferences"

// BoltPreferenceRepository implements PreferenceRepository on a local
// bbolt file. It is the default store when no PostgreSQL URL is
// configured.
type BoltPreferenceRepository struct {
	db *bbolt.DB
}

// NewBoltPreferenceRepository opens (or creates) the bolt file at path.
func NewBoltPreferenceRepository(path string) (*BoltPreferenceRepository, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, &RepositoryError{
			Op:  "open_bolt",
			Err: fmt.Errorf("opening %s: %w", path, err),
		}
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(preferenceBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, &RepositoryError{
			Op:  "create_bucket",
			Err: err,
		}
	}

	return &BoltPreferenceRepository{db: db}, nil
}

// Get looks up the remembered attribution for a canonical label.
func (r *BoltPreferenceRepository) Get(ctx context.Context, key string) (split.Attribution, bool, error) {
	var stored []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(preferenceBucket)).Get([]byte(key)); v != nil {
			stored = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", false, &RepositoryError{Op: "get_preference", Err: err}
	}
	if stored == nil {
		return "", false, nil
	}

	attribution, err := split.ParseAttribution(string(stored))
	if err != nil {
		return "", false, nil
	}
	return attribution, true, nil
}

// Set stores the attribution for a canonical label.
func (r *BoltPreferenceRepository) Set(ctx context.Context, key string, attribution split.Attribution) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(preferenceBucket)).Put([]byte(key), []byte(attribution))
	})
	if err != nil {
		return &RepositoryError{Op: "set_preference", Err: err}
	}
	return nil
}

// Close closes the underlying bolt file.
func (r *BoltPreferenceRepository) Close() error {
	return r.db.Close()
}
