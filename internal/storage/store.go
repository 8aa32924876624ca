package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pders01/featured/internal/apps"
	"github.com/pders01/featured/internal/debuglog"
)

var (
	appsBucket = []byte("apps")
	metaBucket = []byte("metadata")

	cachedAtKey = []byte("cached_at")
)

// Store is the local cache of the app list. The list is replaced
// wholesale on every write; reads return it in the order it was written.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string) (*Store, error) {
	return NewStoreWithTimeout(dbPath, 1*time.Second)
}

func NewStoreWithTimeout(dbPath string, timeout time.Duration) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{appsBucket, metaBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// orderKey keeps records in insertion order under bbolt's byte ordering.
func orderKey(i int) []byte {
	return []byte(fmt.Sprintf("%08d", i))
}

// SaveApps replaces the cached list.
func (s *Store) SaveApps(list []apps.App) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(appsBucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucket(appsBucket)
		if err != nil {
			return err
		}

		for i, app := range list {
			data, err := json.Marshal(app)
			if err != nil {
				return err
			}
			if err := b.Put(orderKey(i), data); err != nil {
				return err
			}
		}

		stamp, err := time.Now().MarshalText()
		if err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put(cachedAtKey, stamp)
	})
}

// LoadApps returns the cached list. A miss is an empty slice, not an error.
func (s *Store) LoadApps() ([]apps.App, error) {
	list := []apps.App{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(appsBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k []byte, v []byte) error {
			var app apps.App
			if err := json.Unmarshal(v, &app); err != nil {
				debuglog.Warnf("skipping corrupt cache entry %s: %v", k, err)
				return nil
			}
			list = append(list, app)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	return list, nil
}

// CachedAt reports when the list was last written; zero on a miss.
func (s *Store) CachedAt() (time.Time, error) {
	var t time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(metaBucket).Get(cachedAtKey)
		if data == nil {
			return nil
		}
		return t.UnmarshalText(data)
	})
	return t, err
}

// Clear drops the cached list and its metadata.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{appsBucket, metaBucket} {
			if err := tx.DeleteBucket(bucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
