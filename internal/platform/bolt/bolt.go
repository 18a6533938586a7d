package bolt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

// DB wraps the bbolt handle used by the single node repository.
type DB struct {
	*bolt.DB
}

// Open opens (creating if needed) the database file at path and makes
// sure every bucket in buckets exists.
func Open(path string, buckets ...string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty bolt path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create bolt dir: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info().Str("path", path).Msg("Opened bolt database")
	return &DB{DB: db}, nil
}
