// Package boltdb opens the embedded key/value file used by the bolt store driver.
package boltdb

import (
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
)

// Open opens (or creates) the database at path and makes sure every bucket exists
func Open(path string, buckets ...string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database %s: %w", path, err)
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
		db.Close()
		return nil, err
	}

	return db, nil
}
