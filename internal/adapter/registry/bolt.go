// Package registry keeps a durable record of ingested documents.
package registry

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"ragcore/internal/domain"
	"ragcore/internal/port"
)

var _ port.DocumentRegistry = (*BoltRegistry)(nil)

var bucketDocuments = []byte("documents")

// BoltRegistry stores one record per ingested document, keyed by filename.
// Re-ingesting a file overwrites its record.
type BoltRegistry struct {
	db *bbolt.DB
}

func NewBoltRegistry(path string) (*BoltRegistry, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create documents bucket: %w", err)
	}

	return &BoltRegistry{db: db}, nil
}

func (r *BoltRegistry) PutDocument(info domain.DocumentInfo) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(info)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketDocuments).Put([]byte(info.Filename), data)
	})
}

func (r *BoltRegistry) GetDocument(filename string) (domain.DocumentInfo, error) {
	var info domain.DocumentInfo
	err := r.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocuments).Get([]byte(filename))
		if data == nil {
			return fmt.Errorf("document not found: %s", filename)
		}
		return json.Unmarshal(data, &info)
	})
	return info, err
}

// ListDocuments returns all records in filename order.
func (r *BoltRegistry) ListDocuments() ([]domain.DocumentInfo, error) {
	var docs []domain.DocumentInfo
	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).ForEach(func(k, v []byte) error {
			var info domain.DocumentInfo
			if err := json.Unmarshal(v, &info); err != nil {
				return err
			}
			docs = append(docs, info)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *BoltRegistry) Clear() error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketDocuments); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketDocuments)
		return err
	})
}

func (r *BoltRegistry) Close() error {
	return r.db.Close()
}
