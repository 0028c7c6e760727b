package loader

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

var bucketText = []byte("extracted_text")

// TextCache persists extracted document text keyed by source path and tagged
// with the file's modification time, so unchanged files skip re-reading on
// rebuild. Only loader output is cached; the search index itself is rebuilt
// from scratch every time and never persisted.
type TextCache struct {
	db *bbolt.DB
}

type cacheEntry struct {
	ModTime int64  `json:"mod_time"`
	Text    string `json:"text"`
}

// OpenTextCache opens (or creates) the cache database at path.
func OpenTextCache(path string) (*TextCache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open text cache: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketText)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &TextCache{db: db}, nil
}

// Get returns the cached text for path if it was stored at the same
// modification time.
func (c *TextCache) Get(path string, modTime int64) (string, bool) {
	var text string
	found := false
	c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketText).Get([]byte(path))
		if data == nil {
			return nil
		}
		var entry cacheEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil
		}
		if entry.ModTime == modTime {
			text = entry.Text
			found = true
		}
		return nil
	})
	return text, found
}

// Put stores extracted text for path at the given modification time.
func (c *TextCache) Put(path string, modTime int64, text string) error {
	data, err := json.Marshal(cacheEntry{ModTime: modTime, Text: text})
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketText).Put([]byte(path), data)
	})
}

// Close closes the underlying database.
func (c *TextCache) Close() error {
	return c.db.Close()
}
