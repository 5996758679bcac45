// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/mantra/internal/metrics"
)

// Badger is a cache on an embedded badger database, persisted under a
// directory or held in memory. Expiry uses badger's native entry TTL.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens a badger cache at path, or in memory when path is empty.
func OpenBadger(path string) (*Badger, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &Badger{db: db}, nil
}

// Get reads key.
func (b *Badger) Get(_ context.Context, key string) ([]byte, bool, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		metrics.RecordCacheError(string(BackendBadger), "get")
		return nil, false, fmt.Errorf("badger get: %w", err)
	}
	return val, true, nil
}

// Set writes key with ttl. A non-positive ttl is a no-op.
func (b *Badger) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value).WithTTL(ttl))
	})
	if err != nil {
		metrics.RecordCacheError(string(BackendBadger), "set")
		return fmt.Errorf("badger set: %w", err)
	}
	return nil
}

// Name implements Store.
func (b *Badger) Name() string { return string(BackendBadger) }

// Close closes the database.
func (b *Badger) Close() error {
	return b.db.Close()
}
