// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	badgerDocPrefix = "doc:"
	badgerSeqPrefix = "seq:"

	// sequence leases are reserved in blocks of this size
	badgerSeqBandwidth = 100
)

// badgerRecord is the stored value for one document.
type badgerRecord struct {
	ID  string   `json:"id"`
	Doc Document `json:"doc"`
}

// Badger stores documents in an embedded BadgerDB. Keys are
// "doc:<collection>:<big-endian sequence>" so a prefix scan yields
// insertion order.
type Badger struct {
	db     *badger.DB
	unique map[string]string
	logger zerolog.Logger

	// writes are serialized so unique checks cannot race
	writeMu sync.Mutex

	seqMu sync.Mutex
	seqs  map[string]*badger.Sequence
}

type badgerCollection struct {
	store *Badger
	name  string
}

// OpenBadger opens (or creates) the database at cfg.Path.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenBadger(cfg BadgerConfig, unique map[string]string, logger zerolog.Logger) (*Badger, error) {
	if cfg.Path == "" && !cfg.InMemory {
		return nil, errors.New("badger path is required")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return NewBadger(db, unique, logger), nil
}

// NewBadger wraps an open database. The store takes ownership of db.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBadger(db *badger.DB, unique map[string]string, logger zerolog.Logger) *Badger {
	return &Badger{
		db:     db,
		unique: unique,
		logger: logger,
		seqs:   make(map[string]*badger.Sequence),
	}
}

// Collection implements Store.
func (b *Badger) Collection(name string) Collection {
	return &badgerCollection{store: b, name: name}
}

// Ping implements Store.
func (b *Badger) Ping(_ context.Context) error {
	if b.db.IsClosed() {
		return ErrClosed
	}
	return nil
}

// Close releases sequence leases and closes the database.
func (b *Badger) Close(_ context.Context) error {
	b.seqMu.Lock()
	for name, seq := range b.seqs {
		if err := seq.Release(); err != nil {
			b.logger.Warn().Err(err).Str("collection", name).Msg("Failed to release badger sequence")
		}
	}
	b.seqs = map[string]*badger.Sequence{}
	b.seqMu.Unlock()

	if b.db.IsClosed() {
		return nil
	}
	return b.db.Close()
}

// Backend implements Store.
func (b *Badger) Backend() string { return BackendBadger }

func (b *Badger) nextKey(collection string) ([]byte, error) {
	b.seqMu.Lock()
	defer b.seqMu.Unlock()

	seq, ok := b.seqs[collection]
	if !ok {
		var err error
		seq, err = b.db.GetSequence([]byte(badgerSeqPrefix+collection), badgerSeqBandwidth)
		if err != nil {
			return nil, fmt.Errorf("get sequence: %w", err)
		}
		b.seqs[collection] = seq
	}

	n, err := seq.Next()
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}

	prefix := collectionPrefix(collection)
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], n)
	return key, nil
}

func collectionPrefix(collection string) []byte {
	return []byte(badgerDocPrefix + collection + ":")
}

// scan calls fn for each document in insertion order until fn returns false.
func (c *badgerCollection) scan(txn *badger.Txn, fn func(key []byte, rec *badgerRecord) (bool, error)) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := collectionPrefix(c.name)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		var rec badgerRecord
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
		more, err := fn(item.KeyCopy(nil), &rec)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	return nil
}

func (c *badgerCollection) conflicts(txn *badger.Txn, doc Document, skipID string) (bool, error) {
	field, ok := c.store.unique[c.name]
	if !ok {
		return false, nil
	}
	v, ok := doc[field]
	if !ok {
		return false, nil
	}
	found := false
	err := c.scan(txn, func(_ []byte, rec *badgerRecord) (bool, error) {
		if rec.ID != skipID && valuesEqual(rec.Doc[field], v) {
			found = true
			return false, nil
		}
		return true, nil
	})
	return found, err
}

func (c *badgerCollection) InsertOne(_ context.Context, doc Document) (string, error) {
	if c.store.db.IsClosed() {
		return "", ErrClosed
	}

	rec := badgerRecord{ID: uuid.New().String(), Doc: doc.WithoutID()}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	c.store.writeMu.Lock()
	defer c.store.writeMu.Unlock()

	key, err := c.store.nextKey(c.name)
	if err != nil {
		return "", err
	}

	err = c.store.db.Update(func(txn *badger.Txn) error {
		dup, err := c.conflicts(txn, rec.Doc, "")
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicate
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (c *badgerCollection) Find(_ context.Context, filter Filter) ([]Document, error) {
	if c.store.db.IsClosed() {
		return nil, ErrClosed
	}

	out := []Document{}
	err := c.store.db.View(func(txn *badger.Txn) error {
		return c.scan(txn, func(_ []byte, rec *badgerRecord) (bool, error) {
			if filter.Matches(rec.Doc) {
				out = append(out, rec.Doc)
			}
			return true, nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *badgerCollection) FindOne(_ context.Context, filter Filter) (Document, error) {
	if c.store.db.IsClosed() {
		return nil, ErrClosed
	}

	var found Document
	err := c.store.db.View(func(txn *badger.Txn) error {
		return c.scan(txn, func(_ []byte, rec *badgerRecord) (bool, error) {
			if filter.Matches(rec.Doc) {
				found = rec.Doc
				return false, nil
			}
			return true, nil
		})
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (c *badgerCollection) UpdateOne(_ context.Context, filter Filter, patch Document) (int64, error) {
	if c.store.db.IsClosed() {
		return 0, ErrClosed
	}

	c.store.writeMu.Lock()
	defer c.store.writeMu.Unlock()

	var modified int64
	err := c.store.db.Update(func(txn *badger.Txn) error {
		var (
			key    []byte
			target *badgerRecord
		)
		err := c.scan(txn, func(k []byte, rec *badgerRecord) (bool, error) {
			if filter.Matches(rec.Doc) {
				key, target = k, rec
				return false, nil
			}
			return true, nil
		})
		if err != nil || target == nil {
			return err
		}

		if !merge(target.Doc, patch) {
			return nil
		}
		dup, err := c.conflicts(txn, target.Doc, target.ID)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicate
		}

		data, err := json.Marshal(target)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set document: %w", err)
		}
		modified = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return modified, nil
}

var _ Store = (*Badger)(nil)
