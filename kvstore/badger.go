package kvstore

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore is a Store implementation backed by BadgerDB v4.
type BadgerStore struct {
	db *badger.DB
}

// compile-time check
var _ Store = (*BadgerStore)(nil)

// OpenBadger creates or opens a BadgerDB-backed Store at dir.
//
// Badger happily opens an empty directory as a fresh database, so
// existence is decided by the MANIFEST file it writes on creation.
func OpenBadger(dir string, create bool) (Store, error) {
	_, err := os.Stat(filepath.Join(dir, "MANIFEST"))
	switch {
	case create && err == nil:
		return nil, fmt.Errorf("%w: %s", ErrExists, dir)
	case !create && err != nil:
		return nil, fmt.Errorf("%w: %s", ErrMissing, dir)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nopLogger{})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("kvstore: open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get retrieves the value for a key.
func (s *BadgerStore) Get(_ context.Context, key []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

// Put stores a key-value pair.
func (s *BadgerStore) Put(_ context.Context, key, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Scan iterates over all entries in key order.
func (s *BadgerStore) Scan(_ context.Context) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		err := s.db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				item := it.Item()
				key := item.KeyCopy(nil)
				val, err := item.ValueCopy(nil)
				if err != nil {
					return err
				}
				if !yield(Entry{Key: key, Value: val}, nil) {
					return nil
				}
			}
			return nil
		})
		if err != nil {
			yield(Entry{}, err)
		}
	}
}

// Batch starts a badger write batch.
func (s *BadgerStore) Batch() Batch {
	return &badgerBatch{wb: s.db.NewWriteBatch()}
}

// Close closes the underlying database. Safe to call twice.
func (s *BadgerStore) Close() error {
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	if err := db.Close(); err != nil {
		return fmt.Errorf("kvstore: close badger: %w", err)
	}
	return nil
}

type badgerBatch struct {
	wb *badger.WriteBatch
}

func (b *badgerBatch) Put(key, value []byte) error {
	return b.wb.Set(key, value)
}

func (b *badgerBatch) Flush() error {
	return b.wb.Flush()
}

func (b *badgerBatch) Cancel() {
	b.wb.Cancel()
}

// nopLogger silences badger's default chatter; the index layer does
// its own logging.
type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{})   {}
func (nopLogger) Warningf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Debugf(string, ...interface{})   {}
