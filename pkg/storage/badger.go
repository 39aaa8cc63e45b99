package storage

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes for BadgerDB storage organization.
// Using single-byte prefixes for efficiency.
const (
	prefixMeta    = byte(0x00) // sequence allocator state
	prefixTriple  = byte(0x01) // triple:seq -> JSON(Triple)
	prefixSubject = byte(0x02) // subject:name:seq -> []byte{}
)

// BadgerEngine is a persistent triple store using BadgerDB.
//
// Key Structure:
//   - Triples: 0x01 + seq(8, big endian) -> JSON(Triple)
//   - Subject Index: 0x02 + subject + 0x00 + seq(8) -> empty
//
// Sequence numbers are allocated by a badger.Sequence, so insertion order
// survives restarts and iteration over the triple prefix replays statements
// in the order they were stored.
type BadgerEngine struct {
	db  *badger.DB
	seq *badger.Sequence

	mu     sync.RWMutex
	closed bool
}

// BadgerOptions configures the BadgerDB engine.
type BadgerOptions struct {
	// DataDir is the directory for storing data files. Required unless
	// InMemory is set.
	DataDir string

	// InMemory runs BadgerDB in memory-only mode. Useful for testing.
	// Data is not persisted.
	InMemory bool

	// SyncWrites forces fsync after each write. Slower but more durable.
	SyncWrites bool
}

// NewBadgerEngine opens (or creates) a badger-backed triple store.
func NewBadgerEngine(opts BadgerOptions) (*BadgerEngine, error) {
	badgerOpts := badger.DefaultOptions(opts.DataDir).
		WithInMemory(opts.InMemory).
		WithSyncWrites(opts.SyncWrites).
		WithLogger(nil)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %q: %w", opts.DataDir, err)
	}

	seq, err := db.GetSequence([]byte{prefixMeta, 's', 'e', 'q'}, 256)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening triple sequence: %w", err)
	}

	return &BadgerEngine{db: db, seq: seq}, nil
}

// CreateTriple stores one statement.
func (e *BadgerEngine) CreateTriple(t Triple) error {
	return e.BulkCreateTriples([]Triple{t})
}

// BulkCreateTriples stores many statements in one transaction.
func (e *BadgerEngine) BulkCreateTriples(ts []Triple) error {
	for _, t := range ts {
		if !t.Valid() {
			return ErrInvalidTriple
		}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrStorageClosed
	}

	wb := e.db.NewWriteBatch()
	defer wb.Cancel()

	for _, t := range ts {
		seq, err := e.seq.Next()
		if err != nil {
			return fmt.Errorf("allocating triple sequence: %w", err)
		}
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshaling triple: %w", err)
		}
		if err := wb.Set(tripleKey(seq), data); err != nil {
			return fmt.Errorf("writing triple: %w", err)
		}
		if err := wb.Set(subjectKey(t.Subject, seq), nil); err != nil {
			return fmt.Errorf("writing subject index: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("committing triples: %w", err)
	}
	return nil
}

// TriplesBySubject returns all statements with the given subject in
// insertion order.
func (e *BadgerEngine) TriplesBySubject(subject string) ([]Triple, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, ErrStorageClosed
	}

	var out []Triple
	err := e.db.View(func(txn *badger.Txn) error {
		prefix := append([]byte{prefixSubject}, subject...)
		prefix = append(prefix, 0x00)

		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			seq := binary.BigEndian.Uint64(key[len(prefix):])

			item, err := txn.Get(tripleKey(seq))
			if err != nil {
				return fmt.Errorf("resolving subject index entry: %w", err)
			}
			if err := item.Value(func(val []byte) error {
				var t Triple
				if err := json.Unmarshal(val, &t); err != nil {
					return err
				}
				out = append(out, t)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ForEachTriple streams every statement in insertion order.
func (e *BadgerEngine) ForEachTriple(ctx context.Context, fn func(Triple) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrStorageClosed
	}

	err := e.db.View(func(txn *badger.Txn) error {
		prefix := []byte{prefixTriple}

		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := it.Item().Value(func(val []byte) error {
				var t Triple
				if err := json.Unmarshal(val, &t); err != nil {
					return fmt.Errorf("unmarshaling triple: %w", err)
				}
				return fn(t)
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err == ErrIterationStopped {
		return nil
	}
	return err
}

// TripleCount returns the number of stored statements.
func (e *BadgerEngine) TripleCount() (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return 0, ErrStorageClosed
	}

	count := 0
	err := e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte{prefixTriple}
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Close releases the sequence allocator and closes the database.
func (e *BadgerEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	if err := e.seq.Release(); err != nil {
		e.db.Close()
		return fmt.Errorf("releasing triple sequence: %w", err)
	}
	return e.db.Close()
}

func tripleKey(seq uint64) []byte {
	key := make([]byte, 9)
	key[0] = prefixTriple
	binary.BigEndian.PutUint64(key[1:], seq)
	return key
}

func subjectKey(subject string, seq uint64) []byte {
	key := make([]byte, 0, len(subject)+10)
	key = append(key, prefixSubject)
	key = append(key, subject...)
	key = append(key, 0x00)

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seq)
	return append(key, buf[:]...)
}
