package storage

import (
	"context"
	"sync"
)

// MemoryEngine is a thread-safe in-memory triple store.
//
// Use cases:
//   - Unit testing (no disk I/O, fast cleanup)
//   - Small graphs that fit entirely in RAM
//   - Development and prototyping
//
// All operations are guarded by an RWMutex; iteration takes a snapshot of
// the triple slice so concurrent writes never invalidate a running stream.
type MemoryEngine struct {
	mu        sync.RWMutex
	triples   []Triple
	bySubject map[string][]int
	closed    bool
}

// NewMemoryEngine creates an empty in-memory store.
func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{
		bySubject: make(map[string][]int),
	}
}

// CreateTriple stores one statement.
func (e *MemoryEngine) CreateTriple(t Triple) error {
	if !t.Valid() {
		return ErrInvalidTriple
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrStorageClosed
	}

	e.bySubject[t.Subject] = append(e.bySubject[t.Subject], len(e.triples))
	e.triples = append(e.triples, t)
	return nil
}

// BulkCreateTriples stores many statements. The batch is validated up front;
// an invalid triple rejects the whole batch.
func (e *MemoryEngine) BulkCreateTriples(ts []Triple) error {
	for _, t := range ts {
		if !t.Valid() {
			return ErrInvalidTriple
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrStorageClosed
	}

	for _, t := range ts {
		e.bySubject[t.Subject] = append(e.bySubject[t.Subject], len(e.triples))
		e.triples = append(e.triples, t)
	}
	return nil
}

// TriplesBySubject returns all statements with the given subject in
// insertion order.
func (e *MemoryEngine) TriplesBySubject(subject string) ([]Triple, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, ErrStorageClosed
	}

	idx := e.bySubject[subject]
	if len(idx) == 0 {
		return nil, nil
	}
	out := make([]Triple, 0, len(idx))
	for _, i := range idx {
		out = append(out, e.triples[i])
	}
	return out, nil
}

// ForEachTriple streams every statement in insertion order.
func (e *MemoryEngine) ForEachTriple(ctx context.Context, fn func(Triple) error) error {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return ErrStorageClosed
	}
	snapshot := e.triples
	e.mu.RUnlock()

	for _, t := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(t); err != nil {
			if err == ErrIterationStopped {
				return nil
			}
			return err
		}
	}
	return nil
}

// TripleCount returns the number of stored statements.
func (e *MemoryEngine) TripleCount() (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return 0, ErrStorageClosed
	}
	return len(e.triples), nil
}

// Close marks the engine closed. Further operations fail with
// ErrStorageClosed.
func (e *MemoryEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}
