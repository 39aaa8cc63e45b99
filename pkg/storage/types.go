// Package storage provides the triple store backing Sleipnir's graph
// construction.
//
// The storage layer persists raw (subject, predicate, object) statements and
// streams them back out to build the in-memory knowledge graph the walk
// extractor runs against. Two implementations exist:
//
//   - MemoryEngine: in-memory storage for testing and small datasets
//   - BadgerEngine: persistent disk-based storage using BadgerDB
//
// Both are thread-safe and support concurrent reads.
//
// Example Usage:
//
//	engine, err := storage.NewBadgerEngine(storage.BadgerOptions{DataDir: "./data"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer engine.Close()
//
//	engine.CreateTriple(storage.Triple{
//		Subject:   "alice",
//		Predicate: "knows",
//		Object:    "bob",
//	})
//
//	g, err := storage.BuildGraph(ctx, engine)
package storage

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrInvalidTriple    = errors.New("invalid triple: empty component")
	ErrStorageClosed    = errors.New("storage closed")
	ErrIterationStopped = errors.New("iteration stopped") // Sentinel to stop streaming early
)

// Triple is one raw graph statement.
//
// A triple records that Subject relates to Object through Predicate. Every
// occurrence is kept: the same statement stored twice yields two predicate
// vertices in the built graph, matching the positional identity the walk
// extractor expects.
type Triple struct {
	Subject   string `json:"s"`
	Predicate string `json:"p"`
	Object    string `json:"o"`
}

// Valid reports whether every component is non-empty.
func (t Triple) Valid() bool {
	return t.Subject != "" && t.Predicate != "" && t.Object != ""
}

// Engine is the triple store interface.
//
// Implementations must be safe for concurrent use. Iteration order of
// ForEachTriple must be stable (insertion order) so graph construction is
// deterministic.
type Engine interface {
	// CreateTriple stores one statement.
	CreateTriple(t Triple) error

	// BulkCreateTriples stores many statements in one batch.
	BulkCreateTriples(ts []Triple) error

	// TriplesBySubject returns all statements with the given subject.
	TriplesBySubject(subject string) ([]Triple, error)

	// ForEachTriple streams every statement in insertion order. Returning
	// ErrIterationStopped from fn ends the stream without error.
	ForEachTriple(ctx context.Context, fn func(Triple) error) error

	// TripleCount returns the number of stored statements.
	TripleCount() (int, error)

	// Close releases the engine's resources.
	Close() error
}
