package storage

import (
	"context"
	"fmt"

	"github.com/orneryd/sleipnir/pkg/graph"
)

// BuildGraph streams every triple out of the engine into a fresh
// KnowledgeGraph.
//
// The graph is rebuilt from scratch on every call; a store that changed
// since the last build simply produces a new graph. Statement order is the
// engine's insertion order, so vertex IDs are reproducible for a given
// store.
func BuildGraph(ctx context.Context, engine Engine) (*graph.KnowledgeGraph, error) {
	g := graph.NewKnowledgeGraph()

	err := engine.ForEachTriple(ctx, func(t Triple) error {
		return g.AddTriple(t.Subject, t.Predicate, t.Object)
	})
	if err != nil {
		return nil, fmt.Errorf("building graph from store: %w", err)
	}
	return g, nil
}
