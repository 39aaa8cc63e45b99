// Package walker implements Sleipnir's walk extraction strategies: bounded
// random walks over a knowledge graph and Weisfeiler-Lehman canonical walks
// built on top of them.
//
// The output of extraction is a deduplicated set of canonical walks, each an
// ordered sequence of string tokens suitable as one "sentence" of training
// input for a word2vec-style embedding trainer.
//
// Example Usage:
//
//	g := graph.NewKnowledgeGraph()
//	g.AddTriple("alice", "knows", "bob")
//
//	w := walker.NewWLWalker(4, 100, 4, 1)
//	set, err := w.Extract(ctx, g, []string{"alice"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, cw := range set.Walks() {
//		fmt.Println(strings.Join(cw, " "))
//	}
package walker

import (
	"sort"
	"strings"

	"github.com/orneryd/sleipnir/pkg/graph"
)

// Walk is one raw sampled path: vertices starting at the root, alternating
// entity and predicate hops.
type Walk []graph.Vertex

// CanonicalWalk is the hashable encoding of one raw walk at one relabeling
// round: even positions carry the raw vertex name, odd positions carry the
// round-specific Weisfeiler-Lehman label of that hop's vertex.
type CanonicalWalk []string

// walkSeparator joins canonical walk tokens into a set key. Unit separator,
// never produced by labels (names come from graph input, labels are hex).
const walkSeparator = "\x1f"

// key returns the structural identity of the walk as an opaque string.
func (cw CanonicalWalk) key() string {
	return strings.Join(cw, walkSeparator)
}

// WalkSet is a deduplicating collection of canonical walks.
//
// Duplicate elimination is load-bearing: identical walks produced by
// different instances, rounds or samples collapse to one, bounding output
// size and removing redundant training signal.
type WalkSet struct {
	walks map[string]CanonicalWalk
}

// NewWalkSet creates an empty set.
func NewWalkSet() *WalkSet {
	return &WalkSet{walks: make(map[string]CanonicalWalk)}
}

// Add inserts cw, collapsing structural duplicates.
func (s *WalkSet) Add(cw CanonicalWalk) {
	s.walks[cw.key()] = cw
}

// Merge inserts every walk of other into s.
func (s *WalkSet) Merge(other *WalkSet) {
	for k, cw := range other.walks {
		s.walks[k] = cw
	}
}

// Contains reports whether an identical walk is already in the set.
func (s *WalkSet) Contains(cw CanonicalWalk) bool {
	_, ok := s.walks[cw.key()]
	return ok
}

// Len returns the number of distinct walks.
func (s *WalkSet) Len() int {
	return len(s.walks)
}

// Walks returns the walks in deterministic (sorted) order.
func (s *WalkSet) Walks() []CanonicalWalk {
	keys := make([]string, 0, len(s.walks))
	for k := range s.walks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]CanonicalWalk, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.walks[k])
	}
	return out
}
