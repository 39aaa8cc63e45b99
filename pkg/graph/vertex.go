// Package graph provides the knowledge-graph model used by Sleipnir's walk
// extraction pipeline.
//
// The package implements a labeled directed multigraph in the RDF style:
// entity vertices connected through predicate vertices, one predicate vertex
// per edge occurrence. Entity vertices are interned by name; predicate
// vertices carry positional identity (which subject/object pair they
// straddle), so two uses of the same predicate name are distinct vertices.
//
// Example Usage:
//
//	g := graph.NewKnowledgeGraph()
//	g.AddTriple("alice", "knows", "bob")
//	g.AddTriple("bob", "knows", "carol")
//
//	root, ok := g.Lookup("alice")
//	if !ok {
//		log.Fatal("alice not in graph")
//	}
//
//	for _, p := range g.Neighbors(root) {
//		fmt.Printf("alice --%s--> %s\n", p.Name, g.Neighbors(p)[0].Name)
//	}
package graph

import (
	"encoding/binary"
	"errors"
	"hash/fnv"
)

// ErrEmptyName is returned when a vertex or triple component has no name.
var ErrEmptyName = errors.New("vertex name must not be empty")

// VertexID is a graph-scoped unique identifier for vertices.
//
// IDs are assigned by a monotonic counter owned by the KnowledgeGraph that
// created the vertex, never by process-global state, so independently built
// graphs produce reproducible IDs. ID 0 is reserved for "no vertex" in
// Prev/Next references.
type VertexID uint64

// Vertex is an immutable graph node.
//
// Two kinds of vertex exist:
//
//   - Entity vertices (Predicate == false) represent subjects and objects.
//     They are interned by Name: equality and hashing consider Name alone,
//     and the same name always resolves to the same logical vertex no matter
//     how many triples mention it.
//
//   - Predicate vertices (Predicate == true) represent one occurrence of a
//     relation edge. Prev and Next reference the subject and object entity
//     straddling the edge. Equality and hashing consider the full
//     (ID, Prev, Next, Name) tuple, so separately created predicate vertices
//     are never equal even when their names match.
//
// Ordering (Less) is lexicographic on Name for both kinds. This is
// intentionally weaker than equality for predicate vertices; the relabeler
// only ever sorts label strings, so the asymmetry is harmless and is kept
// for compatibility.
//
// Vertices are plain values and immutable after construction. They are
// shared freely between the graph, walk buffers and label maps.
type Vertex struct {
	// ID is the graph-scoped creation counter value.
	ID VertexID
	// Name is the vertex label. Required, never empty.
	Name string
	// Predicate marks relation-occurrence vertices.
	Predicate bool
	// Prev references the subject entity when Predicate is true, 0 otherwise.
	Prev VertexID
	// Next references the object entity when Predicate is true, 0 otherwise.
	Next VertexID
}

// VertexKey is the comparable identity of a vertex, suitable as a map key.
//
// The key encodes the equality rule: entity keys carry only the name,
// predicate keys carry the full positional tuple. Using the key as a Go map
// key gives structural equality and hashing that match Equal and Hash
// exactly.
type VertexKey struct {
	Name      string
	Predicate bool
	ID        VertexID
	Prev      VertexID
	Next      VertexID
}

// Key returns the identity key for v.
//
// Entity vertices key on Name alone (ID, Prev, Next are zeroed in the key),
// predicate vertices key on the full (ID, Prev, Next, Name) tuple.
func (v Vertex) Key() VertexKey {
	if v.Predicate {
		return VertexKey{
			Name:      v.Name,
			Predicate: true,
			ID:        v.ID,
			Prev:      v.Prev,
			Next:      v.Next,
		}
	}
	return VertexKey{Name: v.Name}
}

// Equal reports whether a and b identify the same vertex.
//
// Entity vertices are equal iff their names match, regardless of ID.
// Predicate vertices are equal iff ID, Prev, Next and Name all match, so a
// predicate vertex is only ever equal to the exact same edge occurrence.
// An entity vertex is never equal to a predicate vertex.
func Equal(a, b Vertex) bool {
	return a.Key() == b.Key()
}

// Hash returns a 64-bit FNV-1a hash of v's identity.
//
// The hash is consistent with Equal on both branches: equal entity vertices
// hash on name alone, equal predicate vertices hash on the full tuple.
func (v Vertex) Hash() uint64 {
	h := fnv.New64a()
	if v.Predicate {
		var buf [25]byte
		buf[0] = 1
		binary.BigEndian.PutUint64(buf[1:], uint64(v.ID))
		binary.BigEndian.PutUint64(buf[9:], uint64(v.Prev))
		binary.BigEndian.PutUint64(buf[17:], uint64(v.Next))
		h.Write(buf[:])
	}
	h.Write([]byte(v.Name))
	return h.Sum64()
}

// Less reports whether a sorts before b.
//
// Ordering is strict lexicographic on Name for every vertex kind. It is used
// for deterministic sorting only and deliberately ignores the positional
// identity that Equal honors for predicate vertices.
func Less(a, b Vertex) bool {
	return a.Name < b.Name
}
