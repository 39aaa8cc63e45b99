package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeGraphAddTriple(t *testing.T) {
	t.Run("rejects_empty_components", func(t *testing.T) {
		g := NewKnowledgeGraph()

		assert.ErrorIs(t, g.AddTriple("", "p", "o"), ErrEmptyName)
		assert.ErrorIs(t, g.AddTriple("s", "", "o"), ErrEmptyName)
		assert.ErrorIs(t, g.AddTriple("s", "p", ""), ErrEmptyName)
		assert.Equal(t, 0, g.VertexCount())
	})

	t.Run("interns_entities_by_name", func(t *testing.T) {
		g := NewKnowledgeGraph()
		require.NoError(t, g.AddTriple("alice", "knows", "bob"))
		require.NoError(t, g.AddTriple("alice", "likes", "bob"))

		// 2 entities + 2 predicate occurrences.
		assert.Equal(t, 4, g.VertexCount())

		alice, ok := g.Lookup("alice")
		require.True(t, ok)
		assert.False(t, alice.Predicate)
	})

	t.Run("predicate_occurrences_stay_distinct", func(t *testing.T) {
		g := NewKnowledgeGraph()
		require.NoError(t, g.AddTriple("alice", "knows", "bob"))
		require.NoError(t, g.AddTriple("carol", "knows", "bob"))

		bob, ok := g.Lookup("bob")
		require.True(t, ok)

		incoming := g.InvNeighbors(bob)
		require.Len(t, incoming, 2)
		assert.Equal(t, "knows", incoming[0].Name)
		assert.Equal(t, "knows", incoming[1].Name)
		assert.False(t, Equal(incoming[0], incoming[1]))
	})
}

func TestKnowledgeGraphTraversal(t *testing.T) {
	g := NewKnowledgeGraph()
	require.NoError(t, g.AddTriple("alice", "knows", "bob"))
	require.NoError(t, g.AddTriple("bob", "knows", "carol"))

	t.Run("neighbors_alternate_entity_predicate", func(t *testing.T) {
		alice, ok := g.Lookup("alice")
		require.True(t, ok)

		preds := g.Neighbors(alice)
		require.Len(t, preds, 1)
		assert.True(t, preds[0].Predicate)
		assert.Equal(t, "knows", preds[0].Name)

		objs := g.Neighbors(preds[0])
		require.Len(t, objs, 1)
		assert.Equal(t, "bob", objs[0].Name)
	})

	t.Run("inverse_neighbors_point_backward", func(t *testing.T) {
		carol, ok := g.Lookup("carol")
		require.True(t, ok)

		incoming := g.InvNeighbors(carol)
		require.Len(t, incoming, 1)
		assert.True(t, incoming[0].Predicate)

		subjects := g.InvNeighbors(incoming[0])
		require.Len(t, subjects, 1)
		assert.Equal(t, "bob", subjects[0].Name)
	})

	t.Run("lookup_misses_unknown_and_predicate_names", func(t *testing.T) {
		_, ok := g.Lookup("mallory")
		assert.False(t, ok)

		// "knows" exists only as predicate occurrences, not as an entity.
		_, ok = g.Lookup("knows")
		assert.False(t, ok)
	})

	t.Run("all_vertices_in_insertion_order", func(t *testing.T) {
		names := []string{}
		for _, v := range g.AllVertices() {
			names = append(names, v.Name)
		}
		assert.Equal(t, []string{"alice", "bob", "knows", "carol", "knows"}, names)
	})
}

func TestKnowledgeGraphIDsAreGraphScoped(t *testing.T) {
	build := func() *KnowledgeGraph {
		g := NewKnowledgeGraph()
		require.NoError(t, g.AddTriple("a", "p", "b"))
		return g
	}

	g1, g2 := build(), build()

	v1, ok := g1.Lookup("a")
	require.True(t, ok)
	v2, ok := g2.Lookup("a")
	require.True(t, ok)

	// Independently built graphs allocate identical IDs; there is no
	// hidden process-global counter.
	assert.Equal(t, v1.ID, v2.ID)
}
