package graph

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexEquality(t *testing.T) {
	t.Run("entities_equal_by_name_regardless_of_id", func(t *testing.T) {
		a := Vertex{ID: 1, Name: "alice"}
		b := Vertex{ID: 42, Name: "alice"}

		assert.True(t, Equal(a, b))
		assert.Equal(t, a.Hash(), b.Hash())
		assert.Equal(t, a.Key(), b.Key())
	})

	t.Run("entities_with_different_names_differ", func(t *testing.T) {
		a := Vertex{ID: 1, Name: "alice"}
		b := Vertex{ID: 1, Name: "bob"}

		assert.False(t, Equal(a, b))
	})

	t.Run("predicates_differ_unless_exact_same_occurrence", func(t *testing.T) {
		// Same name, same endpoints, different creation IDs: two distinct
		// edge occurrences.
		a := Vertex{ID: 3, Name: "knows", Predicate: true, Prev: 1, Next: 2}
		b := Vertex{ID: 7, Name: "knows", Predicate: true, Prev: 1, Next: 2}

		assert.False(t, Equal(a, b))
		assert.True(t, Equal(a, a))
	})

	t.Run("predicate_hash_matches_equality", func(t *testing.T) {
		a := Vertex{ID: 3, Name: "knows", Predicate: true, Prev: 1, Next: 2}
		same := Vertex{ID: 3, Name: "knows", Predicate: true, Prev: 1, Next: 2}

		assert.True(t, Equal(a, same))
		assert.Equal(t, a.Hash(), same.Hash())
	})

	t.Run("entity_never_equals_predicate", func(t *testing.T) {
		e := Vertex{ID: 1, Name: "knows"}
		p := Vertex{ID: 1, Name: "knows", Predicate: true}

		assert.False(t, Equal(e, p))
	})
}

func TestVertexOrdering(t *testing.T) {
	t.Run("lexicographic_on_name_only", func(t *testing.T) {
		// Ordering ignores predicate identity on purpose; it only ever
		// drives deterministic sorts.
		vs := []Vertex{
			{ID: 5, Name: "c", Predicate: true, Prev: 1, Next: 2},
			{ID: 1, Name: "a"},
			{ID: 9, Name: "b"},
		}
		sort.Slice(vs, func(i, j int) bool { return Less(vs[i], vs[j]) })

		require.Len(t, vs, 3)
		assert.Equal(t, "a", vs[0].Name)
		assert.Equal(t, "b", vs[1].Name)
		assert.Equal(t, "c", vs[2].Name)
	})

	t.Run("total_order_mixing_kinds", func(t *testing.T) {
		e := Vertex{Name: "knows"}
		p := Vertex{ID: 2, Name: "knows", Predicate: true, Prev: 1, Next: 3}

		// Equal names are not less-than in either direction even though
		// the vertices are unequal.
		assert.False(t, Less(e, p))
		assert.False(t, Less(p, e))
	})
}
