package walker

import (
	"math/rand"
	"sort"

	"github.com/orneryd/sleipnir/pkg/graph"
)

// RandomWalker samples bounded-length walks rooted at a graph entity.
//
// Walks alternate entity and predicate hops: each expansion step follows one
// predicate occurrence to its object, so a walk of depth d has at most
// 2*d+1 vertices. When the number of candidate walks exceeds WalksPerGraph
// at any expansion level, a uniform sample without replacement is taken.
// Sampling is driven by the walker's own seeded source, so a fixed seed
// reproduces the exact same walks across runs.
//
// A root without outgoing edges yields the single trivial walk containing
// only the root. A root that is not in the graph yields no walks at all;
// extraction over incomplete graphs is permissive, not an error.
type RandomWalker struct {
	// Depth is the number of expansion steps per walk.
	Depth int
	// WalksPerGraph caps the number of walks kept per root. Zero or
	// negative means unbounded.
	WalksPerGraph int

	rng *rand.Rand
}

// NewRandomWalker creates a walker with its own deterministic source.
func NewRandomWalker(depth, walksPerGraph int, seed int64) *RandomWalker {
	return &RandomWalker{
		Depth:         depth,
		WalksPerGraph: walksPerGraph,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

// hop is one candidate expansion: a predicate occurrence and its object.
type hop struct {
	pred, obj graph.Vertex
}

// ExtractWalks samples walks rooted at root.
//
// The expansion is breadth-wise: at each level every open walk is replaced
// by its extensions through all (predicate, object) hops of its tail, while
// walks whose tail has no outgoing edges are kept as finished. Candidate
// hops are sorted before sampling so the result does not depend on the
// graph's enumeration order.
func (w *RandomWalker) ExtractWalks(g graph.Graph, root graph.Vertex) []Walk {
	if _, ok := g.Lookup(root.Name); !ok {
		return nil
	}

	walks := []Walk{{root}}
	for i := 0; i < w.Depth; i++ {
		next := make([]Walk, 0, len(walks))
		extended := false
		for _, walk := range walks {
			hops := w.hops(g, walk[len(walk)-1])
			if len(hops) == 0 {
				next = append(next, walk)
				continue
			}
			extended = true
			for _, h := range hops {
				ext := make(Walk, len(walk), len(walk)+2)
				copy(ext, walk)
				next = append(next, append(ext, h.pred, h.obj))
			}
		}
		if !extended {
			break
		}
		walks = w.sample(next)
	}
	return walks
}

// hops returns the (predicate, object) expansions of tail in deterministic
// order.
func (w *RandomWalker) hops(g graph.Graph, tail graph.Vertex) []hop {
	preds := g.Neighbors(tail)
	if len(preds) == 0 {
		return nil
	}
	hops := make([]hop, 0, len(preds))
	for _, p := range preds {
		for _, o := range g.Neighbors(p) {
			hops = append(hops, hop{pred: p, obj: o})
		}
	}
	sort.Slice(hops, func(i, j int) bool {
		if hops[i].pred.Name != hops[j].pred.Name {
			return hops[i].pred.Name < hops[j].pred.Name
		}
		if hops[i].obj.Name != hops[j].obj.Name {
			return hops[i].obj.Name < hops[j].obj.Name
		}
		return hops[i].pred.ID < hops[j].pred.ID
	})
	return hops
}

// sample returns walks unchanged when under the cap, otherwise a uniform
// sample without replacement of WalksPerGraph walks, in stable order.
func (w *RandomWalker) sample(walks []Walk) []Walk {
	if w.WalksPerGraph <= 0 || len(walks) <= w.WalksPerGraph {
		return walks
	}
	idx := w.rng.Perm(len(walks))[:w.WalksPerGraph]
	sort.Ints(idx)

	sampled := make([]Walk, 0, w.WalksPerGraph)
	for _, i := range idx {
		sampled = append(sampled, walks[i])
	}
	return sampled
}
