package walker

import (
	"context"
	"encoding/hex"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/orneryd/sleipnir/pkg/graph"
)

// labelSeparator joins the own-label prefix and the sorted neighbor labels
// into the composite string that gets digested each round.
const labelSeparator = "-"

// WLWalker extends RandomWalker with Weisfeiler-Lehman relabeling.
//
// Relabeling runs once per graph, before any instance-specific extraction.
// Round 0 assigns every vertex its own name; round n digests the vertex's
// round n-1 label together with the sorted, deduplicated round n-1 labels
// of its inverse neighbors. A vertex's round-n label is therefore a pure
// function of graph topology and the previous round, independent of
// neighbor enumeration order.
//
// Labels are blake2b-256 digests, hex encoded, stable across runs and
// platforms.
type WLWalker struct {
	*RandomWalker

	// Iterations is the number of relabeling rounds beyond round 0.
	Iterations int

	// labels maps vertex identity -> round -> label.
	labels map[graph.VertexKey]map[int]string
	// invLabels maps vertex identity -> label -> round. Derived lookup
	// structure only; the forward map is authoritative.
	invLabels map[graph.VertexKey]map[string]int
}

// NewWLWalker creates a Weisfeiler-Lehman walker.
//
// depth and walksPerGraph configure the underlying random walk sampling,
// iterations the number of relabeling rounds, seed the sampling source.
func NewWLWalker(depth, walksPerGraph, iterations int, seed int64) *WLWalker {
	return &WLWalker{
		RandomWalker: NewRandomWalker(depth, walksPerGraph, seed),
		Iterations:   iterations,
	}
}

// Relabel computes the label map for every vertex of g across rounds
// 0..Iterations. Any previous label state is discarded; running Relabel
// twice on an unmodified graph yields identical maps.
//
// Rounds are strict barriers: round n only ever reads fully computed
// round n-1 labels.
func (w *WLWalker) Relabel(g graph.Graph) {
	vertices := g.AllVertices()

	w.labels = make(map[graph.VertexKey]map[int]string, len(vertices))
	for _, v := range vertices {
		w.labels[v.Key()] = map[int]string{0: v.Name}
	}

	for n := 1; n <= w.Iterations; n++ {
		// Digest against the completed n-1 state for every vertex
		// before any round-n label becomes visible.
		round := make(map[graph.VertexKey]string, len(vertices))
		for _, v := range vertices {
			round[v.Key()] = digest(w.composeLabel(g, v, n))
		}
		for key, label := range round {
			w.labels[key][n] = label
		}
	}

	w.invLabels = make(map[graph.VertexKey]map[string]int, len(vertices))
	for _, v := range vertices {
		key := v.Key()
		inv := make(map[string]int, len(w.labels[key]))
		for n, label := range w.labels[key] {
			inv[label] = n
		}
		w.invLabels[key] = inv
	}
}

// composeLabel builds the pre-digest composite for v at round n: the
// round n-1 label of v, the separator, then the sorted deduplicated round
// n-1 labels of v's inverse neighbors joined by the separator.
//
// A vertex without inverse neighbors gets an empty suffix; that is the
// defined degenerate case for source vertices, not an error.
func (w *WLWalker) composeLabel(g graph.Graph, v graph.Vertex, n int) string {
	seen := make(map[string]struct{})
	for _, nb := range g.InvNeighbors(v) {
		seen[w.labels[nb.Key()][n-1]] = struct{}{}
	}
	neighborLabels := make([]string, 0, len(seen))
	for label := range seen {
		neighborLabels = append(neighborLabels, label)
	}
	sort.Strings(neighborLabels)

	return w.labels[v.Key()][n-1] + labelSeparator + strings.Join(neighborLabels, labelSeparator)
}

// Label returns v's label at the given round, false when v is unknown or
// the round was never computed.
func (w *WLWalker) Label(v graph.Vertex, round int) (string, bool) {
	rounds, ok := w.labels[v.Key()]
	if !ok {
		return "", false
	}
	label, ok := rounds[round]
	return label, ok
}

// Round is the inverse lookup: the round that produced the given label for
// v, false when the label was never assigned to v.
func (w *WLWalker) Round(v graph.Vertex, label string) (int, bool) {
	inv, ok := w.invLabels[v.Key()]
	if !ok {
		return 0, false
	}
	n, ok := inv[label]
	return n, ok
}

// Extract runs the full pipeline: relabel the graph once, then for every
// instance sample walks and canonicalize them at every round 0..Iterations.
// All canonical walks across instances, rounds and samples accumulate into
// one deduplicated set.
//
// Unknown instances contribute nothing; they are not an error. Instances
// are processed concurrently once the label map is sealed, which is safe
// because walk extraction and canonicalization only read the graph and the
// finished labels.
func (w *WLWalker) Extract(ctx context.Context, g graph.Graph, instances []string) (*WalkSet, error) {
	w.Relabel(g)

	// Sample sequentially so a fixed seed reproduces identical walks
	// regardless of scheduling; only canonicalization fans out.
	rawWalks := make([][]Walk, len(instances))
	for i, instance := range instances {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		root, ok := g.Lookup(instance)
		if !ok {
			continue
		}
		rawWalks[i] = w.ExtractWalks(g, root)
	}

	set := NewWalkSet()
	var mu sync.Mutex

	eg, _ := errgroup.WithContext(ctx)
	for i := range rawWalks {
		walks := rawWalks[i]
		if len(walks) == 0 {
			continue
		}
		eg.Go(func() error {
			local := NewWalkSet()
			for n := 0; n <= w.Iterations; n++ {
				for _, walk := range walks {
					local.Add(w.canonicalize(walk, n))
				}
			}
			mu.Lock()
			set.Merge(local)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}

// canonicalize encodes one raw walk at one round: raw names at even
// positions, round-n labels at odd positions.
func (w *WLWalker) canonicalize(walk Walk, n int) CanonicalWalk {
	cw := make(CanonicalWalk, len(walk))
	for i, hop := range walk {
		if i%2 == 0 {
			cw[i] = hop.Name
		} else {
			cw[i] = w.labels[hop.Key()][n]
		}
	}
	return cw
}

// digest hashes a composite label into its fixed-size round label.
func digest(s string) string {
	sum := blake2b.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
