package graph

// Graph is the read surface the walk extractor and relabeler consume.
//
// Implementations must be stable for the duration of one extraction call:
// no vertex or edge may be added, removed or reordered while an extraction
// is in flight. The extractor never mutates the graph through this
// interface.
type Graph interface {
	// AllVertices returns every vertex in the graph, entities and
	// predicates alike, in deterministic (insertion) order.
	AllVertices() []Vertex

	// Neighbors returns the vertices reachable over outgoing edges.
	// For an entity vertex these are predicate vertices; for a predicate
	// vertex this is the object entity.
	Neighbors(v Vertex) []Vertex

	// InvNeighbors returns the vertices with an edge pointing into v.
	InvNeighbors(v Vertex) []Vertex

	// Lookup resolves an entity vertex by name. Used to resolve root
	// instances; returns false when the name is not in the graph.
	Lookup(name string) (Vertex, bool)
}

// KnowledgeGraph is the in-memory Graph implementation.
//
// The graph owns its vertex registry: every vertex is allocated through the
// graph's monotonic ID counter, entity vertices are interned by name, and
// predicate vertices reference their subject/object through registry IDs
// rather than structural links (no pointer cycles). Adjacency is stored in
// insertion order, so enumeration is deterministic for a given build
// sequence.
//
// KnowledgeGraph is not safe for concurrent mutation. Concurrent reads are
// safe once construction is finished, which is the contract extraction
// relies on.
type KnowledgeGraph struct {
	nextID   VertexID
	vertices map[VertexKey]Vertex
	order    []VertexKey
	forward  map[VertexKey][]VertexKey
	inverse  map[VertexKey][]VertexKey
}

// NewKnowledgeGraph creates an empty graph with a fresh ID counter.
func NewKnowledgeGraph() *KnowledgeGraph {
	return &KnowledgeGraph{
		vertices: make(map[VertexKey]Vertex),
		forward:  make(map[VertexKey][]VertexKey),
		inverse:  make(map[VertexKey][]VertexKey),
	}
}

// AddTriple adds one subject --predicate--> object statement.
//
// Subject and object are interned as entity vertices; repeating a name
// reuses the existing vertex. The predicate becomes a fresh positional
// vertex for this occurrence, wired subject -> predicate -> object in both
// adjacency directions.
//
// Empty components are rejected with ErrEmptyName.
func (g *KnowledgeGraph) AddTriple(subject, predicate, object string) error {
	if subject == "" || predicate == "" || object == "" {
		return ErrEmptyName
	}

	sv := g.internEntity(subject)
	ov := g.internEntity(object)

	pv := Vertex{
		ID:        g.allocID(),
		Name:      predicate,
		Predicate: true,
		Prev:      sv.ID,
		Next:      ov.ID,
	}
	g.register(pv)

	g.addEdge(sv, pv)
	g.addEdge(pv, ov)
	return nil
}

// AllVertices returns every vertex in insertion order.
func (g *KnowledgeGraph) AllVertices() []Vertex {
	out := make([]Vertex, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, g.vertices[k])
	}
	return out
}

// Neighbors returns the outgoing neighbors of v in insertion order.
func (g *KnowledgeGraph) Neighbors(v Vertex) []Vertex {
	return g.resolve(g.forward[v.Key()])
}

// InvNeighbors returns the incoming neighbors of v in insertion order.
func (g *KnowledgeGraph) InvNeighbors(v Vertex) []Vertex {
	return g.resolve(g.inverse[v.Key()])
}

// Lookup resolves an entity vertex by name.
func (g *KnowledgeGraph) Lookup(name string) (Vertex, bool) {
	v, ok := g.vertices[VertexKey{Name: name}]
	return v, ok
}

// VertexCount returns the number of vertices, entities and predicates.
func (g *KnowledgeGraph) VertexCount() int {
	return len(g.order)
}

func (g *KnowledgeGraph) allocID() VertexID {
	g.nextID++
	return g.nextID
}

func (g *KnowledgeGraph) internEntity(name string) Vertex {
	key := VertexKey{Name: name}
	if v, ok := g.vertices[key]; ok {
		return v
	}
	v := Vertex{ID: g.allocID(), Name: name}
	g.register(v)
	return v
}

func (g *KnowledgeGraph) register(v Vertex) {
	key := v.Key()
	g.vertices[key] = v
	g.order = append(g.order, key)
}

func (g *KnowledgeGraph) addEdge(from, to Vertex) {
	fk, tk := from.Key(), to.Key()
	g.forward[fk] = append(g.forward[fk], tk)
	g.inverse[tk] = append(g.inverse[tk], fk)
}

func (g *KnowledgeGraph) resolve(keys []VertexKey) []Vertex {
	if len(keys) == 0 {
		return nil
	}
	out := make([]Vertex, 0, len(keys))
	for _, k := range keys {
		out = append(out, g.vertices[k])
	}
	return out
}
