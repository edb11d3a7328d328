package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// MemoryStore is an in-memory GraphStore. Graphs are added once at load time
// by the ingestion collaborator; afterwards the store is only read. The lock
// exists because Go maps do not tolerate a writer racing readers, not because
// the engine mutates anything.
type MemoryStore struct {
	mu          sync.RWMutex
	graphs      []*types.KnowledgeGraph
	entityIndex map[string]*types.Entity
	crossDoc    []*types.CrossDocumentRelationship
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entityIndex: make(map[string]*types.Entity),
	}
}

// AddGraph registers a knowledge graph and merges its entities into the
// global index. A graph without a GraphID is assigned one.
func (s *MemoryStore) AddGraph(graph *types.KnowledgeGraph) {
	if graph == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if graph.GraphID == "" {
		graph.GraphID = uuid.New().String()
	}
	s.graphs = append(s.graphs, graph)
	for _, entity := range graph.Entities {
		s.entityIndex[entity.ID] = entity
	}
}

// AddCrossDocumentRelationship registers a precomputed cross-document
// relationship.
func (s *MemoryStore) AddCrossDocumentRelationship(rel *types.CrossDocumentRelationship) {
	if rel == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.crossDoc = append(s.crossDoc, rel)
}

// Graphs implements GraphStore.
func (s *MemoryStore) Graphs(ctx context.Context) ([]*types.KnowledgeGraph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	graphs := make([]*types.KnowledgeGraph, len(s.graphs))
	copy(graphs, s.graphs)
	return graphs, nil
}

// EntityIndex implements GraphStore.
func (s *MemoryStore) EntityIndex(ctx context.Context) (map[string]*types.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index := make(map[string]*types.Entity, len(s.entityIndex))
	for id, entity := range s.entityIndex {
		index[id] = entity
	}
	return index, nil
}

// CrossDocumentRelationships implements GraphStore.
func (s *MemoryStore) CrossDocumentRelationships(ctx context.Context) ([]*types.CrossDocumentRelationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rels := make([]*types.CrossDocumentRelationship, len(s.crossDoc))
	copy(rels, s.crossDoc)
	return rels, nil
}
