package store

import (
	"context"
	"errors"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// ErrStoreUnavailable is returned when the backing store cannot be reached or
// its contents are malformed. Queries treat it as terminal: no partial results
// are returned on top of untrustworthy data.
var ErrStoreUnavailable = errors.New("graph store unavailable")

// GraphStore is the read-only view of the ingested corpus consumed by the
// query engine. Implementations must be safe for concurrent readers.
type GraphStore interface {
	// Graphs returns every knowledge graph in the corpus, one per document.
	Graphs(ctx context.Context) ([]*types.KnowledgeGraph, error)

	// EntityIndex returns the merged global entity index across all graphs,
	// keyed by entity id.
	EntityIndex(ctx context.Context) (map[string]*types.Entity, error)

	// CrossDocumentRelationships returns the precomputed relationships whose
	// endpoints live in different knowledge graphs.
	CrossDocumentRelationships(ctx context.Context) ([]*types.CrossDocumentRelationship, error)
}
