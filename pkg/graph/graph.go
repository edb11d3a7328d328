package graph

import (
	"context"
	"errors"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// ErrNoPath signals that no path exists between two entities under the given
// traversal constraints. It is distinguishable from store failures so callers
// can skip a pathless pair without aborting the whole query.
var ErrNoPath = errors.New("no path between entities")

// TraversalOptions constrains a shortest-path search. Constraints are applied
// while expanding, so a disallowed edge is never traversed.
type TraversalOptions struct {
	// MaxLength bounds the path length in edges. Zero means unbounded.
	MaxLength int
	// AllowedEntityTypes restricts the types of intermediate entities.
	// Endpoints are exempt. Empty means any type.
	AllowedEntityTypes []string
	// AllowedRelationshipTypes restricts which relationship types may be
	// traversed. Empty means any type.
	AllowedRelationshipTypes []string
	// MinConfidence is the minimum per-edge confidence.
	MinConfidence float64
}

// Path is an entity-to-entity path: n+1 entities joined by n relationships.
type Path struct {
	Entities      []*types.Entity
	Relationships []*types.Relationship
}

// Length returns the path length in edges.
func (p *Path) Length() int {
	return len(p.Relationships)
}

// PathFinder computes shortest paths over the corpus graph.
type PathFinder interface {
	// ShortestPath returns a shortest path from source to target entity id,
	// honoring opts. Returns ErrNoPath when the entities are not connected
	// under the given constraints.
	ShortestPath(ctx context.Context, sourceID, targetID string, opts *TraversalOptions) (*Path, error)
}
