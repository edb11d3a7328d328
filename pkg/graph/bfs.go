package graph

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lexgraph/lexgraph/pkg/store"
	"github.com/lexgraph/lexgraph/pkg/types"
)

// edge is one direction of a relationship in the adjacency view.
type edge struct {
	neighbor string
	rel      *types.Relationship
}

// BFSPathFinder finds shortest paths with breadth-first search over an
// adjacency view of the store. Relationships are traversed in both directions.
// The adjacency view is built lazily on first use; the store is read-only, so
// it is built once per finder.
type BFSPathFinder struct {
	store  store.GraphStore
	logger *slog.Logger

	once     sync.Once
	buildErr error
	adjacent map[string][]edge
	entities map[string]*types.Entity
}

// NewBFSPathFinder creates a path finder backed by the given store.
func NewBFSPathFinder(graphStore store.GraphStore, logger *slog.Logger) *BFSPathFinder {
	if logger == nil {
		logger = slog.Default()
	}
	return &BFSPathFinder{store: graphStore, logger: logger}
}

func (f *BFSPathFinder) build(ctx context.Context) error {
	f.once.Do(func() {
		graphs, err := f.store.Graphs(ctx)
		if err != nil {
			f.buildErr = fmt.Errorf("failed to load graphs for traversal: %w", err)
			return
		}
		index, err := f.store.EntityIndex(ctx)
		if err != nil {
			f.buildErr = fmt.Errorf("failed to load entity index for traversal: %w", err)
			return
		}

		f.entities = index
		f.adjacent = make(map[string][]edge)
		for _, graph := range graphs {
			for _, rel := range graph.Relationships {
				if _, ok := index[rel.SourceEntityID]; !ok {
					f.logger.Warn("skipping relationship with unresolved endpoint",
						"relationship_id", rel.ID, "entity_id", rel.SourceEntityID)
					continue
				}
				if _, ok := index[rel.TargetEntityID]; !ok {
					f.logger.Warn("skipping relationship with unresolved endpoint",
						"relationship_id", rel.ID, "entity_id", rel.TargetEntityID)
					continue
				}
				f.adjacent[rel.SourceEntityID] = append(f.adjacent[rel.SourceEntityID],
					edge{neighbor: rel.TargetEntityID, rel: rel})
				f.adjacent[rel.TargetEntityID] = append(f.adjacent[rel.TargetEntityID],
					edge{neighbor: rel.SourceEntityID, rel: rel})
			}
		}
	})
	return f.buildErr
}

// ShortestPath implements PathFinder.
func (f *BFSPathFinder) ShortestPath(ctx context.Context, sourceID, targetID string, opts *TraversalOptions) (*Path, error) {
	if err := f.build(ctx); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &TraversalOptions{}
	}
	if _, ok := f.entities[sourceID]; !ok {
		return nil, fmt.Errorf("%w: unknown entity %s", ErrNoPath, sourceID)
	}
	if _, ok := f.entities[targetID]; !ok {
		return nil, fmt.Errorf("%w: unknown entity %s", ErrNoPath, targetID)
	}
	if sourceID == targetID {
		return nil, fmt.Errorf("%w: source and target are the same entity", ErrNoPath)
	}

	allowedEntities := toSet(opts.AllowedEntityTypes)
	allowedRels := toSet(opts.AllowedRelationshipTypes)

	visited := map[string]step{sourceID: {}}
	frontier := []string{sourceID}
	depth := 0

	for len(frontier) > 0 {
		if opts.MaxLength > 0 && depth >= opts.MaxLength {
			break
		}
		depth++
		var next []string
		for _, current := range frontier {
			for _, e := range f.adjacent[current] {
				if _, seen := visited[e.neighbor]; seen {
					continue
				}
				if len(allowedRels) > 0 && !allowedRels[e.rel.Type] {
					continue
				}
				if opts.MinConfidence > 0 && e.rel.Confidence < opts.MinConfidence {
					continue
				}
				// Intermediate nodes must satisfy the entity-type filter;
				// the target endpoint is exempt.
				if e.neighbor != targetID && len(allowedEntities) > 0 {
					if entity := f.entities[e.neighbor]; entity == nil || !allowedEntities[entity.Type] {
						continue
					}
				}
				visited[e.neighbor] = step{prev: current, rel: e.rel}
				if e.neighbor == targetID {
					return f.reconstruct(sourceID, targetID, visited), nil
				}
				next = append(next, e.neighbor)
			}
		}
		frontier = next
	}
	return nil, ErrNoPath
}

func (f *BFSPathFinder) reconstruct(sourceID, targetID string, visited map[string]step) *Path {
	var entityIDs []string
	var rels []*types.Relationship
	for current := targetID; ; {
		entityIDs = append([]string{current}, entityIDs...)
		if current == sourceID {
			break
		}
		s := visited[current]
		rels = append([]*types.Relationship{s.rel}, rels...)
		current = s.prev
	}

	path := &Path{Relationships: rels}
	for _, id := range entityIDs {
		path.Entities = append(path.Entities, f.entities[id])
	}
	return path
}

// step records how a node was first reached during BFS.
type step struct {
	prev string
	rel  *types.Relationship
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
