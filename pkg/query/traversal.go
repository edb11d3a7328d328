package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/lexgraph/lexgraph/pkg/graph"
	"github.com/lexgraph/lexgraph/pkg/types"
)

// traversalPairLimit bounds how many source × target pairs are attempted.
const traversalPairLimit = 3

// NameExtractor picks candidate entity names out of raw query text. The
// default capitalization heuristic is approximate; a stronger extractor can
// be substituted without touching the path-finding pipeline.
type NameExtractor interface {
	Extract(raw string) []string
}

// CapitalizedNameExtractor extracts candidate names as runs of consecutive
// capitalized words of length ≥3; a run breaks at the first non-capitalized
// word.
type CapitalizedNameExtractor struct{}

// Extract implements NameExtractor.
func (CapitalizedNameExtractor) Extract(raw string) []string {
	var candidates []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			candidates = append(candidates, strings.Join(current, " "))
			current = nil
		}
	}

	for _, token := range strings.Fields(raw) {
		word := strings.Trim(token, punctuation)
		runes := []rune(word)
		if len(runes) >= 3 && unicode.IsUpper(runes[0]) {
			current = append(current, word)
			continue
		}
		flush()
	}
	flush()
	return candidates
}

// searchGraphTraversal finds connecting paths between entities named in the
// query. Candidate names are split roughly in half into source and target
// sets, resolved against the global entity index by substring match, and up
// to the first 3×3 pairs are searched. A pathless pair is skipped; fewer than
// two resolved entities overall is a validation error.
func (e *Engine) searchGraphTraversal(ctx context.Context, qc *queryContext) ([]*types.QueryResult, error) {
	if e.paths == nil {
		return nil, ErrPathFinderRequired
	}

	index, err := e.store.EntityIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph traversal: %w", err)
	}
	graphs, err := e.store.Graphs(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph traversal: %w", err)
	}
	entityDocs := entityDocumentIndex(graphs)

	candidates := e.names.Extract(qc.raw)
	mid := (len(candidates) + 1) / 2
	sources := resolveCandidates(candidates[:mid], index)
	targets := resolveCandidates(candidates[mid:], index)

	if len(sources)+len(targets) < 2 {
		return nil, fmt.Errorf("%w: resolved %d from query %q",
			types.ErrInsufficientEntities, len(sources)+len(targets), qc.raw)
	}

	opts := &graph.TraversalOptions{
		MaxLength:                qc.filters.MaxPathLength,
		AllowedEntityTypes:       qc.filters.AllowedEntityTypes,
		AllowedRelationshipTypes: qc.filters.AllowedRelationshipTypes,
		MinConfidence:            qc.filters.MinEdgeConfidence,
	}

	var results []*types.QueryResult
	for si, source := range sources {
		if si >= traversalPairLimit {
			break
		}
		for ti, target := range targets {
			if ti >= traversalPairLimit {
				break
			}
			if source.ID == target.ID {
				continue
			}

			path, err := e.paths.ShortestPath(ctx, source.ID, target.ID, opts)
			if errors.Is(err, graph.ErrNoPath) {
				e.logger.DebugContext(ctx, "no path between entities",
					"source", source.Name, "target", target.Name)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("graph traversal: %w", err)
			}
			results = append(results, pathResult(source, target, path, entityDocs))
		}
	}

	sortByRelevance(results)
	return truncateResults(results, qc.limit), nil
}

// resolveCandidates maps candidate names to known entities via
// case-insensitive substring match, in deterministic index order. Unresolved
// candidates are dropped.
func resolveCandidates(candidates []string, index map[string]*types.Entity) []*types.Entity {
	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var resolved []*types.Entity
	seen := make(map[string]bool)
	for _, candidate := range candidates {
		candLower := strings.ToLower(candidate)
		for _, id := range ids {
			entity := index[id]
			nameLower := strings.ToLower(entity.Name)
			if strings.Contains(nameLower, candLower) || strings.Contains(candLower, nameLower) {
				if !seen[entity.ID] {
					resolved = append(resolved, entity)
					seen[entity.ID] = true
				}
				break
			}
		}
	}
	return resolved
}

func pathResult(source, target *types.Entity, path *graph.Path, entityDocs map[string]string) *types.QueryResult {
	var sb strings.Builder
	entityIDs := make([]string, 0, len(path.Entities))
	relTypes := make([]string, 0, len(path.Relationships))
	for i, entity := range path.Entities {
		if i > 0 {
			fmt.Fprintf(&sb, " → %s → ", relationshipWords(path.Relationships[i-1].Type))
			relTypes = append(relTypes, path.Relationships[i-1].Type)
		}
		sb.WriteString(entity.Name)
		entityIDs = append(entityIDs, entity.ID)
	}

	return &types.QueryResult{
		ID:             fmt.Sprintf("path:%s:%s", source.ID, target.ID),
		Type:           types.ResultTypeGraphPath,
		Content:        sb.String(),
		RelevanceScore: 1 / float64(path.Length()),
		SourceDocument: pathSourceDocument(entityIDs, entityDocs),
		Metadata: map[string]any{
			"path_length":        path.Length(),
			"entity_ids":         entityIDs,
			"relationship_types": relTypes,
			"source_entity":      source.Name,
			"target_entity":      target.Name,
		},
	}
}

// pathSourceDocument attributes a path to a document via its entities.
func pathSourceDocument(entityIDs []string, entityDocs map[string]string) string {
	resolved := ""
	for _, id := range entityIDs {
		docID, ok := entityDocs[id]
		if !ok || docID == "" {
			continue
		}
		if resolved == "" {
			resolved = docID
			continue
		}
		if resolved != docID {
			return types.SourceDocumentMultiple
		}
	}
	if resolved == "" {
		return types.SourceDocumentUnknown
	}
	return resolved
}

// entityDocumentIndex maps entity ids to their owning document id.
func entityDocumentIndex(graphs []*types.KnowledgeGraph) map[string]string {
	index := make(map[string]string)
	for _, kg := range graphs {
		for _, entity := range kg.Entities {
			index[entity.ID] = kg.DocumentID
		}
	}
	return index
}
