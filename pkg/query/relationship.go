package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// searchRelationships scores relationships by keyword overlap: +2 per query
// word overlapping the relationship-type words (underscores split), +1 per
// overlap with each endpoint entity's name words, +1 per overlap with the
// description. Relationships whose endpoints cannot be resolved in the global
// index are skipped silently.
func (e *Engine) searchRelationships(ctx context.Context, qc *queryContext) ([]*types.QueryResult, error) {
	graphs, err := e.store.Graphs(ctx)
	if err != nil {
		return nil, fmt.Errorf("relationship search: %w", err)
	}
	index, err := e.store.EntityIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("relationship search: %w", err)
	}
	chunkDocs := chunkDocumentIndex(graphs)

	var results []*types.QueryResult
	for _, graph := range graphs {
		for _, rel := range graph.Relationships {
			if qc.filters.RelationshipType != "" && !strings.EqualFold(rel.Type, qc.filters.RelationshipType) {
				continue
			}
			if qc.filters.EntityID != "" &&
				rel.SourceEntityID != qc.filters.EntityID && rel.TargetEntityID != qc.filters.EntityID {
				continue
			}

			source, sourceOK := index[rel.SourceEntityID]
			target, targetOK := index[rel.TargetEntityID]
			if !sourceOK || !targetOK {
				continue
			}

			relWords := relationshipWords(rel.Type)
			score := float64(2*overlapCount(qc.words, wordSet(relWords)) +
				overlapCount(qc.words, wordSet(source.Name)) +
				overlapCount(qc.words, wordSet(target.Name)) +
				overlapCount(qc.words, wordSet(rel.Description)))
			if score == 0 {
				continue
			}

			results = append(results, &types.QueryResult{
				ID:             rel.ID,
				Type:           types.ResultTypeRelationship,
				Content:        fmt.Sprintf("%s %s %s", source.Name, relWords, target.Name),
				RelevanceScore: clampScore(score / 10),
				SourceDocument: resolveSourceDocument(rel.SourceChunkIDs, chunkDocs),
				SourceChunkIDs: rel.SourceChunkIDs,
				Metadata: map[string]any{
					"relationship_type": rel.Type,
					"source_entity":     source.Name,
					"target_entity":     target.Name,
					"confidence":        rel.Confidence,
				},
			})
		}
	}

	sortByRelevance(results)
	return truncateResults(results, qc.limit), nil
}
