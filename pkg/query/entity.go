package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// searchEntities scores entities by keyword overlap with the query. Scoring:
// +2 per query word in the entity name, +1 per query word in the description,
// a flat +3 when any query word is a substring of the name, +1 when the
// entity's type appears verbatim in the query. Zero-scored entities are
// excluded. The raw score is divided by 10 and deliberately not clamped.
func (e *Engine) searchEntities(ctx context.Context, qc *queryContext) ([]*types.QueryResult, error) {
	graphs, err := e.store.Graphs(ctx)
	if err != nil {
		return nil, fmt.Errorf("entity search: %w", err)
	}
	chunkDocs := chunkDocumentIndex(graphs)

	var results []*types.QueryResult
	for _, graph := range graphs {
		if qc.filters.DocumentID != "" && graph.DocumentID != qc.filters.DocumentID {
			continue
		}
		for _, entity := range graph.Entities {
			if qc.filters.EntityType != "" && !strings.EqualFold(entity.Type, qc.filters.EntityType) {
				continue
			}
			score := scoreEntity(entity, qc)
			if score == 0 {
				continue
			}
			results = append(results, &types.QueryResult{
				ID:             entity.ID,
				Type:           types.ResultTypeEntity,
				Content:        entityContent(entity),
				RelevanceScore: score / 10,
				SourceDocument: resolveSourceDocument(entity.SourceChunkIDs, chunkDocs),
				SourceChunkIDs: entity.SourceChunkIDs,
				Metadata: map[string]any{
					"entity_name": entity.Name,
					"entity_type": entity.Type,
					"confidence":  entity.Confidence,
				},
			})
		}
	}

	sortByRelevance(results)
	return truncateResults(results, qc.limit), nil
}

func scoreEntity(entity *types.Entity, qc *queryContext) float64 {
	nameLower := strings.ToLower(entity.Name)
	descLower := strings.ToLower(entity.Description)
	nameWords := wordSet(entity.Name)

	score := 0.0
	for _, word := range qc.words {
		if nameWords[word] {
			score += 2
		}
		if descLower != "" && strings.Contains(descLower, word) {
			score++
		}
	}
	for _, word := range qc.words {
		if strings.Contains(nameLower, word) {
			score += 3
			break
		}
	}
	if entity.Type != "" && strings.Contains(qc.normalized, strings.ToLower(entity.Type)) {
		score++
	}
	return score
}

func entityContent(entity *types.Entity) string {
	if entity.Description == "" {
		return entity.Name
	}
	return fmt.Sprintf("%s: %s", entity.Name, entity.Description)
}
