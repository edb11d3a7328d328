package query

import (
	"context"
	"fmt"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// searchSemantic ranks embedded chunks by cosine similarity against the query
// embedding. The query embedding is memoized per distinct normalized query.
// document_id and semantic_type filters are applied before scoring;
// min_similarity afterwards as a score floor. Chunks without an embedding are
// excluded here but remain visible to every other strategy.
func (e *Engine) searchSemantic(ctx context.Context, qc *queryContext) ([]*types.QueryResult, error) {
	if e.embedder == nil {
		return nil, ErrEmbedderRequired
	}

	queryVector, ok := e.embeddings.Get(qc.normalized)
	if !ok {
		vector, err := e.embedder.EmbedSingle(ctx, qc.normalized)
		if err != nil {
			return nil, fmt.Errorf("failed to embed query: %w", err)
		}
		e.embeddings.Put(qc.normalized, vector)
		queryVector = vector
	}

	graphs, err := e.store.Graphs(ctx)
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}

	var results []*types.QueryResult
	for _, graph := range graphs {
		if qc.filters.DocumentID != "" && graph.DocumentID != qc.filters.DocumentID {
			continue
		}
		for _, chunk := range graph.Chunks {
			if !chunk.HasEmbedding() {
				continue
			}
			if qc.filters.SemanticType != "" && chunk.SemanticType != qc.filters.SemanticType {
				continue
			}

			similarity := clampScore(cosineSimilarity(queryVector, chunk.Embedding))
			if qc.filters.MinSimilarity > 0 && similarity < qc.filters.MinSimilarity {
				continue
			}

			results = append(results, &types.QueryResult{
				ID:             chunk.ID,
				Type:           types.ResultTypeChunk,
				Content:        truncateText(chunk.Text, previewLength),
				RelevanceScore: similarity,
				SourceDocument: graph.DocumentID,
				SourceChunkIDs: []string{chunk.ID},
				Metadata: map[string]any{
					"full_text":        chunk.Text,
					"page_number":      chunk.PageNumber,
					"token_count":      chunk.TokenCount,
					"semantic_type":    chunk.SemanticType,
					"related_entities": relatedEntityNames(graph, chunk.ID),
					"relationship_ids": chunk.RelationshipIDs,
				},
			})
		}
	}

	sortByRelevance(results)
	return truncateResults(results, qc.limit), nil
}

// relatedEntityNames lists entities whose chunk references include chunkID.
func relatedEntityNames(graph *types.KnowledgeGraph, chunkID string) []string {
	var names []string
	for _, entity := range graph.Entities {
		for _, id := range entity.SourceChunkIDs {
			if id == chunkID {
				names = append(names, entity.Name)
				break
			}
		}
	}
	return names
}
