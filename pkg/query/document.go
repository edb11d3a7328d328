package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// documentChunkSample bounds how many leading chunks contribute to document
// scoring, so cost stays proportional to the corpus, not document length.
const documentChunkSample = 10

// documentEntityPreview is how many leading entity names the synthesized
// summary lists.
const documentEntityPreview = 5

// searchDocuments treats each knowledge graph as one document. Score =
// 3×title-word overlap + 1 per entity whose name overlaps the query + 0.1 per
// word overlap across the document's first chunks.
func (e *Engine) searchDocuments(ctx context.Context, qc *queryContext) ([]*types.QueryResult, error) {
	graphs, err := e.store.Graphs(ctx)
	if err != nil {
		return nil, fmt.Errorf("document search: %w", err)
	}

	var results []*types.QueryResult
	for _, graph := range graphs {
		score := scoreDocument(graph, qc)
		if score == 0 {
			continue
		}

		var chunkRefs []string
		for i, chunk := range graph.Chunks {
			if i >= 3 {
				break
			}
			chunkRefs = append(chunkRefs, chunk.ID)
		}

		results = append(results, &types.QueryResult{
			ID:             graph.DocumentID,
			Type:           types.ResultTypeDocument,
			Content:        documentSummary(graph),
			RelevanceScore: clampScore(score / 10),
			SourceDocument: graph.DocumentID,
			SourceChunkIDs: chunkRefs,
			Metadata: map[string]any{
				"title":              graph.Title(),
				"graph_id":           graph.GraphID,
				"entity_count":       len(graph.Entities),
				"relationship_count": len(graph.Relationships),
				"chunk_count":        len(graph.Chunks),
			},
		})
	}

	sortByRelevance(results)
	return truncateResults(results, qc.limit), nil
}

func scoreDocument(graph *types.KnowledgeGraph, qc *queryContext) float64 {
	score := 3 * float64(overlapCount(qc.words, wordSet(graph.Title())))

	for _, entity := range graph.Entities {
		if overlapCount(qc.words, wordSet(entity.Name)) > 0 {
			score++
		}
	}

	for i, chunk := range graph.Chunks {
		if i >= documentChunkSample {
			break
		}
		score += 0.1 * float64(overlapCount(qc.words, wordSet(chunk.Text)))
	}
	return score
}

// documentSummary synthesizes a short description: title, element counts, and
// up to five leading entity names.
func documentSummary(graph *types.KnowledgeGraph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s — %d entities, %d relationships, %d chunks.",
		graph.Title(), len(graph.Entities), len(graph.Relationships), len(graph.Chunks))

	if len(graph.Entities) > 0 {
		names := make([]string, 0, documentEntityPreview)
		for i, entity := range graph.Entities {
			if i >= documentEntityPreview {
				break
			}
			names = append(names, entity.Name)
		}
		fmt.Fprintf(&sb, " Key entities: %s.", strings.Join(names, ", "))
	}
	return sb.String()
}
