package query

import (
	"context"
	"fmt"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// searchCrossDocument operates over the precomputed cross-document
// relationship set. Score = word overlap on both endpoint entity names +
// 2×overlap on the relationship-type words. A relationship whose endpoint is
// missing from the global entity index is skipped with a logged warning; the
// rest of the query still returns. source_document is always "multiple", and
// evidence chunk references are aggregated from both sides.
func (e *Engine) searchCrossDocument(ctx context.Context, qc *queryContext) ([]*types.QueryResult, error) {
	rels, err := e.store.CrossDocumentRelationships(ctx)
	if err != nil {
		return nil, fmt.Errorf("cross-document search: %w", err)
	}
	index, err := e.store.EntityIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("cross-document search: %w", err)
	}

	var results []*types.QueryResult
	for _, rel := range rels {
		if qc.filters.SourceDocument != "" && rel.SourceDocumentID != qc.filters.SourceDocument {
			continue
		}
		if qc.filters.TargetDocument != "" && rel.TargetDocumentID != qc.filters.TargetDocument {
			continue
		}
		if qc.filters.RelationshipType != "" && rel.Type != qc.filters.RelationshipType {
			continue
		}
		if qc.filters.MinConfidence > 0 && rel.Confidence < qc.filters.MinConfidence {
			continue
		}

		source, sourceOK := index[rel.SourceEntityID]
		target, targetOK := index[rel.TargetEntityID]
		if !sourceOK || !targetOK {
			e.logger.WarnContext(ctx, "skipping cross-document relationship with unresolved endpoint",
				"relationship_id", rel.ID,
				"source_entity_id", rel.SourceEntityID,
				"target_entity_id", rel.TargetEntityID)
			continue
		}

		relWords := relationshipWords(rel.Type)
		score := float64(overlapCount(qc.words, wordSet(source.Name)) +
			overlapCount(qc.words, wordSet(target.Name)) +
			2*overlapCount(qc.words, wordSet(relWords)))
		if score == 0 {
			continue
		}

		evidence := make([]string, 0, len(rel.SourceEvidenceChunkIDs)+len(rel.TargetEvidenceChunkIDs))
		evidence = append(evidence, rel.SourceEvidenceChunkIDs...)
		evidence = append(evidence, rel.TargetEvidenceChunkIDs...)

		results = append(results, &types.QueryResult{
			ID:             rel.ID,
			Type:           types.ResultTypeCrossDocument,
			Content:        fmt.Sprintf("%s %s %s (across documents)", source.Name, relWords, target.Name),
			RelevanceScore: clampScore(score / 10),
			SourceDocument: types.SourceDocumentMultiple,
			SourceChunkIDs: evidence,
			Metadata: map[string]any{
				"relationship_type":  rel.Type,
				"source_entity":      source.Name,
				"target_entity":      target.Name,
				"source_document_id": rel.SourceDocumentID,
				"target_document_id": rel.TargetDocumentID,
				"confidence":         rel.Confidence,
			},
		})
	}

	sortByRelevance(results)
	return truncateResults(results, qc.limit), nil
}
