package query

import (
	"math"
	"sort"
	"strings"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// wordSet splits s into a set of lowercase words.
func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(s)) {
		set[strings.Trim(word, punctuation)] = true
	}
	return set
}

// overlapCount counts how many of words appear in set.
func overlapCount(words []string, set map[string]bool) int {
	n := 0
	for _, word := range words {
		if set[word] {
			n++
		}
	}
	return n
}

// relationshipWords renders a relationship-type tag for matching and display;
// underscores are treated as word separators.
func relationshipWords(relType string) string {
	return strings.ToLower(strings.ReplaceAll(relType, "_", " "))
}

// resolveSourceDocument attributes a set of chunk references to a document:
// the single owning document id, "multiple" when the chunks span documents,
// "unknown" when none resolve.
func resolveSourceDocument(chunkIDs []string, chunkDocs map[string]string) string {
	resolved := ""
	for _, chunkID := range chunkIDs {
		docID, ok := chunkDocs[chunkID]
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

// truncateText shortens s to at most n runes, appending an ellipsis when
// anything was cut.
func truncateText(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// cosineSimilarity calculates the cosine similarity between two float32
// vectors. Returns 0 if vectors have different lengths, are empty, or either
// has zero magnitude.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// clampScore caps a normalized score at 1.0.
func clampScore(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

// sortByRelevance orders results non-increasing by relevance score, keeping
// discovery order for ties.
func sortByRelevance(results []*types.QueryResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
}

// truncateResults applies the caller's max_results bound after sorting.
func truncateResults(results []*types.QueryResult, limit int) []*types.QueryResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// chunkDocumentIndex maps every chunk id in the corpus to its owning
// document id.
func chunkDocumentIndex(graphs []*types.KnowledgeGraph) map[string]string {
	index := make(map[string]string)
	for _, graph := range graphs {
		for _, chunk := range graph.Chunks {
			index[chunk.ID] = graph.DocumentID
		}
	}
	return index
}
