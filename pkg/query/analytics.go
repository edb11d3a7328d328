package query

import "github.com/lexgraph/lexgraph/pkg/types"

// Analytics summarizes the cached query history: totals, per-type counts, and
// mean processing time and result count. With an empty cache it returns only
// an explanatory message.
func (e *Engine) Analytics() map[string]any {
	total := e.responses.Len()
	if total == 0 {
		return map[string]any{"message": "No query data available"}
	}

	typeCounts := make(map[string]int)
	var totalSeconds float64
	var totalResults int
	e.responses.Each(func(resp *types.QueryResponse) {
		typeCounts[string(resp.QueryType)]++
		totalSeconds += resp.ProcessingTime
		totalResults += resp.TotalResults
	})

	return map[string]any{
		"total_queries":           total,
		"query_types":             typeCounts,
		"average_processing_time": totalSeconds / float64(total),
		"average_results":         float64(totalResults) / float64(total),
		"cache_size":              e.responses.Len(),
		"embedding_cache_size":    e.embeddings.Len(),
	}
}
