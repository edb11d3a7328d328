package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexgraph/lexgraph/pkg/query"
	"github.com/lexgraph/lexgraph/pkg/types"
)

func TestQueryValidation(t *testing.T) {
	t.Parallel()
	engine := newFixtureEngine(t)

	t.Run("empty query", func(t *testing.T) {
		_, err := engine.Query(context.Background(), "   ", nil)
		require.ErrorIs(t, err, types.ErrEmptyQuery)
	})

	t.Run("invalid explicit type", func(t *testing.T) {
		_, err := engine.Query(context.Background(), "What is Microsoft?", &query.QueryOptions{
			Type:       "keyword",
			MaxResults: 10,
		})
		require.ErrorIs(t, err, types.ErrInvalidQueryType)
	})

	t.Run("non-positive max results", func(t *testing.T) {
		_, err := engine.Query(context.Background(), "What is Microsoft?", &query.QueryOptions{
			Type:       types.QueryTypeEntity,
			MaxResults: -1,
		})
		require.ErrorIs(t, err, types.ErrInvalidLimit)

		_, err = engine.Query(context.Background(), "What is Microsoft?", &query.QueryOptions{
			Type: types.QueryTypeEntity,
		})
		require.ErrorIs(t, err, types.ErrInvalidLimit)
	})
}

func TestQueryMaxResultsBoundary(t *testing.T) {
	t.Parallel()
	engine := newFixtureEngine(t)

	resp, err := engine.Query(context.Background(), "What is Microsoft?", &query.QueryOptions{
		MaxResults: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	// The single surviving result is the best-scored one.
	assert.Equal(t, "e-msft", resp.Results[0].ID)
	assert.Equal(t, 1, resp.TotalResults)
}

func TestQueryResponseMetadata(t *testing.T) {
	t.Parallel()
	engine := newFixtureEngine(t)

	resp, err := engine.Query(context.Background(), "What is Microsoft?", nil)
	require.NoError(t, err)

	assert.Equal(t, "What is Microsoft?", resp.Query)
	assert.Equal(t, "what is microsoft", resp.Metadata[types.MetaNormalizedQuery])
	assert.Equal(t, false, resp.Metadata[types.MetaCacheHit])
	assert.NotEmpty(t, resp.Metadata[types.MetaTimestamp])
	assert.Equal(t, len(resp.Results), resp.TotalResults)
	assert.GreaterOrEqual(t, resp.ProcessingTime, 0.0)
}

func TestQueryCache(t *testing.T) {
	t.Parallel()
	engine := newFixtureEngine(t)

	first, err := engine.Query(context.Background(), "What is Microsoft?", nil)
	require.NoError(t, err)
	assert.Equal(t, false, first.Metadata[types.MetaCacheHit])

	second, err := engine.Query(context.Background(), "What is Microsoft?", nil)
	require.NoError(t, err)
	assert.Equal(t, true, second.Metadata[types.MetaCacheHit])

	// The cached answer is returned verbatim apart from the cache-hit flag.
	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, first.QueryType, second.QueryType)
	assert.Equal(t, first.Suggestions, second.Suggestions)
	assert.Equal(t, first.ProcessingTime, second.ProcessingTime)

	// The stored response itself is not mutated by the hit.
	third, err := engine.Query(context.Background(), "What is Microsoft?", nil)
	require.NoError(t, err)
	assert.Equal(t, true, third.Metadata[types.MetaCacheHit])
	assert.Equal(t, false, first.Metadata[types.MetaCacheHit])
}

func TestQueryCacheKeyComponents(t *testing.T) {
	t.Parallel()
	engine := newFixtureEngine(t)

	base, err := engine.Query(context.Background(), "What is Microsoft?", nil)
	require.NoError(t, err)
	assert.Equal(t, false, base.Metadata[types.MetaCacheHit])

	// Same normalized text but a different limit is a distinct cache entry.
	differentLimit, err := engine.Query(context.Background(), "What is Microsoft?", &query.QueryOptions{
		MaxResults: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, false, differentLimit.Metadata[types.MetaCacheHit])

	// Different filters likewise.
	differentFilters, err := engine.Query(context.Background(), "What is Microsoft?", &query.QueryOptions{
		Filters:    &types.QueryFilters{EntityType: "person"},
		MaxResults: query.DefaultMaxResults,
	})
	require.NoError(t, err)
	assert.Equal(t, false, differentFilters.Metadata[types.MetaCacheHit])

	// Punctuation and case differences normalize to the same entry.
	normalizedHit, err := engine.Query(context.Background(), "what is microsoft", nil)
	require.NoError(t, err)
	assert.Equal(t, true, normalizedHit.Metadata[types.MetaCacheHit])
}

func TestQueryBoundedCacheEvicts(t *testing.T) {
	t.Parallel()
	engine := newFixtureEngine(t, query.WithCacheSize(1))

	_, err := engine.Query(context.Background(), "What is Microsoft?", nil)
	require.NoError(t, err)

	// A second distinct query evicts the first from the single-slot cache.
	_, err = engine.Query(context.Background(), "Who is Bill Gates?", nil)
	require.NoError(t, err)

	again, err := engine.Query(context.Background(), "What is Microsoft?", nil)
	require.NoError(t, err)
	assert.Equal(t, false, again.Metadata[types.MetaCacheHit])
}

func TestSuggestions(t *testing.T) {
	t.Parallel()
	engine := newFixtureEngine(t)

	resp, err := engine.Query(context.Background(), "Who founded Microsoft?", nil)
	require.NoError(t, err)

	require.NotEmpty(t, resp.Suggestions)
	assert.LessOrEqual(t, len(resp.Suggestions), 5)
	assert.Contains(t, resp.Suggestions, "What is Bill Gates?")

	// No duplicates.
	seen := make(map[string]bool)
	for _, s := range resp.Suggestions {
		assert.False(t, seen[s], "duplicate suggestion %q", s)
		seen[s] = true
	}
}

func TestSuggestionsEmptyResults(t *testing.T) {
	t.Parallel()

	_, err := query.Suggestions(nil)
	require.ErrorIs(t, err, types.ErrNoResults)
}

func TestSuggestionsMultipleDocuments(t *testing.T) {
	t.Parallel()

	results := []*types.QueryResult{
		{ID: "a", SourceDocument: "doc-1", Metadata: map[string]any{}},
		{ID: "b", SourceDocument: "doc-2", Metadata: map[string]any{}},
	}
	suggestions, err := query.Suggestions(results)
	require.NoError(t, err)
	assert.Contains(t, suggestions, "Compare these documents")
	assert.Contains(t, suggestions, "Find cross-document relationships")
}

func TestSuggestionsIgnoreResultsBeyondTopFive(t *testing.T) {
	t.Parallel()

	// Only the top five results feed suggestions; a relationship type or a
	// second document first appearing at rank six contributes nothing.
	results := []*types.QueryResult{
		{ID: "a", SourceDocument: "doc-1", Metadata: map[string]any{"entity_name": "Alpha"}},
		{ID: "b", SourceDocument: "doc-1", Metadata: map[string]any{}},
		{ID: "c", SourceDocument: "doc-1", Metadata: map[string]any{}},
		{ID: "d", SourceDocument: "doc-1", Metadata: map[string]any{}},
		{ID: "e", SourceDocument: "doc-1", Metadata: map[string]any{}},
		{ID: "f", SourceDocument: "doc-2", Metadata: map[string]any{"relationship_type": "acquired"}},
	}
	suggestions, err := query.Suggestions(results)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"What is Alpha?",
		"What are the relationships of Alpha?",
	}, suggestions)
}

func TestSuggestionsRelationshipType(t *testing.T) {
	t.Parallel()

	results := []*types.QueryResult{
		{ID: "a", Metadata: map[string]any{"relationship_type": "works_for"}},
	}
	suggestions, err := query.Suggestions(results)
	require.NoError(t, err)
	assert.Contains(t, suggestions, "Find all works for relationships")
}

func TestAnalyticsEmpty(t *testing.T) {
	t.Parallel()
	engine := newFixtureEngine(t)

	assert.Equal(t, map[string]any{"message": "No query data available"}, engine.Analytics())
}

func TestAnalytics(t *testing.T) {
	t.Parallel()
	engine := newFixtureEngine(t)

	_, err := engine.Query(context.Background(), "What is Microsoft?", nil)
	require.NoError(t, err)
	_, err = engine.Query(context.Background(), "Who founded Microsoft?", nil)
	require.NoError(t, err)
	// Cache hit does not add a second entry for the same query.
	_, err = engine.Query(context.Background(), "What is Microsoft?", nil)
	require.NoError(t, err)

	analytics := engine.Analytics()
	assert.Equal(t, 2, analytics["total_queries"])
	assert.Equal(t, map[string]int{"entity": 1, "relationship": 1}, analytics["query_types"])
	assert.Equal(t, 2, analytics["cache_size"])
	assert.GreaterOrEqual(t, analytics["average_processing_time"].(float64), 0.0)
	assert.Greater(t, analytics["average_results"].(float64), 0.0)
}
