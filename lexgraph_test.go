package lexgraph_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexgraph/lexgraph"
	"github.com/lexgraph/lexgraph/pkg/query"
	"github.com/lexgraph/lexgraph/pkg/store"
	"github.com/lexgraph/lexgraph/pkg/types"
)

func newTestClient(t *testing.T) *lexgraph.Client {
	t.Helper()

	s := store.NewMemoryStore()
	s.AddGraph(&types.KnowledgeGraph{
		DocumentID: "doc-tech",
		Metadata:   map[string]any{"title": "Tech Founders"},
		Entities: []*types.Entity{
			{
				ID: "e-gates", Name: "Bill Gates", Type: "person",
				Description: "Co-founder of Microsoft", Confidence: 0.95,
				SourceChunkIDs: []string{"c-1"},
			},
			{
				ID: "e-msft", Name: "Microsoft", Type: "organization",
				Description: "Technology company founded by Bill Gates", Confidence: 0.9,
				SourceChunkIDs: []string{"c-1"},
			},
		},
		Relationships: []*types.Relationship{
			{
				ID: "r-1", SourceEntityID: "e-gates", TargetEntityID: "e-msft",
				Type: "founded", Confidence: 0.9, SourceChunkIDs: []string{"c-1"},
			},
		},
		Chunks: []*types.Chunk{
			{ID: "c-1", DocumentID: "doc-tech", Text: "Bill Gates founded Microsoft."},
		},
	})

	client, err := lexgraph.NewClient(s, nil, nil, nil, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return client
}

func TestClientQuery(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	resp, err := client.Query(context.Background(), "Who is Bill Gates?", nil)
	require.NoError(t, err)

	assert.Equal(t, types.QueryTypeEntity, resp.QueryType)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "e-gates", resp.Results[0].ID)
	assert.Contains(t, resp.Suggestions, "What is Bill Gates?")
	// Microsoft scores through its description mentioning Bill Gates, so a
	// follow-up lookup for the related entity is offered.
	assert.Contains(t, resp.Suggestions, "What is Microsoft?")
}

func TestClientQueryProperNoun(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	// A bare capitalized name classifies as an entity lookup.
	resp, err := client.Query(context.Background(), "Bill Gates", nil)
	require.NoError(t, err)
	assert.Equal(t, types.QueryTypeEntity, resp.QueryType)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "e-gates", resp.Results[0].ID)
}

func TestClientTraversalThroughDefaultPathFinder(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	// NewClient was given a nil path finder, so the built-in BFS finder
	// answers traversal queries.
	resp, err := client.Query(context.Background(), "How is Bill Gates linked to Microsoft?", nil)
	require.NoError(t, err)
	assert.Equal(t, types.QueryTypeGraphTraversal, resp.QueryType)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Bill Gates → founded → Microsoft", resp.Results[0].Content)
	assert.InDelta(t, 1.0, resp.Results[0].RelevanceScore, 1e-9)
}

func TestClientQueryOptions(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	resp, err := client.Query(context.Background(), "Microsoft founders", &query.QueryOptions{
		Type:       types.QueryTypeEntity,
		Filters:    &types.QueryFilters{EntityType: "organization"},
		MaxResults: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "e-msft", resp.Results[0].ID)
}

func TestClientAnalytics(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	assert.Equal(t, map[string]any{"message": "No query data available"}, client.QueryAnalytics())

	_, err := client.Query(context.Background(), "Who is Bill Gates?", nil)
	require.NoError(t, err)

	analytics := client.QueryAnalytics()
	assert.Equal(t, 1, analytics["total_queries"])
}

func TestClientClose(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)
	require.NoError(t, client.Close())
}
