package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexgraph/lexgraph/pkg/types"
)

func TestQueryTypeValid(t *testing.T) {
	t.Parallel()

	for _, qt := range types.AllQueryTypes {
		assert.True(t, qt.Valid(), "expected %q to be valid", qt)
	}
	assert.False(t, types.QueryType("keyword").Valid())
	assert.False(t, types.QueryType("").Valid())
}

func TestQueryFiltersKey(t *testing.T) {
	t.Parallel()

	var nilFilters *types.QueryFilters
	assert.Equal(t, "{}", nilFilters.Key())
	assert.Equal(t, "{}", (&types.QueryFilters{}).Key())

	a := &types.QueryFilters{EntityType: "person", DocumentID: "doc-1"}
	b := &types.QueryFilters{EntityType: "person", DocumentID: "doc-1"}
	assert.Equal(t, a.Key(), b.Key())

	c := &types.QueryFilters{EntityType: "organization"}
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestKnowledgeGraphTitle(t *testing.T) {
	t.Parallel()

	withTitle := &types.KnowledgeGraph{
		DocumentID: "doc-1",
		Metadata:   map[string]any{"title": "Annual Report"},
	}
	assert.Equal(t, "Annual Report", withTitle.Title())

	withoutTitle := &types.KnowledgeGraph{DocumentID: "doc-2"}
	assert.Equal(t, "doc-2", withoutTitle.Title())
}

func TestChunkHasEmbedding(t *testing.T) {
	t.Parallel()

	assert.False(t, (&types.Chunk{}).HasEmbedding())
	assert.True(t, (&types.Chunk{Embedding: []float32{0.1}}).HasEmbedding())
}
