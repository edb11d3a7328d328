package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexgraph/lexgraph/pkg/query"
	"github.com/lexgraph/lexgraph/pkg/types"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want types.QueryType
	}{
		{"who is", "Who is Bill Gates?", types.QueryTypeEntity},
		{"what is", "What is Microsoft?", types.QueryTypeEntity},
		{"organization keyword", "List every organization mentioned", types.QueryTypeEntity},
		{"bare proper noun", "Bill Gates", types.QueryTypeEntity},
		{"founded", "Who founded Microsoft?", types.QueryTypeRelationship},
		{"relationships of", "Show the relationships of Microsoft", types.QueryTypeRelationship},
		{"works for", "Who works for Microsoft?", types.QueryTypeRelationship},
		{"across documents", "Find entities mentioned across documents", types.QueryTypeCrossDocument},
		{"cross-document", "Find cross-document relationships", types.QueryTypeCrossDocument},
		{"compare", "Compare these reports", types.QueryTypeCrossDocument},
		{"path", "Show the path from Gates to Seattle", types.QueryTypeGraphTraversal},
		{"how is", "How is Bill Gates connected to Seattle?", types.QueryTypeGraphTraversal},
		{"document keyword", "Summarize the regulation document", types.QueryTypeDocument},
		{"summary keyword", "Give a summary for each filing", types.QueryTypeDocument},
		{"default semantic", "tax exemptions for nonprofit hospitals", types.QueryTypeSemantic},
		{"person not in personal", "early history of personal computing", types.QueryTypeSemantic},
		{"entity not in identity", "identity theft statistics", types.QueryTypeSemantic},
		{"path not in sympathy", "public sympathy after the merger", types.QueryTypeSemantic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, err := query.Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, query.Classify(normalized, tt.raw),
				"query %q (normalized %q)", tt.raw, normalized)
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	t.Parallel()

	// "who is" (entity) and "related" (relationship) both match; the entity
	// group is checked first.
	normalized, err := query.Normalize("Who is related to Bill Gates?")
	require.NoError(t, err)
	assert.Equal(t, types.QueryTypeEntity, query.Classify(normalized, "Who is related to Bill Gates?"))
}

func TestProperNounCueRequiresShortCapitalizedQuery(t *testing.T) {
	t.Parallel()

	// Lowercase text with no cue words stays semantic.
	normalized, err := query.Normalize("bill gates")
	require.NoError(t, err)
	assert.Equal(t, types.QueryTypeSemantic, query.Classify(normalized, "bill gates"))
}
