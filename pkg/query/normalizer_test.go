package query_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexgraph/lexgraph/pkg/query"
	"github.com/lexgraph/lexgraph/pkg/types"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "lowercases and strips punctuation",
			raw:  "What is Microsoft?",
			want: "what is microsoft",
		},
		{
			name: "strips stop words",
			raw:  "Tell me about the history of Microsoft",
			want: "tell about history microsoft",
		},
		{
			name: "collapses whitespace",
			raw:  "  bill   gates  ",
			want: "bill gates",
		},
		{
			name: "keeps hyphenated terms",
			raw:  "Find cross-document relationships",
			want: "find cross-document relationships",
		},
		{
			name: "all stop words falls back to lowercased text",
			raw:  "The Of And",
			want: "the of and",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := query.Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := query.Normalize(raw)
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrEmptyQuery))
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	t.Parallel()

	first, err := query.Normalize("Who founded Microsoft?")
	require.NoError(t, err)
	second, err := query.Normalize("Who founded Microsoft?")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
