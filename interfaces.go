package lexgraph

import (
	"context"

	"github.com/lexgraph/lexgraph/pkg/query"
	"github.com/lexgraph/lexgraph/pkg/types"
)

// Querier answers natural-language queries over a knowledge graph.
type Querier interface {
	Query(ctx context.Context, text string, opts *query.QueryOptions) (*types.QueryResponse, error)
}

// AnalyticsProvider reports aggregate statistics over answered queries.
type AnalyticsProvider interface {
	QueryAnalytics() map[string]any
}

var (
	_ Querier           = (*Client)(nil)
	_ AnalyticsProvider = (*Client)(nil)
)
