package lexgraph

import (
	"context"
	"log/slog"

	"github.com/lexgraph/lexgraph/pkg/embedder"
	"github.com/lexgraph/lexgraph/pkg/graph"
	"github.com/lexgraph/lexgraph/pkg/query"
	"github.com/lexgraph/lexgraph/pkg/store"
	"github.com/lexgraph/lexgraph/pkg/types"
)

// Config holds configuration for the lexgraph client.
type Config struct {
	// CacheSize bounds the response cache. Zero means unbounded.
	CacheSize int
	// NameExtractor overrides the entity-name heuristic used by graph
	// traversal queries.
	NameExtractor query.NameExtractor
}

// Client is the top-level entry point: it answers natural-language queries
// over a knowledge-graph store and reports usage analytics.
type Client struct {
	store    store.GraphStore
	embedder embedder.Client
	engine   *query.Engine
	logger   *slog.Logger
}

// NewClient creates a client over the given store. The embedder and path
// finder may be nil; query types that need them return a configuration error.
// When pathFinder is nil a BFS path finder over the store is used.
func NewClient(graphStore store.GraphStore, embedderClient embedder.Client, pathFinder graph.PathFinder, config *Config, logger *slog.Logger) (*Client, error) {
	if config == nil {
		config = &Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if pathFinder == nil {
		pathFinder = graph.NewBFSPathFinder(graphStore, logger)
	}

	opts := []query.Option{query.WithLogger(logger)}
	if config.CacheSize > 0 {
		opts = append(opts, query.WithCacheSize(config.CacheSize))
	}
	if config.NameExtractor != nil {
		opts = append(opts, query.WithNameExtractor(config.NameExtractor))
	}

	return &Client{
		store:    graphStore,
		embedder: embedderClient,
		engine:   query.NewEngine(graphStore, embedderClient, pathFinder, opts...),
		logger:   logger,
	}, nil
}

// Query answers one natural-language query. Options may be nil for automatic
// classification and the default result limit.
func (c *Client) Query(ctx context.Context, text string, opts *query.QueryOptions) (*types.QueryResponse, error) {
	return c.engine.Query(ctx, text, opts)
}

// QueryAnalytics summarizes the queries answered so far.
func (c *Client) QueryAnalytics() map[string]any {
	return c.engine.Analytics()
}

// Store returns the underlying graph store.
func (c *Client) Store() store.GraphStore {
	return c.store
}

// Close releases the embedder connection, if any.
func (c *Client) Close() error {
	if c.embedder != nil {
		return c.embedder.Close()
	}
	return nil
}
