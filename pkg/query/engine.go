package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lexgraph/lexgraph/pkg/embedder"
	"github.com/lexgraph/lexgraph/pkg/graph"
	"github.com/lexgraph/lexgraph/pkg/store"
	"github.com/lexgraph/lexgraph/pkg/types"
)

// Configuration errors. These are fatal: substituting a keyword heuristic for
// vector similarity or path finding would mislabel results, which is worse
// than failing loudly.
var (
	// ErrEmbedderRequired is returned when a semantic query runs without an
	// embedding provider.
	ErrEmbedderRequired = errors.New("semantic search requires an embedding provider")
	// ErrPathFinderRequired is returned when a traversal query runs without a
	// path finder.
	ErrPathFinderRequired = errors.New("graph traversal requires a path finder")
)

// DefaultMaxResults is the result limit applied when the caller passes nil
// options.
const DefaultMaxResults = 20

// previewLength bounds the chunk text carried in semantic result content;
// the full text stays in result metadata.
const previewLength = 200

// QueryOptions customizes one query. A zero MaxResults is rejected rather
// than defaulted, so passing options always states the limit explicitly.
type QueryOptions struct {
	// Type overrides the classifier. Must be one of the six query types.
	Type types.QueryType
	// Filters constrain the selected strategy.
	Filters *types.QueryFilters
	// MaxResults bounds the result list. Must be positive.
	MaxResults int
}

type strategyFunc func(ctx context.Context, qc *queryContext) ([]*types.QueryResult, error)

// queryContext carries one query's state through a strategy.
type queryContext struct {
	raw        string
	normalized string
	words      []string
	filters    *types.QueryFilters
	limit      int
}

// Engine dispatches natural-language queries to one of six retrieval
// strategies over an injected read-only graph store. All state is held on the
// engine instance; there are no package-level globals.
type Engine struct {
	store      store.GraphStore
	embedder   embedder.Client
	paths      graph.PathFinder
	names      NameExtractor
	logger     *slog.Logger
	responses  responseCache
	embeddings *embeddingCache
	strategies map[types.QueryType]strategyFunc
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCacheSize bounds the response cache to n entries with LRU eviction.
// The default cache grows for the process lifetime.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		if cache, err := newLRUResponseCache(n); err == nil {
			e.responses = cache
		}
	}
}

// WithNameExtractor replaces the capitalization heuristic used by graph
// traversal to pick candidate entity names out of the raw query.
func WithNameExtractor(extractor NameExtractor) Option {
	return func(e *Engine) {
		if extractor != nil {
			e.names = extractor
		}
	}
}

// NewEngine creates a query engine over the given store. The embedder and
// path finder may be nil; the strategies that require them fail with a
// configuration error instead.
func NewEngine(graphStore store.GraphStore, embedderClient embedder.Client, pathFinder graph.PathFinder, opts ...Option) *Engine {
	e := &Engine{
		store:      graphStore,
		embedder:   embedderClient,
		paths:      pathFinder,
		names:      &CapitalizedNameExtractor{},
		logger:     slog.Default(),
		responses:  newMapResponseCache(),
		embeddings: newEmbeddingCache(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.strategies = map[types.QueryType]strategyFunc{
		types.QueryTypeEntity:         e.searchEntities,
		types.QueryTypeRelationship:   e.searchRelationships,
		types.QueryTypeSemantic:       e.searchSemantic,
		types.QueryTypeDocument:       e.searchDocuments,
		types.QueryTypeCrossDocument:  e.searchCrossDocument,
		types.QueryTypeGraphTraversal: e.searchGraphTraversal,
	}
	return e
}

// Query answers one natural-language query. Validation failures (empty text,
// invalid explicit type, non-positive max_results) return before any
// retrieval work happens.
func (e *Engine) Query(ctx context.Context, text string, opts *QueryOptions) (*types.QueryResponse, error) {
	start := time.Now()

	if opts == nil {
		opts = &QueryOptions{MaxResults: DefaultMaxResults}
	}
	if opts.MaxResults <= 0 {
		return nil, fmt.Errorf("%w: got %d", types.ErrInvalidLimit, opts.MaxResults)
	}
	if opts.Type != "" && !opts.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidQueryType, opts.Type)
	}

	normalized, err := Normalize(text)
	if err != nil {
		return nil, err
	}

	filters := opts.Filters
	if filters == nil {
		filters = &types.QueryFilters{}
	}

	queryType := opts.Type
	if queryType == "" {
		queryType = Classify(normalized, text)
	}
	// Strategy logs run under a context carrying the resolved type, so
	// context-aware log sinks can attribute records to it.
	ctx = context.WithValue(ctx, types.ContextKeyQueryType, string(queryType))

	key := cacheKey(queryType, normalized, filters, opts.MaxResults)
	if cached, ok := e.responses.Get(key); ok {
		return cacheHitCopy(cached), nil
	}

	strategy, ok := e.strategies[queryType]
	if !ok {
		strategy = e.strategies[types.QueryTypeSemantic]
	}

	qc := &queryContext{
		raw:        text,
		normalized: normalized,
		words:      strings.Fields(normalized),
		filters:    filters,
		limit:      opts.MaxResults,
	}
	results, err := strategy(ctx, qc)
	if err != nil {
		return nil, err
	}

	var suggestions []string
	if len(results) > 0 {
		suggestions, err = Suggestions(results)
		if err != nil {
			return nil, err
		}
	}

	response := &types.QueryResponse{
		Query:          text,
		QueryType:      queryType,
		Results:        results,
		TotalResults:   len(results),
		ProcessingTime: time.Since(start).Seconds(),
		Suggestions:    suggestions,
		Metadata: map[string]any{
			types.MetaNormalizedQuery: normalized,
			types.MetaFilters:         filters,
			types.MetaTimestamp:       time.Now().UTC().Format(time.RFC3339),
			types.MetaCacheHit:        false,
		},
	}
	e.responses.Put(key, response)
	return response, nil
}

// cacheHitCopy returns the cached response with only the cache-hit flag
// flipped. The cached object itself is never mutated.
func cacheHitCopy(cached *types.QueryResponse) *types.QueryResponse {
	response := *cached
	metadata := make(map[string]any, len(cached.Metadata)+1)
	for k, v := range cached.Metadata {
		metadata[k] = v
	}
	metadata[types.MetaCacheHit] = true
	response.Metadata = metadata
	return &response
}
