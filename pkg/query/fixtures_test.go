package query_test

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lexgraph/lexgraph/pkg/store"
	"github.com/lexgraph/lexgraph/pkg/types"
)

// capturingHandler records log records and the query type carried by each
// record's context, so tests can assert on emitted levels and attribution.
type capturingHandler struct {
	mu         sync.Mutex
	records    []slog.Record
	queryTypes []string
}

func (h *capturingHandler) Enabled(ctx context.Context, level slog.Level) bool { return true }

func (h *capturingHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	queryType, _ := ctx.Value(types.ContextKeyQueryType).(string)
	h.queryTypes = append(h.queryTypes, queryType)
	return nil
}

func (h *capturingHandler) contextQueryTypes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.queryTypes...)
}

func (h *capturingHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h *capturingHandler) WithGroup(name string) slog.Handler       { return h }

func (h *capturingHandler) count(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}

// stubEmbedder returns a fixed vector for every input and counts calls.
type stubEmbedder struct {
	vector []float32
	calls  int
	err    error
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = s.vector
	}
	s.calls += len(texts)
	return vectors, nil
}

func (s *stubEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.calls++
	return s.vector, nil
}

func (s *stubEmbedder) Dimensions() int { return len(s.vector) }
func (s *stubEmbedder) Close() error    { return nil }

// newFixtureStore builds a two-document corpus used across the strategy
// tests: a tech-founders document and a philanthropy report, joined by one
// cross-document relationship.
func newFixtureStore() *store.MemoryStore {
	s := store.NewMemoryStore()

	s.AddGraph(&types.KnowledgeGraph{
		DocumentID: "doc-tech",
		GraphID:    "graph-tech",
		Metadata:   map[string]any{"title": "Tech Founders"},
		Entities: []*types.Entity{
			{
				ID: "e-gates", Name: "Bill Gates", Type: "person",
				Description:    "Co-founder of Microsoft and philanthropist",
				Confidence:     0.95,
				SourceChunkIDs: []string{"c-tech-1"},
			},
			{
				ID: "e-msft", Name: "Microsoft", Type: "organization",
				Description:    "Technology software company",
				Confidence:     0.9,
				SourceChunkIDs: []string{"c-tech-1", "c-tech-2"},
			},
			{
				ID: "e-seattle", Name: "Seattle", Type: "location",
				Description:    "City in Washington state",
				Confidence:     0.85,
				SourceChunkIDs: []string{"c-tech-2"},
			},
		},
		Relationships: []*types.Relationship{
			{
				ID: "r-founded", SourceEntityID: "e-gates", TargetEntityID: "e-msft",
				Type: "founded", Description: "Gates founded Microsoft in 1975",
				Confidence: 0.9, SourceChunkIDs: []string{"c-tech-1"},
			},
			{
				ID: "r-located", SourceEntityID: "e-msft", TargetEntityID: "e-seattle",
				Type: "located_in", Confidence: 0.8, SourceChunkIDs: []string{"c-tech-2"},
			},
		},
		Chunks: []*types.Chunk{
			{
				ID: "c-tech-1", DocumentID: "doc-tech", PageNumber: 1, TokenCount: 9,
				Text:      "Bill Gates founded Microsoft in 1975.",
				Embedding: []float32{1, 0, 0},
			},
			{
				ID: "c-tech-2", DocumentID: "doc-tech", PageNumber: 2, TokenCount: 7,
				Text:         "Microsoft is headquartered near Seattle.",
				Embedding:    []float32{0, 1, 0},
				SemanticType: "body",
			},
		},
	})

	s.AddGraph(&types.KnowledgeGraph{
		DocumentID: "doc-phil",
		GraphID:    "graph-phil",
		Metadata:   map[string]any{"title": "Philanthropy Report"},
		Entities: []*types.Entity{
			{
				ID: "e-allen", Name: "Paul Allen", Type: "person",
				Description:    "Co-founder of Microsoft",
				Confidence:     0.9,
				SourceChunkIDs: []string{"c-phil-1"},
			},
			{
				ID: "e-foundation", Name: "Gates Foundation", Type: "organization",
				Description:    "Charitable foundation",
				Confidence:     0.88,
				SourceChunkIDs: []string{"c-phil-1"},
			},
		},
		Chunks: []*types.Chunk{
			{
				ID: "c-phil-1", DocumentID: "doc-phil", PageNumber: 1, TokenCount: 8,
				Text:      "Paul Allen backed several charitable foundations.",
				Embedding: []float32{0.6, 0.8, 0},
			},
		},
	})

	s.AddCrossDocumentRelationship(&types.CrossDocumentRelationship{
		ID:                     "x-cofounders",
		SourceEntityID:         "e-gates",
		TargetEntityID:         "e-allen",
		Type:                   "co_founded_with",
		SourceDocumentID:       "doc-tech",
		TargetDocumentID:       "doc-phil",
		Confidence:             0.85,
		SourceEvidenceChunkIDs: []string{"c-tech-1"},
		TargetEvidenceChunkIDs: []string{"c-phil-1"},
	})

	return s
}
