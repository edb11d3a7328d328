package types

import "encoding/json"

// QueryType identifies the retrieval strategy a query is routed to.
type QueryType string

const (
	// QueryTypeEntity looks up entities by keyword scoring.
	QueryTypeEntity QueryType = "entity"
	// QueryTypeRelationship looks up relationships by keyword scoring.
	QueryTypeRelationship QueryType = "relationship"
	// QueryTypeSemantic performs vector similarity over chunk embeddings.
	QueryTypeSemantic QueryType = "semantic"
	// QueryTypeDocument scores whole documents against the query.
	QueryTypeDocument QueryType = "document"
	// QueryTypeCrossDocument searches relationships spanning two documents.
	QueryTypeCrossDocument QueryType = "cross_document"
	// QueryTypeGraphTraversal finds connecting paths between named entities.
	QueryTypeGraphTraversal QueryType = "graph_traversal"
)

// AllQueryTypes lists every valid query type in classifier precedence order.
var AllQueryTypes = []QueryType{
	QueryTypeEntity,
	QueryTypeRelationship,
	QueryTypeCrossDocument,
	QueryTypeGraphTraversal,
	QueryTypeDocument,
	QueryTypeSemantic,
}

// Valid reports whether qt is one of the six known query types.
func (qt QueryType) Valid() bool {
	switch qt {
	case QueryTypeEntity, QueryTypeRelationship, QueryTypeSemantic,
		QueryTypeDocument, QueryTypeCrossDocument, QueryTypeGraphTraversal:
		return true
	}
	return false
}

// ResultType tags the kind of item a QueryResult describes.
type ResultType string

const (
	ResultTypeEntity        ResultType = "entity"
	ResultTypeRelationship  ResultType = "relationship"
	ResultTypeChunk         ResultType = "chunk"
	ResultTypeDocument      ResultType = "document"
	ResultTypeCrossDocument ResultType = "cross_document_relationship"
	ResultTypeGraphPath     ResultType = "graph_path"
)

// Sentinel values for QueryResult.SourceDocument when a result cannot be
// attributed to exactly one document.
const (
	SourceDocumentMultiple = "multiple"
	SourceDocumentUnknown  = "unknown"
)

// QueryFilters constrains a retrieval strategy. All fields are optional; each
// strategy reads only the fields that apply to it.
type QueryFilters struct {
	// Entity strategy
	EntityType string `json:"entity_type,omitempty" yaml:"entity_type,omitempty"`
	DocumentID string `json:"document_id,omitempty" yaml:"document_id,omitempty"`

	// Relationship strategy
	RelationshipType string `json:"relationship_type,omitempty" yaml:"relationship_type,omitempty"`
	EntityID         string `json:"entity_id,omitempty" yaml:"entity_id,omitempty"`

	// Semantic strategy
	SemanticType  string  `json:"semantic_type,omitempty" yaml:"semantic_type,omitempty"`
	MinSimilarity float64 `json:"min_similarity,omitempty" yaml:"min_similarity,omitempty"`

	// Cross-document strategy
	SourceDocument string  `json:"source_document,omitempty" yaml:"source_document,omitempty"`
	TargetDocument string  `json:"target_document,omitempty" yaml:"target_document,omitempty"`
	MinConfidence  float64 `json:"min_confidence,omitempty" yaml:"min_confidence,omitempty"`

	// Graph traversal strategy
	MaxPathLength            int      `json:"max_path_length,omitempty" yaml:"max_path_length,omitempty"`
	AllowedEntityTypes       []string `json:"allowed_entity_types,omitempty" yaml:"allowed_entity_types,omitempty"`
	AllowedRelationshipTypes []string `json:"allowed_relationship_types,omitempty" yaml:"allowed_relationship_types,omitempty"`
	MinEdgeConfidence        float64  `json:"min_edge_confidence,omitempty" yaml:"min_edge_confidence,omitempty"`
}

// Key returns a deterministic serialization used as part of the cache key.
// Struct field order is fixed, so JSON marshaling is stable.
func (f *QueryFilters) Key() string {
	if f == nil {
		return "{}"
	}
	data, err := json.Marshal(f)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// QueryResult is one retrieved item, scored and attributed to its source.
type QueryResult struct {
	ID             string         `json:"id"`
	Type           ResultType     `json:"type"`
	Content        string         `json:"content"`
	RelevanceScore float64        `json:"relevance_score"`
	SourceDocument string         `json:"source_document"`
	SourceChunkIDs []string       `json:"source_chunk_ids,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// QueryResponse is the assembled answer to one query. Once cached it is never
// mutated; a cache hit returns the stored results with only the cache_hit
// metadata flag flipped.
type QueryResponse struct {
	Query          string         `json:"query"`
	QueryType      QueryType      `json:"query_type"`
	Results        []*QueryResult `json:"results"`
	TotalResults   int            `json:"total_results"`
	ProcessingTime float64        `json:"processing_time"`
	Suggestions    []string       `json:"suggestions,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Metadata keys set by the response assembler.
const (
	MetaNormalizedQuery = "normalized_query"
	MetaFilters         = "filters"
	MetaTimestamp       = "timestamp"
	MetaCacheHit        = "cache_hit"
)
