package types

import (
	"errors"
	"time"
)

// Validation errors
var (
	ErrEmptyQuery           = errors.New("query cannot be empty")
	ErrInvalidQueryType     = errors.New("invalid query type")
	ErrInvalidLimit         = errors.New("max_results must be positive")
	ErrNoResults            = errors.New("cannot derive suggestions from zero results")
	ErrInsufficientEntities = errors.New("graph traversal requires at least two resolved entities")
)

// Entity is a named concept extracted from one source document. Entities are
// immutable once extracted; the query engine only reads them.
type Entity struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Type           string         `json:"type" yaml:"type"`
	Description    string         `json:"description,omitempty" yaml:"description,omitempty"`
	Confidence     float64        `json:"confidence" yaml:"confidence"`
	Properties     map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
	SourceChunkIDs []string       `json:"source_chunk_ids,omitempty" yaml:"source_chunk_ids,omitempty"`
}

// Relationship connects two entities within a single knowledge graph.
type Relationship struct {
	ID             string         `json:"id" yaml:"id"`
	SourceEntityID string         `json:"source_entity_id" yaml:"source_entity_id"`
	TargetEntityID string         `json:"target_entity_id" yaml:"target_entity_id"`
	Type           string         `json:"type" yaml:"type"`
	Description    string         `json:"description,omitempty" yaml:"description,omitempty"`
	Confidence     float64        `json:"confidence" yaml:"confidence"`
	SourceChunkIDs []string       `json:"source_chunk_ids,omitempty" yaml:"source_chunk_ids,omitempty"`
	Properties     map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Chunk is a unit of extracted document text. A chunk without an embedding is
// excluded from semantic search but still participates in every other strategy.
type Chunk struct {
	ID              string    `json:"id" yaml:"id"`
	Text            string    `json:"text" yaml:"text"`
	Embedding       []float32 `json:"embedding,omitempty" yaml:"embedding,omitempty"`
	DocumentID      string    `json:"document_id" yaml:"document_id"`
	PageNumber      int       `json:"page_number,omitempty" yaml:"page_number,omitempty"`
	TokenCount      int       `json:"token_count,omitempty" yaml:"token_count,omitempty"`
	SemanticType    string    `json:"semantic_type,omitempty" yaml:"semantic_type,omitempty"`
	RelationshipIDs []string  `json:"relationship_ids,omitempty" yaml:"relationship_ids,omitempty"`
}

// HasEmbedding reports whether the chunk carries a precomputed embedding vector.
func (c *Chunk) HasEmbedding() bool {
	return len(c.Embedding) > 0
}

// KnowledgeGraph holds the entities, relationships, and chunks extracted from
// one source document. Graphs are produced by the ingestion pipeline and are
// read-only from the query engine's perspective.
type KnowledgeGraph struct {
	DocumentID    string          `json:"document_id" yaml:"document_id"`
	GraphID       string          `json:"graph_id" yaml:"graph_id"`
	Entities      []*Entity       `json:"entities,omitempty" yaml:"entities,omitempty"`
	Relationships []*Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Chunks        []*Chunk        `json:"chunks,omitempty" yaml:"chunks,omitempty"`
	Metadata      map[string]any  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Title returns the document title from graph metadata, or the document id
// when no title was recorded.
func (g *KnowledgeGraph) Title() string {
	if g.Metadata != nil {
		if title, ok := g.Metadata["title"].(string); ok && title != "" {
			return title
		}
	}
	return g.DocumentID
}

// CrossDocumentRelationship is a relationship whose endpoints originate from
// two different knowledge graphs. It carries evidence chunk references from
// both sides. Produced upstream; consumed read-only.
type CrossDocumentRelationship struct {
	ID                     string         `json:"id" yaml:"id"`
	SourceEntityID         string         `json:"source_entity_id" yaml:"source_entity_id"`
	TargetEntityID         string         `json:"target_entity_id" yaml:"target_entity_id"`
	Type                   string         `json:"type" yaml:"type"`
	Description            string         `json:"description,omitempty" yaml:"description,omitempty"`
	Confidence             float64        `json:"confidence" yaml:"confidence"`
	SourceDocumentID       string         `json:"source_document_id" yaml:"source_document_id"`
	TargetDocumentID       string         `json:"target_document_id" yaml:"target_document_id"`
	SourceEvidenceChunkIDs []string       `json:"source_evidence_chunk_ids,omitempty" yaml:"source_evidence_chunk_ids,omitempty"`
	TargetEvidenceChunkIDs []string       `json:"target_evidence_chunk_ids,omitempty" yaml:"target_evidence_chunk_ids,omitempty"`
	Properties             map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}
