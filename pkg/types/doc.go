// Package types defines the shared data model for the lexgraph query engine.
//
// This package contains the fundamental types used throughout lexgraph:
//   - Entity, Relationship, Chunk: elements extracted from one source document
//   - KnowledgeGraph: the per-document container for those elements
//   - CrossDocumentRelationship: a relationship spanning two knowledge graphs
//   - QueryType: the closed enum of retrieval strategies
//   - QueryFilters, QueryResult, QueryResponse: the query API shapes
//
// Knowledge-graph values are produced by the upstream ingestion pipeline and
// treated as immutable by everything in this module.
//
// # Validation
//
// Validation sentinels (ErrEmptyQuery, ErrInvalidQueryType, ErrInvalidLimit,
// ErrNoResults, ErrInsufficientEntities) are defined here so every package can
// test for them with errors.Is.
package types
