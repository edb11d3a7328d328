// Package query implements the retrieval engine: normalization and
// classification of natural-language queries, six retrieval strategies over a
// knowledge-graph store (entity, relationship, semantic, document,
// cross-document, and graph traversal), response and embedding caches,
// follow-up suggestion generation, and usage analytics.
package query
