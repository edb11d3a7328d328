// Package lexgraph answers natural-language queries over document-derived
// knowledge graphs. It classifies each query into one of six retrieval
// strategies (entity, relationship, semantic, document, cross-document, and
// graph traversal), runs the strategy against a pluggable graph store, and
// returns scored results with follow-up suggestions.
//
// The top-level Client wires the pieces together:
//
//	graphStore := store.NewMemoryStore()
//	client, err := lexgraph.NewClient(graphStore, embedderClient, nil, nil, nil)
//	resp, err := client.Query(ctx, "Who is Marie Curie?", nil)
//
// Stores, embedding providers, and path finders are interfaces; see the
// pkg/store, pkg/embedder, and pkg/graph packages for implementations.
package lexgraph
