// Package embedder provides text embedding clients for vector representations.
//
// This package defines the Client interface and provides implementations for
// the OpenAI embeddings API (and compatible endpoints) and for local
// EmbedEverything models, plus a circuit-breaking wrapper for remote
// providers.
package embedder
