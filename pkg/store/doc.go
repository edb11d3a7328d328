// Package store provides read-only access to the ingested corpus: the
// per-document knowledge graphs, the merged global entity index, and the
// precomputed cross-document relationship set.
//
// Two implementations are provided: MemoryStore, populated from a YAML corpus
// snapshot or directly by the ingestion collaborator, and Neo4jStore, which
// reads a corpus ingested into Neo4j. Both are safe for concurrent readers;
// neither is written to by the query engine.
package store
