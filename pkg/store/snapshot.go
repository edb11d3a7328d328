package store

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// Snapshot is the on-disk corpus format produced by the ingestion pipeline:
// one knowledge graph per document plus the precomputed cross-document
// relationship set.
type Snapshot struct {
	Graphs                     []*types.KnowledgeGraph            `yaml:"graphs"`
	CrossDocumentRelationships []*types.CrossDocumentRelationship `yaml:"cross_document_relationships,omitempty"`
}

// LoadSnapshot reads a YAML corpus snapshot from path and returns a populated
// in-memory store.
func LoadSnapshot(path string) (*MemoryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}

// ReadSnapshot decodes a YAML corpus snapshot and returns a populated
// in-memory store.
func ReadSnapshot(r io.Reader) (*MemoryStore, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	s := NewMemoryStore()
	for _, graph := range snap.Graphs {
		s.AddGraph(graph)
	}
	for _, rel := range snap.CrossDocumentRelationships {
		s.AddCrossDocumentRelationship(rel)
	}
	return s, nil
}
