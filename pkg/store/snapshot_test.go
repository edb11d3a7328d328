package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexgraph/lexgraph/pkg/store"
)

const snapshotYAML = `
graphs:
  - document_id: doc-1
    graph_id: graph-1
    metadata:
      title: First Document
    entities:
      - id: e-1
        name: Alpha Corp
        type: organization
        confidence: 0.9
        source_chunk_ids: [c-1]
    relationships: []
    chunks:
      - id: c-1
        document_id: doc-1
        text: Alpha Corp was founded in 1990.
        page_number: 1
  - document_id: doc-2
    entities:
      - id: e-2
        name: Beta LLC
        type: organization
        confidence: 0.8
cross_document_relationships:
  - id: x-1
    source_entity_id: e-1
    target_entity_id: e-2
    type: competitor_of
    source_document_id: doc-1
    target_document_id: doc-2
    confidence: 0.75
`

func TestReadSnapshot(t *testing.T) {
	t.Parallel()

	s, err := store.ReadSnapshot(strings.NewReader(snapshotYAML))
	require.NoError(t, err)

	graphs, err := s.Graphs(context.Background())
	require.NoError(t, err)
	require.Len(t, graphs, 2)
	assert.Equal(t, "doc-1", graphs[0].DocumentID)
	assert.Equal(t, "graph-1", graphs[0].GraphID)
	assert.Equal(t, "First Document", graphs[0].Title())
	assert.NotEmpty(t, graphs[1].GraphID, "graph without id gets one assigned")

	index, err := s.EntityIndex(context.Background())
	require.NoError(t, err)
	require.Contains(t, index, "e-1")
	assert.Equal(t, "Alpha Corp", index["e-1"].Name)
	assert.Equal(t, []string{"c-1"}, index["e-1"].SourceChunkIDs)

	rels, err := s.CrossDocumentRelationships(context.Background())
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, "competitor_of", rels[0].Type)
	assert.InDelta(t, 0.75, rels[0].Confidence, 1e-9)
}

func TestReadSnapshotInvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := store.ReadSnapshot(strings.NewReader("graphs: [not: valid"))
	require.Error(t, err)
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	t.Parallel()

	_, err := store.LoadSnapshot("/nonexistent/snapshot.yaml")
	require.Error(t, err)
}
