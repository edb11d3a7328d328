package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// Neo4jStore reads a corpus ingested into Neo4j. The expected schema is
// (:Document)-[:CONTAINS]->(:Entity|:Chunk), (:Entity)-[:RELATES_TO]->(:Entity)
// within a document, and (:Entity)-[:CROSS_DOCUMENT]->(:Entity) across
// documents. The store never writes; ingestion happens upstream.
type Neo4jStore struct {
	client   neo4j.DriverWithContext
	database string
}

// NewNeo4jStore creates a Neo4j-backed graph store.
func NewNeo4jStore(uri, username, password, database string) (*Neo4jStore, error) {
	client, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if database == "" {
		database = "neo4j"
	}
	return &Neo4jStore{client: client, database: database}, nil
}

// Close releases the underlying driver.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

func (s *Neo4jStore) read(ctx context.Context, query string, params map[string]any) ([]*db.Record, error) {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return result.([]*db.Record), nil
}

// Graphs implements GraphStore.
func (s *Neo4jStore) Graphs(ctx context.Context) ([]*types.KnowledgeGraph, error) {
	records, err := s.read(ctx, `
		MATCH (d:Document)
		RETURN d.document_id AS document_id, d.graph_id AS graph_id, d.title AS title
		ORDER BY d.document_id
	`, nil)
	if err != nil {
		return nil, err
	}

	graphs := make([]*types.KnowledgeGraph, 0, len(records))
	for _, record := range records {
		graph := &types.KnowledgeGraph{
			DocumentID: recordString(record, "document_id"),
			GraphID:    recordString(record, "graph_id"),
			Metadata:   map[string]any{"title": recordString(record, "title")},
		}
		if err := s.loadGraphContents(ctx, graph); err != nil {
			return nil, err
		}
		graphs = append(graphs, graph)
	}
	return graphs, nil
}

func (s *Neo4jStore) loadGraphContents(ctx context.Context, graph *types.KnowledgeGraph) error {
	params := map[string]any{"document_id": graph.DocumentID}

	entityRecords, err := s.read(ctx, `
		MATCH (:Document {document_id: $document_id})-[:CONTAINS]->(e:Entity)
		RETURN e ORDER BY e.id
	`, params)
	if err != nil {
		return err
	}
	for _, record := range entityRecords {
		if node, ok := recordNode(record, "e"); ok {
			graph.Entities = append(graph.Entities, entityFromNode(node))
		}
	}

	chunkRecords, err := s.read(ctx, `
		MATCH (:Document {document_id: $document_id})-[:CONTAINS]->(c:Chunk)
		RETURN c ORDER BY c.id
	`, params)
	if err != nil {
		return err
	}
	for _, record := range chunkRecords {
		if node, ok := recordNode(record, "c"); ok {
			graph.Chunks = append(graph.Chunks, chunkFromNode(node, graph.DocumentID))
		}
	}

	relRecords, err := s.read(ctx, `
		MATCH (:Document {document_id: $document_id})-[:CONTAINS]->(a:Entity)
		MATCH (a)-[r:RELATES_TO]->(b:Entity)
		RETURN r, a.id AS source_id, b.id AS target_id ORDER BY r.id
	`, params)
	if err != nil {
		return err
	}
	for _, record := range relRecords {
		value, found := record.Get("r")
		rel, ok := value.(dbtype.Relationship)
		if !found || !ok {
			continue
		}
		graph.Relationships = append(graph.Relationships, &types.Relationship{
			ID:             propString(rel.Props, "id"),
			SourceEntityID: recordString(record, "source_id"),
			TargetEntityID: recordString(record, "target_id"),
			Type:           propString(rel.Props, "type"),
			Description:    propString(rel.Props, "description"),
			Confidence:     propFloat(rel.Props, "confidence"),
			SourceChunkIDs: propStrings(rel.Props, "source_chunk_ids"),
		})
	}
	return nil
}

// EntityIndex implements GraphStore.
func (s *Neo4jStore) EntityIndex(ctx context.Context) (map[string]*types.Entity, error) {
	records, err := s.read(ctx, `MATCH (e:Entity) RETURN e`, nil)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*types.Entity, len(records))
	for _, record := range records {
		if node, ok := recordNode(record, "e"); ok {
			entity := entityFromNode(node)
			index[entity.ID] = entity
		}
	}
	return index, nil
}

// CrossDocumentRelationships implements GraphStore.
func (s *Neo4jStore) CrossDocumentRelationships(ctx context.Context) ([]*types.CrossDocumentRelationship, error) {
	records, err := s.read(ctx, `
		MATCH (a:Entity)-[r:CROSS_DOCUMENT]->(b:Entity)
		RETURN r, a.id AS source_id, b.id AS target_id ORDER BY r.id
	`, nil)
	if err != nil {
		return nil, err
	}

	rels := make([]*types.CrossDocumentRelationship, 0, len(records))
	for _, record := range records {
		value, found := record.Get("r")
		rel, ok := value.(dbtype.Relationship)
		if !found || !ok {
			continue
		}
		rels = append(rels, &types.CrossDocumentRelationship{
			ID:                     propString(rel.Props, "id"),
			SourceEntityID:         recordString(record, "source_id"),
			TargetEntityID:         recordString(record, "target_id"),
			Type:                   propString(rel.Props, "type"),
			Description:            propString(rel.Props, "description"),
			Confidence:             propFloat(rel.Props, "confidence"),
			SourceDocumentID:       propString(rel.Props, "source_document_id"),
			TargetDocumentID:       propString(rel.Props, "target_document_id"),
			SourceEvidenceChunkIDs: propStrings(rel.Props, "source_evidence_chunk_ids"),
			TargetEvidenceChunkIDs: propStrings(rel.Props, "target_evidence_chunk_ids"),
		})
	}
	return rels, nil
}

func entityFromNode(node dbtype.Node) *types.Entity {
	return &types.Entity{
		ID:             propString(node.Props, "id"),
		Name:           propString(node.Props, "name"),
		Type:           propString(node.Props, "type"),
		Description:    propString(node.Props, "description"),
		Confidence:     propFloat(node.Props, "confidence"),
		SourceChunkIDs: propStrings(node.Props, "source_chunk_ids"),
	}
}

func chunkFromNode(node dbtype.Node, documentID string) *types.Chunk {
	return &types.Chunk{
		ID:              propString(node.Props, "id"),
		Text:            propString(node.Props, "text"),
		Embedding:       propVector(node.Props, "embedding"),
		DocumentID:      documentID,
		PageNumber:      int(propInt(node.Props, "page_number")),
		TokenCount:      int(propInt(node.Props, "token_count")),
		SemanticType:    propString(node.Props, "semantic_type"),
		RelationshipIDs: propStrings(node.Props, "relationship_ids"),
	}
}

func recordNode(record *db.Record, key string) (dbtype.Node, bool) {
	value, found := record.Get(key)
	if !found {
		return dbtype.Node{}, false
	}
	node, ok := value.(dbtype.Node)
	return node, ok
}

func recordString(record *db.Record, key string) string {
	value, found := record.Get(key)
	if !found {
		return ""
	}
	s, _ := value.(string)
	return s
}

func propString(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func propFloat(props map[string]any, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func propInt(props map[string]any, key string) int64 {
	switch v := props[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func propStrings(props map[string]any, key string) []string {
	raw, ok := props[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func propVector(props map[string]any, key string) []float32 {
	raw, ok := props[key].([]any)
	if !ok {
		return nil
	}
	out := make([]float32, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(float64); ok {
			out = append(out, float32(f))
		}
	}
	return out
}
