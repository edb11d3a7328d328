package query

import (
	"fmt"

	"github.com/lexgraph/lexgraph/pkg/types"
)

const (
	maxSuggestions       = 5
	suggestionWindowSize = 5
)

// Suggestions derives follow-up queries from the top results: entity lookups
// and relationship expansions for every entity they mention, a type search
// for each relationship type seen, and document comparison prompts when they
// span more than one document. Only the first five results are examined;
// lower-ranked results never contribute. At most five suggestions are
// returned, deduplicated in discovery order.
func Suggestions(results []*types.QueryResult) ([]string, error) {
	if len(results) == 0 {
		return nil, types.ErrNoResults
	}
	if len(results) > suggestionWindowSize {
		results = results[:suggestionWindowSize]
	}

	var suggestions []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] && len(suggestions) < maxSuggestions {
			seen[s] = true
			suggestions = append(suggestions, s)
		}
	}

	documents := make(map[string]bool)
	for _, result := range results {
		for _, name := range resultEntityNames(result) {
			add(fmt.Sprintf("What is %s?", name))
			add(fmt.Sprintf("What are the relationships of %s?", name))
		}
		if relType, ok := result.Metadata["relationship_type"].(string); ok && relType != "" {
			add(fmt.Sprintf("Find all %s relationships", relationshipWords(relType)))
		}
		if result.SourceDocument != "" &&
			result.SourceDocument != types.SourceDocumentUnknown &&
			result.SourceDocument != types.SourceDocumentMultiple {
			documents[result.SourceDocument] = true
		}
	}

	if len(documents) > 1 {
		add("Compare these documents")
		add("Find cross-document relationships")
	}
	return suggestions, nil
}

// resultEntityNames collects the entity names a single result refers to,
// across the metadata shapes the different strategies emit.
func resultEntityNames(result *types.QueryResult) []string {
	var names []string
	for _, key := range []string{"entity_name", "source_entity", "target_entity"} {
		if name, ok := result.Metadata[key].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	if related, ok := result.Metadata["related_entities"].([]string); ok {
		names = append(names, related...)
	}
	return names
}
