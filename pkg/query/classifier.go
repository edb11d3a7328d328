package query

import (
	"strings"
	"unicode"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// classifierGroup is one ordered cue group. The first group with a matching
// cue wins; no match defaults to semantic. Cheap and explainable, and safe
// because a misrouted query degrades to "no results" rather than erroring.
type classifierGroup struct {
	queryType types.QueryType
	cues      []string
}

var classifierGroups = []classifierGroup{
	{types.QueryTypeEntity, []string{
		"who is", "what is", "organization", "company", "person", "agency", "entity",
	}},
	{types.QueryTypeRelationship, []string{
		"related", "relationships of", "relationship between", "founded",
		"works for", "owns", "associated",
	}},
	{types.QueryTypeCrossDocument, []string{
		"across documents", "cross-document", "between documents", "compare",
		"in common",
	}},
	{types.QueryTypeGraphTraversal, []string{
		"path", "connected through", "connection between", "how is", "linked",
	}},
	{types.QueryTypeDocument, []string{
		"document", "article", "regulation", "statute", "summary",
	}},
}

// Classify routes a normalized query to one of the six query types by ordered
// keyword-pattern matching. Single-word cues must match a whole token, so
// "person" does not fire inside "personal" or "entity" inside "identity";
// phrase cues are substring-matched. Cues are matched against both the
// normalized and the lowercased raw text, so cues containing stop words
// ("works for") still fire. The raw text additionally feeds the proper-noun
// cue: a short query that is nothing but capitalized words ("Bill Gates") is
// an entity lookup even without an entity keyword.
func Classify(normalized, raw string) types.QueryType {
	rawLower := strings.ToLower(raw)
	tokens := wordSet(normalized)
	for word := range wordSet(rawLower) {
		tokens[word] = true
	}
	for _, group := range classifierGroups {
		for _, cue := range group.cues {
			if cueMatches(cue, tokens, normalized, rawLower) {
				return group.queryType
			}
		}
		if group.queryType == types.QueryTypeEntity && looksLikeProperNoun(raw) {
			return types.QueryTypeEntity
		}
	}
	return types.QueryTypeSemantic
}

func cueMatches(cue string, tokens map[string]bool, normalized, rawLower string) bool {
	if !strings.Contains(cue, " ") {
		return tokens[cue]
	}
	return strings.Contains(normalized, cue) || strings.Contains(rawLower, cue)
}

// looksLikeProperNoun reports whether raw is a short run of capitalized words.
func looksLikeProperNoun(raw string) bool {
	words := strings.Fields(strings.TrimSpace(raw))
	if len(words) == 0 || len(words) > 4 {
		return false
	}
	for _, word := range words {
		runes := []rune(strings.Trim(word, punctuation))
		if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
			return false
		}
	}
	return true
}
