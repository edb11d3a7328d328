package query

import (
	"fmt"
	"strings"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// stopWords is the fixed set stripped during normalization. Classifier cue
// words ("who", "is", "compare", ...) are deliberately absent so routing still
// sees them.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"of": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "with": true, "by": true,
	"from": true, "and": true, "or": true, "as": true,
	"that": true, "this": true, "these": true, "those": true,
	"it": true, "its": true, "be": true, "been": true,
	"do": true, "does": true, "did": true,
	"me": true, "my": true, "please": true,
}

// punctuation dropped from query tokens before matching.
const punctuation = "?!.,;:\"'()[]"

// Normalize canonicalizes raw query text: lowercase, collapse whitespace,
// drop punctuation, strip stop words. The result is the cache-key basis and
// the input every strategy scores against. Pure and deterministic.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: got %q", types.ErrEmptyQuery, raw)
	}

	var kept []string
	for _, token := range strings.Fields(strings.ToLower(trimmed)) {
		token = strings.Trim(token, punctuation)
		if token == "" || stopWords[token] {
			continue
		}
		kept = append(kept, token)
	}
	if len(kept) == 0 {
		// Everything was stop words or punctuation; keep the lowercased text
		// so the query still has something to match against.
		return strings.Join(strings.Fields(strings.ToLower(trimmed)), " "), nil
	}
	return strings.Join(kept, " "), nil
}
