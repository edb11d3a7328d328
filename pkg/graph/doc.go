// Package graph provides shortest-path search over the corpus graph, with
// entity ids as nodes and relationships as edges carrying type and confidence.
// The PathFinder interface separates "no path" (ErrNoPath) from store
// failures so a pathless entity pair can be skipped without aborting a query.
package graph
