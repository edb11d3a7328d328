package dto

import (
	"errors"
	"strings"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// MaxQueryLength bounds the accepted query text.
const MaxQueryLength = 4096

// ErrQueryTooLong is returned when the query text exceeds MaxQueryLength.
var ErrQueryTooLong = errors.New("query exceeds maximum length")

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	Query      string              `json:"query" binding:"required"`
	QueryType  string              `json:"query_type,omitempty"`
	Filters    *types.QueryFilters `json:"filters,omitempty"`
	MaxResults int                 `json:"max_results,omitempty"`
}

// Validate performs validation on QueryRequest
func (r *QueryRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return errors.New("query cannot be empty")
	}
	if len(r.Query) > MaxQueryLength {
		return ErrQueryTooLong
	}
	if r.QueryType != "" && !types.QueryType(r.QueryType).Valid() {
		return errors.New("invalid query_type: must be one of entity, relationship, semantic, document, cross_document, graph_traversal")
	}
	if r.MaxResults < 0 {
		return errors.New("max_results must be positive")
	}
	return nil
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
