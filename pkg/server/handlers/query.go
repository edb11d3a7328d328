package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexgraph/lexgraph"
	"github.com/lexgraph/lexgraph/pkg/query"
	"github.com/lexgraph/lexgraph/pkg/server/dto"
	"github.com/lexgraph/lexgraph/pkg/types"
)

// QueryHandler handles query and analytics requests
type QueryHandler struct {
	client *lexgraph.Client
	logger *slog.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(client *lexgraph.Client, logger *slog.Logger) *QueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryHandler{
		client: client,
		logger: logger,
	}
}

// Query handles POST /api/v1/query
func (h *QueryHandler) Query(c *gin.Context) {
	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	opts := queryOptions(&req)
	ctx := c.Request.Context()
	if req.QueryType != "" {
		ctx = context.WithValue(ctx, types.ContextKeyQueryType, req.QueryType)
	}
	response, err := h.client.Query(ctx, req.Query, opts)
	if err != nil {
		status, code := queryErrorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "query failed",
				"query", req.Query, "error", err)
		}
		c.JSON(status, dto.ErrorResponse{
			Error:   code,
			Message: err.Error(),
			Code:    status,
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Analytics handles GET /api/v1/analytics
func (h *QueryHandler) Analytics(c *gin.Context) {
	c.JSON(http.StatusOK, h.client.QueryAnalytics())
}

// queryOptions maps the request body onto engine options. A body with no
// overrides maps to nil options, keeping the engine defaults.
func queryOptions(req *dto.QueryRequest) *query.QueryOptions {
	if req.QueryType == "" && req.Filters == nil && req.MaxResults == 0 {
		return nil
	}
	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = query.DefaultMaxResults
	}
	return &query.QueryOptions{
		Type:       types.QueryType(req.QueryType),
		Filters:    req.Filters,
		MaxResults: maxResults,
	}
}

// queryErrorStatus maps engine errors to HTTP status codes. Validation errors
// are the caller's fault; missing providers are deployment problems.
func queryErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrEmptyQuery),
		errors.Is(err, types.ErrInvalidQueryType),
		errors.Is(err, types.ErrInvalidLimit),
		errors.Is(err, types.ErrInsufficientEntities):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, query.ErrEmbedderRequired),
		errors.Is(err, query.ErrPathFinderRequired):
		return http.StatusServiceUnavailable, "not_configured"
	default:
		return http.StatusInternalServerError, "query_failed"
	}
}
