// Package rest exposes the indexing and search API over HTTP.
package rest

import (
	"net/http"
	"strconv"
	"time"

	"search-service/domain"
	"search-service/logger"
	"search-service/textutil"
	"search-service/usecase"
	appOtel "search-service/utils/otel"

	"github.com/labstack/echo/v4"
)

// Handler contains all HTTP handlers for the search service.
type Handler struct {
	indexUsecase   *usecase.IndexServiceUsecase
	deleteUsecase  *usecase.DeleteServiceUsecase
	searchUsecase  *usecase.SearchServicesUsecase
	suggestUsecase *usecase.SuggestServicesUsecase
}

func NewHandler(
	indexUsecase *usecase.IndexServiceUsecase,
	deleteUsecase *usecase.DeleteServiceUsecase,
	searchUsecase *usecase.SearchServicesUsecase,
	suggestUsecase *usecase.SuggestServicesUsecase,
) *Handler {
	return &Handler{
		indexUsecase:   indexUsecase,
		deleteUsecase:  deleteUsecase,
		searchUsecase:  searchUsecase,
		suggestUsecase: suggestUsecase,
	}
}

type IndexRequest struct {
	ID string `json:"id"`
}

type IndexResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type PreprocessRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

type PreprocessResponse struct {
	NormalizedTitle       string `json:"normalized_title"`
	NormalizedDescription string `json:"normalized_description"`
	NormalizedKeywords    string `json:"normalized_keywords"`
}

// IndexService handles POST /v1/services/index.
func (h *Handler) IndexService(c echo.Context) error {
	var req IndexRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Kind: "validation", Error: "invalid request body"})
	}

	result, err := h.indexUsecase.Execute(c.Request().Context(), req.ID)
	if err != nil {
		return writeError(c, err, "index_service")
	}

	if m := appOtel.Metrics; m != nil {
		m.IndexedTotal.Add(c.Request().Context(), 1)
	}

	return c.JSON(http.StatusOK, IndexResponse{
		Success: true,
		ID:      result.ServiceID,
		Message: "service indexed",
	})
}

// DeleteService handles DELETE /v1/services/index/:id.
func (h *Handler) DeleteService(c echo.Context) error {
	id := c.Param("id")

	if err := h.deleteUsecase.Execute(c.Request().Context(), id); err != nil {
		return writeError(c, err, "delete_service")
	}

	if m := appOtel.Metrics; m != nil {
		m.DeletedTotal.Add(c.Request().Context(), 1)
	}

	return c.JSON(http.StatusOK, IndexResponse{
		Success: true,
		ID:      id,
		Message: "service removed from index",
	})
}

// SearchServices handles GET /v1/search.
func (h *Handler) SearchServices(c echo.Context) error {
	query, err := searchQueryFromRequest(c)
	if err != nil {
		return writeError(c, err, "search_services")
	}

	start := time.Now()
	result, err := h.searchUsecase.Execute(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err, "search_services")
	}
	if m := appOtel.Metrics; m != nil {
		m.SearchDuration.Record(c.Request().Context(), time.Since(start).Seconds())
	}

	// domain.SearchResult already carries the public envelope: query, total,
	// page, results[{document, score}].
	return c.JSON(http.StatusOK, result)
}

// SuggestServices handles GET /v1/search/suggest.
func (h *Handler) SuggestServices(c echo.Context) error {
	prefix := c.QueryParam("q")
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Kind: "validation", Error: "limit must be an integer"})
		}
		limit = parsed
	}

	result, err := h.suggestUsecase.Execute(c.Request().Context(), prefix, limit)
	if err != nil {
		return writeError(c, err, "suggest_services")
	}

	return c.JSON(http.StatusOK, SuggestResponse{
		Query:       result.Query,
		Suggestions: result.Suggestions,
	})
}

// PreprocessText handles POST /v1/services/preprocess. The catalog backend
// calls it before persisting a service to store normalized field copies.
func (h *Handler) PreprocessText(c echo.Context) error {
	var req PreprocessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Kind: "validation", Error: "invalid request body"})
	}
	return c.JSON(http.StatusOK, preprocess(req))
}

// PreprocessBatch handles POST /v1/services/preprocess/batch for bulk
// imports. Items are processed independently.
func (h *Handler) PreprocessBatch(c echo.Context) error {
	var reqs []PreprocessRequest
	if err := c.Bind(&reqs); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Kind: "validation", Error: "invalid request body"})
	}

	results := make([]PreprocessResponse, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, preprocess(req))
	}
	return c.JSON(http.StatusOK, results)
}

// Health handles GET /health.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func preprocess(req PreprocessRequest) PreprocessResponse {
	return PreprocessResponse{
		NormalizedTitle:       textutil.Normalize(req.Title),
		NormalizedDescription: textutil.Normalize(req.Description),
		NormalizedKeywords:    textutil.Normalize(req.Keywords),
	}
}

func searchQueryFromRequest(c echo.Context) (domain.SearchQuery, error) {
	query := domain.SearchQuery{
		Query: c.QueryParam("q"),
		Filters: domain.SearchFilters{
			Category: c.QueryParam("category"),
			Location: c.QueryParam("location"),
		},
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return domain.SearchQuery{}, &domain.ValidationError{Field: "page", Msg: "must be an integer"}
		}
		query.Page = page
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return domain.SearchQuery{}, &domain.ValidationError{Field: "page_size", Msg: "must be an integer"}
		}
		query.PageSize = size
	}
	if raw := c.QueryParam("min_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.SearchQuery{}, &domain.ValidationError{Field: "min_price", Msg: "must be a number"}
		}
		query.Filters.MinPrice = &price
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.SearchQuery{}, &domain.ValidationError{Field: "max_price", Msg: "must be a number"}
		}
		query.Filters.MaxPrice = &price
	}

	return query, nil
}

// ErrorResponse carries a stable error kind plus a human-readable message.
// Dependency failure detail never reaches the body.
type ErrorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// writeError maps domain errors to HTTP status codes. Internal failures are
// logged with detail but the response body stays generic.
func writeError(c echo.Context, err error, operation string) error {
	switch {
	case domain.IsValidation(err):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Kind: "validation", Error: err.Error()})
	case domain.IsNotFound(err):
		return c.JSON(http.StatusNotFound, ErrorResponse{Kind: "not_found", Error: err.Error()})
	default:
		logger.Logger.Error("request failed", "operation", operation, "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Kind: "internal", Error: "internal server error"})
	}
}
