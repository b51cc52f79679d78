package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/reciters/internal/model"
	"github.com/deppfellow/reciters/internal/server"
	"github.com/deppfellow/reciters/internal/service"
)

type ResultHandler struct {
	Handler
	results *service.ResultService
}

func NewResultHandler(s *server.Server, results *service.ResultService) *ResultHandler {
	return &ResultHandler{
		Handler: NewHandler(s),
		results: results,
	}
}

func (h *ResultHandler) ListResults(c echo.Context, _ *EmptyRequest) ([]model.Result, error) {
	return h.results.GetAllResults(c.Request().Context())
}

// SearchResults returns the localized error body when the search fails.
func (h *ResultHandler) SearchResults(c echo.Context, req *SearchRequest) ([]model.Result, error) {
	return h.results.SearchResults(c.Request().Context(), req.Query)
}

func (h *ResultHandler) GetStats(c echo.Context, _ *EmptyRequest) (model.ResultsStats, error) {
	return h.results.GetResultsStats(c.Request().Context())
}
