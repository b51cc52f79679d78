package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/reciters/internal/handler"
	"github.com/deppfellow/reciters/internal/model"
)

func registerReciterRoutes(g *echo.Group, h *handler.Handlers) {
	rh := h.Reciters

	reciters := g.Group("/reciters")
	reciters.GET("", handler.Handle(rh.Handler, rh.ListReciters, http.StatusOK, &handler.ListRecitersRequest{}))
	reciters.POST("", handler.Handle(rh.Handler, rh.AddReciter, http.StatusCreated, &model.NewReciter{}))
	reciters.GET("/search", handler.Handle(rh.Handler, rh.SearchReciters, http.StatusOK, &handler.SearchRequest{}))
	reciters.GET("/category/:category", handler.Handle(rh.Handler, rh.GetByCategory, http.StatusOK, &handler.CategoryRequest{}))
	reciters.GET("/stats", handler.Handle(rh.Handler, rh.GetStats, http.StatusOK, &handler.EmptyRequest{}))
	reciters.GET("/exists", handler.Handle(rh.Handler, rh.Exists, http.StatusOK, &handler.ExistsRequest{}))

	g.DELETE("/cache", handler.HandleNoContent(rh.Handler, rh.ClearCache, http.StatusNoContent, &handler.EmptyRequest{}))
}

func registerResultRoutes(g *echo.Group, h *handler.Handlers) {
	rs := h.Results

	results := g.Group("/results")
	results.GET("", handler.Handle(rs.Handler, rs.ListResults, http.StatusOK, &handler.EmptyRequest{}))
	results.GET("/search", handler.Handle(rs.Handler, rs.SearchResults, http.StatusOK, &handler.SearchRequest{}))
	results.GET("/stats", handler.Handle(rs.Handler, rs.GetStats, http.StatusOK, &handler.EmptyRequest{}))
}
