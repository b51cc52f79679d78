package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/reciters/internal/errs"
	"github.com/deppfellow/reciters/internal/model"
	"github.com/deppfellow/reciters/internal/server"
	"github.com/deppfellow/reciters/internal/service"
)

type ReciterHandler struct {
	Handler
	reciters *service.ReciterService
}

func NewReciterHandler(s *server.Server, reciters *service.ReciterService) *ReciterHandler {
	return &ReciterHandler{
		Handler:  NewHandler(s),
		reciters: reciters,
	}
}

func (h *ReciterHandler) ListReciters(c echo.Context, req *ListRecitersRequest) (model.RecitersPage, error) {
	return h.reciters.GetReciters(c.Request().Context(), req.Page, req.Limit)
}

// SearchReciters serves from the cache when the same term (ignoring case)
// was searched within the cache TTL.
func (h *ReciterHandler) SearchReciters(c echo.Context, req *SearchRequest) ([]model.Reciter, error) {
	return h.reciters.SearchRecitersWithCache(c.Request().Context(), req.Query)
}

func (h *ReciterHandler) GetByCategory(c echo.Context, req *CategoryRequest) ([]model.Reciter, error) {
	return h.reciters.GetRecitersByCategory(c.Request().Context(), req.Category)
}

func (h *ReciterHandler) GetStats(c echo.Context, _ *EmptyRequest) (model.RegistrationStats, error) {
	return h.reciters.GetRegistrationStatsWithCache(c.Request().Context())
}

func (h *ReciterHandler) Exists(c echo.Context, req *ExistsRequest) (ExistsResponse, error) {
	exists, err := h.reciters.CheckReciterExists(c.Request().Context(), req.Name)
	return ExistsResponse{Exists: exists}, err
}

// AddReciter reports a 400 when nothing was stored.
func (h *ReciterHandler) AddReciter(c echo.Context, req *model.NewReciter) (*model.Reciter, error) {
	reciter, err := h.reciters.AddReciter(c.Request().Context(), *req)
	if err != nil {
		return nil, err
	}
	if reciter == nil {
		code := "RECITER_NOT_ADDED"
		return nil, errs.NewBadRequestError("Reciter could not be added", true, &code, nil, nil)
	}
	return reciter, nil
}

func (h *ReciterHandler) ClearCache(c echo.Context, _ *EmptyRequest) error {
	h.reciters.ClearCache()
	return nil
}
