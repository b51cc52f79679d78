package handler

import (
	"github.com/deppfellow/reciters/internal/server"
	"github.com/deppfellow/reciters/internal/service"
)

// Handlers groups all HTTP handlers.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Reciters *ReciterHandler
	Results  *ResultHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Reciters: NewReciterHandler(s, services.Reciters),
		Results:  NewResultHandler(s, services.Results),
	}
}
