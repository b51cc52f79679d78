// Package router builds the echo instance: global middleware, the error
// handler and every route group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/reciters/internal/handler"
	"github.com/deppfellow/reciters/internal/middleware"
	"github.com/deppfellow/reciters/internal/server"
)

// NewRouter wires middleware in the order each one expects: CORS, security
// headers and request IDs before the rate limiter so rejected requests carry
// them too, tracing before the context enhancer, and the request logger
// after it.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.RateLimit.Limit(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerReciterRoutes(v1, h)
	registerResultRoutes(v1, h)

	return router
}
