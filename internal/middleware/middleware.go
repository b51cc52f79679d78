// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request IDs, request logging, CORS, tracing, rate limiting and panic
// recovery, and hold the global error handler.
package middleware
