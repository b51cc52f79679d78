// Package handler is the HTTP entry point after the router.
//
// Handlers bind and validate requests through the validation package, call
// the service layer and write JSON responses. Typed endpoints go through
// Handle / HandleNoContent so logging, tracing and validation are uniform.
package handler
