// Package errs defines the error shape returned to API clients.
//
// HTTPError is the single user-facing error type: handlers and services
// return it, and the global error handler serializes it as JSON.
package errs
