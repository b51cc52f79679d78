// Package service contains the business logic.
//
// It sits between the handler and repository layers. Services decide what
// a caller sees when a repository call fails (see ErrorPolicy) and own the
// cached read paths.
package service

import (
	"github.com/rs/zerolog"

	"github.com/deppfellow/reciters/internal/cache"
	"github.com/deppfellow/reciters/internal/repository"
)

// ErrorPolicy selects how services report repository failures.
type ErrorPolicy int

const (
	// Fallback logs a failure and returns the operation's empty value with a
	// nil error. SearchResults is the exception: it always returns a
	// user-facing error.
	Fallback ErrorPolicy = iota

	// Propagate logs a failure and returns the empty value together with
	// the error.
	Propagate
)

// PolicyFor maps the strict-errors setting to a policy.
func PolicyFor(strict bool) ErrorPolicy {
	if strict {
		return Propagate
	}
	return Fallback
}

type Services struct {
	Reciters *ReciterService
	Results  *ResultService
}

func NewServices(logger *zerolog.Logger, repos *repository.Repositories, c *cache.Cache, policy ErrorPolicy) *Services {
	return &Services{
		Reciters: NewReciterService(logger, repos.Reciters, c, policy),
		Results:  NewResultService(logger, repos.Results, policy),
	}
}
