package repository

import (
	"time"

	"github.com/deppfellow/reciters/internal/query"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Reciters *ReciterRepository
	Results  *ResultRepository
}

// NewRepositories builds every repository on top of client.
func NewRepositories(client query.Client) *Repositories {
	return &Repositories{
		Reciters: NewReciterRepository(client, time.Now),
		Results:  NewResultRepository(client),
	}
}
