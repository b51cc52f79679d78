// Package repository handles all interactions with the database.
//
// Each method builds one or more query.Query values, runs them through a
// query.Client and decodes the raw rows into model types. Errors are
// returned wrapped; deciding what a caller sees on failure is the service
// layer's job.
package repository

import (
	"fmt"

	"github.com/deppfellow/reciters/internal/query"
)

const (
	recitersTable = "reciters"
	resultsTable  = "results"
)

// rowsOf returns the rows of a response, treating a nil response as empty.
func rowsOf(resp *query.Response) []query.Row {
	if resp == nil {
		return nil
	}
	return resp.Rows
}

// countOf returns the exact count of a response, or 0 when none came back.
func countOf(resp *query.Response) int64 {
	if resp == nil || resp.Count == nil {
		return 0
	}
	return *resp.Count
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
