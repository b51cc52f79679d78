package handler

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Pagination defaults for GET /reciters.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = 1_000_000
)

// EmptyRequest is the request type of endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

type ListRecitersRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1,max=1000000"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Validate checks the bounds and fills in the defaults.
func (r *ListRecitersRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Page == 0 {
		r.Page = DefaultPage
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	return nil
}

type SearchRequest struct {
	Query string `query:"q" validate:"max=200"`
}

func (r *SearchRequest) Validate() error {
	return validate.Struct(r)
}

type CategoryRequest struct {
	Category string `param:"category" validate:"required,max=100"`
}

func (r *CategoryRequest) Validate() error {
	return validate.Struct(r)
}

type ExistsRequest struct {
	Name string `query:"name" validate:"required,max=200"`
}

func (r *ExistsRequest) Validate() error {
	return validate.Struct(r)
}

// ExistsResponse is the body of GET /reciters/exists.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}
