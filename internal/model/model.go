// Package model defines the records this service reads and writes.
//
// Rows arrive from the database as loosely typed maps. They are decoded
// into the structs below (mapstructure, keyed by the `db` tag) and then
// validated (go-playground/validator), so everything past the repository
// boundary works with explicit, checked shapes.
package model

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/deppfellow/reciters/internal/query"
)

// validate is shared; validator caches struct metadata and is safe for
// concurrent use.
var validate = validator.New()

// Decode converts a raw row into T and validates it.
//
// Columns without a matching field are ignored. NULL columns leave the
// field at its zero value (nil for pointer fields).
func Decode[T any](row query.Row) (T, error) {
	var out T

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "db",
		Result:     &out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(numericToFloat),
	})
	if err != nil {
		return out, fmt.Errorf("building row decoder: %w", err)
	}

	if err := decoder.Decode(map[string]any(row)); err != nil {
		return out, fmt.Errorf("decoding row: %w", err)
	}

	if err := validate.Struct(out); err != nil {
		return out, fmt.Errorf("validating row: %w", err)
	}

	return out, nil
}

// DecodeAll decodes every row, failing on the first malformed one.
// A nil input yields an empty, non-nil slice.
func DecodeAll[T any](rows []query.Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		v, err := Decode[T](row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// numericToFloat lets NUMERIC columns (pgtype.Numeric) land in float64 fields.
func numericToFloat(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Float64 {
		return data, nil
	}

	switch n := data.(type) {
	case pgtype.Numeric:
		f, err := n.Float64Value()
		if err != nil {
			return nil, err
		}
		if !f.Valid {
			return float64(0), nil
		}
		return f.Float64, nil
	case *pgtype.Numeric:
		if n == nil {
			return float64(0), nil
		}
		return numericToFloat(from, to, *n)
	}

	return data, nil
}
