package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/reciters/internal/errs"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		state string
		want  Code
	}{
		{"23502", NotNullViolation},
		{"23503", ForeignKeyViolation},
		{"23505", UniqueViolation},
		{"23514", CheckViolation},
		{"42P01", Other},
		{"", Other},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want, MapCode(tt.state))
		})
	}
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityNotice, MapSeverity("NOTICE"))
	assert.Equal(t, SeverityError, MapSeverity("something else"))
}

func TestConvertPgError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "reciters",
		ConstraintName: "reciters_phone_key",
	}

	converted := ConvertPgError(pgErr)

	assert.Equal(t, UniqueViolation, converted.Code)
	assert.Equal(t, SeverityError, converted.Severity)
	assert.Equal(t, "reciters", converted.TableName)
	assert.Contains(t, converted.Error(), "23505")
	assert.ErrorIs(t, converted, pgErr)
}

func TestErrCode(t *testing.T) {
	wrapped := fmt.Errorf("inserting: %w", &pgconn.PgError{Code: "23502"})
	assert.Equal(t, NotNullViolation, ErrCode(wrapped))
	assert.Equal(t, CheckViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23514"})))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
}

func TestGenerateErrorCode(t *testing.T) {
	assert.Equal(t, "RECITER_ALREADY_EXISTS", generateErrorCode("reciters", UniqueViolation))
	assert.Equal(t, "RESULT_REQUIRED", generateErrorCode("results", NotNullViolation))
	assert.Equal(t, "RECORD_INVALID", generateErrorCode("", CheckViolation))
	assert.Equal(t, "RECITER_ERROR", generateErrorCode("reciters", Other))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "phone", extractColumnForUniqueViolation("reciters_phone_key"))
	assert.Equal(t, "name", extractColumnForUniqueViolation("unique_reciters_name"))
	assert.Empty(t, extractColumnForUniqueViolation("reciters_pkey"))
	assert.Empty(t, extractColumnForUniqueViolation(""))
}

func TestHandleError(t *testing.T) {
	t.Run("http error passes through", func(t *testing.T) {
		in := errs.NewNotFoundError("gone", true, nil)
		assert.Same(t, in, HandleError(in))
	})

	t.Run("unique violation", func(t *testing.T) {
		err := HandleError(fmt.Errorf("wrap: %w", &pgconn.PgError{
			Code:           "23505",
			TableName:      "reciters",
			ConstraintName: "reciters_phone_key",
		}))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "RECITER_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, "A Reciter with this Phone already exists", httpErr.Message)
		assert.True(t, httpErr.Override)
	})

	t.Run("not null violation", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{Code: "23502", TableName: "results", ColumnName: "grade"})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, "RESULT_REQUIRED", httpErr.Code)
		assert.Equal(t, "The Grade is required", httpErr.Message)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "grade", httpErr.Errors[0].Field)
	})

	t.Run("other postgres error", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(&pgconn.PgError{Code: "42P01"}), &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	})

	t.Run("no rows", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(pgx.ErrNoRows), &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("unknown", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(errors.New("boom")), &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	})
}
