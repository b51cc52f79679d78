package errs

import (
	"net/http"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400. code defaults to "BAD_REQUEST" when nil.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404. code defaults to "NOT_FOUND" when nil.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError creates a generic 500. The real cause is logged,
// never sent.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// NewServiceUnavailableError creates a 503.
func NewServiceUnavailableError(message string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusServiceUnavailable),
		Message:  message,
		Status:   http.StatusServiceUnavailable,
		Override: false,
	}
}

// NewTooManyRequestsError creates a 429.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusTooManyRequests),
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// ResultsSearchFailedCode identifies a failed results search.
const ResultsSearchFailedCode = "RESULTS_SEARCH_FAILED"

// ResultsSearchFailedMessage is shown to users when searching results fails.
// The application's audience reads Arabic.
const ResultsSearchFailedMessage = "حدث خطأ أثناء البحث عن النتائج، يرجى المحاولة مرة أخرى"

// NewResultsSearchError is the user-facing error for a failed results
// search. It is a 500 whose message is meant to be displayed as is.
func NewResultsSearchError() *HTTPError {
	return &HTTPError{
		Code:     ResultsSearchFailedCode,
		Message:  ResultsSearchFailedMessage,
		Status:   http.StatusInternalServerError,
		Override: true,
		Action: &Action{
			Type:    ActionTypeRetry,
			Message: ResultsSearchFailedMessage,
		},
	}
}

// ValidationError wraps a validator error in a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}
