package restapi

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	ErrorKindNetwork    ErrorKind = "network"
	ErrorKindAuth       ErrorKind = "auth"
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindRateLimit  ErrorKind = "rate_limit"
	ErrorKindServer     ErrorKind = "server"
	ErrorKindGeneric    ErrorKind = "generic"
)

type APIError struct {
	Kind      ErrorKind
	Status    int
	Message   string
	RequestID string
}

func (apiError *APIError) Error() string {
	if apiError.Status == 0 {
		return fmt.Sprintf("api request failed (%s): %s", apiError.Kind, apiError.Message)
	}
	return fmt.Sprintf("api request failed (%s, status %d): %s", apiError.Kind, apiError.Status, apiError.Message)
}

func ClassifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorKindAuth
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrorKindValidation
	case status == http.StatusTooManyRequests:
		return ErrorKindRateLimit
	case status >= 500:
		return ErrorKindServer
	default:
		return ErrorKindGeneric
	}
}

// Classify maps any error surfaced by this package to an ErrorKind.
// Anything that is not an *APIError is treated as a network failure,
// matching how the client reports unreachable hosts and timeouts.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorKindGeneric
	}
	var apiError *APIError
	if errors.As(err, &apiError) {
		return apiError.Kind
	}
	return ErrorKindNetwork
}

func IsAuthError(err error) bool {
	return Classify(err) == ErrorKindAuth
}
