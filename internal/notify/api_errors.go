package notify

import (
	"strings"

	"github.com/terraincognita07/vitalog/internal/restapi"
)

const genericErrorMessage = "Something went wrong. Please try again."

// HandleAPIError classifies the error and shows a tailored toast,
// falling back to the provided message (or a generic one) when
// classification yields nothing specific.
func (dispatcher *Dispatcher) HandleAPIError(err error, fallbackMessage string) bool {
	if err == nil {
		return false
	}

	message := messageForKind(restapi.Classify(err))
	if message == "" {
		message = strings.TrimSpace(fallbackMessage)
	}
	if message == "" {
		message = genericErrorMessage
	}
	return dispatcher.Error(message, Options{})
}

func messageForKind(kind restapi.ErrorKind) string {
	switch kind {
	case restapi.ErrorKindNetwork:
		return "Cannot reach the server. Check your connection."
	case restapi.ErrorKindAuth:
		return "Your session has expired. Please sign in again."
	case restapi.ErrorKindValidation:
		return "Some of the submitted data was invalid."
	case restapi.ErrorKindRateLimit:
		return "Too many requests. Please wait a moment."
	case restapi.ErrorKindServer:
		return "The server had a problem. Please try again later."
	default:
		return ""
	}
}
