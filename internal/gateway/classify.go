package gateway

import (
	"errors"
	"net/http"

	gopenai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// isRequestError reports whether err was caused by the request itself, for
// example an unknown model name or a rejected prompt, rather than by the
// provider being unavailable. Such errors stay with the message that caused
// them and do not count against the provider's circuit breaker.
// Authentication and rate limit failures affect every request and are not
// included.
func isRequestError(err error) bool {
	var apiErr *gopenai.APIError
	if errors.As(err, &apiErr) {
		return isRequestStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *gopenai.RequestError
	if errors.As(err, &reqErr) {
		return isRequestStatus(reqErr.HTTPStatusCode)
	}

	// genai returns APIError by value.
	var genErr genai.APIError
	if errors.As(err, &genErr) {
		return isRequestStatus(genErr.Code)
	}
	var genErrPtr *genai.APIError
	if errors.As(err, &genErrPtr) {
		return isRequestStatus(genErrPtr.Code)
	}
	return false
}

func isRequestStatus(code int) bool {
	switch code {
	case http.StatusBadRequest,
		http.StatusNotFound,
		http.StatusRequestEntityTooLarge,
		http.StatusUnprocessableEntity:
		return true
	default:
		return false
	}
}
