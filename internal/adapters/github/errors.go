package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a non-2xx response from the GitHub REST API.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the top-level error description from GitHub.
	Message string

	// DocumentationURL points to the relevant API documentation.
	DocumentationURL string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("github: HTTP %d: %s", err.StatusCode, err.Message)
}

// IsNotFound reports whether err is a GitHub API 404 Not Found response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether err is a GitHub API rate limit response.
func IsRateLimited(err error) bool {
	var apiError *APIError
	if !errors.As(err, &apiError) {
		return false
	}
	return apiError.StatusCode == http.StatusTooManyRequests ||
		(apiError.StatusCode == http.StatusForbidden && strings.Contains(strings.ToLower(apiError.Message), "rate limit"))
}

func parseAPIError(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode}

	var payload struct {
		Message          string `json:"message"`
		DocumentationURL string `json:"documentation_url"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		apiError.Message = payload.Message
		apiError.DocumentationURL = payload.DocumentationURL
		return apiError
	}

	apiError.Message = strings.TrimSpace(string(body))
	if apiError.Message == "" {
		apiError.Message = http.StatusText(statusCode)
	}
	return apiError
}
