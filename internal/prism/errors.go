package prism

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError describes a non-success response from Prism Central. The body is
// kept (pretty-printed when it parses as JSON) so failures can be reproduced
// from the log alone.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// newAPIError builds an APIError, indenting the body when it is valid JSON.
func newAPIError(method, url string, status int, body []byte) *APIError {
	text := string(bytes.TrimSpace(body))
	var buf bytes.Buffer
	if json.Valid(body) {
		if err := json.Indent(&buf, bytes.TrimSpace(body), "", "  "); err == nil {
			text = buf.String()
		}
	}
	return &APIError{Method: method, URL: url, StatusCode: status, Body: text}
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an
// API error (e.g. a transport failure that produced no response).
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
