package spotify

import (
	"fmt"
)

// AuthError is returned when the client-credentials exchange fails.
//
// StatusCode is zero when the request never produced a response, for
// example when credentials are missing or the token field is absent.
type AuthError struct {
	StatusCode int
	Message    string
}

// Error returns the error message.
func (e *AuthError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("spotify: authentication failed: %s", e.Message)
	}
	return fmt.Sprintf("spotify: authentication failed: status %d: %s", e.StatusCode, e.Message)
}

// APIError is returned when a Web API request does not succeed.
type APIError struct {
	StatusCode int    // HTTP status code, zero for transport failures
	Endpoint   string // Request path, without query
	Message    string // Error message from Spotify, or the response status
}

// Error returns the error message.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("spotify: %s: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("spotify: %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// Is reports whether target is an *APIError with the same status code.
//
// This allows errors.Is() to match on status, e.g.
// errors.Is(err, &APIError{StatusCode: 404}).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// errorBody is the JSON error envelope returned by the Web API.
type errorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// authErrorBody is the error shape of the accounts service.
type authErrorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
