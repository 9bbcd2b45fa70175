package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxErrorBody caps how much of an error response is kept in messages.
const maxErrorBody = 512

// get issues an authenticated GET against rawURL and decodes the JSON body into out.
//
// rawURL is absolute: pagination hands back full URLs in the "next" field,
// so callers never rebuild them from parts.
//
// There is no retry. Any non-2xx response becomes an *APIError.
func (c *Client) get(ctx context.Context, token, rawURL string, out interface{}) error {
	endpoint := endpointOf(rawURL)
	c.logDebugf("spotify: GET %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Endpoint: endpoint, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    apiErrorMessage(resp, body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON response from %s: %w", endpoint, err)
	}

	c.logDebugf("spotify: GET %s succeeded", endpoint)
	return nil
}

// apiErrorMessage extracts the Web API error message, falling back to the
// HTTP status and a body excerpt.
func apiErrorMessage(resp *http.Response, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error.Message != "" {
		return eb.Error.Message
	}
	return statusMessage(resp, body)
}

// statusMessage returns the response status with a trimmed body excerpt.
func statusMessage(resp *http.Response, body []byte) string {
	excerpt := strings.TrimSpace(string(body))
	if len(excerpt) > maxErrorBody {
		excerpt = excerpt[:maxErrorBody]
	}
	if excerpt == "" {
		return resp.Status
	}
	return resp.Status + " - " + excerpt
}

// endpointOf returns the path of rawURL for logs and errors.
// Query strings are dropped so search text never lands in an error.
func endpointOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}
