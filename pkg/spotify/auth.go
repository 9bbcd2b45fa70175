package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// AuthService exchanges client credentials for access tokens.
type AuthService struct {
	client *Client
}

// Token exchanges client credentials for a short-lived bearer token.
//
// It makes exactly one request and never retries. A missing client id or
// secret, a non-2xx status and a response without an access_token all
// produce an *AuthError. The token is not cached; callers pass it along
// explicitly and request a new one per session.
//
// Example:
//
//	token, err := client.Auth().Token(ctx, spotify.Credentials{
//	    ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
//	    ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
func (a *AuthService) Token(ctx context.Context, creds Credentials) (*Token, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, &AuthError{Message: "client id and client secret are required"}
	}

	c := a.client
	c.logDebugf("spotify: requesting client-credentials token")

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Basic "+basicAuth(creds))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &AuthError{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AuthError{
			StatusCode: resp.StatusCode,
			Message:    authErrorMessage(resp, body),
		}
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, &AuthError{StatusCode: resp.StatusCode, Message: "invalid token response: " + err.Error()}
	}
	if token.AccessToken == "" {
		return nil, &AuthError{StatusCode: resp.StatusCode, Message: "response did not contain access_token"}
	}

	c.logDebugf("spotify: token acquired, expires in %ds", token.ExpiresIn)
	return &token, nil
}

// basicAuth encodes "id:secret" for the Authorization header.
func basicAuth(creds Credentials) string {
	return base64.StdEncoding.EncodeToString([]byte(creds.ClientID + ":" + creds.ClientSecret))
}

func authErrorMessage(resp *http.Response, body []byte) string {
	var eb authErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		if eb.ErrorDescription != "" {
			return eb.Error + ": " + eb.ErrorDescription
		}
		return eb.Error
	}
	return statusMessage(resp, body)
}
