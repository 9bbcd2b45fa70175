// Package spotify provides a small client for the Spotify Web API.
//
// It covers the client-credentials token exchange, the combined
// artist/album search and the paginated artist releases listing.
//
// Example usage:
//
//	import "github.com/jodique2/spotify-album-fetcher/pkg/spotify"
//
//	client := spotify.NewClient(spotify.Config{})
//
//	token, err := client.Auth().Token(ctx, spotify.Credentials{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	releases, err := client.Catalog().ListAllReleases(ctx, token.AccessToken, artistID)
package spotify

import (
	"net/http"
	"strings"
)

// Config holds client configuration.
type Config struct {
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	AuthURL    string       // Optional: Token endpoint (defaults to Spotify accounts, used for testing)
	BaseURL    string       // Optional: Web API base URL (defaults to Spotify API, used for testing)
	UserAgent  string       // Optional: User-Agent header
	Logger     Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Spotify API operations.
//
// A Client holds no credentials or tokens; both are passed to each call.
type Client struct {
	httpClient *http.Client
	authURL    string
	baseURL    string
	userAgent  string
	logger     Logger

	auth    *AuthService
	catalog *CatalogService
}

const (
	// DefaultAuthURL is the client-credentials token endpoint.
	DefaultAuthURL = "https://accounts.spotify.com/api/token"

	// DefaultBaseURL is the default Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com/v1"

	defaultUserAgent = "discog/1.0"
)

// NewClient creates a new Spotify API client.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = DefaultAuthURL
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	c := &Client{
		httpClient: httpClient,
		authURL:    authURL,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		logger:     cfg.Logger,
	}

	c.auth = &AuthService{client: c}
	c.catalog = &CatalogService{client: c}

	return c
}

// Auth returns the token service.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// Catalog returns the search and releases service.
func (c *Client) Catalog() *CatalogService {
	return c.catalog
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
