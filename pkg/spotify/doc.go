// Package spotify provides a client library for a subset of the Spotify Web API.
//
// # Overview
//
// The package covers what a discography fetcher needs: the client-credentials
// token exchange, a combined artist/album search and the artist albums
// listing with cursor pagination. It does not retry, does not cache tokens
// and does not handle rate limits.
//
// # Quick Start
//
//	import "github.com/jodique2/spotify-album-fetcher/pkg/spotify"
//
//	client := spotify.NewClient(spotify.Config{})
//
// # Authentication
//
// Tokens come from the client-credentials flow. A Client never stores one;
// pass it to each catalog call:
//
//	token, err := client.Auth().Token(ctx, spotify.Credentials{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	})
//
// # Search
//
//	result, err := client.Catalog().Search(ctx, token.AccessToken, "boards of canada")
//
// # Releases
//
// ListAllReleases follows "next" links until the last page and deduplicates
// by release name, keeping the first occurrence:
//
//	releases, err := client.Catalog().ListAllReleases(ctx, token.AccessToken, artistID)
//
// For page-by-page control use a Pager:
//
//	pager := client.Catalog().Releases(token.AccessToken, artistID)
//	for !pager.Done() {
//	    page, err := pager.Next(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    // use page
//	}
//
// # Error Handling
//
// Token failures are *AuthError, every other non-2xx response is *APIError:
//
//	if _, err := client.Catalog().Search(ctx, tok, q); err != nil {
//	    var apiErr *spotify.APIError
//	    if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
//	        // token expired
//	    }
//	}
//
// # Configuration
//
// Endpoints can be pointed at a test server:
//
//	client := spotify.NewClient(spotify.Config{
//	    HTTPClient: &http.Client{Timeout: 30 * time.Second},
//	    AuthURL:    server.URL + "/api/token",
//	    BaseURL:    server.URL + "/v1",
//	    Logger:     myLogger, // Implements spotify.Logger
//	})
package spotify
