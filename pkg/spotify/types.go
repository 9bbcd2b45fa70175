package spotify

// Credentials identify an application for the client-credentials flow.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Token is a bearer token returned by the token endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // Lifetime in seconds
}

// ExternalURLs holds links to the Spotify web player.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Artist is a (possibly partial) artist reference.
type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Album is an album entry from search results.
type Album struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	AlbumType    string       `json:"album_type"`
	Artists      []Artist     `json:"artists"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Release is an album or single in an artist's discography.
type Release struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	AlbumType    string       `json:"album_type"`
	ReleaseDate  string       `json:"release_date"`
	TotalTracks  int          `json:"total_tracks"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// ArtistsPage is the artist half of a search response.
type ArtistsPage struct {
	Items []Artist `json:"items"`
}

// AlbumsPage is the album half of a search response.
type AlbumsPage struct {
	Items []Album `json:"items"`
}

// SearchResult is the decoded body of a combined artist/album search.
// Both lists are ranked; either may be empty.
type SearchResult struct {
	Artists ArtistsPage `json:"artists"`
	Albums  AlbumsPage  `json:"albums"`
}

// releasesPage is one page of the artist albums endpoint.
type releasesPage struct {
	Items []Release `json:"items"`
	Next  *string   `json:"next"`
}
