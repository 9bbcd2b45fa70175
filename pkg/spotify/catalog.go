package spotify

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// CatalogService provides search and discography operations.
type CatalogService struct {
	client *Client
}

const (
	// SearchLimit is the number of results requested per type.
	SearchLimit = 5

	// ReleasesPageLimit is the page size requested from the artist albums endpoint.
	ReleasesPageLimit = 50

	// searchTypes and releaseGroups are fixed query values.
	searchTypes   = "artist,album"
	releaseGroups = "album,single"
)

// ErrNoMorePages is returned by Pager.Next after the last page.
var ErrNoMorePages = errors.New("spotify: no more pages")

// Search runs a combined artist and album search.
//
// The decoded body is returned as-is; choosing an artist from it is up to
// the caller.
//
// Example:
//
//	result, err := client.Catalog().Search(ctx, token.AccessToken, "radiohead")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Artists.Items {
//	    fmt.Println(a.ID, a.Name)
//	}
func (s *CatalogService) Search(ctx context.Context, token, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", searchTypes)
	params.Set("limit", strconv.Itoa(SearchLimit))

	var result SearchResult
	if err := s.client.get(ctx, token, s.client.baseURL+"/search?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Releases returns a pager over an artist's albums and singles.
//
// No request is made until the first call to Next.
func (s *CatalogService) Releases(token, artistID string) *Pager {
	params := url.Values{}
	params.Set("include_groups", releaseGroups)
	params.Set("limit", strconv.Itoa(ReleasesPageLimit))

	first := s.client.baseURL + "/artists/" + url.PathEscape(artistID) + "/albums?" + params.Encode()
	return &Pager{
		client: s.client,
		token:  token,
		first:  first,
		next:   first,
	}
}

// ListAllReleases fetches every page of an artist's albums and singles and
// returns them deduplicated by name, in the order first seen.
//
// Pages are fetched one at a time, each from the previous page's "next" URL.
// If any page fails the whole call fails and nothing is returned.
//
// Example:
//
//	releases, err := client.Catalog().ListAllReleases(ctx, token.AccessToken, artistID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d releases\n", len(releases))
func (s *CatalogService) ListAllReleases(ctx context.Context, token, artistID string) ([]Release, error) {
	pager := s.Releases(token, artistID)

	var all []Release
	for !pager.Done() {
		items, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}

	s.client.logDebugf("spotify: fetched %d releases in %d pages for artist %s", len(all), pager.Pages(), artistID)
	return DedupeByName(all), nil
}

// Pager walks a cursor-paginated releases listing.
//
// The sequence is finite and ends when a page has no "next" URL. A Pager is
// not safe for concurrent use.
type Pager struct {
	client *Client
	token  string
	first  string
	next   string
	done   bool
	pages  int
}

// Next fetches the current page and advances to the following one.
// After the last page it returns ErrNoMorePages.
//
// On error the pager does not advance.
func (p *Pager) Next(ctx context.Context) ([]Release, error) {
	if p.done {
		return nil, ErrNoMorePages
	}

	var page releasesPage
	if err := p.client.get(ctx, p.token, p.next, &page); err != nil {
		return nil, err
	}

	p.pages++
	if page.Next == nil || *page.Next == "" {
		p.done = true
		p.next = ""
	} else {
		p.next = *page.Next
	}

	return page.Items, nil
}

// Done reports whether the last page has been fetched.
func (p *Pager) Done() bool {
	return p.done
}

// Pages returns the number of pages fetched since creation or the last Reset.
func (p *Pager) Pages() int {
	return p.pages
}

// Reset rewinds the pager to the first page.
func (p *Pager) Reset() {
	p.next = p.first
	p.done = false
	p.pages = 0
}

// DedupeByName keeps the first release seen for each distinct name.
//
// Matching is exact: names differing in case or whitespace are distinct.
// The result preserves encounter order.
func DedupeByName(releases []Release) []Release {
	seen := make(map[string]struct{}, len(releases))
	out := make([]Release, 0, len(releases))

	for _, r := range releases {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		out = append(out, r)
	}
	return out
}
