package session

// State is a step of a search session.
type State int

const (
	StateAwaitingInput    State = iota // Waiting for search text
	StateAuthenticating                // Requesting a token
	StateSearching                     // Running the combined search
	StateResolvingArtist               // Picking the artist from results
	StateFetchingReleases              // Paging through the discography
	StateEmitting                      // Printing or writing the document
	StateDone                          // Finished, including empty input and no results
	StateFailed                        // Stopped on an error
)

// String returns a human-readable representation of the State
func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateAuthenticating:
		return "authenticating"
	case StateSearching:
		return "searching"
	case StateResolvingArtist:
		return "resolving_artist"
	case StateFetchingReleases:
		return "fetching_releases"
	case StateEmitting:
		return "emitting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
