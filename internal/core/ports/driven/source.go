package driven

import "context"

// RemoteDocument is a document summary returned by a remote listing.
type RemoteDocument struct {
	// ID is the remote document identifier.
	ID string

	// Title is the human-readable title.
	Title string

	// Text is the full markdown content. Populated by Fetch; listings may
	// return it empty.
	Text string

	// UpdatedAt is the remote modification timestamp (RFC 3339).
	UpdatedAt string
}

// RemotePage is one page of a paginated remote listing.
type RemotePage struct {
	// Documents are the summaries on this page.
	Documents []RemoteDocument

	// Offset is the offset this page was fetched at.
	Offset int

	// Limit is the page size that was requested.
	Limit int
}

// RemoteSource lists and fetches documents from a remote wiki service.
// Archived documents are excluded from listings.
type RemoteSource interface {
	// List returns one page of document summaries.
	List(ctx context.Context, offset, limit int) (*RemotePage, error)

	// ListAll walks the pagination and returns every non-archived document.
	ListAll(ctx context.Context) ([]RemoteDocument, error)

	// Fetch returns a single document with its full text.
	Fetch(ctx context.Context, id string) (*RemoteDocument, error)
}
