package domain

// Review is one user-submitted App Store review.
// LastUpdate and DeveloperResponse.Modified are kept as the raw timestamp
// strings the catalog API returns; nothing downstream needs a parsed date.
type Review struct {
	UserName   string
	Title      string
	Review     string
	IsEdited   bool
	LastUpdate string
	Rating     int

	// Present only when the store record carried one; never synthesized.
	DeveloperResponse *DeveloperResponse
}

type DeveloperResponse struct {
	DeveloperID int64
	Body        string
	Modified    string
}

// Page is one unit of work: the reviews at a single 1-based page of the
// catalog listing, plus the upstream continuation cursor. The cursor is
// informational only; page ranges are computed by offset arithmetic, not
// by following Next.
type Page struct {
	Number  int
	Reviews []Review
	Next    *string
}
