package domain

import "context"

// ReviewSource is the authenticated storefront client as the collector
// sees it. The bearer token is acquired once by EnsureAuthenticated and
// is immutable for the rest of the process; callers must invoke it before
// fanning out concurrent fetches so workers only ever read the token.
type ReviewSource interface {
	EnsureAuthenticated(ctx context.Context) error

	// RatingCount returns the app's aggregate rating count. The store
	// reports an approximation of review volume, not an exact count.
	RatingCount(ctx context.Context) (int, error)

	// FetchPage fetches the reviews at the given zero-based offset.
	// A record missing a required field fails the whole page.
	FetchPage(ctx context.Context, offset int) (Page, error)
}

// ReviewSink persists a finished, ordered review sequence.
type ReviewSink interface {
	Write(ctx context.Context, reviews []Review) error
}

// Cache is an optional TTL cache for app metadata lookups. Only the
// rating-count estimate is cacheable; review pages are always refetched.
type Cache interface {
	GetRatingCount(ctx context.Context, appID int64) (int, bool, error)
	SetRatingCount(ctx context.Context, appID int64, count, ttlSec int) error
}
