package domain

import "errors"

// Failure taxonomy for a scrape run. Call sites wrap these with %w and
// decide fatality by position: any failure during token acquisition or
// count estimation aborts the run, the same failure inside a page fetch
// only drops that page.
var (
	// ErrAuth: the landing page did not yield a bearer token.
	ErrAuth = errors.New("appstore: authorization failed")

	// ErrHTTP: non-success response status.
	ErrHTTP = errors.New("appstore: bad response status")

	// ErrDecode: response body is not valid JSON.
	ErrDecode = errors.New("appstore: undecodable response body")

	// ErrSchema: response JSON is missing an expected field.
	ErrSchema = errors.New("appstore: unexpected response schema")

	// ErrIO: writing the output file failed.
	ErrIO = errors.New("sink: write failed")
)
