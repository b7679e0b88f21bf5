package appstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"appstore_reviews/internal/adapters/observability"
	"appstore_reviews/internal/domain"
	"appstore_reviews/internal/shared"
)

// Client talks to the App Store web catalog for a single app. The catalog
// API is undocumented; endpoints and header expectations mirror what the
// storefront web app itself sends.
//
// The bearer token is acquired once by EnsureAuthenticated and never
// refreshed. If it expires mid-run every later call fails with ErrHTTP.
// Requests carry no client-side timeout and are never retried; each call is
// independent and a hung request stays hung.
type Client struct {
	storeBase string
	ampBase   string
	locale    string
	region    string

	appName string
	appID   int64

	hc    *http.Client
	token string
	lg    zerolog.Logger
}

type Options struct {
	StoreBase string
	AmpAPI    string
	Locale    string
	Region    string
}

func New(appName string, appID int64, opt Options) (*Client, error) {
	if appName == "" {
		return nil, fmt.Errorf("app name is required")
	}
	if appID <= 0 {
		return nil, fmt.Errorf("app id must be positive")
	}
	if opt.StoreBase == "" {
		opt.StoreBase = "https://apps.apple.com"
	}
	if opt.AmpAPI == "" {
		opt.AmpAPI = "https://amp-api.apps.apple.com"
	}
	if opt.Locale == "" {
		opt.Locale = "ru"
	}
	if opt.Region == "" {
		opt.Region = "RU"
	}
	return &Client{
		storeBase: strings.TrimRight(opt.StoreBase, "/"),
		ampBase:   strings.TrimRight(opt.AmpAPI, "/"),
		locale:    opt.Locale,
		region:    opt.Region,
		appName:   appName,
		appID:     appID,
		hc:        &http.Client{},
		lg:        log.With().Str("component", "appstore").Logger(),
	}, nil
}

// landingURL is both the token source and the referer for catalog calls.
func (c *Client) landingURL() string {
	return fmt.Sprintf("%s/%s/app/%s/id%d", c.storeBase, c.locale, c.appName, c.appID)
}

// EnsureAuthenticated fetches the app landing page and extracts the media
// API token from the embedded environment config blob. The token is stored
// unguarded: callers establish it before any concurrent fetching starts and
// workers only ever read it afterwards.
func (c *Client) EnsureAuthenticated(ctx context.Context) error {
	if c.token != "" {
		return nil
	}
	c.lg.Info().Msg("authorizing in App Store")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.landingURL(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: landing page: %v", domain.ErrAuth, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("landing", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: landing page status %d", domain.ErrAuth, resp.StatusCode)
	}

	token, err := tokenFromLandingPage(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	c.token = token
	c.lg.Info().Msg("authorized in App Store")
	return nil
}

// RatingCount returns the app's aggregate rating count from catalog
// metadata. The store documents this as an approximation of review volume,
// not an exact count.
func (c *Client) RatingCount(ctx context.Context) (int, error) {
	if err := c.EnsureAuthenticated(ctx); err != nil {
		return 0, err
	}

	var out appInfoResponse
	endpoint := fmt.Sprintf("%s/v1/catalog/%s/apps/%d", c.ampBase, c.region, c.appID)
	q := url.Values{
		"platform":            {"web"},
		"additionalPlatforms": {"appletv,ipad,iphone,mac"},
		"l":                   {c.locale + "-" + c.locale},
	}
	if err := c.getJSON(ctx, "app_info", endpoint, q, &out); err != nil {
		return 0, err
	}

	if len(out.Data) == 0 || out.Data[0].Attributes == nil {
		return 0, fmt.Errorf("%w: app info has no attributes", domain.ErrSchema)
	}
	ur := out.Data[0].Attributes.UserRating
	if ur == nil || ur.RatingCount == nil {
		return 0, fmt.Errorf("%w: app info has no userRating.ratingCount", domain.ErrSchema)
	}
	return *ur.RatingCount, nil
}

// FetchPage fetches one fixed-size page of reviews at the given zero-based
// offset. A record missing any required field fails the whole page; there
// is no partial-page recovery. The returned Page carries the upstream
// continuation cursor untouched.
func (c *Client) FetchPage(ctx context.Context, offset int) (domain.Page, error) {
	if err := c.EnsureAuthenticated(ctx); err != nil {
		return domain.Page{}, err
	}

	page := offset/shared.ReviewsPerPage + 1
	c.lg.Info().Int("page", page).Msg("scanning reviews page")

	var out reviewsResponse
	endpoint := fmt.Sprintf("%s/v1/catalog/%s/apps/%d/reviews", c.ampBase, strings.ToLower(c.region), c.appID)
	q := url.Values{
		"platform":            {"web"},
		"additionalPlatforms": {"appletv,ipad,iphone,mac"},
		"l":                   {c.locale},
		"offset":              {strconv.Itoa(offset)},
	}
	if err := c.getJSON(ctx, "reviews", endpoint, q, &out); err != nil {
		return domain.Page{}, err
	}

	reviews := make([]domain.Review, 0, len(out.Data))
	for i, rec := range out.Data {
		r, err := rec.Attributes.toDomain()
		if err != nil {
			return domain.Page{}, fmt.Errorf("record %d at offset %d: %w", i, offset, err)
		}
		reviews = append(reviews, r)
	}
	return domain.Page{Number: page, Reviews: reviews, Next: out.Next}, nil
}

// getJSON performs one authenticated catalog GET and decodes the body.
/// No retries: a failure here is the caller's to classify as fatal or as a
// dropped page.
func (c *Client) getJSON(ctx context.Context, name, endpoint string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrHTTP, err)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Origin", c.storeBase)
	req.Header.Set("Referer", c.landingURL())
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrHTTP, name, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal(name, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %d", domain.ErrHTTP, name, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDecode, name, err)
	}
	return nil
}

// SetHTTPClient swaps the underlying HTTP client (tests).
func (c *Client) SetHTTPClient(hc *http.Client) { c.hc = hc }
