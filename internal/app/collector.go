package app

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"appstore_reviews/internal/adapters/observability"
	"appstore_reviews/internal/domain"
	"appstore_reviews/internal/shared"
)

// Collector turns the storefront's offset-paginated review listing into a
// single ordered in-memory sequence.
//
// Pages are addressed by arithmetic offset rather than by following the
// upstream cursor: independently addressable pages are what makes the fetch
// parallelizable at all. Completion order is arbitrary; sorting the
// collected pages by page number afterwards is what restores determinism.
//
// A failing page shrinks the result instead of failing the run. The page
// range itself comes from an approximate rating count, so the output is
// already best-effort; one dropped page does not change that contract.
type Collector struct {
	source  domain.ReviewSource
	cache   domain.Cache // nil disables metadata caching
	appName string
	appID   int64

	workers    int
	maxReviews int
	cacheTTL   int // seconds

	progress *Progress
}

type CollectorOptions struct {
	Workers     int // max in-flight page fetches, default 20
	MaxReviews  int // hard cap on reviews ever fetched, default 5200
	Cache       domain.Cache
	CacheTTLSec int
}

func NewCollector(source domain.ReviewSource, appName string, appID int64, opt CollectorOptions) *Collector {
	if opt.Workers <= 0 {
		opt.Workers = 20
	}
	if opt.MaxReviews <= 0 {
		opt.MaxReviews = 5200
	}
	if opt.CacheTTLSec <= 0 {
		opt.CacheTTLSec = 900
	}
	return &Collector{
		source:     source,
		cache:      opt.Cache,
		appName:    appName,
		appID:      appID,
		workers:    opt.Workers,
		maxReviews: opt.MaxReviews,
		cacheTTL:   opt.CacheTTLSec,
		progress:   NewProgress(),
	}
}

// Progress exposes the live counters for the ops server.
func (c *Collector) Progress() *Progress { return c.progress }

type pageResult struct {
	page    int
	reviews []domain.Review
	err     error
}

// Collect fetches every review page concurrently and returns the reviews in
// page order. Authorization and count estimation happen up front and are
// fatal on failure; after that, each page is an independent unit of work
// whose failure is logged with its page number and dropped.
func (c *Collector) Collect(ctx context.Context) ([]domain.Review, error) {
	// Token must exist before workers start so they only ever read it.
	if err := c.source.EnsureAuthenticated(ctx); err != nil {
		return nil, err
	}

	total, err := c.estimateTotal(ctx)
	if err != nil {
		return nil, err
	}
	log.Info().Str("app", c.appName).Int("rating_count", total).Msg("app rating count")

	if total > c.maxReviews {
		log.Warn().Str("app", c.appName).Int("max", c.maxReviews).
			Msgf("app has more than %d reviews, clamping", c.maxReviews)
		total = c.maxReviews
	}

	// Integer division on purpose: a trailing partial page is never
	// fetched, matching the storefront listing's own page boundary.
	lastPage := total / shared.ReviewsPerPage
	c.progress.Begin(lastPage)
	log.Info().Int("reviews_to_scan", total).Int("pages", lastPage).Msg("starting scan")

	results := make(chan pageResult, lastPage)
	sem := semaphore.NewWeighted(int64(c.workers))
	var wg sync.WaitGroup

	var submitErr error
	for page := 1; page <= lastPage; page++ {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			submitErr = fmt.Errorf("semaphore acquire: %w", err)
			break
		}
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			defer sem.Release(1)

			p, err := c.source.FetchPage(ctx, (page-1)*shared.ReviewsPerPage)
			results <- pageResult{page: page, reviews: p.Reviews, err: err}
		}(page)
	}

	wg.Wait()
	close(results)

	collected := make([]pageResult, 0, lastPage)
	for res := range results {
		if res.err != nil {
			log.Error().Int("page", res.page).Err(res.err).Msg("page scan failed")
			observability.ObservePage(0, true)
			c.progress.PageFailed()
			continue
		}
		observability.ObservePage(len(res.reviews), false)
		c.progress.PageDone(len(res.reviews))
		collected = append(collected, res)
	}

	if submitErr != nil {
		return nil, submitErr
	}

	sort.Slice(collected, func(i, j int) bool { return collected[i].page < collected[j].page })

	var reviews []domain.Review
	for _, pr := range collected {
		reviews = append(reviews, pr.reviews...)
	}
	c.progress.Finish()
	log.Info().Int("reviews", len(reviews)).Msg("scan finished")
	return reviews, nil
}

// CollectSequential walks the listing by following the continuation cursor
// one page at a time. Slower than Collect but independent of the rating
// count estimate; any page failure aborts since later offsets depend on
// earlier page sizes.
func (c *Collector) CollectSequential(ctx context.Context) ([]domain.Review, error) {
	if err := c.source.EnsureAuthenticated(ctx); err != nil {
		return nil, err
	}
	c.progress.Begin(0)

	var reviews []domain.Review
	offset := 0
	for {
		p, err := c.source.FetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		observability.ObservePage(len(p.Reviews), false)
		c.progress.PageDone(len(p.Reviews))
		reviews = append(reviews, p.Reviews...)

		// cap check comes before the cursor check so a final
		// cursor-terminated page cannot overshoot the hard cap
		if len(reviews) >= c.maxReviews {
			log.Warn().Int("max", c.maxReviews).Msg("hard cap reached, stopping scan")
			reviews = reviews[:c.maxReviews]
			break
		}
		if p.Next == nil || len(p.Reviews) == 0 {
			break
		}
		offset += len(p.Reviews)
	}

	c.progress.Finish()
	log.Info().Int("reviews", len(reviews)).Msg("scan finished")
	return reviews, nil
}

// estimateTotal reads the rating count, going through the metadata cache
// when one is configured.
func (c *Collector) estimateTotal(ctx context.Context) (int, error) {
	if c.cache != nil {
		if n, ok, err := c.cache.GetRatingCount(ctx, c.appID); err == nil && ok {
			return n, nil
		}
	}

	n, err := c.source.RatingCount(ctx)
	if err != nil {
		return 0, err
	}
	if c.cache != nil {
		_ = c.cache.SetRatingCount(ctx, c.appID, n, c.cacheTTL)
	}
	return n, nil
}
