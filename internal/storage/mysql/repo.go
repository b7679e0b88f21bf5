package mysql

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"appstore_reviews/internal/domain"
)

// Repo persists scraped reviews. The store exposes no review IDs, so rows
// are keyed by a sha1 of (user_name, title, review): the store shows one
// review per user and an edit replaces it, which is exactly upsert
// semantics here.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createReviewsSQL)
	return err
}

func (r *Repo) UpsertReviews(ctx context.Context, appID int64, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*11)
	for _, rv := range rs {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")

		var devID, devBody, devModified any
		if d := rv.DeveloperResponse; d != nil {
			devID, devBody, devModified = d.DeveloperID, d.Body, d.Modified
		}
		args = append(args,
			appID,
			reviewKey(rv),
			rv.UserName,
			rv.Title,
			rv.Review,
			rv.IsEdited,
			rv.LastUpdate,
			rv.Rating,
			devID,
			devBody,
			devModified,
		)
	}

	q := insertReviewsPrefix + strings.Join(placeholders, ",\n  ") + insertReviewsOnDup
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("upsert reviews: %w", err)
	}
	return nil
}

func (r *Repo) CountReviews(ctx context.Context, appID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countReviewsSQL, appID).Scan(&n)
	return n, err
}

func reviewKey(rv domain.Review) string {
	h := sha1.Sum([]byte(rv.UserName + "\x00" + rv.Title + "\x00" + rv.Review))
	return hex.EncodeToString(h[:])
}

// Sink adapts Repo to the review sink port for one app.
type Sink struct {
	repo  *Repo
	appID int64
}

func NewSink(repo *Repo, appID int64) *Sink { return &Sink{repo: repo, appID: appID} }

func (s *Sink) Write(ctx context.Context, reviews []domain.Review) error {
	return s.repo.UpsertReviews(ctx, s.appID, reviews)
}
