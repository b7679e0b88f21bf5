//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"

	"appstore_reviews/internal/domain"
	mysqlrepo "appstore_reviews/internal/storage/mysql"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest pool: %v", err)
	}
	res, err := pool.Run("mysql", "8.0", []string{
		"MYSQL_ROOT_PASSWORD=secret",
		"MYSQL_DATABASE=reviews_test",
	})
	if err != nil {
		t.Fatalf("start mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(res) })

	dsn := fmt.Sprintf("root:secret@tcp(localhost:%s)/reviews_test?parseTime=true&charset=utf8mb4", res.GetPort("3306/tcp"))

	var db *sql.DB
	pool.MaxWait = 2 * time.Minute
	if err := pool.Retry(func() error {
		var oerr error
		db, oerr = sql.Open("mysql", dsn)
		if oerr != nil {
			return oerr
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleReviews() []domain.Review {
	return []domain.Review{
		{
			UserName: "alice", Title: "great", Review: "love it",
			IsEdited: false, LastUpdate: "2024-03-01T10:00:00Z", Rating: 5,
		},
		{
			UserName: "bob", Title: "meh", Review: "crashes",
			IsEdited: true, LastUpdate: "2024-03-02T11:00:00Z", Rating: 2,
			DeveloperResponse: &domain.DeveloperResponse{
				DeveloperID: 7001, Body: "fixed in 2.1", Modified: "2024-03-03",
			},
		},
	}
}

func TestUpsertReviews_Idempotent(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()

	repo := mysqlrepo.New(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	if err := repo.UpsertReviews(ctx, 123, sampleReviews()); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertReviews(ctx, 123, sampleReviews()); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	n, err := repo.CountReviews(ctx, 123)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows after repeated upsert, got %d", n)
	}

	// same review text under another app is a distinct row
	if err := repo.UpsertReviews(ctx, 456, sampleReviews()[:1]); err != nil {
		t.Fatalf("other app upsert: %v", err)
	}
	if n, _ := repo.CountReviews(ctx, 456); n != 1 {
		t.Fatalf("expected 1 row for second app, got %d", n)
	}
}

func TestUpsertReviews_EditReplaces(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()

	repo := mysqlrepo.New(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	rs := sampleReviews()[:1]
	if err := repo.UpsertReviews(ctx, 1, rs); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rs[0].IsEdited = true
	rs[0].Rating = 4
	rs[0].LastUpdate = "2024-04-01T00:00:00Z"
	if err := repo.UpsertReviews(ctx, 1, rs); err != nil {
		t.Fatalf("upsert edit: %v", err)
	}

	var rating int
	var edited bool
	err := db.QueryRowContext(ctx,
		"SELECT rating, is_edited FROM reviews WHERE app_id = 1").Scan(&rating, &edited)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if rating != 4 || !edited {
		t.Fatalf("expected edit to replace row, got rating=%d edited=%v", rating, edited)
	}
}
