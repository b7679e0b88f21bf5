package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"appstore_reviews/internal/adapters/appstore"
	server "appstore_reviews/internal/adapters/http_server"
	"appstore_reviews/internal/adapters/observability"
	redisad "appstore_reviews/internal/adapters/redis"
	"appstore_reviews/internal/app"
	"appstore_reviews/internal/domain"
	"appstore_reviews/internal/shared"
	"appstore_reviews/internal/storage/csvfile"
	mysqlrepo "appstore_reviews/internal/storage/mysql"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <app_name> <app_id>\n", os.Args[0])
		os.Exit(2)
	}
	appName := os.Args[1]
	appID, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil || appID <= 0 {
		fmt.Fprintln(os.Stderr, "app_id must be a positive integer")
		os.Exit(2)
	}

	ctx := context.Background()
	cfg := shared.Load()

	// global logger: console plus append-mode log file
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogFile)

	log.Info().
		Str("app", appName).
		Int64("id", appID).
		Int("workers", cfg.Workers).
		Int("max_reviews", cfg.MaxReviews).
		Msg("scraper starting")

	client, err := appstore.New(appName, appID, appstore.Options{
		StoreBase: cfg.StoreBase,
		AmpAPI:    cfg.AmpAPI,
		Locale:    cfg.Locale,
		Region:    cfg.Region,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize App Store client")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	// optional relational sink; fail fast before scraping if it is unusable
	var repo *mysqlrepo.Repo
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		repo = mysqlrepo.New(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("schema setup failed")
		}
		log.Info().Msg("db ready")
	}

	collector := app.NewCollector(client, appName, appID, app.CollectorOptions{
		Workers:     cfg.Workers,
		MaxReviews:  cfg.MaxReviews,
		Cache:       cache,
		CacheTTLSec: int(cfg.CacheTTL.Seconds()),
	})

	if cfg.StatusAddr != "" {
		srv := server.New(collector.Progress())
		srv.Mount("/metrics", observability.MetricsHandler(observability.InitRegistry()))
		server.Serve(cfg.StatusAddr, srv)
	}

	var reviews []domain.Review
	if cfg.ScrapeMode == "sequential" {
		reviews, err = collector.CollectSequential(ctx)
	} else {
		reviews, err = collector.Collect(ctx)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("scan failed")
	}

	out := csvfile.New(appName + ".csv")
	if err := out.Write(ctx, reviews); err != nil {
		log.Fatal().Err(err).Msg("csv write failed")
	}

	if repo != nil {
		if err := mysqlrepo.NewSink(repo, appID).Write(ctx, reviews); err != nil {
			log.Fatal().Err(err).Msg("db write failed")
		}
		log.Info().Msg("db write ok")
	}

	log.Info().Int("reviews", len(reviews)).Msg("done")
}
