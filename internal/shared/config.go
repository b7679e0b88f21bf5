package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	// ReviewsPerPage is fixed by the catalog API contract.
	ReviewsPerPage = 10
)

type Config struct {
	AppEnv     string
	LogFile    string
	StatusAddr string

	StoreBase string
	AmpAPI    string
	Locale    string
	Region    string

	Workers    int
	MaxReviews int
	ScrapeMode string // parallel|sequential

	RedisAddr string
	RedisPass string
	RedisDB   int
	CacheTTL  time.Duration

	MySQLDSN string
}

func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Info().Msg(".env loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:     env("APP_ENV", "prod"),
		LogFile:    env("LOG_FILE", ".log"),
		StatusAddr: env("STATUS_ADDR", ""), // empty disables the ops server
		StoreBase:  env("STORE_BASE_URL", "https://apps.apple.com"),
		AmpAPI:     env("AMP_API_BASE_URL", "https://amp-api.apps.apple.com"),
		Locale:     env("STOREFRONT_LOCALE", "ru"),
		Region:     env("STOREFRONT_REGION", "RU"),
		Workers:    atoi("SCRAPE_WORKERS", 20),
		MaxReviews: atoi("MAX_REVIEWS", 5200),
		ScrapeMode: env("SCRAPE_MODE", "parallel"),
		RedisAddr:  env("REDIS_ADDR", ""), // empty disables the metadata cache
		RedisPass:  env("REDIS_PASSWORD", ""),
		RedisDB:    atoi("REDIS_DB", 0),
		CacheTTL:   time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		MySQLDSN:   env("MYSQL_DSN", ""), // empty disables the relational sink
	}
	if c.Workers <= 0 {
		c.Workers = 20
	}
	if c.MaxReviews <= 0 {
		c.MaxReviews = 5200
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
