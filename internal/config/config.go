package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"APP_PORT"` specify the environment variable name;
// `default:""` provides a value when the env var is not set.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	HttpServer ServerConfig
	Postgres   PostgresConfig
	Ranking    RankingConfig
	Badges     BadgeConfig
	Search     SearchConfig
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// PostgresConfig holds PostgreSQL database connection details.
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" required:"true"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" required:"true"`
	Password string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName   string `envconfig:"POSTGRES_DBNAME" required:"true"`
}

// RankingConfig holds the tunables of the dynamic ordering: freshness
// boost windows, shuffle probabilities and caps for the two catalog
// views, and the recently-added strip.
type RankingConfig struct {
	BoostWindowHours   int     `envconfig:"RANK_BOOST_WINDOW_HOURS" default:"48"`
	FadeoutWindowHours int     `envconfig:"RANK_FADEOUT_WINDOW_HOURS" default:"72"`
	ShufflePercent     float64 `envconfig:"RANK_SHUFFLE_PERCENT" default:"30"`
	ShuffleCapFraction float64 `envconfig:"RANK_SHUFFLE_CAP_FRACTION" default:"0.15"`
	ShuffleCapMax      int     `envconfig:"RANK_SHUFFLE_CAP_MAX" default:"15"`

	BestSellerShufflePercent     float64 `envconfig:"RANK_BESTSELLER_SHUFFLE_PERCENT" default:"15"`
	BestSellerShuffleCapFraction float64 `envconfig:"RANK_BESTSELLER_SHUFFLE_CAP_FRACTION" default:"0.08"`
	BestSellerShuffleCapMax      int     `envconfig:"RANK_BESTSELLER_SHUFFLE_CAP_MAX" default:"5"`
	BestSellerScoreAdjust        float64 `envconfig:"RANK_BESTSELLER_SCORE_ADJUST" default:"-50"`

	RecentWindowDays int `envconfig:"RANK_RECENT_WINDOW_DAYS" default:"14"`
	RecentCount      int `envconfig:"RANK_RECENT_COUNT" default:"5"`
}

// BadgeConfig holds the badge age thresholds in days.
type BadgeConfig struct {
	NewTodayDays    int `envconfig:"BADGE_NEW_TODAY_DAYS" default:"1"`
	NewThisWeekDays int `envconfig:"BADGE_NEW_THIS_WEEK_DAYS" default:"7"`
	UpdatedDays     int `envconfig:"BADGE_UPDATED_DAYS" default:"14"`
}

// SearchConfig holds the suggestion engine tunables. The two distance
// ratios stay separate on purpose; see DESIGN.md.
type SearchConfig struct {
	SuggestionLimit       int     `envconfig:"SEARCH_SUGGESTION_LIMIT" default:"6"`
	ProductDistanceRatio  float64 `envconfig:"SEARCH_PRODUCT_DISTANCE_RATIO" default:"0.35"`
	CategoryDistanceRatio float64 `envconfig:"SEARCH_CATEGORY_DISTANCE_RATIO" default:"0.45"`
}

// DSN constructs the Data Source Name string for connecting to PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName)
}

var cfg Config

// Load initializes the configuration from environment variables.
// It should be called once during application startup.
func Load() (*Config, error) {
	log.Println("Loading service configuration...")
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	log.Printf("Configuration loaded successfully for APP_ENV: %s", cfg.AppEnv)
	return &cfg, nil
}
