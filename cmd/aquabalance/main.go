package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/akaretnikov/aquabalance/internal/bot"
	"github.com/akaretnikov/aquabalance/internal/goal"
	"github.com/akaretnikov/aquabalance/internal/nutrition"
	"github.com/akaretnikov/aquabalance/internal/store"
	"github.com/akaretnikov/aquabalance/internal/tracker"
	"github.com/akaretnikov/aquabalance/internal/util"
	"github.com/akaretnikov/aquabalance/internal/weather"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for AquaBalance state data
	DefaultStateDir = "/var/lib/aquabalance"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "aquabalance.db"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if *flags.botToken == "" {
		slog.Error("Telegram bot token not set (use $TELEGRAM_BOT_TOKEN or --bot-token)")
		os.Exit(1)
	}

	weatherClient := weather.NewClient(weather.WithAPIKey(*flags.weatherKey))
	nutritionClient := nutrition.NewClient()
	tr := tracker.New(st, weatherClient, nutritionClient, goal.DefaultConfig())

	b, err := bot.New(*flags.botToken, tr)
	if err != nil {
		slog.Error("Failed to create Telegram bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Bootstrapping AquaBalance", "dsn_type", store.DetectDSNType(*flags.dbDSN))
	if err := b.Start(ctx); err != nil {
		slog.Error("AquaBalance failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("AquaBalance exited successfully")
}

// Config holds environment configuration
type Config struct {
	BotToken    string
	DatabaseURL string
	StateDir    string
	WeatherKey  string
}

// Flags holds command line flag values
type Flags struct {
	botToken   *string
	dbDSN      *string
	stateDir   *string
	weatherKey *string
}

// initializeLogger sets up structured logging; debug level is opt-in.
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("AQUABALANCE_DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		BotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StateDir:    util.GetenvDefault("AQUABALANCE_STATE_DIR", DefaultStateDir),
		WeatherKey:  os.Getenv("OPENWEATHER_API_KEY"),
	}

	// Without a database URL, fall back to SQLite in the state directory.
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"TELEGRAM_BOT_TOKEN_SET", config.BotToken != "",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"AQUABALANCE_STATE_DIR", config.StateDir,
		"OPENWEATHER_API_KEY_SET", config.WeatherKey != "")

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		botToken:   flag.String("bot-token", config.BotToken, "Telegram bot token (overrides $TELEGRAM_BOT_TOKEN)"),
		dbDSN:      flag.String("db-dsn", config.DatabaseURL, "database DSN for the user record store (overrides $DATABASE_URL)"),
		stateDir:   flag.String("state-dir", config.StateDir, "state directory for AquaBalance data (overrides $AQUABALANCE_STATE_DIR)"),
		weatherKey: flag.String("weather-api-key", config.WeatherKey, "OpenWeatherMap API key (overrides $OPENWEATHER_API_KEY)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"botToken_set", *flags.botToken != "",
		"dbDSN_set", *flags.dbDSN != "",
		"stateDir", *flags.stateDir,
		"weatherKey_set", *flags.weatherKey != "")

	return flags
}

// buildStore selects and initializes a store backend from the DSN.
// loadEnvironmentConfig always supplies one (SQLite in the state directory
// by default), so an empty DSN only happens via an explicit flag override
// and is rejected rather than silently losing persistence.
func buildStore(flags Flags) (store.Store, error) {
	dsn := *flags.dbDSN
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is empty; pass --db-dsn or set $DATABASE_URL")
	}
	if store.DetectDSNType(dsn) == "postgres" {
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store")
		return store.NewPostgresStore(store.WithPostgresDSN(dsn))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", dsn)
	return store.NewSQLiteStore(store.WithSQLiteDSN(dsn))
}
