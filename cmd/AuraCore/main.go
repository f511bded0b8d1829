package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aurra-labs/AuraCore/internal/agents"
	"github.com/aurra-labs/AuraCore/internal/api"
	"github.com/aurra-labs/AuraCore/internal/autonomy"
	"github.com/aurra-labs/AuraCore/internal/engagement"
	"github.com/aurra-labs/AuraCore/internal/genai"
	"github.com/aurra-labs/AuraCore/internal/lockfile"
	"github.com/aurra-labs/AuraCore/internal/orchestrator"
	"github.com/aurra-labs/AuraCore/internal/scheduler"
	"github.com/aurra-labs/AuraCore/internal/store"
	"github.com/aurra-labs/AuraCore/internal/synth"
	"github.com/aurra-labs/AuraCore/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for AuraCore state data
	DefaultStateDir = "/var/lib/auracore"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "auracore.db"
	// DefaultAPIAddr is the default API listen address
	DefaultAPIAddr = ":8080"
)

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	// Hold the state directory lock for the lifetime of the process
	lock, err := lockfile.AcquireLock(*flags.stateDir)
	if err != nil {
		slog.Error("Failed to acquire state directory lock", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			slog.Error("Failed to release state directory lock", "error", err)
		}
	}()

	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("Failed to close store", "error", err)
		}
	}()

	loc, err := time.LoadLocation(*flags.timezone)
	if err != nil {
		slog.Error("Failed to load timezone", "error", err, "tz", *flags.timezone)
		os.Exit(1)
	}

	engage := engagement.NewService(st, engagement.WithLocation(loc))
	catalog := agents.NewCatalog()

	synthOpts := buildSynthOptions(flags, engage)
	syn := synth.NewSynthesizer(catalog, synthOpts...)

	sched := scheduler.NewScheduler()
	defer sched.Stop()

	orch := orchestrator.New(catalog, autonomy.NewSelector(), syn, engage,
		orchestrator.WithScheduler(sched))

	server := api.NewServer(orch, engage, buildAPIOptions(flags)...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Bootstrapping AuraCore with configured modules")
	slog.Debug("Final configuration", "state_dir", *flags.stateDir, "dsn_set", *flags.dbDSN != "", "api_addr", *flags.apiAddr, "tz", *flags.timezone)
	if err := server.Run(ctx); err != nil {
		slog.Error("AuraCore failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("AuraCore exited successfully")
}

// Config holds environment configuration
type Config struct {
	DbDriver     string
	DatabaseURL  string
	StateDir     string
	OpenAIKey    string
	APIAddr      string
	Timezone     string
	GenAIEnabled bool
}

// Flags holds command line flag values
type Flags struct {
	stateDir     *string
	dbDriver     *string
	dbDSN        *string
	openaiKey    *string
	apiAddr      *string
	timezone     *string
	genaiEnabled *bool
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
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
		DbDriver:     os.Getenv("AURACORE_DB_DRIVER"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		StateDir:     os.Getenv("AURACORE_STATE_DIR"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		APIAddr:      os.Getenv("API_ADDR"),
		Timezone:     os.Getenv("AURACORE_TZ"),
		GenAIEnabled: util.ParseBoolEnv("AURACORE_GENAI_ENABLED", false),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No AURACORE_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}
	if config.APIAddr == "" {
		config.APIAddr = DefaultAPIAddr
	}
	if config.Timezone == "" {
		config.Timezone = "Local"
	}

	slog.Debug("environment variables loaded",
		"AURACORE_DB_DRIVER", config.DbDriver,
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"AURACORE_STATE_DIR", config.StateDir,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"API_ADDR", config.APIAddr,
		"AURACORE_TZ", config.Timezone,
		"AURACORE_GENAI_ENABLED", config.GenAIEnabled)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:     flag.String("state-dir", config.StateDir, "state directory for AuraCore data (overrides $AURACORE_STATE_DIR)"),
		dbDriver:     flag.String("db-driver", config.DbDriver, "database driver for the engagement store, sqlite3 or postgres (overrides $AURACORE_DB_DRIVER)"),
		dbDSN:        flag.String("db-dsn", config.DatabaseURL, "database DSN for the engagement store (overrides $DATABASE_URL)"),
		openaiKey:    flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		apiAddr:      flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		timezone:     flag.String("tz", config.Timezone, "IANA timezone for daily-activity boundaries (overrides $AURACORE_TZ)"),
		genaiEnabled: flag.Bool("genai", config.GenAIEnabled, "enable GenAI response enrichment (overrides $AURACORE_GENAI_ENABLED)"),
	}

	flag.Parse()

	// Default to SQLite in the state directory when no DSN is provided
	if *flags.dbDSN == "" {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", *flags.dbDSN)
	}

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDriver", *flags.dbDriver,
		"dbDSN_set", *flags.dbDSN != "",
		"openaiKeySet", *flags.openaiKey != "",
		"apiAddr", *flags.apiAddr,
		"tz", *flags.timezone,
		"genaiEnabled", *flags.genaiEnabled)

	return flags
}

// buildStore selects and constructs the engagement store. An explicit driver
// wins; otherwise the DSN shape decides.
func buildStore(flags Flags) (store.Store, error) {
	driver := *flags.dbDriver
	if driver == "" {
		driver = store.DetectDSNType(*flags.dbDSN)
	}
	switch driver {
	case "postgres":
		slog.Debug("Configuring PostgreSQL store", "driver", driver)
		return store.NewPostgresStore(store.WithDSN(*flags.dbDSN))
	default:
		slog.Debug("Configuring SQLite store", "driver", driver, "db_path", *flags.dbDSN)
		return store.NewSQLiteStore(store.WithDSN(*flags.dbDSN))
	}
}

// buildSynthOptions wires optional GenAI response enrichment. When enrichment
// is active, the per-user relationship-phase guide is injected into the
// enrichment system prompts.
func buildSynthOptions(flags Flags, engage *engagement.Service) []synth.Option {
	var opts []synth.Option
	if !*flags.genaiEnabled {
		slog.Debug("GenAI enrichment disabled, using canned agent messages")
		return opts
	}
	var genaiOpts []genai.Option
	if *flags.openaiKey != "" {
		genaiOpts = append(genaiOpts, genai.WithAPIKey(*flags.openaiKey))
	}
	client, err := genai.NewClient(genaiOpts...)
	if err != nil {
		slog.Warn("GenAI client unavailable, falling back to canned agent messages", "error", err)
		return opts
	}
	opts = append(opts,
		synth.WithEnricher(client),
		synth.WithGuideSource(func(ctx context.Context, userID string) string {
			guide, err := engage.PhaseGuide(ctx, userID)
			if err != nil {
				slog.Warn("Phase guide unavailable, enriching without it", "error", err, "userID", userID)
				return ""
			}
			return guide
		}),
	)
	return opts
}

// buildAPIOptions constructs API configuration options
func buildAPIOptions(flags Flags) []api.Option {
	var opts []api.Option
	if *flags.apiAddr != "" {
		opts = append(opts, api.WithAddr(*flags.apiAddr))
	}
	return opts
}
