package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"restock/forecast"
)

// History policies for products with fewer than forecast.Window days of sales.
const (
	HistoryPad    = "pad"
	HistoryStrict = "strict"
)

// Config holds the service configuration. It is loaded once in main and
// passed to the components that need it.
type Config struct {
	Port            string
	DatabaseURL     string
	ModelDir        string
	StockServiceURL string
	UpstreamTimeout time.Duration

	ModelResolution forecast.ResolutionMode
	HistoryPolicy   string
	HistoryPad      forecast.PadStrategy

	GeminiAPIKey string
	GeminiModel  string
}

// Load reads the configuration from the environment. Call godotenv.Load first
// to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		Port:            getenv("PORT", "3000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ModelDir:        getenv("MODEL_DIR", "./artifacts"),
		StockServiceURL: getenv("STOCK_SERVICE_URL", "http://stock-service:3002"),
		HistoryPolicy:   getenv("HISTORY_POLICY", HistoryPad),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getenv("GEMINI_MODEL", "gemini-1.5-pro"),
	}

	var err error
	if cfg.UpstreamTimeout, err = durationEnv("UPSTREAM_TIMEOUT", 5*time.Second); err != nil {
		return cfg, err
	}
	if cfg.ModelResolution, err = forecast.ParseResolutionMode(getenv("MODEL_RESOLUTION", string(forecast.ModeStrict))); err != nil {
		return cfg, err
	}
	if cfg.HistoryPad, err = forecast.ParsePadStrategy(getenv("HISTORY_PAD", string(forecast.PadZero))); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks values that can also be set from CLI flags.
func (c Config) Validate() error {
	if c.HistoryPolicy != HistoryPad && c.HistoryPolicy != HistoryStrict {
		return fmt.Errorf("HISTORY_POLICY must be %q or %q, got %q", HistoryPad, HistoryStrict, c.HistoryPolicy)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", c.UpstreamTimeout)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.ModelDir == "" {
		return fmt.Errorf("MODEL_DIR is not set")
	}
	return nil
}

// StrictHistory reports whether short histories are rejected instead of padded.
func (c Config) StrictHistory() bool {
	return c.HistoryPolicy == HistoryStrict
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
