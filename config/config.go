package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Black-And-White-Club/tourney-bot/internal/observability"
	"gopkg.in/yaml.v3"
)

// Version is set at build time with -ldflags "-X .../config.Version=...".
var Version = "dev"

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	JWT           JWTConfig           `yaml:"jwt"`
	Toornament    ToornamentConfig    `yaml:"toornament"`
	Bot           BotConfig           `yaml:"bot"`
	HTTP          HTTPConfig          `yaml:"http"`
	Refresh       RefreshConfig       `yaml:"refresh"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL        string `yaml:"url"`
	QueueGroup string `yaml:"queue_group"`
}

// JWTConfig holds the HMAC secret for admin API tokens.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// ToornamentConfig holds the provider credentials.
type ToornamentConfig struct {
	APIURL        string        `yaml:"api_url"`
	APIKey        string        `yaml:"api_key"`
	ClientID      string        `yaml:"client_id"`
	ClientSecret  string        `yaml:"client_secret"`
	RatePerSecond float64       `yaml:"rate_per_second"`
	Burst         int           `yaml:"burst"`
	Timeout       time.Duration `yaml:"timeout"`
}

// BotConfig holds chat-side settings.
type BotConfig struct {
	// Superusers may run every command in every tournament.
	Superusers []string `yaml:"superusers"`
}

// HTTPConfig holds the API listener settings.
type HTTPConfig struct {
	Address string `yaml:"address"`
	// RatePerSecond and Burst limit requests per client IP.
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

// RefreshConfig controls the periodic provider refresh.
type RefreshConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment  string  `yaml:"environment"`
	LogLevel     string  `yaml:"log_level"`
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	OTLPInsecure bool    `yaml:"otlp_insecure"`
	SampleRate   float64 `yaml:"sample_rate"`
}

// LoadConfig loads the configuration from a YAML file. Environment variables
// override file values; without a file the environment is the only source.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	cfg := defaults()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		NATS: NATSConfig{QueueGroup: "tourney-bot"},
		Toornament: ToornamentConfig{
			APIURL:        "https://api.toornament.com",
			RatePerSecond: 5,
			Burst:         5,
			Timeout:       15 * time.Second,
		},
		HTTP:          HTTPConfig{Address: ":8080", RatePerSecond: 10, Burst: 20},
		Refresh:       RefreshConfig{Enabled: true, Interval: 30 * time.Minute},
		Observability: ObservabilityConfig{Environment: "development", LogLevel: "info", SampleRate: 0.1},
	}
}

func applyEnv(cfg *Config) error {
	str := map[string]*string{
		"DATABASE_URL":             &cfg.Postgres.DSN,
		"NATS_URL":                 &cfg.NATS.URL,
		"NATS_QUEUE_GROUP":         &cfg.NATS.QueueGroup,
		"JWT_SECRET":               &cfg.JWT.Secret,
		"TOORNAMENT_API_URL":       &cfg.Toornament.APIURL,
		"TOORNAMENT_API_KEY":       &cfg.Toornament.APIKey,
		"TOORNAMENT_CLIENT_ID":     &cfg.Toornament.ClientID,
		"TOORNAMENT_CLIENT_SECRET": &cfg.Toornament.ClientSecret,
		"HTTP_ADDRESS":             &cfg.HTTP.Address,
		"ENV":                      &cfg.Observability.Environment,
		"LOG_LEVEL":                &cfg.Observability.LogLevel,
		"OTLP_ENDPOINT":            &cfg.Observability.OTLPEndpoint,
	}
	for key, dst := range str {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("SUPERUSERS"); v != "" {
		cfg.Bot.Superusers = splitList(v)
	}
	if v := os.Getenv("REFRESH_ENABLED"); v != "" {
		cfg.Refresh.Enabled = v == "true"
	}
	if v := os.Getenv("OTLP_INSECURE"); v != "" {
		cfg.Observability.OTLPInsecure = v == "true"
	}

	durations := map[string]*time.Duration{
		"TOORNAMENT_TIMEOUT": &cfg.Toornament.Timeout,
		"REFRESH_INTERVAL":   &cfg.Refresh.Interval,
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s value: %w", key, err)
			}
			*dst = d
		}
	}

	floats := map[string]*float64{
		"TOORNAMENT_RATE_PER_SECOND": &cfg.Toornament.RatePerSecond,
		"HTTP_RATE_PER_SECOND":       &cfg.HTTP.RatePerSecond,
		"OTLP_SAMPLE_RATE":           &cfg.Observability.SampleRate,
	}
	for key, dst := range floats {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid %s value: %w", key, err)
			}
			*dst = f
		}
	}

	ints := map[string]*int{
		"TOORNAMENT_BURST": &cfg.Toornament.Burst,
		"HTTP_BURST":       &cfg.HTTP.Burst,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s value: %w", key, err)
			}
			*dst = n
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.Refresh.Enabled && c.Refresh.Interval < time.Minute {
		return fmt.Errorf("refresh interval must be at least 1m, got %s", c.Refresh.Interval)
	}
	if c.Observability.SampleRate < 0 || c.Observability.SampleRate > 1 {
		return fmt.Errorf("sample rate must be within [0, 1], got %v", c.Observability.SampleRate)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ToObsConfig maps the application config onto observability settings.
func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		ServiceName:  "tourney-bot",
		Environment:  appCfg.Observability.Environment,
		Version:      Version,
		LogLevel:     appCfg.Observability.LogLevel,
		OTLPEndpoint: appCfg.Observability.OTLPEndpoint,
		OTLPInsecure: appCfg.Observability.OTLPInsecure,
		SampleRate:   appCfg.Observability.SampleRate,
	}
}
