package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultRoundDuration is how long a round accepts taps.
	DefaultRoundDuration = 60 * time.Second
	// DefaultCooldownDuration is the wait between round creation and start.
	DefaultCooldownDuration = 30 * time.Second
	// DefaultZeroScoreUsername is the reserved account whose taps never count.
	DefaultZeroScoreUsername = "Никита"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	JWT           JWTConfig           `yaml:"jwt"`
	Game          GameConfig          `yaml:"game"`
	Queue         QueueConfig         `yaml:"queue"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL keeps events in-process.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the API listener settings.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// GameConfig holds the round scheduling rules. Durations are integer
// milliseconds, as in ROUND_DURATION and COOLDOWN_DURATION, or Go duration
// strings such as "90s".
type GameConfig struct {
	RoundDuration     time.Duration `yaml:"round_duration"`
	CooldownDuration  time.Duration `yaml:"cooldown_duration"`
	ZeroScoreUsername string        `yaml:"zero_score_username"`
}

// UnmarshalYAML overlays only the keys present in the document.
func (g *GameConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		RoundDuration     *yaml.Node `yaml:"round_duration"`
		CooldownDuration  *yaml.Node `yaml:"cooldown_duration"`
		ZeroScoreUsername *string    `yaml:"zero_score_username"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.RoundDuration != nil {
		d, err := yamlDuration(raw.RoundDuration)
		if err != nil {
			return fmt.Errorf("game.round_duration: %w", err)
		}
		g.RoundDuration = d
	}
	if raw.CooldownDuration != nil {
		d, err := yamlDuration(raw.CooldownDuration)
		if err != nil {
			return fmt.Errorf("game.cooldown_duration: %w", err)
		}
		g.CooldownDuration = d
	}
	if raw.ZeroScoreUsername != nil {
		g.ZeroScoreUsername = *raw.ZeroScoreUsername
	}
	return nil
}

// yamlDuration reads an integer scalar as milliseconds and anything else as
// a Go duration string.
func yamlDuration(node *yaml.Node) (time.Duration, error) {
	if node.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("expected a scalar, got %q", node.Tag)
	}
	if node.ShortTag() == "!!int" {
		return parseMillis(node.Value)
	}
	return time.ParseDuration(node.Value)
}

// QueueConfig toggles the River job queue.
type QueueConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:           ":3000",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		JWT: JWTConfig{
			DefaultTTL: time.Hour,
		},
		Game: GameConfig{
			RoundDuration:     DefaultRoundDuration,
			CooldownDuration:  DefaultCooldownDuration,
			ZeroScoreUsername: DefaultZeroScoreUsername,
		},
		Queue: QueueConfig{
			Enabled: true,
		},
		Observability: ObservabilityConfig{
			Environment: "production",
			LogLevel:    "info",
		},
	}
}

// LoadConfig loads the configuration from a YAML file, falling back to the
// defaults when the file does not exist. Environment variables always win.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// env-only configuration
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides cfg with any environment variables that are set.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_DEFAULT_TTL value: %w", err)
		}
		cfg.JWT.DefaultTTL = d
	}
	if v := os.Getenv("ROUND_DURATION"); v != "" {
		d, err := parseMillis(v)
		if err != nil {
			return fmt.Errorf("invalid ROUND_DURATION value: %w", err)
		}
		cfg.Game.RoundDuration = d
	}
	if v := os.Getenv("COOLDOWN_DURATION"); v != "" {
		d, err := parseMillis(v)
		if err != nil {
			return fmt.Errorf("invalid COOLDOWN_DURATION value: %w", err)
		}
		cfg.Game.CooldownDuration = d
	}
	if v := os.Getenv("ZERO_SCORE_USERNAME"); v != "" {
		cfg.Game.ZeroScoreUsername = v
	}
	if v := os.Getenv("QUEUE_ENABLED"); v != "" {
		cfg.Queue.Enabled = v == "true"
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	return nil
}

// Validate checks the invariants the game relies on.
func (c *Config) Validate() error {
	if c.Game.RoundDuration <= 0 {
		return fmt.Errorf("game.round_duration must be positive, got %s", c.Game.RoundDuration)
	}
	if c.Game.CooldownDuration < 0 {
		return fmt.Errorf("game.cooldown_duration must not be negative, got %s", c.Game.CooldownDuration)
	}
	if strings.TrimSpace(c.Game.ZeroScoreUsername) == "" {
		return errors.New("game.zero_score_username must not be empty")
	}
	if userdomain.IsAdminUsername(c.Game.ZeroScoreUsername) {
		return fmt.Errorf("game.zero_score_username %q would be assigned the admin role", c.Game.ZeroScoreUsername)
	}
	if c.JWT.DefaultTTL <= 0 {
		return fmt.Errorf("jwt.default_ttl must be positive, got %s", c.JWT.DefaultTTL)
	}
	return nil
}

// RequireServing checks the settings only the API server needs.
func (c *Config) RequireServing() error {
	if c.Postgres.DSN == "" {
		return errors.New("DATABASE_URL environment variable not set")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET environment variable not set")
	}
	return nil
}

// parseMillis reads a plain integer as milliseconds.
func parseMillis(v string) (time.Duration, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
