package console

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"github.com/hldiojin/hmes-dashboard-sub001/pkg/session"
	redisstore "github.com/hldiojin/hmes-dashboard-sub001/pkg/session/redis"
)

// Config holds the client configuration for the CLI.
type Config struct {
	// BaseURL is the console API root, e.g. https://console.example.com/api.
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds each HTTP request. Defaults to 30.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"user_agent"`

	// Session selects where the session is persisted.
	Session SessionConfig `yaml:"session"`
}

// SessionConfig selects the durable session backend. When RedisURL is set
// the session lives in Redis; otherwise it is a JSON file at Path, which
// defaults to hmes/session.json under the user config directory.
type SessionConfig struct {
	Path      string `yaml:"path"`
	RedisURL  string `yaml:"redis_url"`
	KeyPrefix string `yaml:"key_prefix"`
}

// LoadConfig loads configuration from a file.
// The path comes from command line arguments, controlled by the operator.
func LoadConfig(path string) (*Config, error) {
	// #nosec G304 -- path is from CLI args, controlled by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	data = []byte(expandEnvVars(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// expandEnvVars expands ${VAR} patterns in the string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// applyDefaults applies default values to the config.
func applyDefaults(cfg *Config) {
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = 30
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Session.Path == "" && cfg.Session.RedisURL == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.Session.Path = filepath.Join(dir, "hmes", "session.json")
		} else {
			cfg.Session.Path = "session.json"
		}
	}
}

// NewFromConfig builds a console client from a loaded configuration,
// including its durable session store. The returned client owns the Redis
// connection, if any; release it with Close.
func NewFromConfig(cfg *Config, opts ...Option) (*Console, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base_url is required")
	}
	applyDefaults(cfg)

	var store session.Store
	configured := []Option{
		WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}),
		WithUserAgent(cfg.UserAgent),
	}

	var redisClient *redis.Client
	if cfg.Session.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.Session.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing session redis URL: %w", err)
		}
		redisClient = redis.NewClient(redisOpts)
		store = redisstore.New(redisClient, cfg.Session.KeyPrefix)
	} else {
		store = session.NewFileStore(cfg.Session.Path)
	}
	configured = append(configured, WithSessionStore(store))
	configured = append(configured, opts...)

	c, err := New(cfg.BaseURL, configured...)
	if err != nil {
		if redisClient != nil {
			redisClient.Close()
		}
		return nil, err
	}
	if redisClient != nil {
		c.closers = append(c.closers, redisClient)
	}
	return c, nil
}
