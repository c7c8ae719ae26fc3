package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port           int           `env:"PORT" envDefault:"3318"`
	BackendURL     string        `env:"BACKEND_URL"`
	TokenDBPath    string        `env:"TOKEN_DB_PATH" envDefault:"session.db"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
}

// ParseFlags resolves configuration from CLI flags with environment
// fallback. Flags take precedence over environment variables.
func ParseFlags(args []string) (Config, error) {
	var fromEnv Config
	if err := env.Parse(&fromEnv); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	var cfg Config
	fs := flag.NewFlagSet("reviewhub", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "p", 0, "Listen port")
	fs.StringVar(&cfg.BackendURL, "b", "", "Backend base URL")
	fs.StringVar(&cfg.TokenDBPath, "t", "", "Token store path")
	fs.DurationVar(&cfg.BackendTimeout, "timeout", 0, "Backend request timeout")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment values (which carry the defaults)
	if cfg.Port == 0 {
		cfg.Port = fromEnv.Port
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = fromEnv.BackendURL
	}
	if cfg.TokenDBPath == "" {
		cfg.TokenDBPath = fromEnv.TokenDBPath
	}
	if cfg.BackendTimeout == 0 {
		cfg.BackendTimeout = fromEnv.BackendTimeout
	}

	if cfg.BackendURL == "" {
		return Config{}, errors.New("backend URL required (use -b or BACKEND_URL env)")
	}

	return cfg, nil
}
