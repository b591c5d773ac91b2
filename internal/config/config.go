// Package config loads profilectl settings from the environment and the
// profile file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/caio-campos/profilectl/profile"
)

// Config holds the CLI settings.
type Config struct {
	APIURL   string        `env:"PROFILECTL_API_URL,required"`
	Token    string        `env:"PROFILECTL_TOKEN"`
	Timeout  time.Duration `env:"PROFILECTL_TIMEOUT" envDefault:"30s"`
	LogLevel string        `env:"PROFILECTL_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads dotenvPath (when it exists) into the environment without
// overriding variables already set, then parses Config.
func Load(dotenvPath string) (Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Timeout < 0 {
		return Config{}, fmt.Errorf("timeout cannot be negative")
	}
	return cfg, nil
}

// LoadProfile decodes a TOML profile file into a profile.User.
func LoadProfile(path string) (profile.User, error) {
	var user profile.User

	meta, err := toml.DecodeFile(path, &user)
	if err != nil {
		return profile.User{}, fmt.Errorf("decode profile %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return profile.User{}, fmt.Errorf("decode profile %s: unknown key %q", path, undecoded[0].String())
	}

	return user, nil
}
