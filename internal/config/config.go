// Package config loads the configuration for the backend.
//
// Values are read, in increasing order of priority, from the embedded
// defaults, an optional YAML file, a .env file and the environment.
// Environment variables use the FINTRACK_ prefix with "." replaced by "_",
// e.g. FINTRACK_AUTH_SECRET for auth.secret.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

//go:embed default.yaml
var defaultYAML []byte

// EnvPrefix is the prefix for all environment variables.
const EnvPrefix = "FINTRACK"

type Config struct {
	Server    Server    `mapstructure:"server"`
	Database  Database  `mapstructure:"database"`
	Auth      Auth      `mapstructure:"auth"`
	Log       Log       `mapstructure:"log"`
	Dashboard Dashboard `mapstructure:"dashboard"`
}

type Server struct {
	Port             int      `mapstructure:"port"`
	Mode             string   `mapstructure:"mode"`    // gin mode: debug, release or test
	APIURL           string   `mapstructure:"api_url"` // externally reachable URL of the API, used for links
	CORSAllowOrigins []string `mapstructure:"cors_allow_origins"`
	EnablePprof      bool     `mapstructure:"enable_pprof"`
	EnableMetrics    bool     `mapstructure:"enable_metrics"`
}

type Database struct {
	Path string `mapstructure:"path"` // path of the SQLite database file
}

type Auth struct {
	Secret   string        `mapstructure:"secret"` // HS256 secret shared with the identity provider
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type Log struct {
	Format string `mapstructure:"format"` // "human", "json" or empty for the default of the gin mode
}

type Dashboard struct {
	TrendMonths int `mapstructure:"trend_months"`
	RecentLimit int `mapstructure:"recent_limit"`
}

var (
	ErrSecretNotSet = errors.New("auth.secret must be set")
	ErrInvalidMode  = errors.New("server.mode must be one of debug, release, test")
)

// Load reads the configuration. path is an optional YAML file.
func Load(path string) (Config, error) {
	// A missing .env file is fine, the environment can be set up in any other way
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	err = v.ReadConfig(bytes.NewReader(defaultYAML))
	if err != nil {
		return Config{}, fmt.Errorf("could not read default configuration: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		err = v.MergeInConfig()
		if err != nil {
			return Config{}, fmt.Errorf("could not read configuration file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	err = v.Unmarshal(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("could not parse configuration: %w", err)
	}

	if cfg.Dashboard.TrendMonths <= 0 {
		cfg.Dashboard.TrendMonths = 6
	}

	if cfg.Dashboard.RecentLimit <= 0 {
		cfg.Dashboard.RecentLimit = 10
	}

	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}

	return cfg, nil
}

// Validate verifies that the configuration can be used to run the server.
func (c Config) Validate() error {
	if c.Auth.Secret == "" {
		return ErrSecretNotSet
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return ErrInvalidMode
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d must be between 1 and 65535", c.Server.Port)
	}

	_, err := c.URL()
	return err
}

// URL returns the parsed API URL.
func (c Config) URL() (*url.URL, error) {
	u, err := url.Parse(c.Server.APIURL)
	if err != nil {
		return nil, fmt.Errorf("server.api_url must be a valid URL: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server.api_url %q must contain scheme and host", c.Server.APIURL)
	}

	return u, nil
}
