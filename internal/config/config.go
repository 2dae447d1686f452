// Package config loads server and CLI settings.
//
// Precedence: built-in defaults, then an optional YAML file, then
// environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds the full site configuration.
type Config struct {
	Addr        string `yaml:"addr"`
	Env         string `yaml:"env"`
	DBPath      string `yaml:"db_path"`
	DatabaseURL string `yaml:"database_url"`
	CSRFKey     string `yaml:"csrf_key"`
	StaticDir   string `yaml:"static_dir"`
	Timezone    string `yaml:"timezone"`
	SlowQueryMs int    `yaml:"slow_query_ms"`

	SlowRequestMs  int      `yaml:"slow_request_ms"`
	TrustedOrigins []string `yaml:"trusted_origins"`

	Developer DeveloperConfig `yaml:"developer"`
	Email     EmailConfig     `yaml:"email"`
}

// DeveloperConfig seeds the developer account on first start.
type DeveloperConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// EmailConfig configures event announcement delivery.
type EmailConfig struct {
	ResendKey  string `yaml:"resend_key"`
	From       string `yaml:"from"`
	AnnounceTo string `yaml:"announce_to"`
}

// DefaultConfig returns development defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:        ":8080",
		Env:         EnvDevelopment,
		DBPath:      "treetroopers.db",
		StaticDir:   "static",
		Timezone:    "Local",
		SlowQueryMs: 50,

		SlowRequestMs: 200,
		Email: EmailConfig{
			From: "Tree Troopers <noreply@treetroopers.org>",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and environment overrides, then validates it.
// PRE: none
// POST: Returns a validated config or the first error found
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// PathFromEnv returns the config file named by CLUB_CONFIG, if any.
func PathFromEnv() string {
	return os.Getenv("CLUB_CONFIG")
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&c.Addr, "CLUB_ADDR")
	override(&c.Env, "CLUB_ENV")
	override(&c.DBPath, "CLUB_DB_PATH")
	override(&c.DatabaseURL, "DATABASE_URL")
	override(&c.CSRFKey, "CLUB_CSRF_KEY")
	override(&c.StaticDir, "CLUB_STATIC_DIR")
	override(&c.Timezone, "CLUB_TIMEZONE")
	override(&c.Developer.Email, "CLUB_DEV_EMAIL")
	override(&c.Developer.Password, "CLUB_DEV_PASSWORD")
	override(&c.Email.ResendKey, "CLUB_RESEND_KEY")
	override(&c.Email.From, "CLUB_EMAIL_FROM")
	override(&c.Email.AnnounceTo, "CLUB_ANNOUNCE_TO")
	overrideMs := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*dst = n
			}
		}
	}
	overrideMs(&c.SlowQueryMs, "CLUB_SLOW_QUERY_MS")
	overrideMs(&c.SlowRequestMs, "CLUB_SLOW_REQUEST_MS")
	if v := os.Getenv("CLUB_TRUSTED_ORIGINS"); v != "" {
		c.TrustedOrigins = strings.Split(v, ",")
	}
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("env must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}
	if c.DBPath == "" {
		return errors.New("db_path is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	if c.CSRFKey != "" {
		if _, err := c.CSRFKeyBytes(); err != nil {
			return err
		}
	} else if c.IsProduction() {
		return errors.New("csrf_key is required in production")
	}
	if c.SlowQueryMs <= 0 {
		return errors.New("slow_query_ms must be > 0")
	}
	if c.SlowRequestMs <= 0 {
		return errors.New("slow_request_ms must be > 0")
	}
	return nil
}

// IsProduction reports whether the site runs in production mode.
func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// Location returns the configured timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SlowQuery returns the slow-statement threshold.
func (c *Config) SlowQuery() time.Duration {
	return time.Duration(c.SlowQueryMs) * time.Millisecond
}

// SlowRequest returns the slow-request threshold.
func (c *Config) SlowRequest() time.Duration {
	return time.Duration(c.SlowRequestMs) * time.Millisecond
}

// CSRFKeyBytes decodes the hex CSRF key. An empty key yields nil.
func (c *Config) CSRFKeyBytes() ([]byte, error) {
	if c.CSRFKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.CSRFKey)
	if err != nil || len(key) != 32 {
		return nil, errors.New("csrf_key must be 64 hex characters (32 bytes)")
	}
	return key, nil
}
