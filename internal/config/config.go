// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"time"

	"github.com/okian/meditrack/internal/adapters/repository"
)

// Supported persistence backends.
const (
	BackendFile   = repository.BackendFile
	BackendMemory = repository.BackendMemory
	BackendRedis  = repository.BackendRedis
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBackend picks where medicines and the ledger live: file, memory or redis.
	StoreBackend string `koanf:"store_backend"`

	// DataDir holds medicines.json and adherence.json for the file backend.
	DataDir string `koanf:"data_dir"`

	// RedisURL and RedisPrefix configure the redis backend.
	RedisURL    string `koanf:"redis_url"`
	RedisPrefix string `koanf:"redis_prefix"`

	// ReminderIntervalSeconds is the reminder scan period.
	ReminderIntervalSeconds int `koanf:"reminder_interval_seconds"`

	// OutboxSize bounds the undelivered reminder buffer.
	OutboxSize int `koanf:"outbox_size"`

	// DedupeSize sets how many delivered reminders are remembered.
	DedupeSize int `koanf:"dedupe_size"`
}

// New creates a Config with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:                "info",
		LogFormat:               "text",
		Addr:                    ":9080",
		StoreBackend:            BackendFile,
		DataDir:                 "./data",
		RedisPrefix:             "meditrack:",
		ReminderIntervalSeconds: 60,
		OutboxSize:              256,
		DedupeSize:              4096,
	}
}

// Backend returns the persistence settings for repository.Open.
func (c *Config) Backend() repository.Backend {
	return repository.Backend{
		Kind:        c.StoreBackend,
		DataDir:     c.DataDir,
		RedisURL:    c.RedisURL,
		RedisPrefix: c.RedisPrefix,
	}
}

// ReminderInterval returns ReminderIntervalSeconds as a duration.
func (c *Config) ReminderInterval() time.Duration {
	return time.Duration(c.ReminderIntervalSeconds) * time.Second
}
