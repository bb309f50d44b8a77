package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	DefaultConfigPath     = "config.toml"
	DefaultHTTPAddr       = ":8080"
	DefaultPGHost         = "127.0.0.1"
	DefaultPGPort         = 5432
	DefaultPGUser         = "postgres"
	DefaultPGDatabase     = "relay"
	DefaultPGSSLMode      = "disable"
	DefaultCallTimeoutSec = 8
	DefaultLanguage       = "en"
)

// DefaultFallbackReply is used when no provider is configured or the call fails.
const DefaultFallbackReply = "Hello! The assistant noticed your question and recommends checking the details with the seller. If you want, ask for order details or schedule a call."

type Config struct {
	Log       LogConfig       `toml:"log"`
	Server    ServerConfig    `toml:"server"`
	Postgres  PostgresConfig  `toml:"postgres"`
	Translate TranslateConfig `toml:"translate"`
	Push      PushConfig      `toml:"push"`
	Assistant AssistantConfig `toml:"assistant"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	SSLMode  string `toml:"sslmode"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// TranslateConfig enables the translation stage when ProjectID is set.
type TranslateConfig struct {
	ProjectID      string `toml:"project_id"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

func (c TranslateConfig) Enabled() bool {
	return c.ProjectID != ""
}

// PushConfig points at the push delivery endpoint (FCM-style HTTP send).
type PushConfig struct {
	Endpoint       string `toml:"endpoint"`
	ServerKey      string `toml:"server_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type AssistantConfig struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	FallbackReply  string `toml:"fallback_reply"`
}

func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Postgres: PostgresConfig{
			Host:     DefaultPGHost,
			Port:     DefaultPGPort,
			User:     DefaultPGUser,
			Database: DefaultPGDatabase,
			SSLMode:  DefaultPGSSLMode,
		},
		Translate: TranslateConfig{
			TimeoutSeconds: DefaultCallTimeoutSec,
		},
		Push: PushConfig{
			TimeoutSeconds: DefaultCallTimeoutSec,
		},
		Assistant: AssistantConfig{
			TimeoutSeconds: DefaultCallTimeoutSec,
			FallbackReply:  DefaultFallbackReply,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
