package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the toolbox server.
type Config struct {
	Port      int             `yaml:"port"`
	Version   string          `yaml:"version"`
	LogLevel  string          `yaml:"log_level"`
	Locale    string          `yaml:"locale"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Auth      AuthConfig      `yaml:"auth"`
	Assistant AssistantConfig `yaml:"assistant"`
	Chat      ChatConfig      `yaml:"chat"`
	Sessions  SessionConfig   `yaml:"sessions"`
}

type TelemetryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
	// SampleRatio is the fraction of new traces kept, 0 to 1.
	SampleRatio float64 `yaml:"sample_ratio"`
}

type AuthConfig struct {
	// APIKeys guards /api/v1. Empty disables auth.
	APIKeys []string `yaml:"api_keys"`
}

// AssistantConfig selects and configures the chat backend.
type AssistantConfig struct {
	Provider string        `yaml:"provider"`
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ChatConfig limits chat requests per client.
type ChatConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// SessionConfig controls idle expiry of calculator and chat sessions.
type SessionConfig struct {
	IdleTTL       time.Duration `yaml:"idle_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Port:     8080,
		Version:  "0.1.0",
		LogLevel: "info",
		Locale:   "en-US",
		Telemetry: TelemetryConfig{
			Enabled:      false,
			OTLPEndpoint: "localhost:4317",
			ServiceName:  "toolbox",
			SampleRatio:  1,
		},
		Assistant: AssistantConfig{
			Provider: "gemini",
			Model:    "gemini-3-flash-preview",
			Timeout:  60 * time.Second,
		},
		Chat: ChatConfig{
			RPS:   1,
			Burst: 5,
		},
		Sessions: SessionConfig{
			IdleTTL:       30 * time.Minute,
			SweepInterval: 5 * time.Minute,
		},
	}
}

// Load reads configuration: defaults, then the YAML file named by
// TOOLBOX_CONFIG if any, then environment variables.
func Load() (*Config, error) {
	cfg := Defaults()
	if path := os.Getenv("TOOLBOX_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = envInt("TOOLBOX_PORT", c.Port)
	c.Version = envStr("TOOLBOX_VERSION", c.Version)
	c.LogLevel = envStr("TOOLBOX_LOG_LEVEL", c.LogLevel)
	c.Locale = envStr("TOOLBOX_LOCALE", c.Locale)

	c.Telemetry.Enabled = envBool("OTEL_ENABLED", c.Telemetry.Enabled)
	c.Telemetry.OTLPEndpoint = envStr("OTEL_EXPORTER_OTLP_ENDPOINT", c.Telemetry.OTLPEndpoint)
	c.Telemetry.ServiceName = envStr("OTEL_SERVICE_NAME", c.Telemetry.ServiceName)
	c.Telemetry.SampleRatio = envFloat("OTEL_TRACES_SAMPLER_ARG", c.Telemetry.SampleRatio)

	c.Auth.APIKeys = envList("TOOLBOX_API_KEYS", c.Auth.APIKeys)

	c.Assistant.Provider = envStr("TOOLBOX_ASSISTANT_PROVIDER", c.Assistant.Provider)
	c.Assistant.Model = envStr("TOOLBOX_ASSISTANT_MODEL", c.Assistant.Model)
	c.Assistant.BaseURL = envStr("TOOLBOX_ASSISTANT_BASE_URL", c.Assistant.BaseURL)
	c.Assistant.Timeout = envDuration("TOOLBOX_ASSISTANT_TIMEOUT", c.Assistant.Timeout)
	c.Assistant.APIKey = envStr("API_KEY", c.Assistant.APIKey)
	switch strings.ToLower(c.Assistant.Provider) {
	case "openai":
		c.Assistant.APIKey = envStr("OPENAI_API_KEY", c.Assistant.APIKey)
	default:
		c.Assistant.APIKey = envStr("GEMINI_API_KEY", c.Assistant.APIKey)
	}

	c.Chat.RPS = envFloat("TOOLBOX_CHAT_RPS", c.Chat.RPS)
	c.Chat.Burst = envInt("TOOLBOX_CHAT_BURST", c.Chat.Burst)

	c.Sessions.IdleTTL = envDuration("TOOLBOX_SESSION_IDLE_TTL", c.Sessions.IdleTTL)
	c.Sessions.SweepInterval = envDuration("TOOLBOX_SESSION_SWEEP_INTERVAL", c.Sessions.SweepInterval)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated variable, dropping blanks.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
