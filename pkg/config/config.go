// Package config provides unified configuration for hfbridge.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (HFBRIDGE_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
//
// Watch reloads the file on change so that long-running commands can
// apply new endpoint credentials without a restart.
package config

import (
	"time"

	"github.com/rhuss/hfbridge/pkg/interceptor"
)

// Config holds all configuration for hfbridge.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Endpoint      EndpointConfig      `yaml:"endpoint"`
	Generation    GenerationConfig    `yaml:"generation"`
	Tokens        TokensConfig        `yaml:"tokens"`
	Interceptor   InterceptConfig     `yaml:"interceptor"`
	Observability ObservabilityConfig `yaml:"observability"`
	Log           LogConfig           `yaml:"log"`
}

// ServerConfig holds settings of the local proxy server.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8080
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 300s, streams are long-lived
}

// EndpointConfig describes the inference endpoint.
type EndpointConfig struct {
	URL        string        `yaml:"url"`
	APIKey     string        `yaml:"api_key"`
	APIKeyFile string        `yaml:"api_key_file"` // _file variant for api_key
	ModelID    string        `yaml:"model_id"`     // default: "tgi"
	Timeout    time.Duration `yaml:"timeout"`      // default: 120s
}

// GenerationConfig holds defaults for options a caller leaves unset.
type GenerationConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`  // default: 500
	Temperature float64 `yaml:"temperature"` // default: 0.7
}

// TokensConfig selects the token estimator used when the endpoint does not
// report usage.
type TokensConfig struct {
	Estimator string `yaml:"estimator"` // "chars" or "tiktoken", default: "chars"
	Encoding  string `yaml:"encoding"`  // tiktoken encoding, default: derived from model_id
}

// InterceptConfig holds transport interceptor settings.
type InterceptConfig struct {
	Enabled  bool     `yaml:"enabled"`  // default: true
	Upstream string   `yaml:"upstream"` // default: "https://api.openai.com"
	Paths    []string `yaml:"paths"`    // default: interceptor.DefaultPaths
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// LogConfig holds logging settings. HFBRIDGE_LOG_LEVEL and HFBRIDGE_DEBUG
// take precedence (see package debug).
type LogConfig struct {
	Level  string `yaml:"level"`  // default: "INFO"
	Debug  string `yaml:"debug"`  // comma-separated debug categories
	Format string `yaml:"format"` // "text" or "json", default: "text"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 300 * time.Second,
		},
		Endpoint: EndpointConfig{
			ModelID: "tgi",
			Timeout: 120 * time.Second,
		},
		Generation: GenerationConfig{
			MaxTokens:   500,
			Temperature: 0.7,
		},
		Tokens: TokensConfig{
			Estimator: "chars",
		},
		Interceptor: InterceptConfig{
			Enabled:  true,
			Upstream: "https://api.openai.com",
			Paths:    append([]string(nil), interceptor.DefaultPaths...),
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
		Log: LogConfig{
			Level:  "INFO",
			Format: "text",
		},
	}
}

// InterceptorConfig projects the endpoint settings onto the interceptor's
// configuration. A disabled interceptor yields an inactive config.
func (c *Config) InterceptorConfig() interceptor.Config {
	if !c.Interceptor.Enabled {
		return interceptor.Config{}
	}
	return interceptor.Config{
		APIKey:      c.Endpoint.APIKey,
		EndpointURL: c.Endpoint.URL,
		ModelID:     c.Endpoint.ModelID,
	}
}
