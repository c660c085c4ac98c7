package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by the loader.
const (
	EnvConfig         = "HFBRIDGE_CONFIG"
	EnvEndpointURL    = "HFBRIDGE_ENDPOINT_URL"
	EnvAPIKey         = "HFBRIDGE_API_KEY"
	EnvHFToken        = "HF_TOKEN"
	EnvModel          = "HFBRIDGE_MODEL"
	EnvPort           = "HFBRIDGE_PORT"
	EnvUpstream       = "HFBRIDGE_UPSTREAM"
	EnvTokenEstimator = "HFBRIDGE_TOKEN_ESTIMATOR"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, HFBRIDGE_CONFIG env, ./hfbridge.yaml, /etc/hfbridge/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (endpoint.api_key_file)
//  5. Validation
func Load(configPath string) (*Config, error) {
	// Start with defaults.
	cfg := Defaults()

	// Discover and load YAML config file.
	filePath := FindConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	// Resolve _file references.
	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	// Validate.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile returns the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. HFBRIDGE_CONFIG environment variable
// 3. ./hfbridge.yaml in the current directory
// 4. /etc/hfbridge/config.yaml
//
// Returns empty string if no config file is found.
func FindConfigFile(configPath string) string {
	// Explicit path takes priority.
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath
	}

	// Check common locations.
	candidates := []string{
		"hfbridge.yaml",
		"/etc/hfbridge/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvEndpointURL); v != "" {
		cfg.Endpoint.URL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.Endpoint.APIKey = v
	} else if v := os.Getenv(EnvHFToken); v != "" && cfg.Endpoint.APIKey == "" && cfg.Endpoint.APIKeyFile == "" {
		// HF_TOKEN is the Hugging Face CLI convention; it only fills a gap.
		cfg.Endpoint.APIKey = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Endpoint.ModelID = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv(EnvUpstream); v != "" {
		cfg.Interceptor.Upstream = v
	}
	if v := os.Getenv(EnvTokenEstimator); v != "" {
		cfg.Tokens.Estimator = v
	}
}

// resolveFileReferences reads _file fields and populates the corresponding value fields.
// If the value field is empty and the file field is set, the file is read,
// whitespace is trimmed, and the value field is populated.
func resolveFileReferences(cfg *Config) error {
	// endpoint.api_key_file -> endpoint.api_key
	if cfg.Endpoint.APIKeyFile != "" && cfg.Endpoint.APIKey == "" {
		val, err := readSecretFile(cfg.Endpoint.APIKeyFile)
		if err != nil {
			return fmt.Errorf("endpoint.api_key_file: %w", err)
		}
		cfg.Endpoint.APIKey = val
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
