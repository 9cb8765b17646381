package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/promptkit/bedrockd/invoke"
)

// AWSConfig represents the AWS connection settings.
type AWSConfig struct {
	Region  string `yaml:"region,omitempty"`  // AWS region (default: us-east-1)
	Profile string `yaml:"profile,omitempty"` // Shared config profile name
}

// RetryConfig represents throttle-retry behavior for Bedrock API calls.
type RetryConfig struct {
	MaxRetries      int     `yaml:"max_retries,omitempty"`      // Retries after the first attempt (default: 3)
	InitialInterval int     `yaml:"initial_interval,omitempty"` // First backoff delay in seconds (default: 1)
	MaxInterval     int     `yaml:"max_interval,omitempty"`     // Backoff delay cap in seconds (default: 30)
	Multiplier      float64 `yaml:"multiplier,omitempty"`       // Backoff growth factor (default: 2.0)
}

// BatchConfig represents defaults for concurrent batch invocation.
type BatchConfig struct {
	MaxWorkers  int `yaml:"max_workers,omitempty"`  // Default worker count, 1-10 (default: 5)
	ItemTimeout int `yaml:"item_timeout,omitempty"` // Per-invocation timeout in seconds (default: 120)
}

// LogConfig represents log output settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // trace, debug, info, warn, or error (default: info)
	File   string `yaml:"file,omitempty"`   // Log file path (default: stderr)
	Pretty bool   `yaml:"pretty,omitempty"` // Human-readable console output instead of JSON
}

// ServerConfig represents configuration for the bedrockd server.
type ServerConfig struct {
	AWS   AWSConfig   `yaml:"aws,omitempty"`
	Retry RetryConfig `yaml:"retry,omitempty"`
	Batch BatchConfig `yaml:"batch,omitempty"`
	Log   LogConfig   `yaml:"log,omitempty"`
}

// GetServerConfigPath returns the default server config file path.
// Can be overridden via BEDROCKD_CONFIG_PATH environment variable.
func GetServerConfigPath() string {
	if envPath := os.Getenv("BEDROCKD_CONFIG_PATH"); envPath != "" {
		return expandPath(envPath)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./.bedrockd/config.yaml"
	}
	return filepath.Join(homeDir, ".bedrockd", "config.yaml")
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// LoadServerConfig loads server configuration from the given path, merged
// onto defaults. A missing file is not an error; the defaults apply.
func LoadServerConfig(path string) (*ServerConfig, error) {
	defaults := ServerConfig{
		AWS: AWSConfig{
			Region: "us-east-1",
		},
		Retry: RetryConfig{
			MaxRetries:      3,
			InitialInterval: 1,
			MaxInterval:     30,
			Multiplier:      2.0,
		},
		Batch: BatchConfig{
			MaxWorkers:  invoke.DefaultBatchWorkers,
			ItemTimeout: 120,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	expandedPath := expandPath(path)
	if _, err := os.Stat(expandedPath); err == nil {
		configYAML, err := os.ReadFile(expandedPath) //#nosec 304 -- intentional file read for config
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", expandedPath, err)
		}

		var fileConfig ServerConfig
		if err := yaml.Unmarshal(configYAML, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}

		if err := mergo.Merge(&defaults, fileConfig, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge config: %w", err)
		}
	}

	// Keep batch settings inside the ranges the engine accepts.
	if defaults.Batch.MaxWorkers < invoke.MinBatchWorkers {
		defaults.Batch.MaxWorkers = invoke.MinBatchWorkers
	}
	if defaults.Batch.MaxWorkers > invoke.MaxBatchWorkers {
		defaults.Batch.MaxWorkers = invoke.MaxBatchWorkers
	}
	if defaults.Batch.ItemTimeout <= 0 {
		defaults.Batch.ItemTimeout = 120
	}

	return &defaults, nil
}

// SaveServerConfig saves the server configuration to the specified path.
func SaveServerConfig(cfg *ServerConfig, path string) error {
	expandedPath := expandPath(path)

	dir := filepath.Dir(expandedPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(expandedPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
