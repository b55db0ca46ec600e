// Package config loads analyzer configuration from file, environment, and
// defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the analyzer.
type Config struct {
	GitHub   GitHubConfig `mapstructure:"github"`
	MCP      MCPConfig    `mapstructure:"mcp"`
	LogLevel string       `mapstructure:"log_level"`
}

// GitHubConfig holds GitHub API settings.
type GitHubConfig struct {
	// Token is the personal access token used for API calls. Unset means
	// unauthenticated access with GitHub's much lower rate limits.
	Token string `mapstructure:"token"`

	// RateLimit is the client-side request budget in requests per second.
	RateLimit float64 `mapstructure:"rate_limit"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	// Transport is "stdio" or "http".
	Transport string `mapstructure:"transport"`

	// Listen is the HTTP listen address when Transport is "http".
	Listen string `mapstructure:"listen"`
}

// Load reads configuration from file, environment, and defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("github.rate_limit", 5.0)
	v.SetDefault("mcp.transport", "stdio")
	v.SetDefault("mcp.listen", ":8090")
	v.SetDefault("log_level", "info")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/onramp")
	}

	// Environment variables
	v.SetEnvPrefix("ONRAMP")
	v.AutomaticEnv()

	// Bind specific env vars
	_ = v.BindEnv("github.token", "GITHUB_ACCESS_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv("mcp.transport", "MCP_TRANSPORT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
