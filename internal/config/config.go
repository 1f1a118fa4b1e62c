package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// OpenAIConfig holds settings for the generation gateway.
type OpenAIConfig struct {
	// APIKey authenticates against the completion API. Usually supplied
	// via OPENAI_API_KEY rather than the config file.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// Model overrides the default completion model.
	Model string `mapstructure:"model" yaml:"model"`

	// BaseURL overrides the completion API endpoint.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// GmailConfig holds settings for the mail gateway.
type GmailConfig struct {
	// BaseURL overrides the mail API endpoint.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// KeyringConfig holds settings for credential storage.
type KeyringConfig struct {
	// Service is the keyring service name entries are scoped to.
	Service string `mapstructure:"service" yaml:"service"`

	// FileDir is where the file fallback backend keeps its entries.
	FileDir string `mapstructure:"file_dir" yaml:"file_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	OpenAI   OpenAIConfig  `mapstructure:"openai" yaml:"openai"`
	Gmail    GmailConfig   `mapstructure:"gmail" yaml:"gmail"`
	Keyring  KeyringConfig `mapstructure:"keyring" yaml:"keyring"`
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/aireply/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "aireply", "config.yaml")
}

func defaultConfig() *Config {
	return &Config{
		Keyring: KeyringConfig{
			Service: "aireply",
			FileDir: "~/.config/aireply/keyring",
		},
		LogLevel: "info",
	}
}

// Load reads configuration from the given YAML file path using Viper.
// A missing file is not an error; defaults and environment variables
// still apply. Keys can be overridden via AIREPLY_-prefixed environment
// variables (AIREPLY_OPENAI_API_KEY, AIREPLY_LOG_LEVEL, ...), and the
// conventional OPENAI_API_KEY is honored as a fallback for the API key.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("keyring.service", "aireply")
	v.SetDefault("keyring.file_dir", "~/.config/aireply/keyring")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("AIREPLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return applyEnvFallbacks(defaultConfig()), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return applyEnvFallbacks(defaultConfig()), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return applyEnvFallbacks(cfg), nil
}

func applyEnvFallbacks(cfg *Config) *Config {
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if key := os.Getenv("AIREPLY_OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}
	return cfg
}
