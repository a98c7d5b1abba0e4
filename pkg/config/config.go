// Package config loads application configuration from ~/.bioroute and the
// environment. Environment variables take precedence over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults mirror the stock deployment: an OpenAI-backed router and
// reasoner and a local tool server.
const (
	DefaultCatalogURL    = "http://localhost:9000/mcp"
	DefaultRouterModel   = "gpt-4.1-mini"
	DefaultReasonerModel = "gpt-4.1"
	DefaultListenAddr    = ":5050"
)

// Config holds the application configuration.
type Config struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GoogleAPIKey    string
	DeepSeekAPIKey  string
	CatalogURL      string
	Router          StageModel
	Reasoner        StageModel
	ListenAddr      string
	ConfigDir       string
}

// StageModel selects the adapter and model identity for one pipeline stage.
// The router and reasoner are configured independently.
type StageModel struct {
	Adapter string `yaml:"adapter"`
	Model   string `yaml:"model"`
}

// FileConfig represents the structure of ~/.bioroute/config.yaml
type FileConfig struct {
	APIKeys APIKeysConfig `yaml:"api_keys"`
	Catalog CatalogConfig `yaml:"catalog"`
	Models  ModelsConfig  `yaml:"models"`
	Server  ServerConfig  `yaml:"server"`
}

// APIKeysConfig holds API key configuration from file.
type APIKeysConfig struct {
	Anthropic string `yaml:"anthropic"`
	OpenAI    string `yaml:"openai"`
	Google    string `yaml:"google"`
	DeepSeek  string `yaml:"deepseek"`
}

// CatalogConfig holds the tool server location.
type CatalogConfig struct {
	URL string `yaml:"url"`
}

// ModelsConfig holds the per-stage model selection.
type ModelsConfig struct {
	Router   StageModel `yaml:"router"`
	Reasoner StageModel `yaml:"reasoner"`
}

// ServerConfig holds the HTTP front end settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads configuration from the config file and environment variables.
// Environment variables take precedence over file configuration.
func Load() (*Config, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	fileConfig := loadFileConfig(filepath.Join(configDir, "config.yaml"))

	cfg := &Config{
		AnthropicAPIKey: getEnvOrDefault("ANTHROPIC_API_KEY", fileConfig.APIKeys.Anthropic),
		OpenAIAPIKey:    getEnvOrDefault("OPENAI_API_KEY", fileConfig.APIKeys.OpenAI),
		GoogleAPIKey:    getEnvOrDefault("GOOGLE_API_KEY", fileConfig.APIKeys.Google),
		DeepSeekAPIKey:  getEnvOrDefault("DEEPSEEK_API_KEY", fileConfig.APIKeys.DeepSeek),
		CatalogURL:      getEnvOrDefault("BIOROUTE_CATALOG_URL", fileConfig.Catalog.URL),
		Router: StageModel{
			Adapter: fileConfig.Models.Router.Adapter,
			Model:   getEnvOrDefault("ROUTER_MODEL", fileConfig.Models.Router.Model),
		},
		Reasoner: StageModel{
			Adapter: fileConfig.Models.Reasoner.Adapter,
			Model:   getEnvOrDefault("REASONER_MODEL", fileConfig.Models.Reasoner.Model),
		},
		ListenAddr: fileConfig.Server.Addr,
		ConfigDir:  configDir,
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.CatalogURL == "" {
		cfg.CatalogURL = DefaultCatalogURL
	}
	if cfg.Router.Adapter == "" {
		cfg.Router.Adapter = "openai"
	}
	if cfg.Router.Model == "" {
		cfg.Router.Model = DefaultRouterModel
	}
	if cfg.Reasoner.Adapter == "" {
		cfg.Reasoner.Adapter = "openai"
	}
	if cfg.Reasoner.Model == "" {
		cfg.Reasoner.Model = DefaultReasonerModel
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
}

// HasAdapter returns true if the API key for the given adapter is configured.
func (c *Config) HasAdapter(name string) bool {
	switch name {
	case "anthropic":
		return c.AnthropicAPIKey != ""
	case "openai":
		return c.OpenAIAPIKey != ""
	case "google":
		return c.GoogleAPIKey != ""
	case "deepseek":
		return c.DeepSeekAPIKey != ""
	default:
		return false
	}
}

// loadFileConfig reads the config file, returning empty config if not found.
func loadFileConfig(path string) *FileConfig {
	cfg := &FileConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg // Return empty config if file doesn't exist
	}

	_ = yaml.Unmarshal(data, cfg) // Ignore parse errors, use defaults
	return cfg
}

// getEnvOrDefault returns the environment variable value if set,
// otherwise returns the default value.
func getEnvOrDefault(envVar, defaultValue string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultValue
}

func getConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".bioroute")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}
