package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/yiblet/dash/internal/theme"
	"gopkg.in/yaml.v3"
)

const (
	SourceHTTP  = "http"
	SourceCache = "cache"

	EnvPrefix = "DASH_"
)

// Keys lists the configuration keys accepted by Get and Update
var Keys = []string{
	"page-size",
	"api-url",
	"timeout-seconds",
	"retries",
	"theme",
	"source",
	"log-file",
	"enforce-routes",
}

// IsKey reports whether key is a known configuration key
func IsKey(key string) bool {
	return slices.Contains(Keys, key)
}

// Config represents the dash configuration
type Config struct {
	PageSize       int    `yaml:"page_size" env:"PAGE_SIZE"`
	APIURL         string `yaml:"api_url" env:"API_URL"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
	Retries        int    `yaml:"retries" env:"RETRIES"`
	Theme          string `yaml:"theme" env:"THEME"`
	Source         string `yaml:"source" env:"SOURCE"`
	LogFile        string `yaml:"log_file,omitempty" env:"LOG_FILE"`
	EnforceRoutes  bool   `yaml:"enforce_routes" env:"ENFORCE_ROUTES"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		PageSize:       5,
		APIURL:         "https://jsonplaceholder.typicode.com/posts",
		TimeoutSeconds: 10,
		Retries:        2,
		Theme:          string(theme.Default),
		Source:         SourceHTTP,
	}
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ConfigManager manages configuration persistence
type ConfigManager struct {
	configPath string
}

// NewConfigManagerWithPath creates a config manager with custom config path
func NewConfigManagerWithPath(configPath string) *ConfigManager {
	return &ConfigManager{
		configPath: configPath,
	}
}

// Load reads the configuration file and applies DASH_* environment
// overrides on top. A missing file yields the defaults.
func (cm *ConfigManager) Load() (*Config, error) {
	config, err := cm.loadFile()
	if err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cm.validateAndSetDefaults(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// loadFile reads the file alone, without environment overrides.
func (cm *ConfigManager) loadFile() (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(cm.configPath)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Fields absent from the file keep their defaults
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// Save writes the configuration to file
func (cm *ConfigManager) Save(config *Config) error {
	if err := cm.validateAndSetDefaults(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// validateAndSetDefaults validates configuration and sets defaults for missing fields
func (cm *ConfigManager) validateAndSetDefaults(config *Config) error {
	if config.PageSize < 1 || config.PageSize > 100 {
		return fmt.Errorf("page_size must be between 1 and 100")
	}
	if config.TimeoutSeconds < 1 || config.TimeoutSeconds > 300 {
		return fmt.Errorf("timeout_seconds must be between 1 and 300")
	}
	if config.Retries < 0 || config.Retries > 10 {
		return fmt.Errorf("retries must be between 0 and 10")
	}

	if config.APIURL == "" {
		config.APIURL = DefaultConfig().APIURL
	}
	u, err := url.Parse(config.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url must be an http(s) URL")
	}

	if config.Theme == "" {
		config.Theme = string(theme.Default)
	}
	name, err := theme.Parse(config.Theme)
	if err != nil {
		return err
	}
	config.Theme = string(name)

	switch config.Source {
	case "":
		config.Source = SourceHTTP
	case SourceHTTP, SourceCache:
	default:
		return fmt.Errorf("source must be 'http' or 'cache'")
	}

	return nil
}

// GetConfigPath returns the path to the config file
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}

// Update modifies a specific configuration value. Environment overrides are
// not written back.
func (cm *ConfigManager) Update(key, value string) error {
	config, err := cm.loadFile()
	if err != nil {
		return err
	}

	switch key {
	case "page-size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for page-size: %s", value)
		}
		config.PageSize = n
	case "timeout-seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for timeout-seconds: %s", value)
		}
		config.TimeoutSeconds = n
	case "retries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for retries: %s", value)
		}
		config.Retries = n
	case "api-url":
		config.APIURL = value
	case "theme":
		config.Theme = value
	case "source":
		config.Source = value
	case "log-file":
		config.LogFile = value
	case "enforce-routes":
		switch value {
		case "true":
			config.EnforceRoutes = true
		case "false":
			config.EnforceRoutes = false
		default:
			return fmt.Errorf("invalid boolean value for enforce-routes: %s (must be 'true' or 'false')", value)
		}
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	return cm.Save(config)
}

// Get returns the effective value for a specific configuration key
func (cm *ConfigManager) Get(key string) (string, error) {
	values, err := cm.List()
	if err != nil {
		return "", err
	}

	value, ok := values[key]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return value, nil
}

// List returns all configuration keys and their effective values
func (cm *ConfigManager) List() (map[string]string, error) {
	config, err := cm.Load()
	if err != nil {
		return nil, err
	}

	result := map[string]string{
		"page-size":       strconv.Itoa(config.PageSize),
		"api-url":         config.APIURL,
		"timeout-seconds": strconv.Itoa(config.TimeoutSeconds),
		"retries":         strconv.Itoa(config.Retries),
		"theme":           config.Theme,
		"source":          config.Source,
		"log-file":        config.LogFile,
		"enforce-routes":  strconv.FormatBool(config.EnforceRoutes),
	}

	if result["log-file"] == "" {
		result["log-file"] = "[default]"
	}

	return result, nil
}
