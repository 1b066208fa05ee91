/*
Package config manages TOML config for TermServe binaries.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/termdict/termserve/internal/utils"
	"github.com/termdict/termserve/pkg/search"
)

// Config holds the entire config structure
type Config struct {
	Search SearchConfig `toml:"search"`
	Dict   DictConfig   `toml:"dict"`
	Server ServerConfig `toml:"server"`
}

// SearchConfig carries the session defaults applied when a caller omits a
// search parameter.
type SearchConfig struct {
	DefaultMode  string  `toml:"default_mode"`
	DefaultScope string  `toml:"default_scope"`
	DefaultLimit int     `toml:"default_limit"`
	MinLimit     int     `toml:"min_limit"`
	MaxLimit     int     `toml:"max_limit"`
	MinScore     float64 `toml:"min_score"`
}

// DictConfig holds dictionary file options.
type DictConfig struct {
	Path          string `toml:"path"`
	MaxTermLength int    `toml:"max_term_length"`
}

// ServerConfig has stdio server options.
type ServerConfig struct {
	MaxQueryLength int  `toml:"max_query_length"`
	DefaultSample  int  `toml:"default_sample"`
	Timing         bool `toml:"timing"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "termserve")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "termserve")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/termserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			DefaultMode:  "fuzzy",
			DefaultScope: "both",
			DefaultLimit: 10,
			MinLimit:     5,
			MaxLimit:     50,
			MinScore:     60,
		},
		Dict: DictConfig{
			Path:          filepath.Join("output", "tbd_dictionary.json"),
			MaxTermLength: 200,
		},
		Server: ServerConfig{
			MaxQueryLength: 200,
			DefaultSample:  5,
			Timing:         true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages whatever valid sections a broken TOML file
// still carries, defaulting the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if searchSection, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(searchSection, &config.Search)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	return config, nil
}

// extractSearchConfig extracts search defaults from a map
func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractString(data, "default_mode"); ok {
		search.DefaultMode = val
	}
	if val, ok := utils.ExtractString(data, "default_scope"); ok {
		search.DefaultScope = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		search.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_limit"); ok {
		search.MinLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		search.MaxLimit = val
	}
	if val, ok := utils.ExtractFloat64(data, "min_score"); ok {
		search.MinScore = val
	}
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "max_term_length"); ok {
		dict.MaxTermLength = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_query_length"); ok {
		server.MaxQueryLength = val
	}
	if val, ok := utils.ExtractInt64(data, "default_sample"); ok {
		server.DefaultSample = val
	}
	if val, ok := utils.ExtractBool(data, "timing"); ok {
		server.Timing = val
	}
}

// Validate repairs out-of-range numeric values with warnings and rejects
// unparseable mode and scope names outright.
func (c *Config) Validate() error {
	if _, err := search.ParseMode(c.Search.DefaultMode); err != nil {
		return fmt.Errorf("invalid default_mode: %w", err)
	}
	if _, err := search.ParseScope(c.Search.DefaultScope); err != nil {
		return fmt.Errorf("invalid default_scope: %w", err)
	}

	if c.Search.MinLimit < 1 {
		log.Warnf("min_limit %d out of range, using 1", c.Search.MinLimit)
		c.Search.MinLimit = 1
	}
	if c.Search.MaxLimit < c.Search.MinLimit {
		log.Warnf("max_limit %d below min_limit, using %d", c.Search.MaxLimit, c.Search.MinLimit)
		c.Search.MaxLimit = c.Search.MinLimit
	}
	c.Search.DefaultLimit = c.ClampLimit(c.Search.DefaultLimit)
	if c.Search.MinScore < 0 || c.Search.MinScore > 100 {
		log.Warnf("min_score %.1f out of [0,100], using 60", c.Search.MinScore)
		c.Search.MinScore = 60
	}
	if c.Dict.MaxTermLength <= 1 {
		log.Warnf("max_term_length %d too small, using 200", c.Dict.MaxTermLength)
		c.Dict.MaxTermLength = 200
	}
	if c.Server.MaxQueryLength <= 0 {
		c.Server.MaxQueryLength = 200
	}
	if c.Server.DefaultSample <= 0 {
		c.Server.DefaultSample = 5
	}
	return nil
}

// ClampLimit forces a requested result cap into the configured bounds.
func (c *Config) ClampLimit(limit int) int {
	if limit < c.Search.MinLimit {
		return c.Search.MinLimit
	}
	if limit > c.Search.MaxLimit {
		return c.Search.MaxLimit
	}
	return limit
}

// Params assembles engine parameters from the configured defaults.
func (c *Config) Params() (search.Params, error) {
	mode, err := search.ParseMode(c.Search.DefaultMode)
	if err != nil {
		return search.Params{}, err
	}
	scope, err := search.ParseScope(c.Search.DefaultScope)
	if err != nil {
		return search.Params{}, err
	}
	return search.Params{
		Mode:     mode,
		Scope:    scope,
		Limit:    c.Search.DefaultLimit,
		MinScore: c.Search.MinScore,
	}, nil
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update overwrites the session defaults and saves to file. Nil arguments
// leave the current value in place.
func (c *Config) Update(configPath string, mode, scope *string, limit *int, minScore *float64) error {
	if mode != nil {
		c.Search.DefaultMode = *mode
	}
	if scope != nil {
		c.Search.DefaultScope = *scope
	}
	if limit != nil {
		c.Search.DefaultLimit = c.ClampLimit(*limit)
	}
	if minScore != nil {
		c.Search.MinScore = *minScore
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return SaveConfig(c, configPath)
}
