/*
Package config manages the TOML config for wordsuggest.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordsuggest/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Dict   DictConfig   `toml:"dict"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// EngineConfig tunes the suggestion engine.
type EngineConfig struct {
	CacheSize       int  `toml:"cache_size"`
	SpellCheck      bool `toml:"spell_check"`
	MaxEditDistance int  `toml:"max_edit_distance"`
	FuzzyMaxWords   int  `toml:"fuzzy_max_words"`
	DefaultLimit    int  `toml:"default_limit"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path            string   `toml:"path"`
	Format          string   `toml:"format"` // auto, text or binary
	Delimiter       string   `toml:"delimiter"`
	Download        bool     `toml:"download"` // fetch a word list when Path is missing
	DownloadLimit   int      `toml:"download_limit"`
	DownloadTimeout int      `toml:"download_timeout"` // seconds
	Sources         []string `toml:"sources"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit            int     `toml:"max_limit"`
	MinPrefix           int     `toml:"min_prefix"`
	MaxPrefix           int     `toml:"max_prefix"`
	EnableFilter        bool    `toml:"enable_filter"`
	CorrectionThreshold float64 `toml:"correction_threshold"` // minimum similarity for "correct" requests
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
	ShowTiming      bool `toml:"show_timing"`
}

// GetConfigDir picks the first writable location among ~/.config/wordsuggest and
// ~/Library/Application Support/wordsuggest, falling back to the executable dir.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("No home directory: %v", err)
		return utils.GetExecutableDir()
	}
	for _, dir := range []string{
		filepath.Join(home, ".config", "wordsuggest"),
		filepath.Join(home, "Library", "Application Support", "wordsuggest"),
	} {
		if utils.CheckDirStatus(dir).Writable {
			return dir, nil
		}
	}
	dir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("No executable directory: %v", err)
		return "", err
	}
	return dir, nil
}

// GetDefaultConfigPath returns config.toml inside GetConfigDir.
func GetDefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfigWithPriority tries the -config path, then the default path, then the
// builtin defaults. The returned path is empty when nothing was read from disk.
func LoadConfigWithPriority(customPath string) (*Config, string, error) {
	if customPath != "" {
		if !utils.FileExists(customPath) {
			log.Warnf("Config %s does not exist, falling back to default location", customPath)
		} else if cfg, err := LoadConfig(customPath); err != nil {
			log.Warnf("Config %s unreadable (%v), falling back to default location", customPath, err)
		} else {
			log.Debugf("Using config %s", customPath)
			return cfg, customPath, nil
		}
	}

	path, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("No default config location (%v), using builtin defaults", err)
		return DefaultConfig(), "", nil
	}
	cfg, err := InitConfig(path)
	if err != nil {
		log.Warnf("Config %s unusable (%v), using builtin defaults", path, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Using config %s", path)
	return cfg, path, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			CacheSize:       1000,
			SpellCheck:      true,
			MaxEditDistance: 2,
			FuzzyMaxWords:   100000,
			DefaultLimit:    10,
		},
		Dict: DictConfig{
			Path:            "words.txt",
			Format:          "auto",
			Delimiter:       "\t",
			Download:        true,
			DownloadLimit:   10000,
			DownloadTimeout: 10,
			Sources:         nil,
		},
		Server: ServerConfig{
			MaxLimit:            64,
			MinPrefix:           1,
			MaxPrefix:           60,
			EnableFilter:        true,
			CorrectionThreshold: 0.7,
		},
		CLI: CliConfig{
			DefaultLimit:    10,
			DefaultMinLen:   1,
			DefaultMaxLen:   60,
			DefaultNoFilter: false,
			ShowTiming:      true,
		},
	}
}

// InitConfig reads configPath, writing the defaults there first when it is missing.
func InitConfig(configPath string) (*Config, error) {
	dir := filepath.Dir(configPath)
	if err := utils.EnsureDir(dir); err != nil {
		log.Warnf("Cannot create %s (%v), using builtin defaults", dir, err)
		return DefaultConfig(), nil
	}
	if utils.FileExists(configPath) {
		return LoadConfig(configPath)
	}

	cfg := DefaultConfig()
	if err := SaveConfig(cfg, configPath); err != nil {
		log.Warnf("Cannot write %s (%v), using builtin defaults", configPath, err)
		return cfg, nil
	}
	log.Debugf("Wrote default config to %s", configPath)
	return cfg, nil
}

// LoadConfig loads from a TOML file, keeping every section that parses when the
// file as a whole does not.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse decodes the file into a generic map and copies every field whose
// type matches, leaving the rest at their defaults.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Nothing usable in %s (%v), using builtin defaults", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(section, &config.Engine)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		engine.CacheSize = val
	}
	if val, ok := utils.ExtractBool(data, "spell_check"); ok {
		engine.SpellCheck = val
	}
	if val, ok := utils.ExtractInt64(data, "max_edit_distance"); ok {
		engine.MaxEditDistance = val
	}
	if val, ok := utils.ExtractInt64(data, "fuzzy_max_words"); ok {
		engine.FuzzyMaxWords = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		engine.DefaultLimit = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractString(data, "format"); ok {
		dict.Format = val
	}
	if val, ok := utils.ExtractString(data, "delimiter"); ok {
		dict.Delimiter = val
	}
	if val, ok := utils.ExtractBool(data, "download"); ok {
		dict.Download = val
	}
	if val, ok := utils.ExtractInt64(data, "download_limit"); ok {
		dict.DownloadLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "download_timeout"); ok {
		dict.DownloadTimeout = val
	}
	if val, ok := utils.ExtractStrings(data, "sources"); ok {
		dict.Sources = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
	if val, ok := utils.ExtractFloat(data, "correction_threshold"); ok {
		server.CorrectionThreshold = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt64(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
	if val, ok := utils.ExtractBool(data, "show_timing"); ok {
		cli.ShowTiming = val
	}
}

// RebuildConfigFile force creates a new config.toml at the default path
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of the loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the engine values and saves to file. Nil arguments are left as is.
func (c *Config) Update(configPath string, cacheSize, maxEditDistance *int, spellCheck *bool) error {
	engine := &c.Engine
	if cacheSize != nil {
		engine.CacheSize = *cacheSize
	}
	if maxEditDistance != nil {
		engine.MaxEditDistance = *maxEditDistance
	}
	if spellCheck != nil {
		engine.SpellCheck = *spellCheck
	}
	return SaveConfig(c, configPath)
}

// UpdateServer changes the server values and saves to file when configPath is set.
// Nil arguments are left as is.
func (c *Config) UpdateServer(configPath string, maxLimit *int, enableFilter *bool) error {
	if maxLimit != nil {
		c.Server.MaxLimit = *maxLimit
	}
	if enableFilter != nil {
		c.Server.EnableFilter = *enableFilter
	}
	if configPath == "" {
		return nil
	}
	return SaveConfig(c, configPath)
}
