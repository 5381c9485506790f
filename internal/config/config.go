// Package config handles loading honeybadger.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultDataDirName is the per-user data directory under $HOME.
const DefaultDataDirName = ".honeybadger"

// DefaultServerPort is used when no server port is configured.
const DefaultServerPort = 8300

// Config represents the honeybadger.toml configuration file.
type Config struct {
	Task   Task   `toml:"task"`
	Server Server `toml:"server"`
}

// Task contains single-user tracker configuration.
type Task struct {
	// DataDir overrides where the task document is stored.
	DataDir string `toml:"data-dir"`
}

// Server contains shared job board configuration.
type Server struct {
	// Addr is the listen address or URL of the job server.
	Addr string `toml:"addr"`

	// DBPath overrides the SQLite database location.
	DBPath string `toml:"db-path"`
}

// Load loads configuration from an explicit path and the global config
// file, with the explicit file taking precedence per field. Returns an
// empty config when neither exists.
func Load(path string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	localCfg := &Config{}
	localMeta := toml.MetaData{}
	if path != "" {
		localCfg, localMeta, err = loadConfigFile(path)
		if err != nil {
			return nil, err
		}
	}

	return mergeConfigs(globalCfg, localCfg, globalMeta, localMeta), nil
}

// DataDir resolves the effective data directory, creating nothing.
func (c *Config) DataDir() (string, error) {
	if c != nil && c.Task.DataDir != "" {
		return c.Task.DataDir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultDataDirName), nil
}

// ServerAddr resolves the effective server address.
func (c *Config) ServerAddr() string {
	if c != nil && c.Server.Addr != "" {
		return c.Server.Addr
	}
	return fmt.Sprintf(":%d", DefaultServerPort)
}

// ServerDBPath resolves the effective SQLite database path.
func (c *Config) ServerDBPath() (string, error) {
	if c != nil && c.Server.DBPath != "" {
		return c.Server.DBPath, nil
	}
	dataDir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "pro.db"), nil
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "honeybadger", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, localCfg *Config, globalMeta, localMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if localCfg == nil {
		localCfg = &Config{}
	}

	merged := Config{}
	merged.Task.DataDir = mergeString(localMeta.IsDefined("task", "data-dir"), localCfg.Task.DataDir, globalCfg.Task.DataDir)
	merged.Server.Addr = mergeString(localMeta.IsDefined("server", "addr"), localCfg.Server.Addr, globalCfg.Server.Addr)
	merged.Server.DBPath = mergeString(localMeta.IsDefined("server", "db-path"), localCfg.Server.DBPath, globalCfg.Server.DBPath)

	return &merged
}

func mergeString(localDefined bool, localValue, globalValue string) string {
	value := globalValue
	if localDefined {
		value = localValue
	}
	return strings.TrimSpace(value)
}
