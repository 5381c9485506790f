// Package main implements the hb CLI tool.
package main

import (
	"os"

	"github.com/Austuin/HoneyBadgerTool/internal/config"
	"github.com/Austuin/HoneyBadgerTool/task"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "hb",
	Short:         "HoneyBadger - track your work, solo or in a crew",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a honeybadger.toml config file")
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func openTaskStore() (*task.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}
	return task.NewStore(dataDir), nil
}
