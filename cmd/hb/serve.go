package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Austuin/HoneyBadgerTool/pro"
	"github.com/Austuin/HoneyBadgerTool/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the shared job board server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var (
	serveAddr string
	serveDB   string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, or :8300)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.ServerAddr()
	}

	dbPath := serveDB
	if dbPath == "" {
		dbPath, err = cfg.ServerDBPath()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}

	store, err := pro.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Printf("Serving job board on %s (db %s)\n", addr, dbPath)
	return server.NewServer(store, server.Options{}).Serve(addr)
}
