package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/splendir/pkg/splendir/config"
	"github.com/jamesainslie/splendir/pkg/splendir/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file if none exists",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("default_path: %s\n", cfg.DefaultPath)
	fmt.Println("scan:")
	fmt.Printf("  include_hidden:  %v\n", cfg.Scan.IncludeHidden)
	fmt.Printf("  follow_symlinks: %v\n", cfg.Scan.FollowSymlinks)
	fmt.Printf("  max_depth:       %d\n", cfg.Scan.MaxDepth)
	fmt.Printf("  hashes:          %v\n", cfg.Scan.Hashes)
	fmt.Printf("  exclude:         %v\n", cfg.Scan.Exclude)
	fmt.Printf("  workers:         %d\n", cfg.Scan.Workers)
	fmt.Println("logging:")
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	logPath := cfg.Logging.Path
	if logPath == "" {
		logPath = logging.DefaultLogPath()
	}
	fmt.Printf("  path:  %s\n", logPath)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.WriteDefault(); err != nil {
		return err
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Printf("Config file: %s\n", filepath.Join(dir, "config.yaml"))
	return nil
}
