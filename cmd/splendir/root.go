package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/splendir/pkg/splendir/config"
	"github.com/jamesainslie/splendir/pkg/splendir/logging"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "splendir [path]",
		Short: "Scan directory trees with hashes and format detection",
		Long: `Splendir walks a directory tree and builds a browsable model of it:
every entry with its size, modification time, SHA-256 and MD5 digests,
and a content-sniffed format hint.

Results render as a flat table, a branch tree, CSV, or a summary analysis.

Examples:
  splendir ~/Documents          # Scan with hashes, table output
  splendir --tree -C .          # Colorized tree view
  splendir --fast ~/src         # Shallow scan, no hashing
  splendir --analyze ~/media    # Size and type breakdown
  splendir --sort size --desc . # Largest entries first
  splendir stats /var/log       # Quick counts without the full model`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}
)

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/splendir/config.yaml)")
	rootCmd.PersistentFlags().BoolP("hidden", "a", false, "include hidden entries")
	rootCmd.PersistentFlags().BoolP("follow-symlinks", "L", false, "follow symbolic links to directories")
	rootCmd.PersistentFlags().IntP("max-depth", "d", 0, "maximum traversal depth (0=unlimited)")
	rootCmd.PersistentFlags().StringSliceP("exclude", "e", nil, "exclude patterns (can be specified multiple times)")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "override worker count (0=auto)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	rootCmd.Flags().Bool("tree", false, "render results as a branch tree")
	rootCmd.Flags().Bool("analyze", false, "render a size and type analysis")
	rootCmd.Flags().Bool("fast", false, "shallow scan: depth 3, no hashing")
	rootCmd.Flags().Bool("no-hash", false, "skip digest computation")
	rootCmd.Flags().BoolP("color", "C", false, "colorize output")
	rootCmd.Flags().Bool("ascii", false, "use ASCII branch characters in tree output")
	rootCmd.Flags().StringP("output", "o", "", "output format (table, tree, csv, analysis)")
	rootCmd.Flags().StringP("sort", "s", "", "sort rows by: name, size, mtime, type")
	rootCmd.Flags().Bool("desc", false, "sort in descending order")

	_ = viper.BindPFlag("scan.include_hidden", rootCmd.PersistentFlags().Lookup("hidden"))
	_ = viper.BindPFlag("scan.follow_symlinks", rootCmd.PersistentFlags().Lookup("follow-symlinks"))
	_ = viper.BindPFlag("scan.max_depth", rootCmd.PersistentFlags().Lookup("max-depth"))
	_ = viper.BindPFlag("scan.exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	_ = viper.BindPFlag("scan.workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "splendir"))
		}

		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "splendir"))
		}
	}

	viper.SetEnvPrefix("SPLENDIR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("default_path", config.DefaultPath)
	viper.SetDefault("scan.exclude", config.DefaultExclusions)
	viper.SetDefault("scan.workers", config.DefaultWorkers())
	viper.SetDefault("scan.hashes", true)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.path", "")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "warning: cannot read config: %v\n", err)
		}
	}
}

// initLogging sets up file logging; console logging follows --verbose.
func initLogging() {
	cfg := logging.Config{
		Level: viper.GetString("logging.level"),
		Path:  viper.GetString("logging.path"),
	}
	if viper.GetBool("verbose") {
		cfg.Level = "debug"
		cfg.ConsoleLevel = "debug"
	}
	if err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		_ = logging.Close()
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
