package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/splendir/pkg/splendir/config"
	"github.com/jamesainslie/splendir/pkg/splendir/scanner"
)

var statsCmd = &cobra.Command{
	Use:   "stats [path]",
	Short: "Quick aggregate counts without building the full model",
	Long: `Stats walks the tree with a parallel, order-undefined traversal and
reports entry counts, total size, and the largest extensions. No hashing,
no format detection, no per-entry listing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	scanPath := viper.GetString("default_path")
	if len(args) > 0 {
		scanPath = args[0]
	}

	expandedPath, err := config.ExpandPath(scanPath)
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	opts := scanner.Options{
		Root:           expandedPath,
		IncludeHidden:  viper.GetBool("scan.include_hidden"),
		FollowSymlinks: viper.GetBool("scan.follow_symlinks"),
		MaxDepth:       viper.GetInt("scan.max_depth"),
		Exclude:        viper.GetStringSlice("scan.exclude"),
		Workers:        viper.GetInt("scan.workers"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	start := time.Now()
	snap, err := scanner.QuickStats(ctx, opts)
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	fmt.Printf("Files:   %d\n", snap.Files)
	fmt.Printf("Dirs:    %d\n", snap.Dirs)
	fmt.Printf("Total:   %s\n", humanize.IBytes(uint64(snap.TotalSize)))
	if snap.Errors > 0 {
		fmt.Printf("Errors:  %d\n", snap.Errors)
	}
	fmt.Printf("Elapsed: %s\n", time.Since(start).Round(time.Millisecond))

	if len(snap.Extensions) > 0 {
		type extRow struct {
			ext  string
			size int64
		}
		rows := make([]extRow, 0, len(snap.Extensions))
		for ext, st := range snap.Extensions {
			rows = append(rows, extRow{ext: ext, size: st.Size})
		}
		sort.Slice(rows, func(a, b int) bool {
			if rows[a].size != rows[b].size {
				return rows[a].size > rows[b].size
			}
			return rows[a].ext < rows[b].ext
		})
		if len(rows) > 5 {
			rows = rows[:5]
		}

		fmt.Println("\nLargest extensions:")
		for _, row := range rows {
			ext := row.ext
			if ext == "" {
				ext = "(none)"
			}
			fmt.Printf("  %10s  %s\n", humanize.IBytes(uint64(row.size)), ext)
		}
	}

	return nil
}
