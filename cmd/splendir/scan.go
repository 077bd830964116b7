package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/splendir/pkg/splendir/config"
	"github.com/jamesainslie/splendir/pkg/splendir/output"
	"github.com/jamesainslie/splendir/pkg/splendir/scanner"
	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

// runScan is the main scan command handler.
func runScan(cmd *cobra.Command, args []string) error {
	scanPath := viper.GetString("default_path")
	if len(args) > 0 {
		scanPath = args[0]
	}

	expandedPath, err := config.ExpandPath(scanPath)
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	opts, err := buildScanOptions(cmd, expandedPath)
	if err != nil {
		return err
	}

	formatter, result, err := buildFormatter(cmd)
	if err != nil {
		return err
	}

	order, err := sortSpec(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, err := scanner.Start(ctx, opts)
	if err != nil {
		return err
	}

	// First interrupt stops the scan cooperatively; the partial result
	// still renders. A second interrupt aborts outright via default
	// signal handling.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, stopping scan...")
		session.Cancel()
		signal.Stop(sigChan)
	}()

	verbose := viper.GetBool("verbose")
	for snap := range session.Progress() {
		if verbose {
			fmt.Fprintf(os.Stderr, "\r%d entries, %d errors: %s",
				snap.Entries, snap.Errors, snap.CurrentPath)
		}
	}
	if verbose {
		fmt.Fprintln(os.Stderr)
	}

	state := session.Wait()

	result.Root = session.Root()
	result.Rows = session.Rows(-1)
	result.Stats = session.Stats()
	result.Duration = session.Elapsed()
	result.Cancelled = state == scanner.StateCancelled

	if order != nil {
		result.Order = session.Resort(order.key, order.dir)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Print(buf.String())

	return nil
}

// buildScanOptions merges flags and config into scanner options.
func buildScanOptions(cmd *cobra.Command, path string) (scanner.Options, error) {
	fast, _ := cmd.Flags().GetBool("fast")
	analyze, _ := cmd.Flags().GetBool("analyze")
	noHash, _ := cmd.Flags().GetBool("no-hash")

	opts := scanner.DefaultOptions()
	if fast {
		opts = scanner.FastOptions()
	}

	opts.Root = path
	opts.IncludeHidden = viper.GetBool("scan.include_hidden")
	opts.FollowSymlinks = viper.GetBool("scan.follow_symlinks")
	opts.Exclude = viper.GetStringSlice("scan.exclude")
	opts.Workers = viper.GetInt("scan.workers")

	if depth := viper.GetInt("scan.max_depth"); depth > 0 {
		opts.MaxDepth = depth
	}
	if analyze && !fast {
		opts.MaxDepth = config.DefaultAnalyzeDepth
	}
	if noHash || !viper.GetBool("scan.hashes") {
		opts.Hashes = false
	}

	if err := opts.Validate(); err != nil {
		return scanner.Options{}, err
	}
	return opts, nil
}

// buildFormatter resolves the output format from flags and prepares the
// result shell the formatter reads display options from.
func buildFormatter(cmd *cobra.Command) (output.Formatter, *output.Result, error) {
	treeMode, _ := cmd.Flags().GetBool("tree")
	analyze, _ := cmd.Flags().GetBool("analyze")
	color, _ := cmd.Flags().GetBool("color")
	ascii, _ := cmd.Flags().GetBool("ascii")
	format, _ := cmd.Flags().GetString("output")

	if format == "" {
		switch {
		case treeMode:
			format = "tree"
		case analyze:
			format = "analysis"
		default:
			format = "table"
		}
	}

	formatter, err := output.Get(format)
	if err != nil {
		return nil, nil, fmt.Errorf("unknown output format %q: available formats are %v",
			format, output.Available())
	}

	result := &output.Result{
		Color:   color,
		Unicode: !ascii,
	}
	return formatter, result, nil
}

type orderSpec struct {
	key types.SortKey
	dir types.Direction
}

// sortSpec parses the --sort/--desc flags; nil means index order.
func sortSpec(cmd *cobra.Command) (*orderSpec, error) {
	sortBy, _ := cmd.Flags().GetString("sort")
	if sortBy == "" {
		return nil, nil
	}

	key, err := types.ParseSortKey(sortBy)
	if err != nil {
		return nil, err
	}

	dir := types.Ascending
	if desc, _ := cmd.Flags().GetBool("desc"); desc {
		dir = types.Descending
	}
	return &orderSpec{key: key, dir: dir}, nil
}
