package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"concurrentset/internal/config"
	"concurrentset/internal/runner"
	"concurrentset/internal/set"
	"concurrentset/internal/telemetry"
	"concurrentset/internal/workload"
)

var (
	flagVariant     string
	flagBuckets     int
	flagConfigPath  string
	flagMetricsAddr string
	flagLogLevel    string
)

// newRootCmd builds the benchmark driver's command tree: five positional
// arguments per the workload contract, and a handful of optional flags
// for ambient stack concerns (table variant, config file, metrics,
// logging) that never touch the stdout contract.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concurrentset-bench <num_items> <num_threads> <key_range> <pct_insert> <pct_delete>",
		Short: "Drive a concurrent unordered integer set through a deterministic workload",
		Args:  cobra.ExactArgs(5),
		SilenceUsage: true,
		RunE:         runBench,
	}

	cmd.Flags().StringVar(&flagVariant, "variant", "", "table implementation: lockfree or locked (default from config, else lockfree)")
	cmd.Flags().IntVar(&flagBuckets, "buckets", 0, "bucket count for the table (default from config, else 10000)")
	cmd.Flags().StringVar(&flagConfigPath, "config", "", "optional TOML config file")
	cmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on, e.g. :9090")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, or error (default from config, else info)")

	return cmd
}

type parsedArgs struct {
	numItems   int
	numThreads int
	keyRange   int
	pctInsert  int
	pctDelete  int
}

// parseArgs validates the five positional arguments per the workload
// contract. A malformed or out-of-range argument is reported as an error
// so the caller can exit 1 without a stack trace.
func parseArgs(args []string) (parsedArgs, error) {
	var p parsedArgs
	fields := []struct {
		name string
		dst  *int
	}{
		{"num_items", &p.numItems},
		{"num_threads", &p.numThreads},
		{"key_range", &p.keyRange},
		{"pct_insert", &p.pctInsert},
		{"pct_delete", &p.pctDelete},
	}
	for i, f := range fields {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return parsedArgs{}, fmt.Errorf("%s: %q is not an integer", f.name, args[i])
		}
		*f.dst = v
	}

	if p.numItems < 0 {
		return parsedArgs{}, fmt.Errorf("num_items must be >= 0, got %d", p.numItems)
	}
	if p.numThreads < 1 {
		return parsedArgs{}, fmt.Errorf("num_threads must be >= 1, got %d", p.numThreads)
	}
	if p.keyRange < 1 {
		return parsedArgs{}, fmt.Errorf("key_range must be >= 1, got %d", p.keyRange)
	}
	if p.pctInsert < 0 || p.pctInsert > 100 {
		return parsedArgs{}, fmt.Errorf("pct_insert must be in [0, 100], got %d", p.pctInsert)
	}
	if p.pctDelete < 0 || p.pctDelete > 100 {
		return parsedArgs{}, fmt.Errorf("pct_delete must be in [0, 100], got %d", p.pctDelete)
	}
	if p.pctInsert+p.pctDelete > 100 {
		return parsedArgs{}, fmt.Errorf("pct_insert + pct_delete must be <= 100, got %d", p.pctInsert+p.pctDelete)
	}
	return p, nil
}

func runBench(cmd *cobra.Command, args []string) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	fileCfg, err := config.LoadFile(flagConfigPath)
	if err != nil {
		return err
	}
	cfg := config.Merge(fileCfg, flagVariant, flagBuckets, flagLogLevel, flagMetricsAddr)

	undoMaxProcs, err := maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	if err != nil {
		undoMaxProcs = func() {}
	}
	defer undoMaxProcs()

	tel := telemetry.New(cfg.LogLevel, cmd.ErrOrStderr())
	tel.Log.Info().
		Int("num_items", parsed.numItems).
		Int("num_threads", parsed.numThreads).
		Int("key_range", parsed.keyRange).
		Int("pct_insert", parsed.pctInsert).
		Int("pct_delete", parsed.pctDelete).
		Str("variant", cfg.Variant).
		Int("buckets", cfg.Buckets).
		Msg("starting run")

	watcher, err := config.Watch(flagConfigPath, func(event string) {
		tel.Log.Info().Str("event", event).Msg("config file changed")
	})
	if err != nil {
		return err
	}
	if watcher != nil {
		defer watcher.Close()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := tel.Serve(ctx, cfg.MetricsAddr); err != nil {
				tel.Log.Error().Err(err).Msg("metrics listener stopped")
			}
		}()
	}

	tbl, err := set.New(set.Variant(cfg.Variant), cfg.Buckets)
	if err != nil {
		return err
	}

	items := workload.Generate(parsed.numItems, parsed.keyRange, parsed.pctInsert, parsed.pctDelete)

	res, err := runner.Run(ctx, tbl, items, parsed.numThreads, tel)
	if err != nil {
		return err
	}

	inserted, deleted, contained, missed := tel.Tally()
	tel.Log.Info().
		Dur("elapsed", res.Elapsed).
		Uint64("inserted", inserted).
		Uint64("deleted", deleted).
		Uint64("contained", contained).
		Uint64("missed", missed).
		Msg("run complete")

	fmt.Fprintf(cmd.OutOrStdout(), "%.3f\n", float64(res.Elapsed)/float64(time.Millisecond))
	return nil
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
