package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/arloliu/stringwrite/batchfile"
	"github.com/arloliu/stringwrite/bench"
	"github.com/arloliu/stringwrite/config"
	"github.com/arloliu/stringwrite/corpus"
)

// newRootCmd builds the stringwrite command with its flags.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stringwrite",
		Short: "Benchmark materializing a string batch as Arrow, Series and List",
		Long: `stringwrite generates a batch of random strings, given as a buffer of lengths
and a buffer of concatenated values, and decodes it into an Arrow string array,
a labeled series and a plain list. Every decode is timed, and the three
results are checked for equality. The last line of output is PASS, or
ERROR (<n> errors) with a nonzero exit code.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			return run(cmd, cfg)
		},
	}

	defaults := config.DefaultConfig()
	flags := rootCmd.Flags()
	flags.String("config", "", "YAML configuration file; flags override its values")
	flags.Int("num_exp", defaults.NumExperiments, "Number of experiments to perform")
	flags.String("platform_type", defaults.PlatformType, "Type of FPGA platform (echo or aws)")
	flags.Int("num_strings", defaults.NumStrings, "Number of strings per batch")
	flags.Int("min_len", defaults.MinLen, "Minimum string length")
	flags.Int("len_msk", defaults.LenMask, "Bitmask bounding string length above min_len")
	flags.Bool("reuse_batch", defaults.ReuseBatch, "Generate one batch and decode it in every experiment")
	flags.Bool("disable_gc", defaults.DisableGC, "Suspend garbage collection while timing")
	flags.Uint64("seed", defaults.Seed, "Corpus generator seed")
	flags.Bool("lfsr", defaults.LFSR, "Generate the corpus with the 8-bit LFSR source")
	flags.Bool("print_batch", defaults.PrintBatch, "Print the raw buffers of the first batch")
	flags.String("output", defaults.Output, "Summary file; empty disables it")
	flags.String("metrics_file", defaults.MetricsFile, "Write Prometheus metrics to this textfile")
	flags.String("dump", defaults.BatchFile.Dump, "Write the first generated batch to this batch file")
	flags.String("load", defaults.BatchFile.Load, "Benchmark the batch stored in this batch file")
	flags.String("codec", defaults.BatchFile.Codec, "Batch file compression: none, zstd, s2 or lz4")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	return rootCmd
}

// resolveConfig loads the configuration file, if any, and applies the flags the user set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.DefaultConfig()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	setInt := func(name string, dst *int) {
		if flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}
	setBool := func(name string, dst *bool) {
		if flags.Changed(name) {
			*dst, _ = flags.GetBool(name)
		}
	}
	setString := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	setInt("num_exp", &cfg.NumExperiments)
	setInt("num_strings", &cfg.NumStrings)
	setInt("min_len", &cfg.MinLen)
	setInt("len_msk", &cfg.LenMask)
	setString("platform_type", &cfg.PlatformType)
	setBool("reuse_batch", &cfg.ReuseBatch)
	setBool("disable_gc", &cfg.DisableGC)
	setBool("lfsr", &cfg.LFSR)
	setBool("print_batch", &cfg.PrintBatch)
	setString("output", &cfg.Output)
	setString("metrics_file", &cfg.MetricsFile)
	setString("dump", &cfg.BatchFile.Dump)
	setString("load", &cfg.BatchFile.Load)
	setString("codec", &cfg.BatchFile.Codec)

	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	// Validate already checked these
	level, _ := cfg.LogLevel()
	codec, _ := cfg.Compression()
	benchCfg, _ := cfg.Bench()

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	opts := []bench.RunOption{bench.WithLogger(logger)}

	if cfg.BatchFile.Load != "" {
		b, err := batchfile.Load(cfg.BatchFile.Load)
		if err != nil {
			return fmt.Errorf("load batch: %w", err)
		}
		logger.Info("batch loaded", "path", cfg.BatchFile.Load, "strings", b.Len(), "bytes", b.Size())

		if cfg.PrintBatch {
			if err := bench.PrintBatch(out, b); err != nil {
				return err
			}
		}
		opts = append(opts, bench.WithBatch(b))
	} else if cfg.PrintBatch || cfg.BatchFile.Dump != "" {
		opts = append(opts, bench.WithBatchHook(func(iteration int, b *corpus.Batch) error {
			if iteration != 0 {
				return nil
			}
			if cfg.PrintBatch {
				if err := bench.PrintBatch(out, b); err != nil {
					return err
				}
			}
			if cfg.BatchFile.Dump != "" {
				if err := batchfile.Save(cfg.BatchFile.Dump, b, codec); err != nil {
					return err
				}
				logger.Info("batch written", "path", cfg.BatchFile.Dump, "codec", codec)
			}

			return nil
		}))
	}

	var metrics *bench.Metrics
	if cfg.MetricsFile != "" {
		metrics = bench.NewMetrics()
		opts = append(opts, bench.WithMetrics(metrics))
	}

	report, err := bench.Run(cmd.Context(), benchCfg, opts...)
	if err != nil {
		return err
	}

	if err := bench.PrintReport(out, report); err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := bench.SaveSummary(cfg.Output, report); err != nil {
			return err
		}
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}

	return report.Err()
}

// Execute runs the root command and exits with a nonzero code on any error.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
