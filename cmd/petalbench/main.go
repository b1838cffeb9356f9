// Command petalbench times the petalcluster entry points on the shared
// blob datasets and writes the medians in the same CSV layout as the
// reference benchmark scripts.
package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petalcluster/petalcluster/internal/logger"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "petalbench",
	Short: "Benchmark petalcluster DBSCAN, HDBSCAN and OPTICS",
	Long: `Benchmark petalcluster on the blob datasets produced by the data generator.

For every dimensionality, petalbench loads <data-dir>/blobs_*_d<dims>.csv
(header row, one point per line), runs each algorithm until it has at least
--min-iters timings totalling --min-time, and records the median.

Every flag can also be set with a PETALBENCH_ environment variable, e.g.
PETALBENCH_DATA_DIR=bench/data.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
			return errors.Wrap(err, "invalid --log-level")
		}
		l, err := logger.New(v.GetBool("dev"), level)
		if err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger.Set(l)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(v)
		if err != nil {
			return err
		}
		rows, err := run(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := writeResults(cfg.Out, rows); err != nil {
			return err
		}
		if err := renderTable(rows); err != nil {
			return err
		}
		pterm.Success.Printf("Saved: %s\n", cfg.Out)
		return nil
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("data-dir", "bench/data", "Directory holding blobs_<n>_d<dims>.csv files")
	f.String("out", "bench/results_petalcluster.csv", "Results CSV path")
	f.IntSlice("dims", []int{2, 10}, "Dimensionalities to benchmark")
	f.StringSlice("algorithms", []string{"dbscan", "hdbscan", "optics"}, "Algorithms to benchmark")
	f.Int("min-iters", 3, "Minimum timed runs per case")
	f.Duration("min-time", defaultMinTime, "Minimum total timed duration per case")
	f.Bool("accelerate", true, "Use the matrix-free HDBSCAN spanning tree")
	f.Bool("dev", false, "Human-readable development logging")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")

	v.SetEnvPrefix("PETALBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(f); err != nil {
		panic(err)
	}
}

func main() {
	err := rootCmd.Execute()
	_ = logger.L().Sync()
	if err != nil {
		logger.L().Error("benchmark failed", zap.Error(err))
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
