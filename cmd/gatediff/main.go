package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stellarbit/gatediff/internal/app"
	"github.com/stellarbit/gatediff/internal/config"
)

var version = "dev"

var (
	configFlag     string
	reportsDirFlag string
	baseSuffixFlag string
	prSuffixFlag   string
	thresholdFlag  float64
	outputFlag     string
	verboseFlag    bool

	binFlag         string
	artifactsFlag   string
	suffixFlag      string
	concurrencyFlag int64
)

// loadConfig resolves defaults < config file < flags. A missing default
// config file is fine; an explicitly passed one must exist.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	explicit := cmd.Flags().Changed("config")
	loaded, err := config.Load(configFlag)
	switch {
	case err == nil:
		cfg = loaded
	case os.IsNotExist(err) && !explicit:
	default:
		return cfg, err
	}

	if cmd.Flags().Changed("reports-dir") {
		cfg.ReportsDir = reportsDirFlag
	}
	if cmd.Flags().Changed("base-suffix") {
		cfg.BaseSuffix = baseSuffixFlag
	}
	if cmd.Flags().Changed("pr-suffix") {
		cfg.PRSuffix = prSuffixFlag
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = thresholdFlag
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = outputFlag
	}
	if cmd.Flags().Changed("bin") {
		cfg.Profiler.Bin = binFlag
	}
	if cmd.Flags().Changed("max-concurrency") {
		cfg.Profiler.MaxConcurrency = concurrencyFlag
	}
	return cfg, nil
}

var rootCmd = &cobra.Command{
	Use:           "gatediff",
	Short:         "Compare contract gate-count and gas benchmarks between two runs",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return compareCmd.RunE(cmd, args)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Diff matched base/candidate benchmark reports and write a markdown report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		_, err = app.New(cfg, verboseFlag).RunCompare()
		return err
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Run the external profiler over contract artifacts and store benchmark reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		suffix := suffixFlag
		if !cmd.Flags().Changed("suffix") {
			suffix = cfg.PRSuffix
		}
		return app.New(cfg, verboseFlag).RunProfile(cmd.Context(), artifactsFlag, suffix)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gatediff version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gatediff %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "gatediff.toml", "path to a TOML or YAML config file")
	pf.StringVar(&reportsDirFlag, "reports-dir", "", "directory holding *.benchmark.json reports")
	pf.StringVar(&baseSuffixFlag, "base-suffix", "", "filename suffix of base reports (e.g. _base)")
	pf.StringVar(&prSuffixFlag, "pr-suffix", "", "filename suffix of candidate reports (e.g. _latest)")
	pf.Float64Var(&thresholdFlag, "threshold", 0, "regression threshold in percent (e.g. 2.5)")
	pf.StringVar(&outputFlag, "output", "", "path the markdown report is written to")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	profileCmd.Flags().StringVar(&binFlag, "bin", "", "external profiler binary")
	profileCmd.Flags().StringVar(&artifactsFlag, "artifacts", "./artifacts",
		"contract artifacts to profile: a directory or a glob pattern")
	profileCmd.Flags().StringVar(&suffixFlag, "suffix", "",
		"report filename suffix to write (defaults to the configured pr_suffix)")
	profileCmd.Flags().Int64Var(&concurrencyFlag, "max-concurrency", 0, "maximum concurrent profiler runs")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
