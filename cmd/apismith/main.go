package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"apismith/internal/artifact"
	"apismith/internal/batch"
	"apismith/internal/ledger"
	"apismith/internal/llm"
	"apismith/internal/resolver"
)

var (
	verbose bool
	apps    string
	outDir  string
	dryRun  bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "apismith",
	Short: "apismith generates API clients and Nango manifests from application names",
	Long: `apismith resolves application names into endpoint descriptor sets and
emits a per-application artifact tree: api-config.json, Nango
integration and provider manifests, a JavaScript client, and a README.

Resolution tries a curated catalog first, then an LLM, and always
degrades to a usable fallback config instead of failing.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		config := zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate artifact trees for a comma-separated application list",
	Example: `  apismith generate --apps "slack, github" --out ./nango-configs
  apismith generate --apps "linear" --dry-run`,
	RunE: runGenerate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	generateCmd.Flags().StringVar(&apps, "apps", "", "Comma-separated application names (required)")
	generateCmd.Flags().StringVar(&outDir, "out", "generated", "Output directory for artifact trees")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Use the built-in fake LLM instead of a real provider")
	_ = generateCmd.MarkFlagRequired("apps")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	appList := batch.ParseApps(apps)
	if len(appList) == 0 {
		return fmt.Errorf("--apps must name at least one application")
	}

	var client llm.Client
	if dryRun {
		client = &llm.FakeClient{}
	} else {
		var err error
		client, err = llm.FromEnv(ctx, logger)
		if err != nil {
			return err
		}
	}
	defer client.Close()

	var sink artifact.Sink
	if s3cfg, ok := artifact.S3ConfigFromEnv(); ok {
		s3, err := artifact.NewS3Sink(s3cfg)
		if err != nil {
			return fmt.Errorf("configure s3 sink: %w", err)
		}
		sink = s3
		logger.Info("writing artifacts to s3", zap.String("bucket", s3cfg.Bucket))
	} else {
		dir, err := artifact.NewDirSink(outDir)
		if err != nil {
			return err
		}
		sink = dir
		logger.Info("writing artifacts to directory", zap.String("out", outDir))
	}

	store := ledger.NewFromEnv(logger)
	defer store.Close()

	res := resolver.New(client, logger).WithCache(0, 0)
	report := batch.New(res, sink, logger).WithLedger(store).Run(ctx, appList)

	printReport(cmd, report)
	// Per-application failures are part of the report, not an exit code.
	return nil
}

func printReport(cmd *cobra.Command, report *batch.Report) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "APP\tSOURCE\tPROVIDER\tSUSPECT\tFILES\tERROR")
	for _, res := range report.Results {
		suspect := ""
		if res.Suspect {
			suspect = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			res.App, res.Source, res.Provider, suspect, len(res.Files), res.Error)
	}
	_ = w.Flush()

	elapsed := report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d application(s), %d failed, %s\n",
		len(report.Results), report.Failed(), elapsed)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
