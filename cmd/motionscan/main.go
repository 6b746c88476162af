package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantmind-br/motionscan/internal/app"
	"github.com/quantmind-br/motionscan/internal/config"
	"github.com/quantmind-br/motionscan/internal/domain"
	"github.com/quantmind-br/motionscan/internal/utils"
	"github.com/quantmind-br/motionscan/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

var rootCmd = newRootCmd()

func init() {
	cobra.OnInitialize(initConfig)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "motionscan",
		Short: "Build a motion manifest from a directory of .npz archives",
		Long: `motionscan walks a motion-capture dataset, reads the frame rate and
frame count of every .npz clip and writes a manifest listing each clip
with its fps, weight, index and duration.

Per-subject auxiliary archives (*stagei.npz, *shape.npz) are skipped, as
are clips missing a frame rate or poses.`,
		Version:       version.Short(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.motionscan/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().String("log-format", "", "Log format (pretty, json)")

	// Run flags
	cmd.Flags().StringP("input_dir", "i", "", "Directory to scan for motion archives")
	cmd.Flags().StringP("output_file", "o", "", "Manifest path (.yaml, .yml or .json)")
	cmd.Flags().String("report", "", "Write a JSON run report to this path")
	cmd.Flags().Bool("dry-run", false, "Print the manifest instead of writing it")
	cmd.Flags().Bool("no-sort", false, "Keep filesystem walk order instead of sorting by path")
	cmd.Flags().Bool("strict", false, "Fail when two archives map to the same identifier")
	cmd.Flags().Bool("cache", false, "Cache extracted metadata between runs")
	cmd.Flags().Bool("no-cache", false, "Disable the metadata cache")
	_ = cmd.MarkFlagRequired("input_dir")

	// Bind flags to viper
	_ = viper.BindPFlag("output.file", cmd.Flags().Lookup("output_file"))
	_ = viper.BindPFlag("output.report", cmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("manifest.strict_identifiers", cmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("cache.enabled", cmd.Flags().Lookup("cache"))
	_ = viper.BindPFlag("logging.format", cmd.PersistentFlags().Lookup("log-format"))

	// Add subcommands
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCacheCmd())
	cmd.AddCommand(versionCmd)

	return cmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags that switch a config value off are applied after loading
	if noSort, _ := cmd.Flags().GetBool("no-sort"); noSort {
		cfg.Scan.Sort = false
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})

	inputDir, _ := cmd.Flags().GetString("input_dir")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		CommonOptions: domain.CommonOptions{
			Verbose: verbose,
			DryRun:  dryRun,
		},
		Config: cfg,
		Logger: log,
		Stdout: cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	_, err = orchestrator.Run(ctx, app.RunOptions{
		InputDir:   utils.ExpandPath(inputDir),
		OutputFile: utils.ExpandPath(cfg.Output.File),
		ReportFile: utils.ExpandPath(cfg.Output.Report),
		DryRun:     dryRun,
	})
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}
