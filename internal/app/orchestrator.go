package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/quantmind-br/motionscan/internal/cache"
	"github.com/quantmind-br/motionscan/internal/config"
	"github.com/quantmind-br/motionscan/internal/domain"
	"github.com/quantmind-br/motionscan/internal/manifest"
	"github.com/quantmind-br/motionscan/internal/motion"
	"github.com/quantmind-br/motionscan/internal/npz"
	"github.com/quantmind-br/motionscan/internal/output"
	"github.com/quantmind-br/motionscan/internal/scanner"
	"github.com/quantmind-br/motionscan/internal/utils"
)

// Orchestrator coordinates scanning, extraction and manifest output
type Orchestrator struct {
	config  *config.Config
	logger  *utils.Logger
	cache   domain.Cache
	builder *manifest.Builder
	stdout  io.Writer
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	domain.CommonOptions
	Config *config.Config
	// Logger overrides the logger built from Config.Logging
	Logger *utils.Logger
	// Opener overrides the npz archive reader
	Opener domain.ArchiveOpener
	// Stdout receives the manifest on a dry run
	Stdout io.Writer
	// Progress forces the progress bar on or off; nil means auto
	Progress *bool
}

// RunOptions are the per-run inputs
type RunOptions struct {
	InputDir   string
	OutputFile string
	ReportFile string
	DryRun     bool
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config

	// Validate config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logLevel := cfg.Logging.Level
		if opts.Verbose {
			logLevel = "debug"
		}
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   logLevel,
			Format:  cfg.Logging.Format,
			Verbose: opts.Verbose,
		})
	}

	var metaCache domain.Cache
	if cfg.Cache.Enabled {
		dir := utils.ExpandPath(cfg.Cache.Directory)
		bc, err := cache.NewBadgerCache(cache.Options{Directory: dir})
		if err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("Metadata cache unavailable, continuing without it")
		} else {
			metaCache = bc
			logger.Debug().Str("dir", dir).Dur("ttl", cfg.Cache.TTL).Msg("Metadata cache enabled")
		}
	}

	opener := opts.Opener
	if opener == nil {
		opener = npz.NewOpener()
	}

	extractor := motion.NewExtractor(motion.ExtractorOptions{
		Opener:        opener,
		FrameRateKeys: cfg.Extract.FrameRateKeys,
		PosesKey:      cfg.Extract.PosesKey,
		Cache:         metaCache,
		CacheTTL:      cfg.Cache.TTL,
		Logger:        logger,
	})

	sc := scanner.New(scanner.Options{
		Extension:       cfg.Scan.Extension,
		ExcludeSuffixes: cfg.Scan.ExcludeSuffixes,
		Sort:            cfg.Scan.Sort,
	})

	showProgress := cfg.Output.Progress && !opts.Verbose && utils.IsTerminal(os.Stderr)
	if opts.Progress != nil {
		showProgress = *opts.Progress
	}
	var newProgress func(int) manifest.Progress
	if showProgress {
		newProgress = func(total int) manifest.Progress {
			return utils.NewProgressBar(total, utils.DescExtracting, os.Stderr)
		}
	}

	builder := manifest.NewBuilder(manifest.BuilderOptions{
		Scanner:             sc,
		Extractor:           extractor,
		IdentifierExtension: cfg.Manifest.IdentifierExtension,
		StrictIdentifiers:   cfg.Manifest.StrictIdentifiers,
		NewProgress:         newProgress,
		Logger:              logger,
	})

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	return &Orchestrator{
		config:  cfg,
		logger:  logger,
		cache:   metaCache,
		builder: builder,
		stdout:  stdout,
	}, nil
}

// Run builds the manifest for InputDir and writes it. Nothing is written
// when the scan fails or the context is cancelled.
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions) (*output.Report, error) {
	startTime := time.Now()

	if opts.InputDir == "" {
		return nil, fmt.Errorf("input directory is required")
	}
	outputFile := opts.OutputFile
	if outputFile == "" {
		outputFile = o.config.Output.File
	}
	if outputFile == "" && !opts.DryRun {
		return nil, fmt.Errorf("output file is required")
	}
	reportFile := opts.ReportFile
	if reportFile == "" {
		reportFile = o.config.Output.Report
	}

	log := o.logger.WithFields(map[string]string{
		"input":  opts.InputDir,
		"output": outputFile,
	})
	log.Info().
		Bool("dry_run", opts.DryRun).
		Bool("cache", o.cache != nil).
		Msg("Starting manifest generation")

	res, err := o.builder.Build(ctx, opts.InputDir)
	if err != nil {
		if ctx.Err() != nil {
			log.Warn().Msg("Manifest generation cancelled")
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("build manifest: %w", err)
	}

	if len(res.Skipped) > 0 {
		log.Warn().
			Int("skipped", len(res.Skipped)).
			Int("candidates", res.Candidates).
			Msg("Some files were skipped")
	}

	w := output.NewWriter(output.WriterOptions{
		Path:   outputFile,
		DryRun: opts.DryRun,
		Out:    o.stdout,
	})
	if err := w.Write(ctx, res.Manifest); err != nil {
		return nil, err
	}

	duration := time.Since(startTime)
	report := output.NewReport(res, output.ReportOptions{
		Root:    opts.InputDir,
		Output:  outputFile,
		Elapsed: duration,
	})

	if reportFile != "" {
		if err := output.WriteReport(reportFile, report); err != nil {
			log.Warn().Err(err).Str("report", reportFile).Msg("Failed to write report")
		}
	}

	log.Info().
		Int("entries", report.Entries).
		Int("skipped", len(report.Skipped)).
		Dur("duration", duration).
		Msg("Manifest generation completed")

	return report, nil
}

// Close releases all resources held by the orchestrator
func (o *Orchestrator) Close() error {
	if o.cache != nil {
		return o.cache.Close()
	}
	return nil
}
