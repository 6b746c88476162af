package manifest

import (
	"context"
	"fmt"

	"github.com/quantmind-br/motionscan/internal/domain"
	"github.com/quantmind-br/motionscan/internal/utils"
)

// Progress receives one tick per processed candidate
type Progress interface {
	Add(n int) error
}

// BuilderOptions contains options for creating a Builder
type BuilderOptions struct {
	Scanner             domain.Scanner
	Extractor           domain.MetadataExtractor
	IdentifierExtension string
	// StrictIdentifiers fails the build when two archives share an identifier
	StrictIdentifiers bool
	// NewProgress is called with the candidate count once the scan is done
	NewProgress func(total int) Progress
	Logger      *utils.Logger
}

// Builder turns a directory tree into a manifest
type Builder struct {
	scanner   domain.Scanner
	extractor domain.MetadataExtractor
	ext       string
	strict    bool
	progress  func(total int) Progress
	logger    *utils.Logger
}

// Skipped records a candidate that produced no entry
type Skipped struct {
	Path   string
	Reason string
	Err    error
}

// Result is the outcome of a build
type Result struct {
	Manifest   *Manifest
	Skipped    []Skipped
	Candidates int
	Collisions int
}

// NewBuilder creates a new manifest builder
func NewBuilder(opts BuilderOptions) *Builder {
	ext := opts.IdentifierExtension
	if ext == "" {
		ext = DefaultIdentifierExtension
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &Builder{
		scanner:   opts.Scanner,
		extractor: opts.Extractor,
		ext:       ext,
		strict:    opts.StrictIdentifiers,
		progress:  opts.NewProgress,
		logger:    logger.WithComponent("builder"),
	}
}

// Build scans root and extracts every candidate in order. Entries get
// sequential idx values; candidates that fail extraction are skipped
// with a warning. Scan errors and context cancellation abort the build.
func (b *Builder) Build(ctx context.Context, root string) (*Result, error) {
	candidates, err := b.scanner.Scan(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	b.logger.Info().
		Str("root", root).
		Int("candidates", len(candidates)).
		Msg("Scan complete")

	res := &Result{
		Manifest:   &Manifest{Motions: make([]Entry, 0, len(candidates))},
		Candidates: len(candidates),
	}
	seen := make(map[string]string, len(candidates))

	var progress Progress
	if b.progress != nil && len(candidates) > 0 {
		progress = b.progress(len(candidates))
	}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log := b.logger.WithPath(c.Path)

		meta, err := b.extractor.Extract(ctx, c)
		if progress != nil {
			_ = progress.Add(1)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if !domain.IsSkippable(err) {
				return nil, fmt.Errorf("extract %s: %w", c.Path, err)
			}
			reason := domain.SkipReason(err)
			log.Warn().Err(err).Str("reason", reason).Msg("Skipping file")
			res.Skipped = append(res.Skipped, Skipped{Path: c.Path, Reason: reason, Err: err})
			continue
		}

		id := NormalizeIdentifier(c.Path, b.ext)
		if prev, dup := seen[id]; dup {
			if b.strict {
				return nil, fmt.Errorf("%w: %s and %s both map to %s", ErrIdentifierCollision, prev, c.Path, id)
			}
			res.Collisions++
			log.Warn().
				Str("identifier", id).
				Str("previous", prev).
				Msg("Identifier collision")
		} else {
			seen[id] = c.Path
		}

		duration := meta.Duration
		entry := NewEntry(id, &duration, meta.FrameRate, len(res.Manifest.Motions))
		res.Manifest.Motions = append(res.Manifest.Motions, entry)

		log.Debug().
			Int("idx", entry.Idx).
			Float64("fps", meta.FrameRate).
			Int("frames", meta.FrameCount).
			Float64("duration", meta.Duration).
			Msg("Added motion")
	}

	return res, nil
}

// BuildManifest is Build without the bookkeeping
func (b *Builder) BuildManifest(ctx context.Context, root string) (*Manifest, error) {
	res, err := b.Build(ctx, root)
	if err != nil {
		return nil, err
	}
	return res.Manifest, nil
}
