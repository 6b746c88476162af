// Package motion derives timing metadata from motion-capture archives.
package motion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quantmind-br/motionscan/internal/cache"
	"github.com/quantmind-br/motionscan/internal/domain"
	"github.com/quantmind-br/motionscan/internal/utils"
)

// Ensure Extractor implements domain.MetadataExtractor
var _ domain.MetadataExtractor = (*Extractor)(nil)

// Extractor reads frame rate and frame count out of an archive
type Extractor struct {
	opener        domain.ArchiveOpener
	frameRateKeys []string
	posesKey      string
	cache         domain.Cache
	cacheTTL      time.Duration
	logger        *utils.Logger
}

// ExtractorOptions contains options for the extractor
type ExtractorOptions struct {
	Opener        domain.ArchiveOpener
	FrameRateKeys []string // checked in order
	PosesKey      string
	Cache         domain.Cache // optional
	CacheTTL      time.Duration
	Logger        *utils.Logger
}

// NewExtractor creates a new extractor
func NewExtractor(opts ExtractorOptions) *Extractor {
	keys := opts.FrameRateKeys
	if len(keys) == 0 {
		keys = []string{"mocap_framerate", "mocap_frame_rate"}
	}
	posesKey := opts.PosesKey
	if posesKey == "" {
		posesKey = "poses"
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &Extractor{
		opener:        opts.Opener,
		frameRateKeys: keys,
		posesKey:      posesKey,
		cache:         opts.Cache,
		cacheTTL:      opts.CacheTTL,
		logger:        logger.WithComponent("extractor"),
	}
}

// Extract returns the metadata of a candidate or a skippable error:
// ErrMissingFrameRate, ErrMissingPoses, ErrInvalidFrameRate or *ArchiveReadError.
func (e *Extractor) Extract(ctx context.Context, c domain.Candidate) (*domain.Metadata, error) {
	key := cache.MetadataKey(c.Path, c.Size, c.ModTime)
	if meta, ok := e.fromCache(ctx, key); ok {
		e.logger.Debug().Str("path", c.Path).Msg("Metadata cache hit")
		return meta, nil
	}

	meta, err := e.read(c.Path)
	if err != nil {
		return nil, err
	}

	e.toCache(ctx, key, meta)
	return meta, nil
}

func (e *Extractor) read(path string) (*domain.Metadata, error) {
	a, err := e.opener.Open(path)
	if err != nil {
		return nil, domain.NewArchiveReadError(path, err)
	}
	defer a.Close()

	fps, found, err := e.frameRate(a)
	if err != nil {
		return nil, domain.NewArchiveReadError(path, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingFrameRate, path)
	}
	if !domain.ValidFrameRate(fps) {
		return nil, fmt.Errorf("%w: %v in %s", domain.ErrInvalidFrameRate, fps, path)
	}

	if !a.Has(e.posesKey) {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingPoses, path)
	}
	shape, err := a.Shape(e.posesKey)
	if err != nil {
		return nil, domain.NewArchiveReadError(path, err)
	}
	if len(shape) == 0 {
		return nil, domain.NewArchiveReadError(path, fmt.Errorf("%s is 0-d and has no frame axis", e.posesKey))
	}

	return domain.NewMetadata(fps, shape[0]), nil
}

// frameRate returns the value of the first frame-rate key present
func (e *Extractor) frameRate(a domain.Archive) (float64, bool, error) {
	for _, key := range e.frameRateKeys {
		if !a.Has(key) {
			continue
		}
		v, err := a.Scalar(key)
		if err != nil {
			return 0, true, err
		}
		return v, true, nil
	}
	return 0, false, nil
}

func (e *Extractor) fromCache(ctx context.Context, key string) (*domain.Metadata, bool) {
	if e.cache == nil {
		return nil, false
	}

	data, err := e.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			e.logger.Debug().Err(err).Msg("Metadata cache read failed")
		}
		return nil, false
	}

	var meta domain.Metadata
	if err := json.Unmarshal(data, &meta); err != nil || !domain.ValidFrameRate(meta.FrameRate) {
		e.logger.Debug().Str("key", key).Msg("Discarding corrupt cache entry")
		_ = e.cache.Delete(ctx, key)
		return nil, false
	}
	return &meta, true
}

func (e *Extractor) toCache(ctx context.Context, key string, meta *domain.Metadata) {
	if e.cache == nil {
		return
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, key, data, e.cacheTTL); err != nil {
		e.logger.Debug().Err(err).Msg("Metadata cache write failed")
	}
}
