package atomdata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/photosphere/internal/logging"
	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/ports"
)

// DirectoryOpener builds a source for a directory of element documents.
type DirectoryOpener func(path string) (ports.AtomDataSource, error)

// Provider resolves an atom data path to a Dataset, consulting an optional
// cache first.
type Provider struct {
	cache   ports.AtomDataCache
	openDir DirectoryOpener
	logger  *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithCache sets the cache consulted before reading the store.
func WithCache(cache ports.AtomDataCache) Option {
	return func(p *Provider) {
		p.cache = cache
	}
}

// WithDirectoryOpener enables loading from directories.
func WithDirectoryOpener(open DirectoryOpener) Option {
	return func(p *Provider) {
		p.openDir = open
	}
}

// WithLogger sets the logger for cache diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// NewProvider creates a Provider. Without options it reads files only and
// never caches.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	return p
}

// Load returns the dataset at path. A cache failure is logged and the store
// is read instead; it never fails the load.
func (p *Provider) Load(ctx context.Context, path string) (*Dataset, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var key string
	if p.cache != nil {
		key, err = CacheKey(absPath)
		if err != nil {
			p.logger.Warn("atom data cache key failed", "path", absPath, "err", err)
		} else if ds := p.fromCache(ctx, absPath, key); ds != nil {
			return ds, nil
		}
	}

	elements, err := p.readStore(ctx, absPath, info.IsDir())
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	ds, err := NewDataset(absPath, elements)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if p.cache != nil && key != "" {
		if err := p.cache.Save(ctx, key, ds.Elements()); err != nil {
			p.logger.Warn("atom data cache write failed", "key", key, "err", err)
		}
	}
	return ds, nil
}

func (p *Provider) fromCache(ctx context.Context, absPath, key string) *Dataset {
	elements, err := p.cache.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			p.logger.Warn("atom data cache read failed", "key", key, "err", err)
		}
		return nil
	}

	ds, err := NewDataset(absPath, elements)
	if err != nil {
		p.logger.Warn("discarding invalid cached atom data", "key", key, "err", err)
		if err := p.cache.Delete(ctx, key); err != nil {
			p.logger.Warn("atom data cache delete failed", "key", key, "err", err)
		}
		return nil
	}
	p.logger.Debug("atom data cache hit", "key", key, "elements", ds.Len())
	return ds
}

func (p *Provider) readStore(ctx context.Context, absPath string, isDir bool) ([]domain.Element, error) {
	if !isDir {
		return readFile(absPath)
	}
	if p.openDir == nil {
		return nil, ErrNoDirectorySource
	}
	src, err := p.openDir(absPath)
	if err != nil {
		return nil, fmt.Errorf("open directory source: %w", err)
	}
	return src.Elements(ctx)
}
