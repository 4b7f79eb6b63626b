// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package assets fetches the fonts and logo a document needs before layout starts.

Failure policy:

  - Fonts are mandatory. Any fetch failure aborts the whole load.
  - The logo is optional. Fetch or decode problems are logged and the logo is
    dropped.

Fetched bytes are kept in an optional [Cache] keyed by URL so repeated
documents do not re-download the same files.
*/
package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/hrdesk/internal/platform/pdf"
)

// # Configuration

// Config controls where fonts come from and how fetches are bounded.
type Config struct {
	RegularFontURL string
	BoldFontURL    string
	Timeout        time.Duration
	CacheTTL       time.Duration
	MaxBytes       int64
}

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 5 << 20
	cachePrefix     = "assets:"
)

// Cache stores fetched bytes. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Bundle is everything the generator embeds. Logo is nil when unavailable.
type Bundle struct {
	Fonts pdf.FontSet
	Logo  []byte
}

// # Loader

// Loader fetches document assets over HTTP(S) or from file:// URLs.
type Loader struct {
	cfg    Config
	client *http.Client
	cache  Cache
	logger *slog.Logger
}

// Option configures a [Loader].
type Option func(*Loader)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) { l.client = client }
}

// WithCache enables the byte cache.
func WithCache(cache Cache) Option {
	return func(l *Loader) { l.cache = cache }
}

// WithLogger sets the logger used for degraded paths.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader builds a loader. The default client also serves file:// URLs
// from the local filesystem.
func NewLoader(cfg Config, opts ...Option) *Loader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))

	l := &Loader{
		cfg:    cfg,
		client: &http.Client{Transport: transport},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

/*
Load fetches both font weights and the optional logo concurrently.

Parameters:
  - ctx: context.Context
  - logoURL: string (empty means no logo)

Returns:
  - *Bundle: fonts always set, Logo may be nil
  - error: when either font cannot be fetched
*/
func (l *Loader) Load(ctx context.Context, logoURL string) (*Bundle, error) {
	ctx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	bundle := &Bundle{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := l.fetch(gctx, l.cfg.RegularFontURL)
		if err != nil {
			return fmt.Errorf("assets: regular font: %w", err)
		}
		bundle.Fonts.Regular = data
		return nil
	})
	g.Go(func() error {
		data, err := l.fetch(gctx, l.cfg.BoldFontURL)
		if err != nil {
			return fmt.Errorf("assets: bold font: %w", err)
		}
		bundle.Fonts.Bold = data
		return nil
	})
	g.Go(func() error {
		bundle.Logo = l.Logo(gctx, logoURL)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundle, nil
}

/*
Logo fetches and normalises a logo, returning nil on any failure.

Description: PNG and JPEG pass through unless oversized. Other decodable
formats are transcoded to PNG.
*/
func (l *Loader) Logo(ctx context.Context, url string) []byte {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}

	data, err := l.fetch(ctx, url)
	if err != nil {
		l.logger.WarnContext(ctx, "logo_fetch_skipped",
			slog.String("url", url),
			slog.Any("error", err),
		)
		return nil
	}

	normalized, err := normalizeLogo(data)
	if err != nil {
		l.logger.WarnContext(ctx, "logo_normalize_skipped",
			slog.String("url", url),
			slog.Any("error", err),
		)
		return data
	}
	return normalized
}

// fetch reads url through the cache.
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty url")
	}

	key := cacheKey(url)
	if l.cache != nil {
		data, ok, err := l.cache.Get(ctx, key)
		if err != nil {
			l.logger.WarnContext(ctx, "asset_cache_read_failed", slog.Any("error", err))
		} else if ok {
			return data, nil
		}
	}

	data, err := l.download(ctx, url)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, key, data, l.cfg.CacheTTL); err != nil {
			l.logger.WarnContext(ctx, "asset_cache_write_failed", slog.Any("error", err))
		}
	}
	return data, nil
}

func (l *Loader) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, l.cfg.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(data)) > l.cfg.MaxBytes {
		return nil, fmt.Errorf("get %s: larger than %d bytes", url, l.cfg.MaxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("get %s: empty body", url)
	}
	return data, nil
}

func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return cachePrefix + hex.EncodeToString(sum[:])
}
