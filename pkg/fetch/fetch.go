// Package fetch resolves image sources referenced by deck components.
//
// A source is either a local file path or an http(s) URL. Remote fetches
// retry transient failures with exponential backoff and cache the bytes, so
// re-rendering a deck does not re-download its images.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/slidesmith/slidesmith/pkg/cache"
	"github.com/slidesmith/slidesmith/pkg/errors"
	"github.com/slidesmith/slidesmith/pkg/observability"
)

// maxImageBytes caps a single remote image download.
const maxImageBytes = 32 << 20

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) Option { return func(f *Fetcher) { f.client = c } }

// WithCache sets the byte cache for remote fetches.
func WithCache(c cache.Cache) Option { return func(f *Fetcher) { f.cache = c } }

// WithLogger attaches a logger. A nil logger keeps the default.
func WithLogger(l *log.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.log = l
		}
	}
}

// WithTTL sets how long fetched images stay cached.
func WithTTL(ttl time.Duration) Option { return func(f *Fetcher) { f.ttl = ttl } }

// Fetcher resolves image sources to bytes.
type Fetcher struct {
	client *http.Client
	cache  cache.Cache
	log    *log.Logger
	ttl    time.Duration
}

// New builds a Fetcher. Without options it uses a 30 second HTTP timeout
// and no caching.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		cache:  cache.NewNullCache(),
		log:    log.Default(),
		ttl:    cache.TTLArtifact,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsRemote reports whether src is an http(s) URL rather than a local path.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch resolves src to its bytes. Local paths are read directly; URLs are
// fetched with retries and cached.
func (f *Fetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, errors.New(errors.ErrCodeNotFound, "empty image source")
	}
	if !IsRemote(src) {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeFileNotFound, "reading image %q", src)
		}
		return data, nil
	}

	key := "image:" + cache.Hash([]byte(src))
	if data, hit, err := f.cache.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var ferr error
		data, ferr = f.fetchOnce(ctx, src)
		return ferr
	})
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(ctx, key, data, f.ttl); err != nil {
		f.log.Warn("caching image failed", "src", src, "err", err)
	}
	return data, nil
}

// fetchOnce performs a single GET. Network failures and 5xx responses are
// marked retryable; 4xx responses are permanent.
func (f *Fetcher) fetchOnce(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeNetwork, "building request for %q", src)
	}

	host, path := hostAndPath(src)
	observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
		return nil, cache.Retryable(errors.Wrap(err, errors.ErrCodeNetwork, "fetching %q", src))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500:
		return nil, cache.Retryable(errors.New(errors.ErrCodeNetwork, "fetching %q: %s", src, resp.Status))
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "image %q not found", src)
	default:
		return nil, errors.New(errors.ErrCodeNetwork, "fetching %q: %s", src, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, cache.Retryable(errors.Wrap(err, errors.ErrCodeNetwork, "reading %q", src))
	}
	if len(data) > maxImageBytes {
		return nil, errors.New(errors.ErrCodeRenderFailed, "image %q exceeds %d bytes", src, maxImageBytes)
	}
	return data, nil
}

// hostAndPath splits src for observability reporting.
func hostAndPath(src string) (string, string) {
	u, err := url.Parse(src)
	if err != nil {
		return src, ""
	}
	return u.Host, u.Path
}
