package manifest

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jmgilman/paiqm/internal/registry"
	"github.com/jmgilman/paiqm/internal/slogger"
)

// DefaultTimeout bounds a single manifest request.
const DefaultTimeout = 20 * time.Second

// FetcherConfig configures a Fetcher.
type FetcherConfig struct {
	// Timeout bounds each HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration

	// Credentials supplies per-host credentials. May be nil.
	Credentials Credentials

	// UserAgent is sent with every HTTP request.
	UserAgent string
}

type fetcher struct {
	client      *resty.Client
	credentials Credentials
}

// NewFetcher creates a Fetcher that reads http(s) and file URLs.
func NewFetcher(cfg FetcherConfig) Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &fetcher{
		client:      client,
		credentials: cfg.Credentials,
	}
}

func (f *fetcher) Fetch(ctx context.Context, entry registry.Entry) (*Manifest, error) {
	u, err := url.Parse(entry.ManifestURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreachable, entry.ManifestURL, err)
	}

	slogger.L(ctx).Debug("fetching manifest", "package", entry.ID, "url", entry.ManifestURL)

	var (
		data        []byte
		contentType string
	)
	switch u.Scheme {
	case "http", "https":
		data, contentType, err = f.fetchHTTP(ctx, u)
	case "file":
		data, err = f.fetchFile(u)
	default:
		err = fmt.Errorf("%w: unsupported scheme %q", ErrUnreachable, u.Scheme)
	}
	if err != nil {
		return nil, err
	}

	m, err := Parse(data, DetectFormat(u.Path, contentType))
	if err != nil {
		return nil, err
	}

	if m.ID != entry.ID {
		return nil, fmt.Errorf("%w: %w: manifest declares %q, registry expects %q",
			ErrMalformed, ErrIDMismatch, m.ID, entry.ID)
	}

	return m, nil
}

func (f *fetcher) fetchHTTP(ctx context.Context, u *url.URL) ([]byte, string, error) {
	req := f.client.R().SetContext(ctx)

	if f.credentials != nil {
		cred, err := f.credentials.Lookup(u.Host)
		if err != nil {
			return nil, "", fmt.Errorf("resolve credential for %s: %w", u.Host, err)
		}
		if cred != nil {
			if user, password, ok := cred.BasicAuth(); ok {
				req.SetBasicAuth(user, password)
			} else {
				req.SetAuthToken(cred.Value)
			}
		}
	}

	resp, err := req.Get(u.String())
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", ErrUnreachable, u.Redacted(), err)
	}
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, "", fmt.Errorf("%w: %s: HTTP %s", ErrUnreachable, u.Redacted(), resp.Status())
	}

	return resp.Body(), resp.Header().Get("Content-Type"), nil
}

func (f *fetcher) fetchFile(u *url.URL) ([]byte, error) {
	//nolint:gosec // G304: manifest paths come from the user's registry
	data, err := os.ReadFile(u.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	return data, nil
}
