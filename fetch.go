package owid

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// All code interacting with the network is here

const DefaultUserAgent = "Mozilla/5.0"

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// Fetcher downloads delimited text over HTTP.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// FetchOpt configures the Fetcher during construction.
type FetchOpt func(f *Fetcher) error

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) FetchOpt {
	return func(f *Fetcher) error {
		if c == nil {
			return fmt.Errorf("nil http client in WithHTTPClient")
		}

		f.httpClient = c
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) FetchOpt {
	return func(f *Fetcher) error {
		if l != nil {
			f.logger = l
		}
		return nil
	}
}

func WithUserAgent(ua string) FetchOpt {
	return func(f *Fetcher) error {
		if ua == "" {
			return fmt.Errorf("empty user agent")
		}

		f.userAgent = ua
		return nil
	}
}

func NewFetcher(ops ...FetchOpt) (*Fetcher, error) {
	f := &Fetcher{
		httpClient: &http.Client{},
		userAgent:  DefaultUserAgent,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, op := range ops {
		if e := op(f); e != nil {
			return nil, e
		}
	}

	return f, nil
}

// Get issues a single GET for url and returns the body.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	req, e := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if e != nil {
		return nil, fmt.Errorf("create request: %w", e)
	}
	req.Header.Set("User-Agent", f.userAgent)

	f.logger.InfoContext(ctx, "fetch", "url", url)

	resp, e := f.httpClient.Do(req)
	if e != nil {
		return nil, fmt.Errorf("do request: %w", e)
	}
	defer func() { _ = resp.Body.Close() }()

	f.logger.DebugContext(ctx, "fetch response", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, e := io.ReadAll(resp.Body)
	if e != nil {
		return nil, fmt.Errorf("read body: %w", e)
	}

	f.logger.DebugContext(ctx, "fetch body", "bytes", len(body))

	return body, nil
}

// FetchCSV downloads url and parses it as CSV. See Files.Read for the return.
func (f *Fetcher) FetchCSV(ctx context.Context, url string) (header []string, cols [][]string, err error) {
	var body []byte
	if body, err = f.Get(ctx, url); err != nil {
		return nil, nil, err
	}

	fl := NewFiles()
	if cols, err = fl.Read(bytes.NewReader(body)); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", url, err)
	}

	return fl.FieldNames, cols, nil
}
