package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/quantmind-br/githarvest-go/internal/domain"
)

// Client is an HTTP client for the remote Git-hosting service. The auth
// token is fixed at construction and sent with every request, so nothing
// downstream ever touches credentials.
type Client struct {
	tlsClient    tls_client.HttpClient
	headers      map[string]string
	cache        domain.Cache
	cacheEnabled bool
	cacheTTL     time.Duration
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	Timeout     time.Duration
	AuthToken   string
	UserAgent   string
	EnableCache bool
	CacheTTL    time.Duration
	Cache       domain.Cache
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:     30 * time.Second,
		EnableCache: false,
		CacheTTL:    24 * time.Hour,
	}
}

// NewClient creates a new HTTP client with the authorization header pre-set
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	tlsOpts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(opts.Timeout.Seconds())),
		tls_client.WithClientProfile(profiles.Chrome_131),
	}

	tlsClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), tlsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "githarvest"
	}

	headers := map[string]string{
		"Accept":     "application/vnd.github.v3.raw",
		"User-Agent": userAgent,
	}
	if opts.AuthToken != "" {
		headers["Authorization"] = "token " + opts.AuthToken
	}

	return &Client{
		tlsClient:    tlsClient,
		headers:      headers,
		cache:        opts.Cache,
		cacheEnabled: opts.EnableCache && opts.Cache != nil,
		cacheTTL:     opts.CacheTTL,
	}, nil
}

// Get fetches content from a URL
func (c *Client) Get(ctx context.Context, url string) (*domain.Response, error) {
	return c.GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders fetches content with extra request headers
func (c *Client) GetWithHeaders(ctx context.Context, url string, extraHeaders map[string]string) (*domain.Response, error) {
	if c.cacheEnabled {
		if cached, err := c.getFromCache(ctx, url); err == nil {
			return cached, nil
		}
	}

	resp, err := c.doRequest(ctx, url, extraHeaders)
	if err != nil {
		return nil, err
	}

	if c.cacheEnabled {
		_ = c.cache.Set(ctx, url, resp.Body, c.cacheTTL)
	}

	return resp, nil
}

// doRequest performs the actual HTTP request
func (c *Client) doRequest(ctx context.Context, targetURL string, extraHeaders map[string]string) (*domain.Response, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.tlsClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{
			URL: targetURL,
			Err: fmt.Errorf("request failed: %w", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &domain.FetchError{
			URL:        targetURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	httpHeaders := make(http.Header)
	for k, v := range resp.Header {
		httpHeaders[k] = v
	}

	return &domain.Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		Headers:     httpHeaders,
		ContentType: resp.Header.Get("Content-Type"),
		URL:         targetURL,
		FromCache:   false,
	}, nil
}

// Close releases client resources
func (c *Client) Close() error {
	return nil
}

func (c *Client) getFromCache(ctx context.Context, url string) (*domain.Response, error) {
	data, err := c.cache.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return &domain.Response{
		StatusCode: 200,
		Body:       data,
		URL:        url,
		FromCache:  true,
	}, nil
}
