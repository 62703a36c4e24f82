package domain

import (
	"context"
	"net/http"
	"time"
)

// Fetcher defines the interface for authenticated HTTP fetching against the
// remote service.
type Fetcher interface {
	// Get fetches content from a URL
	Get(ctx context.Context, url string) (*Response, error)
	// GetWithHeaders fetches content with extra request headers
	GetWithHeaders(ctx context.Context, url string, headers map[string]string) (*Response, error)
	// Close releases resources
	Close() error
}

// Response represents an HTTP response
type Response struct {
	StatusCode  int
	Body        []byte
	Headers     http.Header
	ContentType string
	URL         string
	FromCache   bool
}

// RecordSink accepts finished records for indexing. Implementations own
// storage and search; the harvester never retains a record after Store
// returns.
type RecordSink interface {
	Store(ctx context.Context, rec Record) error
	Close() error
}

// ContentExtractor turns the content behind an API URL into structured
// record fields (title, content, mimetype, ...).
type ContentExtractor interface {
	Extract(ctx context.Context, apiURL string) (map[string]any, error)
}

// FailureRecorder keeps audit entries for units that failed to harvest.
type FailureRecorder interface {
	Store(ctx context.Context, f Failure) error
}

// RoleResolver maps a user identity to an access-control role identifier.
type RoleResolver func(user string) string

// StatsRecorder observes the lifecycle of one harvested unit. For any key
// the sequence is Begin, then Record(prepared|finished|exception), then
// exactly one Done.
type StatsRecorder interface {
	Begin(key *StatsKey)
	Record(key *StatsKey, action StatsAction)
	Done(key *StatsKey)
}

// Cache defines the interface for response caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}
