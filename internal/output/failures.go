package output

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/quantmind-br/githarvest-go/internal/domain"
)

// failureEntry is the persisted shape of one failure report.
type failureEntry struct {
	domain.Failure
	RecordedAt time.Time `json:"recorded_at"`
}

// JSONLFailures records failed units as JSON lines, keyed by view URL.
type JSONLFailures struct {
	mu sync.Mutex
	f  *os.File
}

// NewJSONLFailures creates a failure recorder writing to the given path.
func NewJSONLFailures(path string) (*JSONLFailures, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &JSONLFailures{f: f}, nil
}

// Store appends one failure entry.
func (r *JSONLFailures) Store(ctx context.Context, failure domain.Failure) error {
	data, err := json.Marshal(failureEntry{Failure: failure, RecordedAt: time.Now()})
	if err != nil {
		return err
	}
	data = append(data, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	_, err = r.f.Write(data)
	return err
}

// Close releases the underlying file.
func (r *JSONLFailures) Close() error {
	return r.f.Close()
}
