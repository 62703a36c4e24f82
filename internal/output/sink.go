package output

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/quantmind-br/githarvest-go/internal/domain"
)

// JSONLSink writes each finished record as one JSON line. The path "-"
// writes to stdout. Safe for concurrent use.
type JSONLSink struct {
	mu    sync.Mutex
	w     io.Writer
	c     io.Closer
	count int
}

// NewJSONLSink creates a sink writing to the given path, creating parent
// directories as needed.
func NewJSONLSink(path string) (*JSONLSink, error) {
	if path == "" || path == "-" {
		return &JSONLSink{w: os.Stdout}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &JSONLSink{w: f, c: f}, nil
}

// Store writes one record.
func (s *JSONLSink) Store(ctx context.Context, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(data); err != nil {
		return err
	}
	s.count++
	return nil
}

// Count returns the number of records stored so far.
func (s *JSONLSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close releases the underlying file, if any.
func (s *JSONLSink) Close() error {
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}
