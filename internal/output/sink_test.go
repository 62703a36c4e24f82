package output

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/githarvest-go/internal/domain"
)

func TestJSONLSink(t *testing.T) {
	t.Parallel()

	t.Run("writes one JSON line per record", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "records.jsonl")
		sink, err := NewJSONLSink(path)
		require.NoError(t, err)

		ctx := context.Background()
		require.NoError(t, sink.Store(ctx, domain.Record{
			domain.FieldURL:     "https://h/a/b/blob/x/README.md",
			domain.FieldContent: "hello",
			domain.FieldRole:    []string{"Rguest"},
		}))
		require.NoError(t, sink.Store(ctx, domain.Record{
			domain.FieldURL: "https://h/a/b/issues/1",
		}))
		require.NoError(t, sink.Close())

		assert.Equal(t, 2, sink.Count())

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		var lines []map[string]any
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			var rec map[string]any
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
			lines = append(lines, rec)
		}
		require.NoError(t, scanner.Err())

		require.Len(t, lines, 2)
		assert.Equal(t, "https://h/a/b/blob/x/README.md", lines[0]["url"])
		assert.Equal(t, "hello", lines[0]["content"])
		assert.Equal(t, []any{"Rguest"}, lines[0]["role"])
		assert.Equal(t, "https://h/a/b/issues/1", lines[1]["url"])
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "deep", "records.jsonl")
		sink, err := NewJSONLSink(path)
		require.NoError(t, err)
		require.NoError(t, sink.Close())

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("dash path writes to stdout without a closer", func(t *testing.T) {
		t.Parallel()

		sink, err := NewJSONLSink("-")
		require.NoError(t, err)
		assert.NoError(t, sink.Close())
	})
}

func TestJSONLFailures(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "failures.jsonl")
	rec, err := NewJSONLFailures(path)
	require.NoError(t, err)

	require.NoError(t, rec.Store(context.Background(), domain.Failure{
		ErrorType:  "FetchError",
		URL:        "https://h/a/b/issues/3",
		Repository: "a/b",
		Message:    "404",
	}))
	require.NoError(t, rec.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "FetchError", entry["error_type"])
	assert.Equal(t, "https://h/a/b/issues/3", entry["url"])
	assert.Equal(t, "a/b", entry["repository"])
	assert.NotEmpty(t, entry["recorded_at"])
}
