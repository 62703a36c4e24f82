package gitbucket

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentsURL(path string) string {
	return Encode("https://h/", "api/v3/repos/alice/repo/contents/"+path, "ref=abc")
}

func TestWalkTree(t *testing.T) {
	t.Parallel()

	t.Run("visits every file depth-first", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher()
		fetcher.responses[contentsURL("")] = `[
			{"name": "README.md", "type": "file"},
			{"name": "docs", "type": "dir"},
			{"name": "weird", "type": "symlink"}
		]`
		fetcher.responses[contentsURL("docs")] = `[
			{"name": "guide.md", "type": "file"},
			{"name": "img", "type": "dir"}
		]`
		fetcher.responses[contentsURL("docs/img")] = `[
			{"name": "logo.png", "type": "file"}
		]`

		var paths []string
		newTestClient(fetcher).WalkTree(context.Background(), "alice", "repo", "abc", func(path string) {
			paths = append(paths, path)
		})

		assert.Equal(t, []string{"README.md", "docs/guide.md", "docs/img/logo.png"}, paths)
	})

	t.Run("fetch failure abandons the subtree only", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher()
		fetcher.responses[contentsURL("")] = `[
			{"name": "broken", "type": "dir"},
			{"name": "after.md", "type": "file"}
		]`
		// "broken" has no canned listing and fails with a 404

		var paths []string
		newTestClient(fetcher).WalkTree(context.Background(), "alice", "repo", "abc", func(path string) {
			paths = append(paths, path)
		})

		assert.Equal(t, []string{"after.md"}, paths)
	})

	t.Run("traversal stops at the depth cap", func(t *testing.T) {
		t.Parallel()

		// A chain of nested directories, each holding one file and one
		// subdirectory, deeper than the cap allows.
		fetcher := newFakeFetcher()
		path := ""
		for i := 0; i < maxTreeDepth+5; i++ {
			fetcher.responses[contentsURL(path)] = fmt.Sprintf(`[
				{"name": "file%d.md", "type": "file"},
				{"name": "d%d", "type": "dir"}
			]`, i, i)
			if path != "" {
				path += "/"
			}
			path += fmt.Sprintf("d%d", i)
		}

		var paths []string
		newTestClient(fetcher).WalkTree(context.Background(), "alice", "repo", "abc", func(p string) {
			paths = append(paths, p)
		})

		require.Len(t, paths, maxTreeDepth)
		assert.Equal(t, "file0.md", paths[0])
	})

	t.Run("cancelled context stops traversal", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher()
		fetcher.responses[contentsURL("")] = `[
			{"name": "one.md", "type": "file"},
			{"name": "two.md", "type": "file"}
		]`

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var paths []string
		newTestClient(fetcher).WalkTree(ctx, "alice", "repo", "abc", func(p string) {
			paths = append(paths, p)
		})

		assert.Empty(t, paths)
	})
}
