package gitbucket

import (
	"context"
	"encoding/json"
)

// maxTreeDepth bounds recursive traversal against pathological or cyclic
// server responses. Fixed, not configurable.
const maxTreeDepth = 20

// treeEntry mirrors one entry of a directory listing.
type treeEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// WalkTree performs a depth-first traversal of a repository's file tree as
// of the given ref and invokes fn with the full path of every file found.
// A fetch failure abandons that subtree only; siblings and the rest of the
// repository are unaffected.
func (c *Client) WalkTree(ctx context.Context, owner, name, ref string, fn func(path string)) {
	c.walkTree(ctx, owner, name, ref, "", 0, fn)
}

func (c *Client) walkTree(ctx context.Context, owner, name, ref, path string, depth int, fn func(path string)) {
	if depth >= maxTreeDepth {
		return
	}

	url := c.ContentsURL(owner, name, path, "ref="+ref)
	resp, err := c.fetcher.Get(ctx, url)
	if err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("failed to list directory; abandoning subtree")
		return
	}

	var entries []treeEntry
	if err := json.Unmarshal(resp.Body, &entries); err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("failed to decode directory listing; abandoning subtree")
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		newPath := entry.Name
		if path != "" {
			newPath = path + "/" + entry.Name
		}
		switch entry.Type {
		case "file":
			fn(newPath)
		case "dir":
			if err := c.throttle.Wait(ctx); err != nil {
				return
			}
			c.walkTree(ctx, owner, name, ref, newPath, depth+1, fn)
		default:
			// unknown entry types are skipped
		}
	}
}
