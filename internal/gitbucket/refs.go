package gitbucket

import "context"

// refResponse mirrors the git ref endpoint.
type refResponse struct {
	Object struct {
		SHA string `json:"sha"`
	} `json:"object"`
}

// ResolveRef resolves a branch name to its commit SHA. On any failure it
// falls back to the branch name itself so that traversal can proceed against
// the mutable branch instead of aborting.
func (c *Client) ResolveRef(ctx context.Context, owner, name, branch string) string {
	url := Encode(c.root, "api/v3/repos/"+owner+"/"+name+"/git/refs/heads/"+branch, "")

	var ref refResponse
	if err := c.getJSON(ctx, url, &ref); err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("failed to resolve ref; falling back to branch name")
		return branch
	}
	if ref.Object.SHA == "" {
		c.log.Warn().Str("url", url).Msg("ref response has no sha; falling back to branch name")
		return branch
	}
	return ref.Object.SHA
}
