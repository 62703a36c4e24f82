package gitbucket

import "context"

// wikiResponse mirrors the wiki page list endpoint.
type wikiResponse struct {
	Pages []string `json:"pages"`
}

// WikiPages lists the page names of a repository's wiki. A failure degrades
// to an empty list with a warning.
func (c *Client) WikiPages(ctx context.Context, owner, name string) []string {
	url := c.WikiAPIURL(owner, name)

	var wiki wikiResponse
	if err := c.getJSON(ctx, url, &wiki); err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("failed to list wiki pages")
		return nil
	}
	return wiki.Pages
}
