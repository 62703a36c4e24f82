package gitbucket

import (
	"context"
	"encoding/json"

	"github.com/quantmind-br/githarvest-go/internal/domain"
)

// issueResponse mirrors one issue resource.
type issueResponse struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Issue fetches the title and body of one issue or pull request (both share
// the same numbering space).
func (c *Client) Issue(ctx context.Context, owner, name string, id int) (domain.Issue, error) {
	url := c.IssueAPIURL(owner, name, id)

	var issue issueResponse
	if err := c.getJSON(ctx, url, &issue); err != nil {
		return domain.Issue{}, err
	}
	return domain.Issue{Title: issue.Title, Body: issue.Body}, nil
}

// IssueComments fetches the comment bodies of one issue, in server order.
// A failure degrades to an empty list with a warning; comments are never
// worth failing the unit over on their own.
func (c *Client) IssueComments(ctx context.Context, issueURL string) []string {
	commentsURL := issueURL + "/comments"

	resp, err := c.fetcher.Get(ctx, commentsURL)
	if err != nil {
		c.log.Warn().Err(err).Str("url", commentsURL).Msg("failed to fetch issue comments")
		return nil
	}

	var comments []struct {
		Body *string `json:"body"`
	}
	if err := json.Unmarshal(resp.Body, &comments); err != nil {
		c.log.Warn().Err(err).Str("url", commentsURL).Msg("failed to decode issue comments")
		return nil
	}

	bodies := make([]string, 0, len(comments))
	for _, comment := range comments {
		if comment.Body != nil {
			bodies = append(bodies, *comment.Body)
		}
	}
	return bodies
}
