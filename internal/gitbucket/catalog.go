package gitbucket

import (
	"context"
	"encoding/json"

	"github.com/quantmind-br/githarvest-go/internal/domain"
)

// repositoryPage mirrors one page of the fess/repos listing.
type repositoryPage struct {
	TotalCount    int               `json:"total_count"`
	ResponseCount int               `json:"response_count"`
	Repositories  []repositoryEntry `json:"repositories"`
}

// repositoryEntry mirrors one raw catalog entry. branch and is_private are
// pointers because old server versions omit them.
type repositoryEntry struct {
	Owner         string   `json:"owner"`
	Name          string   `json:"name"`
	Branch        *string  `json:"branch"`
	IssueCount    int      `json:"issue_count"`
	PullCount     int      `json:"pull_count"`
	Private       *bool    `json:"is_private"`
	Collaborators []string `json:"collaborators"`
}

func (e repositoryEntry) toRepository() domain.Repository {
	// Old servers do not report a branch; "master" was the fixed default
	// before the field existed. An explicit empty branch means an empty
	// repository and is kept as-is.
	branch := "master"
	if e.Branch != nil {
		branch = *e.Branch
	}
	private := true
	if e.Private != nil {
		private = *e.Private
	}
	return domain.Repository{
		Owner:         e.Owner,
		Name:          e.Name,
		Branch:        branch,
		IssueCount:    e.IssueCount,
		PullCount:     e.PullCount,
		Private:       private,
		Collaborators: e.Collaborators,
	}
}

// ListRepositories retrieves the full repository catalog for one harvest
// run. An empty result means the token is invalid or the service hosts no
// repositories; the caller decides what that means for the run.
func (c *Client) ListRepositories(ctx context.Context) []domain.Repository {
	baseURL := c.root + "api/v3/fess/repos"

	entries := fetchPaged(ctx, c, baseURL, "offset", func(body []byte) (listPage[repositoryEntry], error) {
		var page repositoryPage
		if err := json.Unmarshal(body, &page); err != nil {
			return listPage[repositoryEntry]{}, err
		}
		return listPage[repositoryEntry]{
			total: page.TotalCount,
			count: page.ResponseCount,
			items: page.Repositories,
		}, nil
	})

	repos := make([]domain.Repository, 0, len(entries))
	for _, e := range entries {
		repos = append(repos, e.toRepository())
	}
	c.log.Info().Int("count", len(repos)).Msg("repository catalog fetched")
	return repos
}

// infoResponse mirrors the plugin-info endpoint. Labels are pointers so a
// missing field can be told apart from an empty one.
type infoResponse struct {
	Version     string  `json:"version"`
	SourceLabel *string `json:"source_label"`
	IssueLabel  *string `json:"issue_label"`
	WikiLabel   *string `json:"wiki_label"`
}

// FetchLabels retrieves the run's category labels from the plugin-info
// endpoint. A missing or malformed response degrades to empty labels with a
// warning instead of failing the run.
func (c *Client) FetchLabels(ctx context.Context) domain.RunLabels {
	url := c.root + "api/v3/fess/info"

	var info infoResponse
	if err := c.getJSON(ctx, url, &info); err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("failed to fetch plugin info")
		return domain.RunLabels{}
	}

	if info.Version == "" || info.SourceLabel == nil || info.IssueLabel == nil || info.WikiLabel == nil {
		c.log.Warn().Str("url", url).Err(domain.ErrMissingField).
			Msg("plugin info is missing version or labels; records will carry empty labels")
		return domain.RunLabels{}
	}

	return domain.RunLabels{
		Source: *info.SourceLabel,
		Issue:  *info.IssueLabel,
		Wiki:   *info.WikiLabel,
	}
}
