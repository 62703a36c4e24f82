package gitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/quantmind-br/githarvest-go/internal/domain"
	"github.com/quantmind-br/githarvest-go/internal/utils"
)

// Client talks to the versioned REST surface of a GitBucket service. The
// root URL is normalized to a trailing slash by config validation; the auth
// header lives inside the injected Fetcher.
type Client struct {
	root     string
	fetcher  domain.Fetcher
	throttle *utils.Throttle
	log      *utils.Logger
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	RootURL  string
	Fetcher  domain.Fetcher
	Throttle *utils.Throttle
	Logger   *utils.Logger
}

// NewClient creates a new GitBucket API client
func NewClient(opts ClientOptions) *Client {
	log := opts.Logger
	if log == nil {
		log = utils.NewDefaultLogger()
	}
	throttle := opts.Throttle
	if throttle == nil {
		throttle = utils.NewThrottle(0)
	}
	return &Client{
		root:     opts.RootURL,
		fetcher:  opts.Fetcher,
		throttle: throttle,
		log:      log.WithComponent("gitbucket"),
	}
}

// Root returns the normalized root URL of the service.
func (c *Client) Root() string {
	return c.root
}

// getJSON fetches a URL and decodes its JSON body into v.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	resp, err := c.fetcher.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// ContentsURL returns the API URL of a file or directory listing.
func (c *Client) ContentsURL(owner, name, path, query string) string {
	return Encode(c.root, "api/v3/repos/"+owner+"/"+name+"/contents/"+path, query)
}

// BlobURL returns the human-facing view URL of a file at a given ref.
func (c *Client) BlobURL(owner, name, ref, path string) string {
	return Encode(c.root, owner+"/"+name+"/blob/"+ref+"/"+path, "")
}

// IssueAPIURL returns the API URL of one issue resource.
func (c *Client) IssueAPIURL(owner, name string, id int) string {
	return c.root + "api/v3/repos/" + owner + "/" + name + "/issues/" + strconv.Itoa(id)
}

// IssueViewURL returns the human-facing view URL of one issue.
func (c *Client) IssueViewURL(owner, name string, id int) string {
	return c.root + owner + "/" + name + "/issues/" + strconv.Itoa(id)
}

// WikiAPIURL returns the API URL of a repository's wiki page list.
func (c *Client) WikiAPIURL(owner, name string) string {
	return c.root + "api/v3/fess/" + owner + "/" + name + "/wiki"
}

// WikiPageContentURL returns the raw-content URL of one wiki page. The wiki
// content endpoint does not understand '+' as a space, so it is replaced by
// %20 up front.
func (c *Client) WikiPageContentURL(owner, name, page string) string {
	return strings.ReplaceAll(c.WikiAPIURL(owner, name)+"/contents/"+page+".md", "+", "%20")
}

// WikiViewURL returns the human-facing view URL of one wiki page.
func (c *Client) WikiViewURL(owner, name, page string) string {
	return c.root + owner + "/" + name + "/wiki/" + page
}
