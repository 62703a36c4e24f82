package gitbucket

import (
	"context"
	"fmt"
)

// listPage is one decoded page of an offset-paginated endpoint.
type listPage[T any] struct {
	total int
	count int
	items []T
}

// fetchPaged accumulates items from a paged list endpoint. It keeps issuing
// GET base?offset=<accumulated> until the accumulated count reaches the
// server-reported total, or a page reports zero items (a defensive stop for
// servers whose total disagrees with reality). A fetch or decode failure
// ends pagination and returns whatever was accumulated; partial results are
// acceptable.
func fetchPaged[T any](ctx context.Context, c *Client, baseURL, offsetParam string, decode func([]byte) (listPage[T], error)) []T {
	var items []T
	for {
		pageURL := fmt.Sprintf("%s?%s=%d", baseURL, offsetParam, len(items))

		resp, err := c.fetcher.Get(ctx, pageURL)
		if err != nil {
			c.log.Warn().Err(err).Str("url", pageURL).Msg("failed to fetch page")
			break
		}

		page, err := decode(resp.Body)
		if err != nil {
			c.log.Warn().Err(err).Str("url", pageURL).Msg("failed to decode page")
			break
		}

		if page.count == 0 || len(page.items) == 0 {
			break
		}
		items = append(items, page.items...)
		if len(items) >= page.total {
			break
		}
	}
	return items
}
