package gitbucket

import (
	"context"
	"errors"
	"sync"

	"github.com/quantmind-br/githarvest-go/internal/domain"
	"github.com/quantmind-br/githarvest-go/internal/utils"
)

// fakeFetcher serves canned bodies keyed by URL and records every request.
type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	requests  []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		responses: make(map[string]string),
		errs:      make(map[string]error),
	}
}

func (f *fakeFetcher) Get(_ context.Context, url string) (*domain.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, url)

	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	body, ok := f.responses[url]
	if !ok {
		return nil, domain.NewFetchError(url, 404, errors.New("not found"))
	}
	return &domain.Response{StatusCode: 200, Body: []byte(body), URL: url}, nil
}

func (f *fakeFetcher) GetWithHeaders(ctx context.Context, url string, _ map[string]string) (*domain.Response, error) {
	return f.Get(ctx, url)
}

func (f *fakeFetcher) Close() error { return nil }

func (f *fakeFetcher) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func newTestClient(fetcher domain.Fetcher) *Client {
	return NewClient(ClientOptions{
		RootURL: "https://h/",
		Fetcher: fetcher,
		Logger:  utils.NewDefaultLogger(),
	})
}
