package enrich

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/fetch"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/search"
)

type fakeSearcher struct {
	results []internal.SearchResult
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ search.Options) ([]internal.SearchResult, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

type fakePage struct {
	status      int
	contentType string
	body        string
}

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]fakePage
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (*http.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, rawURL)
	page, ok := f.pages[rawURL]
	f.mu.Unlock()
	if !ok {
		return nil, &fetch.StatusError{URL: rawURL, StatusCode: http.StatusNotFound}
	}
	if page.status != 0 && page.status != http.StatusOK {
		return nil, &fetch.StatusError{URL: rawURL, StatusCode: page.status}
	}
	header := make(http.Header)
	header.Set("Content-Type", page.contentType)
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(page.body)),
	}, nil
}

type fixedInt int

func (f fixedInt) IntN(int) int { return int(f) }

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func testLocator(s search.Searcher, f fetch.Fetcher) *Locator {
	return NewLocator(s, f, DefaultTables(), LocatorOptions{
		InstitutionDomain: "unb.br",
		UnitAcronym:       "FGA",
		MaxResults:        5,
		Region:            "br-pt",
		SearchDelay:       time.Second,
	}, noSleep, nil)
}
