package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/config"
)

type Options struct {
	MaxResults int
	Region     string
}

// Searcher is the web search collaborator used to find lab homepages.
type Searcher interface {
	Search(ctx context.Context, query string, opts Options) ([]internal.SearchResult, error)
}

// DDGClient queries the DuckDuckGo HTML endpoint, which needs no token.
type DDGClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *RateLimiter
	// attempts bounds the requests one Search may send. Values below 1 mean 1.
	attempts int
	logger   *slog.Logger
}

func NewDDGClient(cfg config.Config, logger *slog.Logger) *DDGClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &DDGClient{
		baseURL:    cfg.SearchBaseURL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: time.Duration(cfg.FetchTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.SearchRateLimitRPS),
		attempts:   max(cfg.SearchMaxAttempts, 1),
		logger:     logger,
	}
}

func (c *DDGClient) Search(ctx context.Context, query string, opts Options) ([]internal.SearchResult, error) {
	region := opts.Region
	if region == "" {
		region = "wt-wt"
	}
	form := url.Values{"q": {query}, "kl": {region}, "df": {""}}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err := c.limiter.WaitTurn(ctx); err != nil {
			return nil, err
		}

		body, status, err := c.post(ctx, form)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if attempt < c.attempts {
				if err := backoff(ctx, attempt); err != nil {
					return nil, err
				}
			}
			continue
		}
		if status != http.StatusOK {
			lastErr = fmt.Errorf("ddg html status %d", status)
			if isRetryableStatus(status) && attempt < c.attempts {
				if err := backoff(ctx, attempt); err != nil {
					return nil, err
				}
				continue
			}
			return nil, lastErr
		}

		results, err := parseDDGHTML(body)
		if err != nil {
			return nil, err
		}
		if opts.MaxResults > 0 && len(results) > opts.MaxResults {
			results = results[:opts.MaxResults]
		}
		c.logger.Debug("ddg results", slog.Int("count", len(results)), slog.String("query", query))
		return results, nil
	}

	if lastErr == nil {
		lastErr = errors.New("ddg request failed")
	}
	return nil, lastErr
}

func (c *DDGClient) post(ctx context.Context, form url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "https://html.duckduckgo.com/")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

func parseDDGHTML(data []byte) ([]internal.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("goquery parse: %w", err)
	}

	var results []internal.SearchResult
	doc.Find(".result, .web-result").Each(func(_ int, s *goquery.Selection) {
		if s.HasClass("result--ad") {
			return
		}
		link := s.Find("a.result__a, .result__title a, a.result-link").First()
		title := strings.TrimSpace(link.Text())
		href, exists := link.Attr("href")
		if !exists || title == "" {
			return
		}
		href = ddgUnwrapURL(href)
		if href == "" {
			return
		}
		results = append(results, internal.SearchResult{URL: href, Title: title})
	})
	return results, nil
}

// ddgUnwrapURL extracts the target of //duckduckgo.com/l/?uddg=<url> redirects.
func ddgUnwrapURL(href string) string {
	if strings.Contains(href, "duckduckgo.com/l/") || strings.Contains(href, "uddg=") {
		if u, err := url.Parse(href); err == nil {
			if uddg := u.Query().Get("uddg"); uddg != "" {
				return uddg
			}
		}
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return ""
}

func isRetryableStatus(status int) bool {
	switch status {
	case 202, 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func backoff(ctx context.Context, attempt int) error {
	wait := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
