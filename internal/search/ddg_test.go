package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unb-mds/2025-2-Mural-UnB/internal/config"
)

const ddgPage = `<html><body>
<div class="result results_links web-result">
  <h2 class="result__title"><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Flappis.unb.br%2F&amp;rut=abc">LAPPIS - Laboratório</a></h2>
  <a class="result__snippet">Software livre na FGA</a>
</div>
<div class="result result--ad"><a class="result__a" href="https://ads.example.com/">Ad</a></div>
<div class="result web-result"><a class="result__a" href="https://github.com/lappis-unb">lappis-unb · GitHub</a></div>
<div class="result web-result"><a class="result__a" href="/relative">no scheme</a></div>
<div class="result web-result"><a class="result__a" href="https://example.org/x"></a></div>
</body></html>`

func TestParseDDGHTML(t *testing.T) {
	results, err := parseDDGHTML([]byte(ddgPage))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "https://lappis.unb.br/", results[0].URL)
	assert.Equal(t, "LAPPIS - Laboratório", results[0].Title)
	assert.Equal(t, "https://github.com/lappis-unb", results[1].URL)
}

func TestDDGUnwrapURL(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{name: "redirect", href: "//duckduckgo.com/l/?uddg=https%3A%2F%2Ffga.unb.br%2Flabs", want: "https://fga.unb.br/labs"},
		{name: "direct", href: "https://fga.unb.br", want: "https://fga.unb.br"},
		{name: "relative", href: "/l/?x=1", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ddgUnwrapURL(tt.href))
		})
	}
}

func TestDDGClientSearch(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, `"Lab" OR site:unb.br "lab FGA"`, r.PostForm.Get("q"))
		assert.Equal(t, "br-pt", r.PostForm.Get("kl"))
		if n == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(ddgPage))
	}))
	defer srv.Close()

	client := NewDDGClient(config.Config{SearchBaseURL: srv.URL, SearchRateLimitRPS: 1000, SearchMaxAttempts: 3, FetchTimeoutMs: 5000}, nil)
	results, err := client.Search(context.Background(), `"Lab" OR site:unb.br "lab FGA"`, Options{MaxResults: 1, Region: "br-pt"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://lappis.unb.br/", results[0].URL)
	assert.EqualValues(t, 2, calls.Load())
}

func TestDDGClientSearchSendsOneRequestByDefault(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewDDGClient(config.Config{SearchBaseURL: srv.URL, SearchRateLimitRPS: 1000, FetchTimeoutMs: 5000}, nil)
	_, err := client.Search(context.Background(), "q", Options{})
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestDDGClientSearchBacksOffAfterTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	client := NewDDGClient(config.Config{SearchBaseURL: baseURL, SearchRateLimitRPS: 1000, SearchMaxAttempts: 2, FetchTimeoutMs: 5000}, nil)
	start := time.Now()
	_, err := client.Search(context.Background(), "q", Options{})
	require.Error(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 250*time.Millisecond)
}

func TestDDGClientSearchFatalStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewDDGClient(config.Config{SearchBaseURL: srv.URL, SearchRateLimitRPS: 1000, FetchTimeoutMs: 5000}, nil)
	_, err := client.Search(context.Background(), "q", Options{})
	require.Error(t, err)
}

func TestRateLimiterHonoursContext(t *testing.T) {
	limiter := NewRateLimiter(1)
	require.NoError(t, limiter.WaitTurn(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := limiter.WaitTurn(ctx)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
