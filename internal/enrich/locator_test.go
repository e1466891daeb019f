package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
)

const labName = "Laboratório de Robótica e Sistemas Embarcados"

func TestLocatorFindsImage(t *testing.T) {
	s := &fakeSearcher{results: []internal.SearchResult{
		{URL: "https://robotica.example.com/", Title: "Robótica"},
		{URL: "https://lara.fga.unb.br/sobre/", Title: "LARA - Robótica"},
	}}
	f := &fakeFetcher{pages: map[string]fakePage{
		"https://lara.fga.unb.br/sobre/": {contentType: "text/html", body: `<html><head><meta property="og:image" content="../img/lara.jpg"></head></html>`},
	}}

	loc, err := testLocator(s, f).Locate(context.Background(), labName)
	require.NoError(t, err)
	assert.Equal(t, "https://lara.fga.unb.br/img/lara.jpg", loc.ImageURL)
	assert.Equal(t, TierGold, loc.Tier)
	assert.Equal(t, "robotica", loc.Keyword)
	assert.Equal(t, "lab_robotica.jpg", loc.FileName)
	require.Len(t, s.queries, 1)
	assert.Equal(t, `"`+labName+`" OR site:unb.br "robotica FGA"`, s.queries[0])
	assert.Equal(t, []string{"https://lara.fga.unb.br/sobre/"}, f.calls)
}

func TestLocatorFailures(t *testing.T) {
	tests := []struct {
		name      string
		searcher  *fakeSearcher
		pages     map[string]fakePage
		wantErr   error
		wantCalls int
	}{
		{
			name:     "no results",
			searcher: &fakeSearcher{},
			wantErr:  ErrNoResults,
		},
		{
			name:     "search error",
			searcher: &fakeSearcher{err: errors.New("boom")},
			wantErr:  ErrSearch,
		},
		{
			name: "only blocked results never fetch",
			searcher: &fakeSearcher{results: []internal.SearchResult{
				{URL: "https://www.escavador.com/sobre/robotica", Title: "Robótica"},
			}},
			wantErr: ErrNoCandidate,
		},
		{
			name: "homepage error",
			searcher: &fakeSearcher{results: []internal.SearchResult{
				{URL: "https://lara.fga.unb.br/", Title: "Robótica"},
			}},
			pages:     map[string]fakePage{"https://lara.fga.unb.br/": {status: 500}},
			wantErr:   ErrFetch,
			wantCalls: 1,
		},
		{
			name: "page without image",
			searcher: &fakeSearcher{results: []internal.SearchResult{
				{URL: "https://lara.fga.unb.br/", Title: "Robótica"},
			}},
			pages:     map[string]fakePage{"https://lara.fga.unb.br/": {contentType: "text/html", body: "<p>vazio</p>"}},
			wantErr:   ErrNoImage,
			wantCalls: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{pages: tt.pages}
			_, err := testLocator(tt.searcher, f).Locate(context.Background(), labName)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, f.calls, tt.wantCalls)
		})
	}
}

func TestImageFileName(t *testing.T) {
	assert.Equal(t, "lab_robotica.jpg", ImageFileName("Laboratório de Robótica", "robotica"))
	assert.Equal(t, "nuc_energia.jpg", ImageFileName("Núcleo de Energia", "energia"))
	assert.Equal(t, "l3_pesquisa.jpg", ImageFileName("L-3", "pesquisa"))
}
