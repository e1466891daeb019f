package enrich

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/unb-mds/2025-2-Mural-UnB/internal/fetch"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/search"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/util"
)

const maxPageBytes = 5 << 20

type LocatorOptions struct {
	InstitutionDomain string
	UnitAcronym       string
	MaxResults        int
	Region            string
	SearchDelay       time.Duration
}

// Location is a validated image found for a record.
type Location struct {
	ImageURL string
	PageURL  string
	Tier     Tier
	Keyword  string
	FileName string
}

// Locator finds an image for a lab: one search, one homepage fetch and the
// tiered extraction on that page.
type Locator struct {
	searcher search.Searcher
	fetcher  fetch.Fetcher
	keywords *KeywordExtractor
	ranker   *Ranker
	tiers    *TierExtractor
	sleep    util.Sleeper
	opts     LocatorOptions
	logger   *slog.Logger
}

func NewLocator(searcher search.Searcher, fetcher fetch.Fetcher, t Tables, opts LocatorOptions, sleep util.Sleeper, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	if sleep == nil {
		sleep = util.Sleep
	}
	ranker := NewRanker(t, opts.InstitutionDomain, logger)
	return &Locator{
		searcher: searcher,
		fetcher:  fetcher,
		keywords: NewKeywordExtractor(t),
		ranker:   ranker,
		tiers:    NewTierExtractor(t, ranker.IsInstitutionHost),
		sleep:    sleep,
		opts:     opts,
		logger:   logger,
	}
}

func (l *Locator) Keyword(name string) string {
	return l.keywords.Extract(name)
}

func (l *Locator) Query(name, keyword string) string {
	return fmt.Sprintf(`"%s" OR site:%s "%s %s"`, name, l.opts.InstitutionDomain, keyword, l.opts.UnitAcronym)
}

func (l *Locator) Locate(ctx context.Context, name string) (Location, error) {
	keyword := l.Keyword(name)
	query := l.Query(name, keyword)
	l.logger.Debug("searching image", "name", name, "query", query, "keyword", keyword)

	results, err := l.searcher.Search(ctx, query, search.Options{MaxResults: l.opts.MaxResults, Region: l.opts.Region})
	if sleepErr := l.sleep(ctx, l.opts.SearchDelay); sleepErr != nil {
		return Location{}, sleepErr
	}
	if err != nil {
		return Location{}, fmt.Errorf("%w: %w", ErrSearch, err)
	}
	if len(results) == 0 {
		return Location{}, ErrNoResults
	}

	best, ok := l.ranker.Pick(results, keyword)
	if !ok {
		return Location{}, ErrNoCandidate
	}

	page, err := url.Parse(best.URL)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %s: %w", ErrFetch, best.URL, err)
	}
	doc, err := l.fetchPage(ctx, best.URL)
	if err != nil {
		l.logger.Warn("homepage fetch failed", "url", best.URL, "error", err)
		return Location{}, fmt.Errorf("%w: %s: %w", ErrFetch, best.URL, err)
	}

	candidate, ok := l.tiers.Extract(doc, page)
	if !ok {
		return Location{}, fmt.Errorf("%w: %s", ErrNoImage, best.URL)
	}
	ref, err := url.Parse(candidate.URL)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %s", ErrNoImage, candidate.URL)
	}
	abs := page.ResolveReference(ref)

	l.logger.Debug("image found", "name", name, "url", abs.String(), "tier", string(candidate.Tier))
	return Location{
		ImageURL: abs.String(),
		PageURL:  best.URL,
		Tier:     candidate.Tier,
		Keyword:  keyword,
		FileName: ImageFileName(name, keyword),
	}, nil
}

func (l *Locator) fetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	resp, err := l.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
}

// ImageFileName builds "<first three alphanumerics of name>_<keyword>.jpg".
func ImageFileName(name, keyword string) string {
	prefix := util.KeepRunes(util.Fold(name), util.IsAlnum)
	if utf8.RuneCountInString(prefix) > 3 {
		prefix = string([]rune(prefix)[:3])
	}
	base := util.KeepRunes(keyword, func(r rune) bool { return util.IsAlnum(r) || r == '_' })
	return strings.ToLower(prefix) + "_" + base + ".jpg"
}
