package enrich

import (
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/util"
)

type rankTier int

const (
	rankNone rankTier = iota
	rankFirstValid
	rankExternalKeyword
	rankInstitutionKeyword
)

// Ranker chooses the search result most likely to be the lab's homepage.
type Ranker struct {
	institution  string
	blockedHosts []string
	docExts      []string
	logger       *slog.Logger
}

func NewRanker(t Tables, institutionDomain string, logger *slog.Logger) *Ranker {
	if logger == nil {
		logger = slog.Default()
	}
	blocked := make([]string, 0, len(t.BlockedHosts))
	for _, h := range t.BlockedHosts {
		blocked = append(blocked, strings.ToLower(strings.TrimSpace(h)))
	}
	return &Ranker{
		institution:  strings.ToLower(strings.TrimSpace(institutionDomain)),
		blockedHosts: blocked,
		docExts:      t.DocumentExts,
		logger:       logger,
	}
}

// Pick walks results in order. An institution page mentioning the keyword wins
// immediately; otherwise the first external page with the keyword, otherwise
// the first result that is neither blocked nor a document.
func (r *Ranker) Pick(results []internal.SearchResult, keyword string) (internal.SearchResult, bool) {
	var best internal.SearchResult
	bestTier := rankNone

	for _, res := range results {
		u, err := url.Parse(strings.TrimSpace(res.URL))
		if err != nil || u.Host == "" {
			continue
		}
		if r.isBlocked(u) {
			r.logger.Debug("result skipped", "url", res.URL, "reason", "blocked host")
			continue
		}
		if r.isDocument(u) {
			r.logger.Debug("result skipped", "url", res.URL, "reason", "document")
			continue
		}

		tier := rankFirstValid
		if mentions(res, keyword) {
			tier = rankExternalKeyword
			if r.IsInstitutionHost(u.Hostname()) {
				return res, true
			}
		}
		if tier > bestTier {
			best, bestTier = res, tier
		}
	}
	return best, bestTier != rankNone
}

func mentions(res internal.SearchResult, keyword string) bool {
	if keyword == "" {
		return false
	}
	return strings.Contains(util.Fold(res.Title), keyword) || strings.Contains(strings.ToLower(res.URL), keyword)
}

// IsInstitutionHost reports whether host belongs to the institution's
// registered domain, e.g. fga.unb.br for unb.br.
func (r *Ranker) IsInstitutionHost(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" || r.institution == "" {
		return false
	}
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil && etld1 == r.institution {
		return true
	}
	return host == r.institution || strings.HasSuffix(host, "."+r.institution)
}

func (r *Ranker) isBlocked(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	for _, blocked := range r.blockedHosts {
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return true
		}
	}
	return false
}

func (r *Ranker) isDocument(u *url.URL) bool {
	p := strings.ToLower(u.Path)
	for _, ext := range r.docExts {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}
