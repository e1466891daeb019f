package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/unb-mds/2025-2-Mural-UnB/internal/fetch"
)

const PortfolioFileName = "Portfolio_Infraestrutura_UnB.pdf"

var ErrNoPortfolioLink = errors.New("no portfolio pdf link on page")

// portfolioMarkers identify the infrastructure portfolio among the page's PDFs.
var portfolioMarkers = []string{"InfraPesquisa", "Infraestrutura"}

type PortfolioLink struct {
	URL  string
	Text string
}

// FindPortfolioLinks lists the distinct portfolio PDF links on the research page,
// resolved against the page URL, in page order.
func FindPortfolioLinks(doc *goquery.Document, page *url.URL) []PortfolioLink {
	seen := map[string]struct{}{}
	var links []PortfolioLink
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if !strings.HasSuffix(href, ".pdf") || !containsAny(href, portfolioMarkers) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := page.ResolveReference(ref).String()
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		text := strings.TrimSpace(a.Text())
		if text == "" {
			text = "PDF sem descrição"
		}
		links = append(links, PortfolioLink{URL: abs, Text: text})
	})
	return links
}

// DownloadPortfolio fetches the research page, picks the first portfolio link and
// stores the PDF at dest.
func DownloadPortfolio(ctx context.Context, fetcher fetch.Fetcher, pageURL, dest string, logger *slog.Logger) (PortfolioLink, error) {
	if logger == nil {
		logger = slog.Default()
	}
	page, err := url.Parse(pageURL)
	if err != nil {
		return PortfolioLink{}, fmt.Errorf("parse page url: %w", err)
	}

	resp, err := fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return PortfolioLink{}, err
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	resp.Body.Close()
	if err != nil {
		return PortfolioLink{}, fmt.Errorf("parse page: %w", err)
	}

	links := FindPortfolioLinks(doc, page)
	logger.Info("portfolio links found", "page", pageURL, "count", len(links))
	if len(links) == 0 {
		return PortfolioLink{}, fmt.Errorf("%w: %s", ErrNoPortfolioLink, pageURL)
	}

	link := links[0]
	pdfResp, err := fetcher.Fetch(ctx, link.URL)
	if err != nil {
		return link, err
	}
	defer pdfResp.Body.Close()

	n, err := fetch.SaveFile(pdfResp.Body, dest)
	if err != nil {
		return link, fmt.Errorf("save %s: %w", dest, err)
	}
	logger.Info("portfolio downloaded", "url", link.URL, "path", dest, "bytes", n)
	return link, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
