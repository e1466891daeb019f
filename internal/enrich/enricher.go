package enrich

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
)

type state int

const (
	stateAttemptSearch state = iota
	stateDownload
	statePlaceholder
	stateDone
)

type EnricherOptions struct {
	// ImageDir is where downloads are written.
	ImageDir string
	// ImageRelDir is how the tabular output refers to ImageDir.
	ImageRelDir string
}

// Enricher attaches an image to one record. It always ends with an image path:
// every failure on the way falls back to a category placeholder.
type Enricher struct {
	locator      *Locator
	downloader   *Downloader
	placeholders *PlaceholderSelector
	opts         EnricherOptions
	logger       *slog.Logger
}

// NewEnricher wires the enrichment steps. A nil locator skips the network and
// goes straight to placeholders.
func NewEnricher(locator *Locator, downloader *Downloader, placeholders *PlaceholderSelector, opts EnricherOptions, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{locator: locator, downloader: downloader, placeholders: placeholders, opts: opts, logger: logger}
}

// Enrich returns the enriched record and, when a placeholder was used, the
// failure that caused it.
func (e *Enricher) Enrich(ctx context.Context, rec internal.RawRecord) (internal.EnrichedRecord, error) {
	out := internal.EnrichedRecord{RawRecord: rec}
	var (
		loc     Location
		failure error
	)

	st := stateAttemptSearch
	if e.locator == nil || e.downloader == nil {
		st = statePlaceholder
	}

	for st != stateDone {
		switch st {
		case stateAttemptSearch:
			var err error
			loc, err = e.locator.Locate(ctx, rec.Name)
			if err != nil {
				failure = err
				st = statePlaceholder
				continue
			}
			out.Keyword = loc.Keyword
			st = stateDownload

		case stateDownload:
			dest := filepath.Join(e.opts.ImageDir, loc.FileName)
			if err := e.downloader.Download(ctx, loc.ImageURL, dest); err != nil {
				failure = err
				st = statePlaceholder
				continue
			}
			out.ImagePath = path.Join(e.opts.ImageRelDir, loc.FileName)
			out.ImageSource = internal.ImageDownloaded
			out.ImageURL = loc.ImageURL
			st = stateDone

		case statePlaceholder:
			p, category := e.placeholders.Select(rec.Name)
			out.ImagePath = p
			out.ImageSource = internal.ImagePlaceholder
			out.Category = category
			if failure != nil {
				e.logger.Info("using placeholder", "name", rec.Name, "category", category, "reason", string(Classify(failure)), "error", failure)
			}
			st = stateDone
		}
	}

	if out.Keyword == "" && e.locator != nil {
		out.Keyword = e.locator.Keyword(rec.Name)
	}
	return out, failure
}
