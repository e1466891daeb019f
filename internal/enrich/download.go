package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/unb-mds/2025-2-Mural-UnB/internal/fetch"
)

type Downloader struct {
	fetcher fetch.Fetcher
	logger  *slog.Logger
}

func NewDownloader(fetcher fetch.Fetcher, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{fetcher: fetcher, logger: logger}
}

// Download saves imageURL to dest. Nothing is written unless the server answers
// 2xx with an image/* content type. Panics from the transport are returned as
// errors.
func (d *Downloader) Download(ctx context.Context, imageURL, dest string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrFetch, imageURL, r)
		}
	}()

	resp, err := d.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFetch, imageURL, err)
	}
	defer resp.Body.Close()

	contentType := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Type")))
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: %s returned %q", ErrNotImage, imageURL, contentType)
	}

	n, err := fetch.SaveFile(resp.Body, dest)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, dest, err)
	}
	d.logger.Debug("image saved", "url", imageURL, "path", dest, "bytes", n)
	return nil
}
