package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/config"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/enrich"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/storage"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/util"
)

var ErrNoEnricher = errors.New("image enrichment is not configured")

// runTimeLayout keeps a fixed width so stored timestamps sort as text.
const runTimeLayout = "2006-01-02T15:04:05.000000Z"

type ProcessingService struct {
	db       *storage.DB
	cfg      config.Config
	enricher *enrich.Enricher
	sleep    util.Sleeper
	logger   *slog.Logger
}

// NewProcessingService wires a run. db may be nil, in which case nothing is
// persisted and images are never reused.
func NewProcessingService(db *storage.DB, cfg config.Config, enricher *enrich.Enricher, sleep util.Sleeper, logger *slog.Logger) *ProcessingService {
	if logger == nil {
		logger = slog.Default()
	}
	if sleep == nil {
		sleep = util.Sleep
	}
	return &ProcessingService{db: db, cfg: cfg, enricher: enricher, sleep: sleep, logger: logger}
}

type ProcessOptions struct {
	Input     string
	Type      internal.InputType
	StartPage int
	StartLine int
	CSVPath   string
	XLSXPath  string
	// RecordDelay is the pause after every enriched record.
	RecordDelay time.Duration
}

// Extraction is the portfolio text turned into unique campus records.
type Extraction struct {
	Records  []internal.RawRecord
	Segment  SegmentResult
	Filtered int
	Timings  map[string]float64
}

type ProcessResult struct {
	RunID   string
	Records []internal.EnrichedRecord
	Counts  map[string]int
	Timings map[string]float64
}

func (s *ProcessingService) Extract(opts ProcessOptions) (Extraction, error) {
	start := time.Now()
	raw, err := ExtractFromFile(opts.Input, opts.Type, opts.StartPage)
	if err != nil {
		return Extraction{}, err
	}
	extractMs := msSince(start)

	segStart := time.Now()
	cfg := DefaultSegmenterConfig()
	if opts.StartLine > 0 {
		cfg.StartLine = opts.StartLine
	}
	seg := NewSegmenter(cfg, s.logger).Segment(NormalizeText(raw))
	filtered := FilterCampus(seg.Records, s.cfg.UnitMarker)
	unique := Dedup(filtered)

	s.logger.Info("segmented portfolio",
		"input", opts.Input,
		"headers", seg.AcceptedHeaders,
		"rejected", seg.RejectedHeaders,
		"campus", len(filtered),
		"unique", len(unique),
	)

	return Extraction{
		Records:  unique,
		Segment:  seg,
		Filtered: len(filtered),
		Timings:  map[string]float64{"extractMs": extractMs, "segmentMs": msSince(segStart)},
	}, nil
}

// Process runs the whole batch: extraction, enrichment of every record, ids,
// tabular output and bookkeeping. A cancelled context stops between records and
// nothing is written.
func (s *ProcessingService) Process(ctx context.Context, opts ProcessOptions) (ProcessResult, error) {
	if s.enricher == nil {
		return ProcessResult{}, ErrNoEnricher
	}
	startedAt := time.Now()

	ext, err := s.Extract(opts)
	if err != nil {
		return ProcessResult{}, err
	}

	counts := map[string]int{
		"headers":         ext.Segment.AcceptedHeaders,
		"rejectedHeaders": ext.Segment.RejectedHeaders,
		"segmented":       len(ext.Segment.Records),
		"campus":          ext.Filtered,
		"records":         len(ext.Records),
	}
	timings := ext.Timings

	enrichStart := time.Now()
	out := make([]internal.EnrichedRecord, 0, len(ext.Records))
	for i, rec := range ext.Records {
		if err := ctx.Err(); err != nil {
			return ProcessResult{Records: out}, fmt.Errorf("stopped after %d of %d records: %w", i, len(ext.Records), err)
		}

		enriched, reused := s.reuse(rec)
		if !reused {
			var failure error
			enriched, failure = s.enricher.Enrich(ctx, rec)
			if failure != nil {
				counts["fail_"+string(enrich.Classify(failure))]++
			}
			if enriched.ImageSource == internal.ImageDownloaded {
				s.remember(enriched)
			}
		}
		enriched.ID = FormatID(s.cfg.IDPrefix, s.cfg.IDWidth, i+1)
		counts[string(enriched.ImageSource)]++
		out = append(out, enriched)

		if opts.RecordDelay > 0 && !reused && i < len(ext.Records)-1 {
			if err := s.sleep(ctx, opts.RecordDelay); err != nil {
				return ProcessResult{Records: out}, fmt.Errorf("stopped after %d of %d records: %w", i+1, len(ext.Records), err)
			}
		}
	}
	timings["enrichMs"] = msSince(enrichStart)

	exportStart := time.Now()
	for _, target := range []string{opts.CSVPath, opts.XLSXPath} {
		if target == "" {
			continue
		}
		if err := ExportRecords(out, target); err != nil {
			return ProcessResult{Records: out}, fmt.Errorf("write %s: %w", target, err)
		}
		s.logger.Info("wrote records", "path", target, "rows", len(out))
	}
	timings["exportMs"] = msSince(exportStart)
	timings["totalMs"] = msSince(startedAt)

	res := ProcessResult{RunID: uuid.NewString(), Records: out, Counts: counts, Timings: timings}
	if s.db == nil {
		return res, nil
	}

	run := internal.RunRow{
		ID:         res.RunID,
		Input:      opts.Input,
		StartedAt:  startedAt.UTC().Format(runTimeLayout),
		FinishedAt: time.Now().UTC().Format(runTimeLayout),
		Counts:     counts,
		Timings:    timings,
	}
	if err := s.db.InsertRun(run); err != nil {
		return res, fmt.Errorf("save run: %w", err)
	}
	if err := s.db.InsertRecords(res.RunID, out); err != nil {
		return res, fmt.Errorf("save records: %w", err)
	}
	for key, value := range map[string]string{"lastRunId": res.RunID, "lastInput": opts.Input} {
		if err := s.db.SetMetadata(key, value); err != nil {
			s.logger.Warn("could not save run metadata", "key", key, "error", err)
		}
	}

	return res, nil
}

// reuse returns the image a previous run downloaded for the same name, as long
// as the file is still on disk.
func (s *ProcessingService) reuse(rec internal.RawRecord) (internal.EnrichedRecord, bool) {
	if s.db == nil || !s.cfg.ReuseImages {
		return internal.EnrichedRecord{}, false
	}
	img, err := s.db.LookupImage(util.NameKey(rec.Name))
	if err != nil {
		s.logger.Warn("image lookup failed", "name", rec.Name, "error", err)
		return internal.EnrichedRecord{}, false
	}
	if img == nil {
		return internal.EnrichedRecord{}, false
	}
	if _, err := os.Stat(img.LocalPath); err != nil {
		s.logger.Debug("stored image is gone", "name", rec.Name, "path", img.LocalPath)
		return internal.EnrichedRecord{}, false
	}
	return internal.EnrichedRecord{
		RawRecord:   rec,
		ImagePath:   img.ImagePath,
		ImageSource: internal.ImageReused,
		ImageURL:    img.ImageURL,
	}, true
}

func (s *ProcessingService) remember(rec internal.EnrichedRecord) {
	if s.db == nil {
		return
	}
	img := storage.ImageRow{
		NameKey:   util.NameKey(rec.Name),
		ImagePath: rec.ImagePath,
		LocalPath: filepath.Join(s.cfg.ImageDir, path.Base(rec.ImagePath)),
		ImageURL:  rec.ImageURL,
	}
	if err := s.db.UpsertImage(img); err != nil {
		s.logger.Warn("could not remember image", "name", rec.Name, "error", err)
	}
}

// FormatID builds the public id: prefix followed by seq zero-padded to width.
func FormatID(prefix string, width, seq int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, seq)
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
