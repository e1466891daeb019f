package pipeline

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/util"
)

type segState int

const (
	stateScanning segState = iota
	stateInRecord
	stateInDescription
)

func (s segState) String() string {
	switch s {
	case stateInRecord:
		return "IN_RECORD"
	case stateInDescription:
		return "IN_DESCRIPTION"
	default:
		return "SCANNING"
	}
}

// scan is the mutable state of one Segment call.
type scan struct {
	lines    []string
	pos      int
	state    segState
	draft    *internal.RawRecord
	records  []internal.RawRecord
	accepted int
	rejected int
}

func (sc *scan) peek(offset int) (string, bool) {
	idx := sc.pos + offset
	if idx >= len(sc.lines) {
		return "", false
	}
	return strings.TrimSpace(sc.lines[idx]), true
}

func (sc *scan) finalize() {
	if sc.draft != nil {
		sc.records = append(sc.records, *sc.draft)
		sc.draft = nil
	}
	sc.state = stateScanning
}

func (sc *scan) open(name string) {
	sc.finalize()
	sc.draft = &internal.RawRecord{Name: name}
	sc.state = stateInRecord
	sc.accepted++
}

// rule is one line predicate and the action taken when it matches. apply returns
// how many lines it consumed.
type rule struct {
	name  string
	match func(sc *scan, line string) bool
	apply func(sc *scan, line string) int
}

type SegmentResult struct {
	Records         []internal.RawRecord
	AcceptedHeaders int
	RejectedHeaders int
}

// Segmenter recovers lab records from normalized portfolio text. It never fails:
// lines it cannot place are dropped.
type Segmenter struct {
	cfg    SegmenterConfig
	rules  []rule
	logger *slog.Logger
}

func NewSegmenter(cfg SegmenterConfig, logger *slog.Logger) *Segmenter {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Segmenter{cfg: cfg, logger: logger}
	s.rules = []rule{
		{name: "section", match: s.matchSection, apply: s.applySection},
		{name: "lone-number", match: s.matchLoneNumber, apply: s.applyLoneNumber},
		{name: "inline-number", match: s.matchInlineNumber, apply: s.applyInlineNumber},
		{name: "coordinator", match: s.inRecordWith(cfg.CoordinatorPrefixes), apply: s.applyCoordinator},
		{name: "contact", match: s.inRecordWith(cfg.ContactPrefixes), apply: s.applyContact},
		{name: "description", match: s.inRecordWith(cfg.DescriptionPrefixes), apply: s.applyDescription},
		{name: "ignore", match: func(*scan, string) bool { return true }, apply: s.applyIgnore},
	}
	return s
}

func (s *Segmenter) Segment(text string) SegmentResult {
	sc := &scan{lines: strings.Split(text, "\n")}
	if s.cfg.StartLine > 1 {
		sc.pos = s.cfg.StartLine - 1
	}

	for sc.pos < len(sc.lines) {
		line := strings.TrimSpace(sc.lines[sc.pos])
		if line == "" {
			sc.pos++
			continue
		}
		consumed := 1
		for _, r := range s.rules {
			if r.match(sc, line) {
				consumed = r.apply(sc, line)
				break
			}
		}
		sc.pos += consumed
	}
	sc.finalize()

	return SegmentResult{Records: sc.records, AcceptedHeaders: sc.accepted, RejectedHeaders: sc.rejected}
}

func (s *Segmenter) isField(line string) bool {
	return hasAnyPrefix(line, s.cfg.CoordinatorPrefixes) ||
		hasAnyPrefix(line, s.cfg.ContactPrefixes) ||
		hasAnyPrefix(line, s.cfg.DescriptionPrefixes)
}

func (s *Segmenter) inRecordWith(prefixes []string) func(*scan, string) bool {
	return func(sc *scan, line string) bool {
		return sc.draft != nil && hasAnyPrefix(line, prefixes)
	}
}

func (s *Segmenter) matchSection(_ *scan, line string) bool {
	return isSectionBoundary(line)
}

func (s *Segmenter) applySection(sc *scan, _ string) int {
	sc.finalize()
	return 1
}

func (s *Segmenter) matchLoneNumber(sc *scan, line string) bool {
	if !reLoneNumber.MatchString(line) {
		return false
	}
	next, ok := sc.peek(1)
	return ok && next != "" && !s.isField(next)
}

func (s *Segmenter) applyLoneNumber(sc *scan, _ string) int {
	next, _ := sc.peek(1)
	sc.open(next)
	return 2
}

func (s *Segmenter) matchInlineNumber(_ *scan, line string) bool {
	return reInlineNumber.MatchString(line)
}

func (s *Segmenter) applyInlineNumber(sc *scan, line string) int {
	name, ok := s.inlineName(line)
	if !ok {
		sc.rejected++
		s.logger.Debug("numbered line skipped", "line", line, "state", sc.state.String())
		return 1
	}

	consumed := 1
	if strings.HasSuffix(name, "-") {
		if next, ok := sc.peek(1); ok && next != "" &&
			utf8.RuneCountInString(next) < s.cfg.ContinuationMaxLen && !s.isField(next) {
			name += " " + next
			consumed = 2
		}
	}
	sc.open(name)
	return consumed
}

// inlineName returns the record name of a "<n>. <name>" line, or false when the
// line is a sub-numbering, a heading or an implausible name.
func (s *Segmenter) inlineName(line string) (string, bool) {
	m := reInlineNumber.FindStringSubmatch(line)
	if m == nil || reSubNumbering.MatchString(line) {
		return "", false
	}
	name := strings.TrimSpace(m[2])
	if isHeading(name, s.cfg.HeadingCapsRatio) {
		return "", false
	}
	n := utf8.RuneCountInString(name)
	if n <= s.cfg.MinNameLen || n >= s.cfg.MaxNameLen {
		return "", false
	}
	return name, true
}

// isRecordHeader reports whether line would open a new record by itself.
func (s *Segmenter) isRecordHeader(sc *scan, offset int, line string) bool {
	if reLoneNumber.MatchString(line) {
		next, ok := sc.peek(offset + 1)
		return ok && next != "" && !s.isField(next)
	}
	_, ok := s.inlineName(line)
	return ok
}

func (s *Segmenter) applyCoordinator(sc *scan, line string) int {
	value := cleanCoordinator(fieldValue(line))
	if value == "" {
		return 1
	}
	if sc.draft.Coordinator == "" {
		sc.draft.Coordinator = value
	} else {
		sc.draft.Coordinator += ", " + value
	}
	return 1
}

func (s *Segmenter) applyContact(sc *scan, line string) int {
	sc.draft.Contact = fieldValue(line)
	return 1
}

func (s *Segmenter) applyDescription(sc *scan, line string) int {
	sc.state = stateInDescription
	parts := []string{fieldValue(line)}

	offset := 1
	for ; ; offset++ {
		next, ok := sc.peek(offset)
		if !ok || s.endsDescription(sc, offset, next) {
			break
		}
		if next != "" {
			parts = append(parts, next)
		}
	}

	desc := strings.Join(parts, " ")
	desc = trimDescription(desc)
	desc = util.JoinHyphenated(desc)
	sc.draft.Description = strings.TrimSpace(desc)
	sc.state = stateInRecord
	return offset
}

func (s *Segmenter) endsDescription(sc *scan, offset int, line string) bool {
	if line == "" {
		return false
	}
	if reSectionHeader.MatchString(line) {
		return true
	}
	if strings.Contains(line, ":") && (s.isField(line) || hasAnyPrefix(line, s.cfg.ReservedKeywords)) {
		return true
	}
	if reRomanSection.MatchString(line) {
		return true
	}
	upper := strings.ToUpper(line)
	for _, phrase := range s.cfg.FooterPhrases {
		if strings.Contains(upper, phrase) {
			return true
		}
	}
	if reShortSeparator.MatchString(line) {
		return true
	}
	return s.isRecordHeader(sc, offset, line)
}

func (s *Segmenter) applyIgnore(sc *scan, line string) int {
	if sc.draft != nil {
		s.logger.Debug("line dropped", "line", line, "record", sc.draft.Name)
	}
	return 1
}
