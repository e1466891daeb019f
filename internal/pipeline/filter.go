package pipeline

import (
	"regexp"
	"strings"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/util"
)

var reLeadingAcronym = regexp.MustCompile(`^O\s+([A-Z]+),`)

// FilterCampus keeps the records whose description mentions the unit marker.
// A description opening with "O <ACRONYM>," about another lab is dropped.
func FilterCampus(records []internal.RawRecord, marker string) []internal.RawRecord {
	marker = strings.ToUpper(strings.TrimSpace(marker))
	out := make([]internal.RawRecord, 0, len(records))
	for _, rec := range records {
		if marker == "" || !strings.Contains(strings.ToUpper(rec.Description), marker) {
			continue
		}
		if describesOtherUnit(rec) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func describesOtherUnit(rec internal.RawRecord) bool {
	firstSentence, _, _ := strings.Cut(rec.Description, ".")
	m := reLeadingAcronym.FindStringSubmatch(firstSentence)
	if m == nil {
		return false
	}
	return !strings.Contains(rec.Name, m[1])
}

// Dedup drops records whose name key was already seen; the first one wins.
func Dedup(records []internal.RawRecord) []internal.RawRecord {
	seen := map[string]struct{}{}
	out := make([]internal.RawRecord, 0, len(records))
	for _, rec := range records {
		key := util.NameKey(rec.Name)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}
