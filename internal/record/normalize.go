package record

import (
	"strings"
	"time"
	"unicode"
)

// booleanTrueValues are the accepted truthy spellings for boolean cells.
var booleanTrueValues = map[string]bool{
	"yes": true, "true": true, "y": true, "1": true, "t": true,
}

// dateFormats are tried in order; the first successful parse wins.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"02/01/2006",
	"02-01-2006",
}

// timeFormats are tried in order; the first successful parse wins.
var timeFormats = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3PM",
	"3:04 pm",
	"3:04pm",
	"3pm",
}

// NormalizeHeader lowercases, trims, and replaces spaces with underscores.
func NormalizeHeader(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// ParseBoolean reports whether the cell spells a truthy value. Anything
// unrecognized, including the empty string, is false. Never fails.
func ParseBoolean(s string) bool {
	return booleanTrueValues[strings.ToLower(strings.TrimSpace(s))]
}

// NormalizeDate re-emits the first parseable date as YYYY-MM-DD. Values
// matching none of the known formats pass through unchanged rather than
// failing the row.
func NormalizeDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// NormalizeTime re-emits the first parseable time as 24h HH:MM, with the
// same passthrough behavior as NormalizeDate.
func NormalizeTime(s string) string {
	if s == "" {
		return ""
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return s
}

// StandardizeCategory trims and title-cases a category cell. Empty stays
// empty.
func StandardizeCategory(s string) string {
	return titleCase(strings.TrimSpace(s))
}

// DeriveJurisdiction computes the locality code for a case. An incident id
// containing a dash wins: jurisdiction is the uppercased text before the
// first dash. Otherwise the text before the first comma of the location is
// used, and "UNKNOWN" when neither source is present.
func DeriveJurisdiction(incidentID, location string) string {
	if incidentID != "" && strings.Contains(incidentID, "-") {
		prefix, _, _ := strings.Cut(incidentID, "-")
		return strings.ToUpper(prefix)
	}
	if location != "" {
		first, _, _ := strings.Cut(location, ",")
		return strings.TrimSpace(first)
	}
	return "UNKNOWN"
}

// titleCase uppercases every letter that follows a non-letter and
// lowercases the rest, so "bicycle vs vehicle" becomes "Bicycle Vs
// Vehicle" and "hit-and-run" becomes "Hit-And-Run".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
