package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fyrsmithlabs/retro/internal/criteria"
	"github.com/fyrsmithlabs/retro/internal/report"
)

// calendarStatPattern matches "Category (N events, H hours)" with an optional trailing colon.
var calendarStatPattern = regexp.MustCompile(`^(.*?)\s*\((\d+)\s+events?,\s*(\d+(?:\.\d+)?)\s+hours?\)\s*:?\s*$`)

// CalendarStat is a parsed calendar category statistic.
type CalendarStat struct {
	Category string
	Events   int
	Hours    float64
}

// ParseCalendarStat parses "Category (N events, H hours)". Status glyphs must
// already be stripped.
func ParseCalendarStat(line string) (CalendarStat, bool) {
	m := calendarStatPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return CalendarStat{}, false
	}
	events, err := strconv.Atoi(m[2])
	if err != nil {
		return CalendarStat{}, false
	}
	hours, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return CalendarStat{}, false
	}
	category := strings.TrimSpace(m[1])
	if category == "" {
		return CalendarStat{}, false
	}
	return CalendarStat{Category: category, Events: events, Hours: hours}, true
}

// CalendarSummary extracts "Status Category (N events, H hours):" lines. A
// zero-stat line whose category has a configured replacement becomes the
// replacement text.
func CalendarSummary(text string, c criteria.Criterion, sc SectionConfig) []string {
	var items []string
	for _, line := range report.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" || !criteria.Matches(line, c) {
			continue
		}
		cleaned := report.StripStatusGlyphs(line, sc.glyphs())
		stat, ok := ParseCalendarStat(cleaned)
		if !ok {
			continue
		}
		if stat.Events == 0 && stat.Hours == 0 {
			if replacement, ok := lookupFold(sc.ZeroReplacements, stat.Category); ok && replacement != "" {
				items = append(items, replacement)
				continue
			}
		}
		items = append(items, strings.TrimSpace(strings.TrimSuffix(cleaned, ":")))
	}
	return items
}

// CalendarEvents extracts category blocks: a header line carrying a status
// glyph and a parenthesis, followed by bulleted events. A block is emitted
// only when its header matches c and it holds at least one event.
func CalendarEvents(text string, c criteria.Criterion, sc SectionConfig) []string {
	isHeader := func(line string) bool {
		return strings.Contains(line, "(") && report.HasStatusGlyph(line, sc.glyphs())
	}
	return collectBlocks(text, c, sc, isHeader, StripTimeAnnotation)
}

var timeAnnotationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*\(\s*\d+(?:\.\d+)?\s*(?:h|hr|hrs|hours?|m|min|mins|minutes?)\s*\)$`),
	regexp.MustCompile(`(?i)\s*\(\s*\d{1,2}(?::\d{2}\s*(?:[ap]\.?m\.?)?|\s*[ap]\.?m\.?)\s*(?:[-–]\s*\d{1,2}(?::\d{2})?\s*(?:[ap]\.?m\.?)?)?\s*\)$`),
	regexp.MustCompile(`(?i)\s*(?:@|\bat\b|[-–,])\s*\d{1,2}:\d{2}\s*(?:[ap]\.?m\.?)?(?:\s*[-–]\s*\d{1,2}(?::\d{2})?\s*(?:[ap]\.?m\.?)?)?$`),
	regexp.MustCompile(`(?i)\s*[-–,]\s*\d+(?:\.\d+)?\s*(?:h|hrs?|hours?|m|mins?|minutes?)$`),
}

// StripTimeAnnotation removes trailing durations and clock times such as
// "(1.5h)", "(10:00 - 11:30)", "@ 7:30pm" or "- 45 min".
func StripTimeAnnotation(s string) string {
	out := strings.TrimSpace(s)
	for {
		before := out
		for _, re := range timeAnnotationPatterns {
			out = strings.TrimSpace(re.ReplaceAllString(out, ""))
		}
		if out == before {
			return out
		}
	}
}
