package rollup

import (
	"regexp"
	"strings"
)

const weekday = `(?:Mon(?:day)?|Tue(?:s|sday)?|Wed(?:nesday)?|Thu(?:r|rs|rsday)?|Fri(?:day)?|Sat(?:urday)?|Sun(?:day)?)\.?`

var weekdayPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\s*\(\s*(?:[Oo]n\s+)?` + weekday + `(?:\s*[-–]\s*` + weekday + `)?\s*\)`),
	regexp.MustCompile(`\s+[Oo]n\s+` + weekday + `\b(?:\s*[-–]\s*` + weekday + `\b)?`),
	regexp.MustCompile(`\s*[-–,]?\s*\b` + weekday + `\s*[-–]\s*` + weekday + `\b`),
}

// StripWeekdays removes "on Mon" and "Mon - Tue" style annotations, which
// carry no meaning once weeks are rolled into a month.
func StripWeekdays(s string) string {
	out := s
	for _, re := range weekdayPatterns {
		out = re.ReplaceAllString(out, "")
	}
	out = strings.Join(strings.Fields(out), " ")
	return strings.TrimRight(out, " -–,")
}
