package extract

import (
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/retro/internal/criteria"
	"github.com/fyrsmithlabs/retro/internal/report"
)

// EventList extracts trips and events. Lines look like "Type - Description";
// only the description is kept.
func EventList(text string, c criteria.Criterion, _ SectionConfig) []string {
	var items []string
	for _, line := range report.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" || !criteria.Matches(line, c) {
			continue
		}
		if b, ok := report.BulletText(line); ok {
			line = b
		}
		desc := line
		if _, after, found := strings.Cut(line, " - "); found {
			desc = after
		}
		if desc = strings.TrimSpace(desc); desc != "" {
			items = append(items, desc)
		}
	}
	return items
}

// Habits keeps whole habit lines, removing only leading status glyphs.
func Habits(text string, c criteria.Criterion, sc SectionConfig) []string {
	var items []string
	for _, line := range report.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" || !criteria.Matches(line, c) {
			continue
		}
		if b, ok := report.BulletText(line); ok {
			line = b
		}
		if habit := report.StripStatusGlyphs(line, sc.glyphs()); habit != "" {
			items = append(items, habit)
		}
	}
	return items
}

// RockStatus is the outcome reported for a rock.
type RockStatus int

const (
	RockWentWell RockStatus = iota
	RockMadeProgress
	RockWentBad
	RockDidntGoWell
)

// Rock is a parsed rock line.
type Rock struct {
	Status RockStatus
	Title  string
	Note   string
}

// Phrase renders the rock as a short retrospective phrase.
func (r Rock) Phrase() string {
	switch r.Status {
	case RockMadeProgress:
		return "Made progress on " + r.Title
	case RockWentBad:
		return r.Title + " went bad"
	case RockDidntGoWell:
		return r.Title + " didn't go so well"
	default:
		return r.Title
	}
}

var (
	rockStrictPattern = regexp.MustCompile(`(?i)^(went well|made progress|went bad|didn't go so well)\s*[-–—:]\s*(.*?)\s*(?:\(([^()]*)\))?\s*$`)
	rockDashPattern   = regexp.MustCompile(`\s[-–—]\s`)
	trailingNote      = regexp.MustCompile(`\s*\(([^()]*)\)\s*$`)
)

// Rocks extracts rock outcomes as phrases. Lines with an empty title are dropped.
func Rocks(text string, c criteria.Criterion, _ SectionConfig) []string {
	var items []string
	for _, line := range report.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" || !criteria.Matches(line, c) {
			continue
		}
		rock, ok := ParseRock(line)
		if !ok {
			continue
		}
		items = append(items, rock.Phrase())
	}
	return items
}

// ParseRock parses a rock line with a strict pattern first and falls back to
// substring heuristics when the status phrase is missing or garbled.
func ParseRock(line string) (Rock, bool) {
	cleaned := report.StripLeadingSymbols(report.NormalizeApostrophes(strings.TrimSpace(line)))
	if cleaned == "" {
		return Rock{}, false
	}

	if rock, ok := parseRockStrict(cleaned); ok {
		return rock, rock.Title != ""
	}

	rock := parseRockHeuristic(cleaned)
	return rock, rock.Title != ""
}

func parseRockStrict(line string) (Rock, bool) {
	m := rockStrictPattern.FindStringSubmatch(line)
	if m == nil {
		return Rock{}, false
	}
	return Rock{
		Status: rockStatusFromPhrase(m[1]),
		Title:  cleanRockTitle(m[2]),
		Note:   strings.TrimSpace(m[3]),
	}, true
}

func parseRockHeuristic(line string) Rock {
	rock := Rock{Status: rockStatusFromPhrase(line)}

	if m := trailingNote.FindStringSubmatchIndex(line); m != nil {
		rock.Note = strings.TrimSpace(line[m[2]:m[3]])
		line = line[:m[0]]
	}

	var title string
	if loc := rockDashPattern.FindStringIndex(line); loc != nil {
		title = cleanRockTitle(line[loc[1]:])
		// "Fix CI - made progress": the status trails the dash.
		if stripStatusPhrases(title) == "" {
			title = stripStatusPhrases(line[:loc[0]])
		}
	} else {
		title = stripStatusPhrases(line)
	}
	rock.Title = cleanRockTitle(title)
	return rock
}

var statusPhrases = []string{
	"didn't go so well",
	"didnt go so well",
	"made progress",
	"went well",
	"went badly",
	"went bad",
}

func stripStatusPhrases(s string) string {
	for _, phrase := range statusPhrases {
		s = removeFold(s, phrase)
	}
	return cleanRockTitle(s)
}

func rockStatusFromPhrase(s string) RockStatus {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "made progress"):
		return RockMadeProgress
	case strings.Contains(lower, "went bad"):
		return RockWentBad
	case strings.Contains(lower, "didn't go so well"), strings.Contains(lower, "didnt go so well"):
		return RockDidntGoWell
	default:
		return RockWentWell
	}
}

func cleanRockTitle(s string) string {
	s = report.StripLeadingSymbols(strings.TrimSpace(s))
	return strings.TrimSpace(strings.TrimRight(s, " -–—:"))
}

func removeFold(s, phrase string) string {
	idx := strings.Index(strings.ToLower(s), phrase)
	if idx < 0 {
		return s
	}
	return s[:idx] + s[idx+len(phrase):]
}
