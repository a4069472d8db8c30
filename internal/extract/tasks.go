package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fyrsmithlabs/retro/internal/criteria"
	"github.com/fyrsmithlabs/retro/internal/report"
)

var taskHeaderPattern = regexp.MustCompile(`^(.*?)\s*\((\d+)(?:\s*/\s*(\d+))?\)\s*:?\s*$`)

// TaskCount is a parsed task category header.
type TaskCount struct {
	Category string
	Done     int
	Total    int
	HasTotal bool
}

// ParseTaskCount parses "Category (Done)" or "Category (Done/Total)". Status
// glyphs must already be stripped.
func ParseTaskCount(line string) (TaskCount, bool) {
	m := taskHeaderPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return TaskCount{}, false
	}
	category := strings.TrimSpace(m[1])
	if category == "" {
		return TaskCount{}, false
	}
	done, err := strconv.Atoi(m[2])
	if err != nil {
		return TaskCount{}, false
	}
	tc := TaskCount{Category: category, Done: done}
	if m[3] != "" {
		total, err := strconv.Atoi(m[3])
		if err != nil {
			return TaskCount{}, false
		}
		tc.Total = total
		tc.HasTotal = true
	}
	return tc, true
}

// String renders the count as a header.
func (t TaskCount) String() string {
	if t.HasTotal {
		return t.Category + " (" + strconv.Itoa(t.Done) + "/" + strconv.Itoa(t.Total) + ")"
	}
	return t.Category + " (" + strconv.Itoa(t.Done) + ")"
}

// Tasks extracts task category blocks: "Status Category (N)" or
// "Status Category (N/M)" headers followed by bulleted tasks.
func Tasks(text string, c criteria.Criterion, sc SectionConfig) []string {
	isHeader := func(line string) bool {
		_, ok := ParseTaskCount(report.StripStatusGlyphs(line, sc.glyphs()))
		return ok
	}
	return collectBlocks(text, c, sc, isHeader, strings.TrimSpace)
}

// block accumulates one category header and its bullets.
type block struct {
	rawHeader string
	header    string
	details   []string
}

// collectBlocks implements the shared header/bullet accumulation used by
// calendar_events and tasks.
func collectBlocks(text string, c criteria.Criterion, sc SectionConfig, isHeader func(string) bool, cleanDetail func(string) string) []string {
	var (
		blocks  []*block
		current *block
	)

	for _, line := range report.Lines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if detail, ok := report.BulletText(trimmed); ok {
			if current == nil {
				continue
			}
			if detail = cleanDetail(detail); detail != "" {
				current.details = append(current.details, detail)
			}
			continue
		}
		if isHeader(trimmed) {
			current = &block{
				rawHeader: trimmed,
				header:    renderBlockHeader(trimmed, sc),
			}
			blocks = append(blocks, current)
		}
	}

	var items []string
	for _, b := range blocks {
		if len(b.details) == 0 || !criteria.Matches(b.rawHeader, c) {
			continue
		}
		items = append(items, FormatBlock(b.header, b.details))
	}
	return items
}

// renderBlockHeader strips glyphs and trailing colon and remaps the category name.
func renderBlockHeader(line string, sc SectionConfig) string {
	cleaned := strings.TrimSpace(strings.TrimSuffix(report.StripStatusGlyphs(line, sc.glyphs()), ":"))
	idx := strings.Index(cleaned, "(")
	if idx < 0 {
		return sc.DisplayName(cleaned)
	}
	name := strings.TrimSpace(cleaned[:idx])
	return sc.DisplayName(name) + " " + cleaned[idx:]
}

// FormatBlock renders a category header followed by one "- detail" line per detail.
func FormatBlock(header string, details []string) string {
	var sb strings.Builder
	sb.WriteString(header)
	for _, d := range details {
		sb.WriteString("\n- ")
		sb.WriteString(d)
	}
	return sb.String()
}

// SplitBlock is the inverse of FormatBlock.
func SplitBlock(item string) (header string, details []string) {
	lines := report.Lines(item)
	if len(lines) == 0 {
		return "", nil
	}
	header = strings.TrimSpace(lines[0])
	for _, l := range lines[1:] {
		if d, ok := report.BulletText(l); ok {
			details = append(details, d)
		} else if t := strings.TrimSpace(l); t != "" {
			details = append(details, t)
		}
	}
	return header, details
}
