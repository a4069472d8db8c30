package rollup

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/fyrsmithlabs/retro/internal/extract"
	"github.com/fyrsmithlabs/retro/internal/report"
)

// Options tunes a single Aggregate call.
type Options struct {
	// TotalWeeks overrides the week count used in "(K/N weeks)"; 0 means len(weeks).
	TotalWeeks int
	// ShowDetails reports whether detail lines are kept for a category.
	ShowDetails func(category string) bool
	// ZeroMarkers are extra "No X Time" style items to count per week.
	ZeroMarkers []string
	// StatusGlyphs are stripped when computing habit core phrases.
	StatusGlyphs []string
}

func (o Options) totalWeeks(weeks [][]string) int {
	if o.TotalWeeks > 0 {
		return o.TotalWeeks
	}
	return len(weeks)
}

func (o Options) showDetails(category string) bool {
	return o.ShowDetails != nil && o.ShowDetails(category)
}

func (o Options) glyphs() []string {
	if len(o.StatusGlyphs) > 0 {
		return o.StatusGlyphs
	}
	return report.DefaultStatusGlyphs
}

// Aggregate rolls up one section's weekly item lists according to kind.
func Aggregate(kind extract.Kind, weeks [][]string, opts Options) []string {
	switch kind {
	case extract.KindTrips, extract.KindEvents, extract.KindRocks:
		return Concatenate(weeks)
	case extract.KindHabits:
		return HabitFrequency(weeks, opts)
	case extract.KindCalendarSummary:
		return CalendarTotals(weeks, opts)
	case extract.KindCalendarEvents:
		return CalendarEventTotals(weeks, opts)
	case extract.KindTasks:
		return TaskTotals(weeks, opts)
	default:
		return JoinLines(weeks)
	}
}

// Concatenate joins every non-empty item of the month into a single
// comma-separated entry.
func Concatenate(weeks [][]string) []string {
	var items []string
	for _, week := range weeks {
		for _, item := range week {
			if item = normalizeListItem(item); item != "" {
				items = append(items, item)
			}
		}
	}
	if len(items) == 0 {
		return []string{}
	}
	return []string{strings.Join(items, ", ")}
}

func normalizeListItem(s string) string {
	return strings.Trim(strings.TrimSpace(s), ", ")
}

// JoinLines joins every item of the month with newlines.
func JoinLines(weeks [][]string) []string {
	var items []string
	for _, week := range weeks {
		for _, item := range week {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
	}
	if len(items) == 0 {
		return []string{}
	}
	return []string{strings.Join(items, "\n")}
}

// HabitCore returns the grouping key of a habit line: the text before the
// first parenthesis with leading status glyphs removed. Nil glyphs means
// report.DefaultStatusGlyphs.
func HabitCore(item string, glyphs []string) string {
	if len(glyphs) == 0 {
		glyphs = report.DefaultStatusGlyphs
	}
	core := report.StripStatusGlyphs(item, glyphs)
	if idx := strings.Index(core, "("); idx >= 0 {
		core = core[:idx]
	}
	return strings.TrimSpace(core)
}

// HabitFrequency counts in how many weeks each habit core phrase appeared.
func HabitFrequency(weeks [][]string, opts Options) []string {
	total := opts.totalWeeks(weeks)
	counts := make(map[string]int)
	var order []string

	for _, week := range weeks {
		seen := make(map[string]bool)
		for _, item := range week {
			core := HabitCore(item, opts.glyphs())
			if core == "" || seen[core] {
				continue
			}
			seen[core] = true
			if _, ok := counts[core]; !ok {
				order = append(order, core)
			}
			counts[core]++
		}
	}

	out := make([]string, 0, len(order))
	for _, core := range order {
		out = append(out, core+" ("+strconv.Itoa(counts[core])+"/"+strconv.Itoa(total)+" weeks)")
	}
	return out
}

var zeroMarkerPattern = regexp.MustCompile(`^No\s+.+\s+Time$`)

type calendarTotal struct {
	events  int
	hours   float64
	details []string
}

// entry keeps first-seen ordering across the different kinds of lines.
type entry struct {
	kind string
	key  string
}

const (
	entryStat   = "stat"
	entryMarker = "marker"
	entryRaw    = "raw"
)

// CalendarTotals sums events and hours per category across weeks. Zero-stat
// markers ("No Reading Time") are counted per week; anything else passes
// through once.
func CalendarTotals(weeks [][]string, opts Options) []string {
	total := opts.totalWeeks(weeks)
	totals := make(map[string]*calendarTotal)
	markers := make(map[string]int)
	raw := make(map[string]bool)
	var order []entry

	for _, week := range weeks {
		markedThisWeek := make(map[string]bool)
		for _, item := range week {
			item = report.StripStatusGlyphs(item, opts.glyphs())
			if item == "" {
				continue
			}
			if isZeroMarker(item, opts.ZeroMarkers) {
				if markedThisWeek[item] {
					continue
				}
				markedThisWeek[item] = true
				if _, ok := markers[item]; !ok {
					order = append(order, entry{entryMarker, item})
				}
				markers[item]++
				continue
			}
			if stat, ok := extract.ParseCalendarStat(item); ok {
				t, ok := totals[stat.Category]
				if !ok {
					t = &calendarTotal{}
					totals[stat.Category] = t
					order = append(order, entry{entryStat, stat.Category})
				}
				t.events += stat.Events
				t.hours += stat.Hours
				continue
			}
			if !raw[item] {
				raw[item] = true
				order = append(order, entry{entryRaw, item})
			}
		}
	}

	out := make([]string, 0, len(order))
	for _, e := range order {
		switch e.kind {
		case entryStat:
			out = append(out, formatCalendarTotal(e.key, totals[e.key]))
		case entryMarker:
			out = append(out, e.key+" ("+strconv.Itoa(markers[e.key])+"/"+strconv.Itoa(total)+" weeks)")
		default:
			out = append(out, e.key)
		}
	}
	return out
}

func isZeroMarker(item string, extra []string) bool {
	for _, m := range extra {
		if m != "" && item == m {
			return true
		}
	}
	return zeroMarkerPattern.MatchString(item)
}

// CalendarEventTotals sums category headers of calendar_events blocks and
// keeps their details when the category asks for it. Weekday annotations
// are dropped from details.
func CalendarEventTotals(weeks [][]string, opts Options) []string {
	totals := make(map[string]*calendarTotal)
	var order []string

	for _, week := range weeks {
		for _, item := range week {
			header, details := extract.SplitBlock(item)
			stat, ok := extract.ParseCalendarStat(report.StripStatusGlyphs(header, opts.glyphs()))
			if !ok {
				continue
			}
			t, ok := totals[stat.Category]
			if !ok {
				t = &calendarTotal{}
				totals[stat.Category] = t
				order = append(order, stat.Category)
			}
			t.events += stat.Events
			t.hours += stat.Hours
			for _, d := range details {
				if d = StripWeekdays(d); d != "" {
					t.details = append(t.details, d)
				}
			}
		}
	}

	out := make([]string, 0, len(order))
	for _, category := range order {
		t := totals[category]
		line := formatCalendarTotal(category, t)
		if opts.showDetails(category) && len(t.details) > 0 {
			line += "\n  " + strings.Join(t.details, ", ")
		}
		out = append(out, line)
	}
	return out
}

func formatCalendarTotal(category string, t *calendarTotal) string {
	return category + " (" + strconv.Itoa(t.events) + " events, " + FormatHours(t.hours) + " hours total)"
}

// FormatHours renders summed hours with at most two decimals and at least one.
func FormatHours(h float64) string {
	rounded := math.Round(h*100) / 100
	if rounded == math.Trunc(rounded) {
		return strconv.FormatFloat(rounded, 'f', 1, 64)
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

type taskTotal struct {
	done     int
	total    int
	hasTotal bool
	// open is the done count from weeks that reported no total.
	open    int
	details []string
}

// TaskTotals sums "Category (Done)" and "Category (Done/Total)" headers in
// first-seen order. Total is shown only if some week reported one.
func TaskTotals(weeks [][]string, opts Options) []string {
	totals := make(map[string]*taskTotal)
	var order []string

	for _, week := range weeks {
		for _, item := range week {
			header, details := extract.SplitBlock(item)
			tc, ok := extract.ParseTaskCount(report.StripStatusGlyphs(header, opts.glyphs()))
			if !ok {
				continue
			}
			t, ok := totals[tc.Category]
			if !ok {
				t = &taskTotal{}
				totals[tc.Category] = t
				order = append(order, tc.Category)
			}
			t.done += tc.Done
			if tc.HasTotal {
				t.total += tc.Total
				t.hasTotal = true
			} else {
				t.open += tc.Done
			}
			for _, d := range details {
				if d = strings.TrimSpace(d); d != "" {
					t.details = append(t.details, d)
				}
			}
		}
	}

	out := make([]string, 0, len(order))
	for _, category := range order {
		t := totals[category]
		// A week without a total counts its done tasks as its total, so the
		// monthly done never exceeds the monthly total.
		line := extract.TaskCount{Category: category, Done: t.done, Total: t.total + t.open, HasTotal: t.hasTotal}.String()
		if opts.showDetails(category) && len(t.details) > 0 {
			line += "\n  " + strings.Join(t.details, ", ")
		}
		out = append(out, line)
	}
	return out
}
