// Package render turns weekly, monthly and habit results into text,
// markdown, JSON or styled terminal output.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fyrsmithlabs/retro/internal/extract"
	"github.com/fyrsmithlabs/retro/internal/habits"
)

// ErrUnknownFormat is returned by Render for an unsupported format.
var ErrUnknownFormat = errors.New("unknown output format")

// Document kinds.
const (
	KindWeekly  = "weekly"
	KindMonthly = "monthly"
	KindHabits  = "habits"
)

// DefaultEmptyMessage is shown for an always-shown section without its own message.
const DefaultEmptyMessage = "Nothing to report"

// Section is one rendered block.
type Section struct {
	Name  string   `json:"name"`
	Title string   `json:"title"`
	Items []string `json:"items"`
	// Text is the section body as stored externally: one item per line, or
	// the empty message, truncated to the configured maximum.
	Text  string `json:"text"`
	Empty bool   `json:"empty,omitempty"`
}

// Document is a full report ready for output.
type Document struct {
	Kind     string       `json:"kind"`
	Label    string       `json:"label"`
	Mode     extract.Mode `json:"mode,omitempty"`
	RunID    string       `json:"run_id,omitempty"`
	Sections []Section    `json:"sections"`
}

// Heading returns the document heading, e.g. "Weekly retro 2026-10-05 (good)".
func (d Document) Heading() string {
	var title string
	switch d.Kind {
	case KindWeekly:
		title = "Weekly retro"
	case KindMonthly:
		title = "Monthly retro"
	case KindHabits:
		title = "Habits"
	default:
		title = "Retro"
	}
	if d.Label != "" {
		title += " " + d.Label
	}
	if d.Mode != "" {
		title += " (" + string(d.Mode) + ")"
	}
	return title
}

// Options controls section assembly.
type Options struct {
	// MaxLength caps Section.Text in runes. 0 means unlimited.
	MaxLength int
}

// SectionLookup resolves section configuration by name. Both extract.Config
// and *extract.Engine satisfy it.
type SectionLookup interface {
	Section(name string) (extract.SectionConfig, bool)
}

// Build assembles rendered sections for mode. A section without items is
// kept, showing its empty message, only when it is configured to always
// show in mode.
func Build(lookup SectionLookup, mode extract.Mode, items []extract.SectionItems, opts Options) []Section {
	out := make([]Section, 0, len(items))
	for _, si := range items {
		sc, ok := lookup.Section(si.Section)
		if !ok {
			continue
		}
		sec := Section{Name: sc.Name, Title: sc.DisplayTitle(), Items: si.Items}
		if len(si.Items) == 0 {
			if !sc.AlwaysShowWhenEmpty(mode) {
				continue
			}
			sec.Items = []string{}
			sec.Empty = true
			sec.Text = sc.EmptyMessage
			if sec.Text == "" {
				sec.Text = DefaultEmptyMessage
			}
		} else {
			sec.Text = strings.Join(si.Items, "\n")
		}
		sec.Text = Truncate(sec.Text, opts.MaxLength)
		out = append(out, sec)
	}
	return out
}

// Habit section names.
const (
	HabitsGood = "Went well"
	HabitsBad  = "Didn't go so well"
)

// HabitSections renders a habit evaluation as two sections. Empty halves
// are left out.
func HabitSections(res habits.Result, opts Options) []Section {
	var out []Section
	for _, part := range []struct {
		name  string
		lines []string
	}{
		{HabitsGood, res.Good},
		{HabitsBad, res.Bad},
	} {
		if len(part.lines) == 0 {
			continue
		}
		out = append(out, Section{
			Name:  part.name,
			Title: part.name,
			Items: part.lines,
			Text:  Truncate(strings.Join(part.lines, "\n"), opts.MaxLength),
		})
	}
	return out
}

// Truncate shortens s to at most max runes, ending in "…" when cut.
// max <= 0 disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// Render writes doc to w in format: text, markdown, json or pretty.
func Render(w io.Writer, format string, doc Document) error {
	switch format {
	case "", "text":
		return Text(w, doc)
	case "markdown", "md":
		return Markdown(w, doc)
	case "json":
		return JSON(w, doc)
	case "pretty":
		return Pretty(w, doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Text writes a plain text rendering with each section body indented.
func Text(w io.Writer, doc Document) error {
	var sb strings.Builder
	sb.WriteString(doc.Heading())
	sb.WriteString("\n")
	for _, s := range doc.Sections {
		sb.WriteString("\n")
		sb.WriteString(s.Title)
		sb.WriteString("\n")
		for _, line := range strings.Split(s.Text, "\n") {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Markdown writes one heading per section and one bullet per item.
func Markdown(w io.Writer, doc Document) error {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(doc.Heading())
	sb.WriteString("\n")
	for _, s := range doc.Sections {
		sb.WriteString("\n## ")
		sb.WriteString(s.Title)
		sb.WriteString("\n\n")
		if s.Empty {
			sb.WriteString("_")
			sb.WriteString(s.Text)
			sb.WriteString("_\n")
			continue
		}
		for _, line := range bulletLines(s.Text) {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// bulletLines turns a section body into markdown bullets. Lines produced by
// multi-line items ("- detail" or indented) nest under the previous bullet.
func bulletLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(out) > 0 && (strings.HasPrefix(line, " ") || strings.HasPrefix(trimmed, "- ")) {
			out = append(out, "  - "+strings.TrimPrefix(trimmed, "- "))
			continue
		}
		out = append(out, "- "+trimmed)
	}
	return out
}

// JSON writes doc as indented JSON.
func JSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}
