package extract

import (
	"strings"

	"github.com/fyrsmithlabs/retro/internal/criteria"
	"github.com/fyrsmithlabs/retro/internal/report"
)

// Mode selects the good or bad view of a week.
type Mode string

const (
	// ModeGood collects items that went well.
	ModeGood Mode = "good"
	// ModeBad collects items that did not go well.
	ModeBad Mode = "bad"
)

// Modes lists both modes in output order.
var Modes = []Mode{ModeGood, ModeBad}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeGood || m == ModeBad
}

// Kind identifies the extractor for a section.
type Kind string

const (
	KindTrips           Kind = "trips"
	KindEvents          Kind = "events"
	KindRocks           Kind = "rocks"
	KindHabits          Kind = "habits"
	KindCalendarSummary Kind = "calendar_summary"
	KindCalendarEvents  Kind = "calendar_events"
	KindTasks           Kind = "tasks"
)

// Source names which weekly text a section lives in.
type Source string

const (
	SourceTasks    Source = "tasks"
	SourceCalendar Source = "calendar"
)

// CriterionSpec is the configuration form of a criteria.Criterion.
type CriterionSpec struct {
	Kind  string   `koanf:"kind" json:"kind,omitempty"`
	Terms []string `koanf:"terms" json:"terms,omitempty"`
}

// SectionConfig describes how one named section is extracted and shown.
type SectionConfig struct {
	Name   string `koanf:"name" json:"name"`
	Kind   Kind   `koanf:"kind" json:"kind"`
	Source Source `koanf:"source" json:"source"`

	Title        string `koanf:"title" json:"title,omitempty"`
	EmptyMessage string `koanf:"empty_message" json:"empty_message,omitempty"`

	IncludeInGood           bool `koanf:"include_in_good" json:"include_in_good"`
	IncludeInBad            bool `koanf:"include_in_bad" json:"include_in_bad"`
	AlwaysShowWhenEmptyGood bool `koanf:"always_show_when_empty_good" json:"always_show_when_empty_good"`
	AlwaysShowWhenEmptyBad  bool `koanf:"always_show_when_empty_bad" json:"always_show_when_empty_bad"`

	Good CriterionSpec `koanf:"good" json:"good"`
	Bad  CriterionSpec `koanf:"bad" json:"bad"`

	// NameMap renames categories for calendar_events and tasks sections.
	NameMap map[string]string `koanf:"name_map" json:"name_map,omitempty"`
	// ZeroReplacements swaps zero-stat calendar_summary lines for friendlier text.
	ZeroReplacements map[string]string `koanf:"zero_replacements" json:"zero_replacements,omitempty"`
	// ShowDetails keeps per-category detail lines in the monthly rollup.
	ShowDetails map[string]bool `koanf:"show_details" json:"show_details,omitempty"`

	StatusGlyphs []string `koanf:"status_glyphs" json:"status_glyphs,omitempty"`
}

// Enabled reports whether the section is extracted in mode m.
func (s SectionConfig) Enabled(m Mode) bool {
	switch m {
	case ModeGood:
		return s.IncludeInGood
	case ModeBad:
		return s.IncludeInBad
	default:
		return false
	}
}

// AlwaysShowWhenEmpty reports whether an empty section is still rendered in mode m.
func (s SectionConfig) AlwaysShowWhenEmpty(m Mode) bool {
	switch m {
	case ModeGood:
		return s.AlwaysShowWhenEmptyGood
	case ModeBad:
		return s.AlwaysShowWhenEmptyBad
	default:
		return false
	}
}

// Criterion returns the criterion for mode m. A missing or invalid spec
// yields the unset criterion.
func (s SectionConfig) Criterion(m Mode) criteria.Criterion {
	spec := s.Good
	if m == ModeBad {
		spec = s.Bad
	}
	c, err := criteria.Parse(spec.Kind, spec.Terms)
	if err != nil {
		return criteria.Criterion{}
	}
	return c
}

// DisplayName maps a raw category name through NameMap.
func (s SectionConfig) DisplayName(category string) string {
	if mapped, ok := lookupFold(s.NameMap, category); ok && mapped != "" {
		return mapped
	}
	return category
}

// ShowsDetails reports whether monthly output keeps details for category.
func (s SectionConfig) ShowsDetails(category string) bool {
	for k, v := range s.ShowDetails {
		if strings.EqualFold(k, category) {
			return v
		}
	}
	return false
}

// DisplayTitle returns Title, falling back to the section name.
func (s SectionConfig) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}

func (s SectionConfig) glyphs() []string {
	if len(s.StatusGlyphs) > 0 {
		return s.StatusGlyphs
	}
	return report.DefaultStatusGlyphs
}

// Config is the full, read-only extraction configuration.
type Config struct {
	// Order lists section names in output order. Empty means Sections order.
	Order    []string        `koanf:"order" json:"order,omitempty"`
	Sections []SectionConfig `koanf:"sections" json:"sections"`
	// StatusGlyphs applies to sections without their own list.
	StatusGlyphs []string `koanf:"status_glyphs" json:"status_glyphs,omitempty"`
}

// Section looks up a section by name, case-insensitively.
func (c Config) Section(name string) (SectionConfig, bool) {
	for _, s := range c.Sections {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return SectionConfig{}, false
}

// SectionOrder returns Order, or the configured section names when Order is empty.
func (c Config) SectionOrder() []string {
	if len(c.Order) > 0 {
		return append([]string(nil), c.Order...)
	}
	names := make([]string, 0, len(c.Sections))
	for _, s := range c.Sections {
		names = append(names, s.Name)
	}
	return names
}

// SectionItems pairs a section name with its extracted items.
type SectionItems struct {
	Section string   `json:"section"`
	Items   []string `json:"items"`
}

// Result is one week's extraction for one mode, in section order.
type Result struct {
	Mode     Mode           `json:"mode"`
	Sections []SectionItems `json:"sections"`
}

// Items returns the items recorded for section name, or nil.
func (r Result) Items(name string) []string {
	for _, s := range r.Sections {
		if strings.EqualFold(s.Section, name) {
			return s.Items
		}
	}
	return nil
}

// Has reports whether the section was extracted at all.
func (r Result) Has(name string) bool {
	for _, s := range r.Sections {
		if strings.EqualFold(s.Section, name) {
			return true
		}
	}
	return false
}

// Names returns section names in result order.
func (r Result) Names() []string {
	names := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		names[i] = s.Section
	}
	return names
}

// Count returns the number of items across all sections.
func (r Result) Count() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Items)
	}
	return n
}

func lookupFold(m map[string]string, key string) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}
