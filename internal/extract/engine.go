package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/retro/internal/criteria"
	"github.com/fyrsmithlabs/retro/internal/report"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid extraction config")

// Extractor turns one located section body into items.
type Extractor func(text string, c criteria.Criterion, sc SectionConfig) []string

var extractors = map[Kind]Extractor{
	KindTrips:           EventList,
	KindEvents:          EventList,
	KindRocks:           Rocks,
	KindHabits:          Habits,
	KindCalendarSummary: CalendarSummary,
	KindCalendarEvents:  CalendarEvents,
	KindTasks:           Tasks,
}

// ExtractorFor returns the extractor registered for kind.
func ExtractorFor(kind Kind) (Extractor, bool) {
	fn, ok := extractors[kind]
	return fn, ok
}

// Validate checks kinds, sources, criteria and name uniqueness.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("%w: section %d has no name", ErrInvalidConfig, i)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("%w: duplicate section %q", ErrInvalidConfig, name)
		}
		seen[key] = true

		if _, ok := ExtractorFor(s.Kind); !ok {
			return fmt.Errorf("%w: section %q has unknown kind %q", ErrInvalidConfig, name, s.Kind)
		}
		switch s.Source {
		case "", SourceTasks, SourceCalendar:
		default:
			return fmt.Errorf("%w: section %q has unknown source %q", ErrInvalidConfig, name, s.Source)
		}
		if _, err := criteria.Parse(s.Good.Kind, s.Good.Terms); err != nil {
			return fmt.Errorf("%w: section %q good criterion: %v", ErrInvalidConfig, name, err)
		}
		if _, err := criteria.Parse(s.Bad.Kind, s.Bad.Terms); err != nil {
			return fmt.Errorf("%w: section %q bad criterion: %v", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

// Engine is the weekly extraction facade. It is immutable after
// construction and safe for concurrent use.
type Engine struct {
	cfg      Config
	order    []string
	sections map[string]SectionConfig
}

// NewEngine validates cfg and builds an engine over a private copy of it.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cloneConfig(cfg),
		sections: make(map[string]SectionConfig, len(cfg.Sections)),
	}
	for _, s := range e.cfg.Sections {
		if len(s.StatusGlyphs) == 0 && len(e.cfg.StatusGlyphs) > 0 {
			s.StatusGlyphs = e.cfg.StatusGlyphs
		}
		e.sections[strings.ToLower(s.Name)] = s
	}

	seen := make(map[string]bool)
	for _, name := range e.cfg.SectionOrder() {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		e.order = append(e.order, name)
	}
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return cloneConfig(e.cfg)
}

// Section returns the configuration of a named section.
func (e *Engine) Section(name string) (SectionConfig, bool) {
	s, ok := e.sections[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Order returns the effective section order.
func (e *Engine) Order() []string {
	return append([]string(nil), e.order...)
}

// ExtractWeek extracts every section enabled for mode from one week's task
// and calendar text. Sections without configuration, disabled for mode, or
// without a criterion for mode are left out. The result follows the
// configured order.
func (e *Engine) ExtractWeek(taskText, calText string, mode Mode) Result {
	res := Result{Mode: mode, Sections: []SectionItems{}}
	for _, name := range e.order {
		items, ok := e.ExtractSection(name, taskText, calText, mode)
		if !ok {
			continue
		}
		sc, _ := e.Section(name)
		res.Sections = append(res.Sections, SectionItems{Section: sc.Name, Items: items})
	}
	return res
}

// ExtractSection extracts a single section. ok is false when the section is
// excluded for mode.
func (e *Engine) ExtractSection(name, taskText, calText string, mode Mode) (items []string, ok bool) {
	sc, found := e.Section(name)
	if !found || !sc.Enabled(mode) {
		return nil, false
	}
	c := sc.Criterion(mode)
	if !c.IsSet() {
		return nil, false
	}
	fn, found := ExtractorFor(sc.Kind)
	if !found {
		return nil, false
	}

	body := locateForSource(sc, taskText, calText)
	items = fn(body, c, sc)
	if items == nil {
		items = []string{}
	}
	return items, true
}

func locateForSource(sc SectionConfig, taskText, calText string) string {
	switch sc.Source {
	case SourceTasks:
		return report.Locate(taskText, sc.Name)
	case SourceCalendar:
		return report.Locate(calText, sc.Name)
	default:
		if body := report.Locate(taskText, sc.Name); body != "" {
			return body
		}
		return report.Locate(calText, sc.Name)
	}
}

func cloneConfig(c Config) Config {
	out := Config{
		Order:        append([]string(nil), c.Order...),
		StatusGlyphs: append([]string(nil), c.StatusGlyphs...),
		Sections:     make([]SectionConfig, len(c.Sections)),
	}
	for i, s := range c.Sections {
		s.Good.Terms = append([]string(nil), s.Good.Terms...)
		s.Bad.Terms = append([]string(nil), s.Bad.Terms...)
		s.StatusGlyphs = append([]string(nil), s.StatusGlyphs...)
		s.NameMap = cloneMap(s.NameMap)
		s.ZeroReplacements = cloneMap(s.ZeroReplacements)
		if s.ShowDetails != nil {
			details := make(map[string]bool, len(s.ShowDetails))
			for k, v := range s.ShowDetails {
				details[k] = v
			}
			s.ShowDetails = details
		}
		out.Sections[i] = s
	}
	return out
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
