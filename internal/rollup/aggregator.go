package rollup

import (
	"sort"
	"strings"

	"github.com/fyrsmithlabs/retro/internal/extract"
)

// Result is one month's rollup for one mode, in section order.
type Result struct {
	Mode     extract.Mode           `json:"mode"`
	Weeks    int                    `json:"weeks"`
	Sections []extract.SectionItems `json:"sections"`
}

// Items returns the rolled-up items of section name, or nil.
func (r Result) Items(name string) []string {
	for _, s := range r.Sections {
		if strings.EqualFold(s.Section, name) {
			return s.Items
		}
	}
	return nil
}

// Aggregator rolls weekly results up using the engine's section table.
type Aggregator struct {
	engine *extract.Engine
}

// NewAggregator returns an aggregator bound to engine's configuration.
func NewAggregator(engine *extract.Engine) *Aggregator {
	return &Aggregator{engine: engine}
}

// AggregateMonth folds the weekly results for mode into one monthly result.
// Every week counts towards "(K/N weeks)" even if it lacks a section.
func (a *Aggregator) AggregateMonth(mode extract.Mode, weeks []extract.Result) Result {
	res := Result{Mode: mode, Weeks: len(weeks), Sections: []extract.SectionItems{}}
	for _, name := range a.engine.Order() {
		sc, ok := a.engine.Section(name)
		if !ok || !sc.Enabled(mode) || !sc.Criterion(mode).IsSet() {
			continue
		}
		lists := make([][]string, len(weeks))
		for i, w := range weeks {
			lists[i] = w.Items(sc.Name)
		}
		items := Aggregate(sc.Kind, lists, optionsFor(sc, len(weeks)))
		res.Sections = append(res.Sections, extract.SectionItems{Section: sc.Name, Items: items})
	}
	return res
}

func optionsFor(sc extract.SectionConfig, totalWeeks int) Options {
	markers := make([]string, 0, len(sc.ZeroReplacements))
	for _, v := range sc.ZeroReplacements {
		markers = append(markers, v)
	}
	sort.Strings(markers)
	return Options{
		TotalWeeks:   totalWeeks,
		ShowDetails:  sc.ShowsDetails,
		ZeroMarkers:  markers,
		StatusGlyphs: sc.StatusGlyphs,
	}
}
