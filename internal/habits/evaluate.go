package habits

import (
	"strconv"
	"strings"
)

// Status is the classification of one rule.
type Status int

const (
	StatusBad Status = iota
	StatusWarning
	StatusGood
)

func (s Status) String() string {
	switch s {
	case StatusGood:
		return "good"
	case StatusWarning:
		return "warning"
	default:
		return "bad"
	}
}

// Glyph returns the status glyph printed in front of a line.
func (s Status) Glyph() string {
	switch s {
	case StatusGood:
		return "✅"
	case StatusWarning:
		return "⚠️"
	default:
		return "❌"
	}
}

// Label returns the human wording for the status.
func (s Status) Label() string {
	switch s {
	case StatusGood:
		return "Good"
	case StatusWarning:
		return "Not great"
	default:
		return "Bad"
	}
}

// Evaluation is the outcome of one matched rule.
type Evaluation struct {
	Rule   string  `json:"rule"`
	Status Status  `json:"status"`
	Value  float64 `json:"value"`
	Line   string  `json:"line"`
}

// Result splits evaluated lines into good and bad. Warnings land in Bad.
type Result struct {
	Good        []string     `json:"good"`
	Bad         []string     `json:"bad"`
	Evaluations []Evaluation `json:"-"`
}

// HobbyRuleName names the composite rule in evaluations.
const HobbyRuleName = "hobby"

// Evaluator applies a compiled rule set. It is immutable and safe for
// concurrent use.
type Evaluator struct {
	rules []compiledRule
	hobby *compiledHobby
}

// Evaluate compiles rules and evaluates text. Invalid rules yield an empty
// result; use Rules.Compile to surface the error.
func Evaluate(text string, weekCount int, rules Rules) Result {
	ev, err := rules.Compile()
	if err != nil {
		return Result{Good: []string{}, Bad: []string{}}
	}
	return ev.Evaluate(text, weekCount)
}

// Evaluate classifies every rule that matches text. A week count below one
// is treated as one.
func (e *Evaluator) Evaluate(text string, weekCount int) Result {
	if weekCount < 1 {
		weekCount = 1
	}
	res := Result{Good: []string{}, Bad: []string{}}

	for _, r := range e.rules {
		value, detail, ok := matchValue(r, text)
		if !ok {
			continue
		}
		res.add(Evaluation{
			Rule:   r.Name,
			Status: r.classify(value, weekCount),
			Value:  value,
		}, r.Icon, r.Description, detail)
	}

	if e.hobby != nil {
		if score, detail, ok := e.hobby.score(text); ok {
			res.add(Evaluation{
				Rule:   HobbyRuleName,
				Status: e.hobby.classify(score),
				Value:  score,
			}, e.hobby.Icon, e.hobby.Description, detail)
		}
	}
	return res
}

func (r *Result) add(ev Evaluation, icon, description, detail string) {
	ev.Line = formatLine(ev.Status, icon, description, detail)
	if ev.Status == StatusGood {
		r.Good = append(r.Good, ev.Line)
	} else {
		r.Bad = append(r.Bad, ev.Line)
	}
	r.Evaluations = append(r.Evaluations, ev)
}

func formatLine(s Status, icon, description, detail string) string {
	parts := []string{s.Glyph()}
	if icon != "" {
		parts = append(parts, icon)
	}
	parts = append(parts, s.Label())
	if description != "" {
		parts = append(parts, description)
	}
	line := strings.Join(parts, " ")
	if detail != "" {
		line += " (" + detail + ")"
	}
	return line
}

func matchValue(r compiledRule, text string) (float64, string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
	if err != nil {
		return 0, "", false
	}
	return v, collapse(m[0]), true
}

func (r compiledRule) classify(v float64, weeks int) Status {
	good, warning := r.GoodAbsolute, r.WarningAbsolute
	if r.Threshold != ThresholdAbsolute {
		w := float64(weeks)
		good, warning = r.GoodPerWeek*w, r.WarningPerWeek*w
	}

	if r.Operator == OpAtMost {
		switch {
		case v <= good:
			return StatusGood
		case v <= warning:
			return StatusWarning
		default:
			return StatusBad
		}
	}
	switch {
	case v >= good:
		return StatusGood
	case v >= warning:
		return StatusWarning
	default:
		return StatusBad
	}
}

// score computes reading + art + coding - gaming. ok is false when nothing
// matched.
func (h *compiledHobby) score(text string) (float64, string, bool) {
	counts := make(map[string]float64, 4)

	var detail string
	if h.combined != nil {
		m := h.combined.FindStringSubmatch(text)
		if m == nil {
			return 0, "", false
		}
		for _, g := range []string{groupReading, groupArt, groupCoding, groupGaming} {
			v, err := strconv.ParseFloat(strings.TrimSpace(m[h.combined.SubexpIndex(g)]), 64)
			if err != nil {
				return 0, "", false
			}
			counts[g] = v
		}
		detail = collapse(m[0])
	} else {
		var details []string
		for _, g := range []string{groupReading, groupArt, groupCoding, groupGaming} {
			re, ok := h.independent[g]
			if !ok {
				continue
			}
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
			if err != nil {
				continue
			}
			counts[g] = v
			details = append(details, collapse(m[0]))
		}
		if len(details) == 0 {
			return 0, "", false
		}
		detail = strings.Join(details, ", ")
	}

	return counts[groupReading] + counts[groupArt] + counts[groupCoding] - counts[groupGaming], detail, true
}

// classify uses a strict comparison for the good tier.
func (h *compiledHobby) classify(score float64) Status {
	switch {
	case score > h.GoodAbsolute:
		return StatusGood
	case score >= h.WarningAbsolute:
		return StatusWarning
	default:
		return StatusBad
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
