// Package habits classifies a month of cumulative habit numbers into good
// and bad lines.
//
// Simple rules (sleep, sobriety, workouts, body weight) pull one number out
// of the text with a regular expression and compare it against either
// per-week thresholds scaled by the week count, or absolute thresholds with
// a direction. The hobby rule combines four day counts into one score that
// is always compared against absolute thresholds.
package habits

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidRule is returned by Compile when a rule cannot be used.
var ErrInvalidRule = errors.New("invalid habit rule")

// Threshold modes.
const (
	ThresholdPerWeek  = "per_week"
	ThresholdAbsolute = "absolute"
)

// Comparison operators. OpAtMost means lower is better.
const (
	OpAtLeast = ">="
	OpAtMost  = "<="
)

// Rule is a simple single-value habit rule.
type Rule struct {
	Name        string `koanf:"name" json:"name"`
	Icon        string `koanf:"icon" json:"icon,omitempty"`
	Description string `koanf:"description" json:"description"`
	// Pattern must capture the value in group 1.
	Pattern string `koanf:"pattern" json:"pattern"`

	Threshold       string  `koanf:"threshold" json:"threshold"`
	Operator        string  `koanf:"operator" json:"operator,omitempty"`
	GoodPerWeek     float64 `koanf:"good_per_week" json:"good_per_week,omitempty"`
	WarningPerWeek  float64 `koanf:"warning_per_week" json:"warning_per_week,omitempty"`
	GoodAbsolute    float64 `koanf:"good_absolute" json:"good_absolute,omitempty"`
	WarningAbsolute float64 `koanf:"warning_absolute" json:"warning_absolute,omitempty"`
}

// HobbyPatterns are the independent per-counter patterns. Each captures its
// day count in group 1.
type HobbyPatterns struct {
	Reading string `koanf:"reading" json:"reading,omitempty"`
	Art     string `koanf:"art" json:"art,omitempty"`
	Coding  string `koanf:"coding" json:"coding,omitempty"`
	Gaming  string `koanf:"gaming" json:"gaming,omitempty"`
}

func (p HobbyPatterns) empty() bool {
	return p.Reading == "" && p.Art == "" && p.Coding == "" && p.Gaming == ""
}

// HobbyRule is the composite reading + art + coding - gaming score.
type HobbyRule struct {
	Icon        string `koanf:"icon" json:"icon,omitempty"`
	Description string `koanf:"description" json:"description"`
	// Pattern is the combined form with named groups reading, art, coding
	// and gaming. It takes precedence over Patterns.
	Pattern  string        `koanf:"pattern" json:"pattern,omitempty"`
	Patterns HobbyPatterns `koanf:"patterns" json:"patterns,omitempty"`

	GoodAbsolute    float64 `koanf:"good_absolute" json:"good_absolute"`
	WarningAbsolute float64 `koanf:"warning_absolute" json:"warning_absolute"`
}

// Rules is the full habit rule set.
type Rules struct {
	Simple []Rule     `koanf:"rules" json:"rules"`
	Hobby  *HobbyRule `koanf:"hobby" json:"hobby,omitempty"`
}

// Hobby counter group names.
const (
	groupReading = "reading"
	groupArt     = "art"
	groupCoding  = "coding"
	groupGaming  = "gaming"
)

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

type compiledHobby struct {
	HobbyRule
	combined    *regexp.Regexp
	independent map[string]*regexp.Regexp
}

// Compile validates every rule and compiles its patterns.
func (r Rules) Compile() (*Evaluator, error) {
	ev := &Evaluator{}
	for i, rule := range r.Simple {
		name := rule.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if rule.Pattern == "" {
			return nil, fmt.Errorf("%w: rule %s: pattern required", ErrInvalidRule, name)
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %s: %v", ErrInvalidRule, name, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("%w: rule %s: pattern needs a capture group", ErrInvalidRule, name)
		}
		switch rule.Threshold {
		case "", ThresholdPerWeek:
			rule.Threshold = ThresholdPerWeek
		case ThresholdAbsolute:
		default:
			return nil, fmt.Errorf("%w: rule %s: unknown threshold %q", ErrInvalidRule, name, rule.Threshold)
		}
		switch rule.Operator {
		case "":
			rule.Operator = OpAtLeast
		case OpAtLeast, OpAtMost:
		default:
			return nil, fmt.Errorf("%w: rule %s: unknown operator %q", ErrInvalidRule, name, rule.Operator)
		}
		ev.rules = append(ev.rules, compiledRule{Rule: rule, re: re})
	}

	if r.Hobby != nil {
		h, err := compileHobby(*r.Hobby)
		if err != nil {
			return nil, err
		}
		ev.hobby = h
	}
	return ev, nil
}

func compileHobby(h HobbyRule) (*compiledHobby, error) {
	out := &compiledHobby{HobbyRule: h}
	if h.Pattern != "" {
		re, err := regexp.Compile(h.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: hobby: %v", ErrInvalidRule, err)
		}
		for _, g := range []string{groupReading, groupArt, groupCoding, groupGaming} {
			if re.SubexpIndex(g) < 0 {
				return nil, fmt.Errorf("%w: hobby: pattern missing group %q", ErrInvalidRule, g)
			}
		}
		out.combined = re
		return out, nil
	}
	if h.Patterns.empty() {
		return nil, fmt.Errorf("%w: hobby: pattern or patterns required", ErrInvalidRule)
	}

	out.independent = make(map[string]*regexp.Regexp)
	for group, pattern := range map[string]string{
		groupReading: h.Patterns.Reading,
		groupArt:     h.Patterns.Art,
		groupCoding:  h.Patterns.Coding,
		groupGaming:  h.Patterns.Gaming,
	} {
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: hobby %s: %v", ErrInvalidRule, group, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("%w: hobby %s: pattern needs a capture group", ErrInvalidRule, group)
		}
		out.independent[group] = re
	}
	return out, nil
}
