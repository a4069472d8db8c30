// Package criteria decides whether a retrospective item belongs in the
// "good" or "bad" view of a section.
package criteria

import (
	"fmt"
	"strings"
)

// Kind tags the variant held by a Criterion.
type Kind int

const (
	// KindUnset is the zero value. It never matches and marks a missing criterion.
	KindUnset Kind = iota
	// KindAll matches every item.
	KindAll
	// KindNone matches no item.
	KindNone
	// KindInclude matches items containing at least one term.
	KindInclude
	// KindExclude matches items containing none of the terms.
	KindExclude
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAll:
		return "all"
	case KindNone:
		return "none"
	case KindInclude:
		return "include"
	case KindExclude:
		return "exclude"
	default:
		return "unset"
	}
}

// Criterion is a closed union of All, None, IncludeList and ExcludeList.
// Construct values with the helpers below; the zero value is "unset".
type Criterion struct {
	kind  Kind
	terms []string
}

// All returns a criterion matching every item.
func All() Criterion { return Criterion{kind: KindAll} }

// None returns a criterion matching no item.
func None() Criterion { return Criterion{kind: KindNone} }

// IncludeList returns a criterion matching items that contain any of terms.
func IncludeList(terms ...string) Criterion {
	return Criterion{kind: KindInclude, terms: cloneTerms(terms)}
}

// ExcludeList returns a criterion matching items that contain none of terms.
func ExcludeList(terms ...string) Criterion {
	return Criterion{kind: KindExclude, terms: cloneTerms(terms)}
}

// Kind reports which variant c holds.
func (c Criterion) Kind() Kind { return c.kind }

// Terms returns a copy of the include/exclude terms.
func (c Criterion) Terms() []string { return cloneTerms(c.terms) }

// IsSet reports whether c was configured.
func (c Criterion) IsSet() bool { return c.kind != KindUnset }

// String renders c in configuration form, e.g. include[✅ Went well].
func (c Criterion) String() string {
	if len(c.terms) == 0 {
		return c.kind.String()
	}
	return fmt.Sprintf("%s[%s]", c.kind, strings.Join(c.terms, " "))
}

// Matches reports whether item satisfies c. Substring checks are
// case-sensitive because status glyphs are the distinguishing terms.
func Matches(item string, c Criterion) bool {
	switch c.kind {
	case KindAll:
		return true
	case KindNone:
		return false
	case KindInclude:
		for _, term := range c.terms {
			if strings.Contains(item, term) {
				return true
			}
		}
		return false
	case KindExclude:
		for _, term := range c.terms {
			if strings.Contains(item, term) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Parse builds a criterion from its configuration form. An empty kind
// yields the unset criterion.
func Parse(kind string, terms []string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "":
		return Criterion{}, nil
	case "all":
		return All(), nil
	case "none":
		return None(), nil
	case "include", "include_list":
		return IncludeList(terms...), nil
	case "exclude", "exclude_list", "not":
		return ExcludeList(terms...), nil
	default:
		return Criterion{}, fmt.Errorf("unknown criterion kind %q", kind)
	}
}

func cloneTerms(terms []string) []string {
	if len(terms) == 0 {
		return nil
	}
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
