// Package report locates named sections inside free-text weekly report blobs.
//
// A section is introduced by a header line of the form
//
//	===== SECTION NAME =====
//
// and runs until the next header line or the end of the blob. Header names
// compare case-insensitively. A missing section is an empty string, never
// an error.
package report

import (
	"regexp"
	"strings"
)

// headerPattern matches a section header line. Five or more equals signs are
// accepted on each side to tolerate sloppy upstream output.
var headerPattern = regexp.MustCompile(`^\s*={5,}\s*(.*?)\s*={5,}\s*$`)

// Section is one located region of a blob.
type Section struct {
	Name string
	Body string
}

// Locate returns the trimmed body of the named section, or "" when the blob
// has no such section. When a name appears more than once the last
// occurrence wins.
func Locate(blob, name string) string {
	want := strings.TrimSpace(name)
	if want == "" {
		return ""
	}

	body := ""
	for _, s := range Sections(blob) {
		if strings.EqualFold(s.Name, want) {
			body = s.Body
		}
	}
	return body
}

// Sections splits blob into its sections in encounter order. Text before the
// first header belongs to no section and is discarded.
func Sections(blob string) []Section {
	var (
		sections []Section
		current  *Section
		body     []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		sections = append(sections, *current)
	}

	for _, line := range Lines(blob) {
		if name, ok := HeaderName(line); ok {
			flush()
			current = &Section{Name: name}
			body = body[:0]
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

// HeaderName reports whether line is a section header and returns its name.
func HeaderName(line string) (string, bool) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Lines splits text on newlines, dropping carriage returns.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}
