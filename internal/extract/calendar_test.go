package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/retro/internal/criteria"
)

func TestCalendarSummary_ZeroReplacement(t *testing.T) {
	sc := SectionConfig{ZeroReplacements: map[string]string{"Reading Time": "No Reading Time"}}

	got := CalendarSummary("❌ Reading Time (0 events, 0 hours):", criteria.All(), sc)

	assert.Equal(t, []string{"No Reading Time"}, got)
}

func TestCalendarSummary(t *testing.T) {
	text := `✅ Workout Cal (2 events, 1.0 hours):
- Gym
❌ Art Time (0 events, 0 hours):
⚠️ Social Cal (1 event, 0.5 hours)
Random note`
	sc := SectionConfig{ZeroReplacements: map[string]string{"reading time": "No Reading Time"}}

	all := CalendarSummary(text, criteria.All(), sc)
	assert.Equal(t, []string{
		"Workout Cal (2 events, 1.0 hours)",
		"Art Time (0 events, 0 hours)",
		"Social Cal (1 event, 0.5 hours)",
	}, all)

	bad := CalendarSummary(text, criteria.IncludeList("❌", "⚠️"), sc)
	assert.Equal(t, []string{"Art Time (0 events, 0 hours)", "Social Cal (1 event, 0.5 hours)"}, bad)
}

func TestParseCalendarStat(t *testing.T) {
	stat, ok := ParseCalendarStat("Workout Cal (3 events, 2.5 hours total)")
	assert.False(t, ok, "rolled-up lines are not weekly stats")

	stat, ok = ParseCalendarStat("Workout Cal (3 events, 2.5 hours):")
	require.True(t, ok)
	assert.Equal(t, CalendarStat{Category: "Workout Cal", Events: 3, Hours: 2.5}, stat)

	_, ok = ParseCalendarStat("(3 events, 2 hours)")
	assert.False(t, ok)
}

func TestCalendarEvents(t *testing.T) {
	text := `- orphan bullet before any header
✅ Workout Cal (3 events, 2.5 hours):
- Gym (1h)
- Run on Mon @ 7:00
this line is ignored
- Yoga - 45 min
❌ Social Cal (1 events, 2 hours):
- Dinner with Sam (19:00 - 21:00)
Header Without Glyph (2 events, 1 hours):
- stays with Social
✅ Empty Cal (0 events, 0 hours):`
	sc := SectionConfig{NameMap: map[string]string{"Workout Cal": "Workouts"}}

	good := CalendarEvents(text, criteria.IncludeList("✅"), sc)
	assert.Equal(t, []string{"Workouts (3 events, 2.5 hours)\n- Gym\n- Run on Mon\n- Yoga"}, good)

	bad := CalendarEvents(text, criteria.IncludeList("❌"), sc)
	assert.Equal(t, []string{"Social Cal (1 events, 2 hours)\n- Dinner with Sam\n- stays with Social"}, bad)
}

func TestStripTimeAnnotation(t *testing.T) {
	tests := map[string]string{
		"Gym (1h)":                  "Gym",
		"Gym (1.5 hours)":           "Gym",
		"Dinner (19:00 - 21:00)":    "Dinner",
		"Brunch (11am-1pm)":         "Brunch",
		"Run @ 7:00":                "Run",
		"Call at 3:30pm":            "Call",
		"Yoga - 45 min":             "Yoga",
		"Standup, 9:00-9:15":        "Standup",
		"Party for 2 (Sam, Alex)":   "Party for 2 (Sam, Alex)",
		"Chapter 3":                 "Chapter 3",
		"Dinner (2)":                "Dinner (2)",
		"Double (1h) (10:00-11:00)": "Double",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripTimeAnnotation(in), in)
	}
}
