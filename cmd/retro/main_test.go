package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/retro/internal/extract"
)

const testTasks = `===== ROCKS =====
✅ Went well - Ship onboarding flow
❌ Went bad - Fix flaky CI
`

const testCalendar = `===== TRIPS =====
Trip - Lisbon
`

// testEnv writes a private config pointing the store into a temp dir.
func testEnv(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("store:\n  path: %s\nlog:\n  level: error\n", filepath.Join(dir, "retro.db"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	return dir, cfgPath
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
		assert.NotEmpty(t, c.Short, c.Name())
		assert.NotEmpty(t, c.Long, c.Name())
	}
	for _, want := range []string{"weekly", "monthly", "habits", "sections"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestWeekly_Text(t *testing.T) {
	dir, cfg := testEnv(t)
	tasks := writeFile(t, dir, "tasks.txt", testTasks)
	cal := writeFile(t, dir, "cal.txt", testCalendar)

	out, err := execute(t, "", "weekly", "--config", cfg, "--week", "2026-10-05", "--tasks", tasks, "--calendar", cal)
	require.NoError(t, err)

	assert.Contains(t, out, "Weekly retro 2026-10-05 (good)")
	assert.Contains(t, out, "Weekly retro 2026-10-05 (bad)")
	assert.Contains(t, out, "  Lisbon\n")
	assert.Contains(t, out, "  Ship onboarding flow\n")
	assert.Contains(t, out, "  Fix flaky CI went bad\n")
}

func TestWeekly_StdinAndSingleMode(t *testing.T) {
	_, cfg := testEnv(t)

	out, err := execute(t, testTasks, "weekly", "--config", cfg, "--tasks", "-", "--mode", "bad", "--format", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "# Weekly retro (bad)")
	assert.Contains(t, out, "- Fix flaky CI went bad")
	assert.NotContains(t, out, "(good)")
}

func TestWeekly_Errors(t *testing.T) {
	dir, cfg := testEnv(t)
	tasks := writeFile(t, dir, "tasks.txt", testTasks)
	blank := writeFile(t, dir, "blank.txt", "\n\n")

	tests := []struct {
		name string
		args []string
	}{
		{"no inputs", []string{"weekly", "--config", cfg}},
		{"blank inputs", []string{"weekly", "--config", cfg, "--tasks", blank}},
		{"missing file", []string{"weekly", "--config", cfg, "--tasks", filepath.Join(dir, "nope.txt")}},
		{"save without week", []string{"weekly", "--config", cfg, "--tasks", tasks, "--save"}},
		{"bad mode", []string{"weekly", "--config", cfg, "--tasks", tasks, "--mode", "meh"}},
		{"bad format", []string{"weekly", "--config", cfg, "--tasks", tasks, "--format", "xml"}},
		{"watch stdin", []string{"weekly", "--config", cfg, "--tasks", "-", "--watch"}},
		{"forget without week", []string{"weekly", "--config", cfg, "--forget"}},
		{"forget with save", []string{"weekly", "--config", cfg, "--week", "2026-10-05", "--tasks", tasks, "--save", "--forget"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, testTasks, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestWeeklySaveThenMonthly(t *testing.T) {
	dir, cfg := testEnv(t)
	tasks := writeFile(t, dir, "tasks.txt", testTasks)
	cal1 := writeFile(t, dir, "cal1.txt", testCalendar)
	cal2 := writeFile(t, dir, "cal2.txt", "===== TRIPS =====\nTrip - Porto\n")

	_, err := execute(t, "", "weekly", "--config", cfg, "--week", "2026-10-05", "--tasks", tasks, "--calendar", cal1, "--save")
	require.NoError(t, err)
	_, err = execute(t, "", "weekly", "--config", cfg, "--week", "2026-10-12", "--calendar", cal2, "--save")
	require.NoError(t, err)

	out, err := execute(t, "", "monthly", "--config", cfg, "--month", "2026-10", "--mode", "good", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Kind     string       `json:"kind"`
		Label    string       `json:"label"`
		Mode     extract.Mode `json:"mode"`
		Sections []struct {
			Name  string   `json:"name"`
			Items []string `json:"items"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "monthly", doc.Kind)
	assert.Equal(t, "2026-10", doc.Label)
	assert.Equal(t, extract.ModeGood, doc.Mode)

	items := map[string][]string{}
	for _, s := range doc.Sections {
		items[s.Name] = s.Items
	}
	assert.Equal(t, []string{"Lisbon, Porto"}, items[extract.SectionTrips])
	assert.Equal(t, []string{"Ship onboarding flow"}, items[extract.SectionRocks])
}

func TestWeeklyForget(t *testing.T) {
	dir, cfg := testEnv(t)
	cal := writeFile(t, dir, "cal.txt", testCalendar)

	_, err := execute(t, "", "weekly", "--config", cfg, "--week", "2026-10-05", "--calendar", cal, "--save")
	require.NoError(t, err)

	out, err := execute(t, "", "weekly", "--config", cfg, "--week", "2026-10-05", "--forget")
	require.NoError(t, err)
	assert.Contains(t, out, "Forgot week 2026-10-05")

	_, err = execute(t, "", "monthly", "--config", cfg, "--month", "2026-10")
	assert.Error(t, err, "no saved weeks left")
}

func TestMonthly_Errors(t *testing.T) {
	_, cfg := testEnv(t)

	_, err := execute(t, "", "monthly", "--config", cfg, "--month", "2026-09")
	assert.Error(t, err, "no saved weeks")

	_, err = execute(t, "", "monthly", "--config", cfg, "--month", "Sept")
	assert.Error(t, err)

	_, err = execute(t, "", "monthly", "--config", cfg, "--month", "2026-09", "--mode", "meh")
	assert.Error(t, err)

	_, err = execute(t, "", "monthly", "--config", cfg)
	assert.Error(t, err, "--month is required")
}

func TestHabits(t *testing.T) {
	_, cfg := testEnv(t)

	out, err := execute(t, "🛌 22 early wake ups\n🍺 15 sober days\n", "habits", "--config", cfg, "--weeks", "4")
	require.NoError(t, err)

	assert.Contains(t, out, "Habits (4 weeks)")
	assert.Contains(t, out, "Went well")
	assert.Contains(t, out, "✅ 🛌 Good sleeping habits (22 early wake ups)")
	assert.Contains(t, out, "Didn't go so well")
	assert.Contains(t, out, "❌ 🍺 Bad sobriety habits (15 sober days)")
}

func TestHabits_BlankInput(t *testing.T) {
	_, cfg := testEnv(t)
	_, err := execute(t, "   ", "habits", "--config", cfg)
	assert.Error(t, err)
}

func TestSections(t *testing.T) {
	dir, _ := testEnv(t)
	p := writeFile(t, dir, "tasks.txt", "preamble\n"+testTasks+"\n===== HABITS =====\n✅ Slept well\n")

	out, err := execute(t, "", "sections", p)
	require.NoError(t, err)

	assert.Contains(t, out, "SECTION")
	assert.Regexp(t, `ROCKS\s+2\n`, out)
	assert.Regexp(t, `HABITS\s+1\n`, out)
	assert.NotContains(t, out, "preamble")
}

func TestSections_None(t *testing.T) {
	out, err := execute(t, "just text", "sections", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "No sections found.")
}

func TestParseModes(t *testing.T) {
	modes, err := parseModes("both")
	require.NoError(t, err)
	assert.Equal(t, extract.Modes, modes)

	modes, err = parseModes("good")
	require.NoError(t, err)
	assert.Equal(t, []extract.Mode{extract.ModeGood}, modes)

	_, err = parseModes("GOOD")
	assert.Error(t, err)
}
