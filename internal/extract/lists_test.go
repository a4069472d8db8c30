package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/retro/internal/criteria"
)

func TestEventList(t *testing.T) {
	text := "Trip - Weekend in Lisbon\n\n- Flight - Back to NYC - late\nno separator here\n❌ Trip - Cancelled"

	got := EventList(text, criteria.ExcludeList("❌"), SectionConfig{})

	assert.Equal(t, []string{"Weekend in Lisbon", "Back to NYC - late", "no separator here"}, got)
}

func TestRocks_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		line string
		c    criteria.Criterion
		want []string
	}{
		{
			name: "good rock keeps bare title",
			line: "✅ Went well - Ship onboarding flow (launched Monday)",
			c:    criteria.IncludeList("✅", "Went well"),
			want: []string{"Ship onboarding flow"},
		},
		{
			name: "progress rock",
			line: "👾 Made progress - Learn Rust",
			c:    criteria.All(),
			want: []string{"Made progress on Learn Rust"},
		},
		{
			name: "bad rock",
			line: "❌ Went bad - Fix flaky CI",
			c:    criteria.All(),
			want: []string{"Fix flaky CI went bad"},
		},
		{
			name: "curly apostrophe",
			line: "⚠️ Didn’t go so well - Taxes",
			c:    criteria.All(),
			want: []string{"Taxes didn't go so well"},
		},
		{
			name: "criterion rejects",
			line: "❌ Went bad - Fix flaky CI",
			c:    criteria.IncludeList("✅"),
			want: nil,
		},
		{
			name: "empty title dropped",
			line: "✅ Went well - (nothing)",
			c:    criteria.All(),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rocks(tt.line, tt.c, SectionConfig{}))
		})
	}
}

func TestParseRock_HeuristicFallback(t *testing.T) {
	tests := []struct {
		line       string
		wantStatus RockStatus
		wantTitle  string
		wantPhrase string
	}{
		{"❌ Went badly - Launch party", RockWentBad, "Launch party", "Launch party went bad"},
		{"👾 Made some progress... made progress - Garden", RockMadeProgress, "Garden", "Made progress on Garden"},
		{"Garden plan made progress (slow)", RockMadeProgress, "Garden plan", "Made progress on Garden plan"},
		{"🤷 didnt go so well — Budget review", RockDidntGoWell, "Budget review", "Budget review didn't go so well"},
		{"✅ Marathon training", RockWentWell, "Marathon training", "Marathon training"},
		{"Fix CI - made progress", RockMadeProgress, "Fix CI", "Made progress on Fix CI"},
		{"🔴 Tax paperwork — went badly (forms late)", RockWentBad, "Tax paperwork", "Tax paperwork went bad"},
		{"Launch went badly", RockWentBad, "Launch", "Launch went bad"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			rock, ok := ParseRock(tt.line)
			assert.True(t, ok)
			assert.Equal(t, tt.wantStatus, rock.Status)
			assert.Equal(t, tt.wantTitle, rock.Title)
			assert.Equal(t, tt.wantPhrase, rock.Phrase())
		})
	}
}

func TestParseRock_KeepsTitlePunctuation(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"✅ Went well - $10k emergency fund", "$10k emergency fund"},
		{"✅ Went well - \"Deep Work\" reading sprint", "\"Deep Work\" reading sprint"},
		{"❌ Went bad - #1 priority: taxes", "#1 priority: taxes went bad"},
		{"- ✅ Went well - -5 lbs by June", "-5 lbs by June"},
		{"✅ $10k emergency fund", "$10k emergency fund"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			rock, ok := ParseRock(tt.line)
			assert.True(t, ok)
			assert.Equal(t, tt.want, rock.Phrase())
		})
	}
}

func TestParseRock_StrictKeepsNote(t *testing.T) {
	rock, ok := ParseRock("✅ Went well - Ship onboarding flow (launched Monday)")
	assert.True(t, ok)
	assert.Equal(t, RockWentWell, rock.Status)
	assert.Equal(t, "launched Monday", rock.Note)
}

func TestParseRock_Empty(t *testing.T) {
	for _, line := range []string{"", "✅", "👾 Made progress -", "✅ - "} {
		_, ok := ParseRock(line)
		assert.False(t, ok, line)
	}
}

func TestHabits(t *testing.T) {
	text := "✅ Good workout habits (3 workouts)\n❌ 🛌 Bad sleeping habits (1 early wake ups, 5 days sleeping in)\n\n- ✅ 🍺 Good sobriety habits (6 sober days)"

	good := Habits(text, criteria.IncludeList("✅"), SectionConfig{})
	bad := Habits(text, criteria.ExcludeList("✅"), SectionConfig{})

	assert.Equal(t, []string{"Good workout habits (3 workouts)", "🍺 Good sobriety habits (6 sober days)"}, good)
	assert.Equal(t, []string{"🛌 Bad sleeping habits (1 early wake ups, 5 days sleeping in)"}, bad)
}
