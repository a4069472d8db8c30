package extract

// Section names used by the default configuration.
const (
	SectionTrips           = "TRIPS"
	SectionEvents          = "EVENTS"
	SectionRocks           = "ROCKS"
	SectionHabits          = "HABITS"
	SectionCalendarSummary = "CALENDAR SUMMARY"
	SectionCalendarEvents  = "CALENDAR EVENTS"
	SectionTasks           = "TASKS"
)

// DefaultConfig returns the built-in section table.
func DefaultConfig() Config {
	return Config{
		Order: []string{
			SectionTrips,
			SectionEvents,
			SectionRocks,
			SectionHabits,
			SectionCalendarSummary,
			SectionCalendarEvents,
			SectionTasks,
		},
		Sections: []SectionConfig{
			{
				Name:          SectionTrips,
				Kind:          KindTrips,
				Source:        SourceCalendar,
				Title:         "Trips",
				EmptyMessage:  "No trips this week",
				IncludeInGood: true,
				Good:          CriterionSpec{Kind: "all"},
				Bad:           CriterionSpec{Kind: "none"},
			},
			{
				Name:          SectionEvents,
				Kind:          KindEvents,
				Source:        SourceCalendar,
				Title:         "Events",
				EmptyMessage:  "No events this week",
				IncludeInGood: true,
				Good:          CriterionSpec{Kind: "all"},
				Bad:           CriterionSpec{Kind: "none"},
			},
			{
				Name:                    SectionRocks,
				Kind:                    KindRocks,
				Source:                  SourceTasks,
				Title:                   "Rocks",
				EmptyMessage:            "No rocks tracked",
				IncludeInGood:           true,
				IncludeInBad:            true,
				AlwaysShowWhenEmptyGood: true,
				Good:                    CriterionSpec{Kind: "include", Terms: []string{"✅", "👾", "Went well", "Made progress"}},
				Bad:                     CriterionSpec{Kind: "include", Terms: []string{"❌", "⚠️", "Went bad", "Didn't go so well", "Didn’t go so well"}},
			},
			{
				Name:          SectionHabits,
				Kind:          KindHabits,
				Source:        SourceTasks,
				Title:         "Habits",
				EmptyMessage:  "No habit data",
				IncludeInGood: true,
				IncludeInBad:  true,
				Good:          CriterionSpec{Kind: "include", Terms: []string{"✅"}},
				Bad:           CriterionSpec{Kind: "exclude", Terms: []string{"✅"}},
			},
			{
				Name:          SectionCalendarSummary,
				Kind:          KindCalendarSummary,
				Source:        SourceCalendar,
				Title:         "Calendar",
				EmptyMessage:  "No calendar data",
				IncludeInGood: true,
				IncludeInBad:  true,
				Good:          CriterionSpec{Kind: "include", Terms: []string{"✅"}},
				Bad:           CriterionSpec{Kind: "include", Terms: []string{"❌", "⚠️"}},
				ZeroReplacements: map[string]string{
					"Reading Time": "No Reading Time",
					"Art Time":     "No Art Time",
					"Coding Time":  "No Coding Time",
				},
			},
			{
				Name:          SectionCalendarEvents,
				Kind:          KindCalendarEvents,
				Source:        SourceCalendar,
				Title:         "Calendar Highlights",
				IncludeInGood: true,
				IncludeInBad:  true,
				Good:          CriterionSpec{Kind: "include", Terms: []string{"✅"}},
				Bad:           CriterionSpec{Kind: "include", Terms: []string{"❌", "⚠️"}},
				NameMap: map[string]string{
					"Workout Cal":  "Workouts",
					"Social Cal":   "Social",
					"Personal Cal": "Personal",
				},
				ShowDetails: map[string]bool{
					"Social":   true,
					"Personal": true,
				},
			},
			{
				Name:          SectionTasks,
				Kind:          KindTasks,
				Source:        SourceTasks,
				Title:         "Tasks",
				EmptyMessage:  "No completed tasks",
				IncludeInGood: true,
				IncludeInBad:  true,
				Good:          CriterionSpec{Kind: "include", Terms: []string{"✅"}},
				Bad:           CriterionSpec{Kind: "include", Terms: []string{"❌", "⚠️"}},
				ShowDetails: map[string]bool{
					"Personal": true,
				},
			},
		},
	}
}
