package habits

// DefaultRules returns the built-in rule set. It expects monthly habit text
// such as:
//
//	🛌 22 early wake ups, 3 days sleeping in
//	🍺 24 sober days, 4 drinking days
//	🏋️ 12 workouts
//	⚖️ Weight: 178.4 lbs
//	📚 10 reading days, 🎨 3 art days, 💻 8 coding days, 🎮 4 gaming days
func DefaultRules() Rules {
	return Rules{
		Simple: []Rule{
			{
				Name:           "sleep",
				Icon:           "🛌",
				Description:    "sleeping habits",
				Pattern:        `(?i)(\d+(?:\.\d+)?)\s+early\s+wake[\s-]*ups?`,
				Threshold:      ThresholdPerWeek,
				GoodPerWeek:    5,
				WarningPerWeek: 4,
			},
			{
				Name:           "sleep_ins",
				Icon:           "🛌",
				Description:    "sleep-in habits",
				Pattern:        `(?i)(\d+(?:\.\d+)?)\s+(?:days?\s+)?sleep(?:ing)?[\s-]*ins?\b`,
				Threshold:      ThresholdPerWeek,
				Operator:       OpAtMost,
				GoodPerWeek:    1,
				WarningPerWeek: 2,
			},
			{
				Name:           "sobriety",
				Icon:           "🍺",
				Description:    "sobriety habits",
				Pattern:        `(?i)(\d+(?:\.\d+)?)\s+sober\s+days?`,
				Threshold:      ThresholdPerWeek,
				GoodPerWeek:    5,
				WarningPerWeek: 4,
			},
			{
				Name:           "drinking",
				Icon:           "🍺",
				Description:    "drinking habits",
				Pattern:        `(?i)(\d+(?:\.\d+)?)\s+drinking\s+days?`,
				Threshold:      ThresholdPerWeek,
				Operator:       OpAtMost,
				GoodPerWeek:    1,
				WarningPerWeek: 2,
			},
			{
				Name:           "workouts",
				Icon:           "🏋️",
				Description:    "workout habits",
				Pattern:        `(?i)(\d+(?:\.\d+)?)\s+workouts?`,
				Threshold:      ThresholdPerWeek,
				GoodPerWeek:    3,
				WarningPerWeek: 2,
			},
			{
				Name:            "weight",
				Icon:            "⚖️",
				Description:     "body weight",
				Pattern:         `(?i)weight:?\s*(\d+(?:\.\d+)?)\s*(?:lbs?|kg)?`,
				Threshold:       ThresholdAbsolute,
				Operator:        OpAtMost,
				GoodAbsolute:    180,
				WarningAbsolute: 185,
			},
		},
		Hobby: &HobbyRule{
			Icon:        "🎨",
			Description: "hobby habits",
			Patterns: HobbyPatterns{
				Reading: `(?i)(\d+)\s+reading\s+days?`,
				Art:     `(?i)(\d+)\s+art\s+days?`,
				Coding:  `(?i)(\d+)\s+coding\s+days?`,
				Gaming:  `(?i)(\d+)\s+gaming\s+days?`,
			},
			GoodAbsolute:    10,
			WarningAbsolute: 5,
		},
	}
}
