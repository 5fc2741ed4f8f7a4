package catalog

// Default returns the standard Skyland Guardians configuration: eight
// guardian assets, five missions, six events, the badge rules, and the
// level ladder.
func Default() *Catalog {
	return &Catalog{
		Assets: []Asset{
			{
				ID: "sword", DisplayName: "Sword of Innovation", ShortName: "Sword",
				Type: "tech", Class: "growth",
				MinReturn: -0.05, MaxReturn: 0.07,
				Series: []float64{0.02, -0.01, 0.03, 0.01, -0.02, 0.04, 0.00, 0.02, -0.03, 0.05, 0.01, -0.01, 0.02, 0.03},
			},
			{
				ID: "crystal", DisplayName: "Crystal of Ventures", ShortName: "Crystal",
				Type: "crypto", Class: "growth",
				MinReturn: -0.08, MaxReturn: 0.10,
				Series: []float64{0.06, -0.05, 0.08, -0.03, 0.10, -0.07, 0.02, 0.04, -0.06, 0.09, -0.02, 0.05, -0.04, 0.07},
			},
			{
				ID: "shield", DisplayName: "Shield of Bonds", ShortName: "Shield",
				Type: "bond", Class: "defensive",
				MinReturn: -0.01, MaxReturn: 0.015,
				Series: []float64{0.00, 0.001, 0.002, -0.001, 0.001, 0.000, 0.002, 0.001, -0.002, 0.001, 0.000, 0.001, 0.002, 0.000},
			},
			{
				ID: "golden", DisplayName: "Golden Harvest", ShortName: "Golden",
				Type: "gold", Class: "stable",
				MinReturn: -0.02, MaxReturn: 0.025,
				Series: []float64{-0.005, 0.004, 0.006, -0.002, 0.008, 0.001, -0.004, 0.005, 0.002, -0.006, 0.007, 0.000, 0.003, -0.001},
			},
			{
				ID: "forest", DisplayName: "Whispering Forest", ShortName: "Forest",
				Type: "green", Class: "growth",
				MinReturn: -0.04, MaxReturn: 0.06,
				Series: []float64{0.01, 0.02, -0.02, 0.03, 0.00, -0.01, 0.04, 0.01, -0.03, 0.02, 0.05, -0.02, 0.01, 0.00},
			},
			{
				ID: "castle", DisplayName: "Castle Keep", ShortName: "Castle",
				Type: "property", Class: "yield",
				MinReturn: -0.02, MaxReturn: 0.03,
				Series: []float64{0.005, 0.003, -0.004, 0.006, 0.001, 0.008, -0.002, 0.004, 0.000, 0.007, -0.005, 0.002, 0.006, 0.001},
			},
			{
				ID: "river", DisplayName: "River of Coins", ShortName: "River",
				Type: "cash", Class: "stable",
				MinReturn: -0.002, MaxReturn: 0.002,
				Series: []float64{0.001, 0.000, 0.001, 0.001, 0.000, 0.001, 0.000, 0.001, 0.001, 0.000, 0.001, 0.001, 0.000, 0.001},
			},
			{
				ID: "star", DisplayName: "Starfleet Index", ShortName: "Star",
				Type: "index", Class: "growth",
				MinReturn: -0.03, MaxReturn: 0.04,
				Series: []float64{0.008, -0.006, 0.012, 0.004, -0.010, 0.015, 0.002, -0.004, 0.009, 0.006, -0.008, 0.011, 0.003, 0.005},
			},
		},
		Missions: []Mission{
			{
				ID:          "spread-the-power",
				Title:       "Spread the Power",
				Background:  "The elders warn that leaning on the two wildest guardians leaves the island exposed.",
				Tip:         "Keep both the Sword and the Crystal under 40% each.",
				Focus:       "diversification",
				RewardStars: 3,
				Predicate:   PredicateBelowEach,
				TargetAssets: []string{
					"sword", "crystal",
				},
				Threshold: 40,
			},
			{
				ID:           "green-awakening",
				Title:        "Green Awakening",
				Background:   "The Whispering Forest is stirring and calls for believers.",
				Tip:          "Give the Forest at least a fifth of your portfolio.",
				Focus:        "thematic",
				RewardStars:  2,
				Predicate:    PredicateFloor,
				TargetAssets: []string{"forest"},
				Threshold:    20,
			},
			{
				ID:           "fortress-watch",
				Title:        "Fortress Watch",
				Background:   "Storm season approaches; the island needs its steady guardians.",
				Tip:          "Hold Shield and Golden together at 35% or more.",
				Focus:        "defense",
				RewardStars:  2,
				Predicate:    PredicateCombinedFloor,
				TargetAssets: []string{"shield", "golden"},
				Threshold:    35,
			},
			{
				ID:           "keep-the-keep",
				Title:        "Keep the Keep",
				Background:   "Castle Keep pays rent to patient guardians.",
				Tip:          "Allocate at least 15% to the Castle.",
				Focus:        "yield",
				RewardStars:  1,
				Predicate:    PredicateFloor,
				TargetAssets: []string{"castle"},
				Threshold:    15,
			},
			{
				ID:           "chart-the-skies",
				Title:        "Chart the Skies",
				Background:   "Scouts say the broad sky holds steadier winds than any single isle.",
				Tip:          "Put 30% or more into Sword and Star combined.",
				Focus:        "growth",
				RewardStars:  2,
				Predicate:    PredicateCombinedFloor,
				TargetAssets: []string{"sword", "star"},
				Threshold:    30,
			},
		},
		Events: []Event{
			{
				ID:           "solar-flare-rally",
				Title:        "Solar Flare Rally",
				Description:  "A burst of invention lifts the technologists and the sky fleet.",
				Category:     "boon",
				Effect:       Effect{Kind: EffectAdd, Magnitude: 0.02, Targets: []string{"sword", "star"}},
				DurationDays: 2,
			},
			{
				ID:           "dragons-hoard",
				Title:        "Dragon's Hoard",
				Description:  "A dragon hoards gold and everyone wants some too.",
				Category:     "boon",
				Effect:       Effect{Kind: EffectMultiply, Magnitude: 1.5, Targets: []string{"golden"}},
				DurationDays: 3,
			},
			{
				ID:            "storm-over-isles",
				Title:         "Storm Over the Isles",
				Description:   "Dark clouds press down on every market at once.",
				Category:      "storm",
				Effect:        Effect{Kind: EffectAdd, Magnitude: -0.03, Targets: []string{TargetAll}},
				DurationDays:  1,
				ScheduledDays: []int{5, 19},
			},
			{
				ID:           "crystal-frenzy",
				Title:        "Crystal Frenzy",
				Description:  "Rumors swirl and the Crystal swings wildly in both directions.",
				Category:     "storm",
				Effect:       Effect{Kind: EffectVolatility, Magnitude: 0.05, Targets: []string{"crystal"}},
				DurationDays: 2,
			},
			{
				ID:            "harvest-festival",
				Title:         "Harvest Festival",
				Description:   "The forest and the keep both profit from the festival crowds.",
				Category:      "boon",
				Effect:        Effect{Kind: EffectAdd, Magnitude: 0.01, Targets: []string{"forest", "castle"}},
				DurationDays:  3,
				ScheduledDays: []int{10},
			},
			{
				ID:           "mist-of-uncertainty",
				Title:        "Mist of Uncertainty",
				Description:  "A strange fog makes every price harder to read.",
				Category:     "storm",
				Effect:       Effect{Kind: EffectVolatility, Magnitude: 0.02, Targets: []string{TargetAll}},
				DurationDays: 2,
			},
		},
		Achievements: []Achievement{
			{ID: "steady-hands", Name: "Steady Hands", Description: "No single guardian above 50%.", StarRating: 1, TrophyGrade: "bronze"},
			{ID: "explorer", Name: "Explorer", Description: "At least three guardians working for you.", StarRating: 1, TrophyGrade: "bronze"},
			{ID: "harmony", Name: "Harmony", Description: "Largest and smallest active guardians within 30 points.", StarRating: 2, TrophyGrade: "silver"},
			{ID: "guardian-of-ages", Name: "Guardian of Ages", Description: "A quarter of the portfolio in defensive guardians.", StarRating: 2, TrophyGrade: "silver"},
			{ID: "safe-harbor", Name: "Safe Harbor", Description: "40% sheltered in safe guardians.", StarRating: 2, TrophyGrade: "silver"},
			{ID: "skyward-growth", Name: "Skyward Growth", Description: "Half the portfolio chasing growth.", StarRating: 2, TrophyGrade: "silver"},
			{ID: "first-light", Name: "First Light", Description: "Earn 10 stars.", StarRating: 1, TrophyGrade: "bronze"},
			{ID: "constellation", Name: "Constellation", Description: "Earn 25 stars.", StarRating: 2, TrophyGrade: "silver"},
			{ID: "galaxy", Name: "Galaxy", Description: "Earn 50 stars.", StarRating: 3, TrophyGrade: "gold"},
			{ID: "legend-of-skyland", Name: "Legend of Skyland", Description: "Earn 100 stars.", StarRating: 3, TrophyGrade: "gold"},
		},
		Levels: []Level{
			{Level: 1, Title: "Fledgling Guardian", RequiredStars: 0},
			{Level: 2, Title: "Island Scout", RequiredStars: 5},
			{Level: 3, Title: "Cloud Navigator", RequiredStars: 13},
			{Level: 4, Title: "Storm Warden", RequiredStars: 25},
			{Level: 5, Title: "Sky Captain", RequiredStars: 40},
			{Level: 6, Title: "Aurora Keeper", RequiredStars: 60},
			{Level: 7, Title: "Celestial Strategist", RequiredStars: 85},
			{Level: 8, Title: "Guardian of Skyland", RequiredStars: 115},
		},
	}
}
