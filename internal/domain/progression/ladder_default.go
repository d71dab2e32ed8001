package progression

// DefaultLadderConfig is the built-in progression ladder used when no config
// file is supplied. Tiers are the flat reward brackets shown on the member
// card; acts carry the syndicate storyline shown in the overview modal.
func DefaultLadderConfig() LadderConfig {
	return LadderConfig{
		Tiers: []Tier{
			{
				Name:       "Bronze",
				MinPoints:  0,
				MaxPoints:  999,
				Benefit:    "Birthday dessert|Early access to seasonal menus",
				ColorTheme: "bronze",
			},
			{
				Name:       "Silver",
				MinPoints:  1000,
				MaxPoints:  2999,
				Benefit:    "Free delivery|Priority reservations|Birthday dessert",
				ColorTheme: "silver",
			},
			{
				Name:       "Gold",
				MinPoints:  3000,
				MaxPoints:  Unbounded,
				Benefit:    "Chef's table invitations|Free delivery|Priority reservations",
				ColorTheme: "gold",
			},
		},
		Acts: []Act{
			{
				ID:        "act-1",
				Title:     "The Family Table",
				Subtitle:  "Every regular starts as a guest.",
				MinPoints: 0,
				MaxPoints: 999,
				Ranks: []Rank{
					{Name: "Associate", MinPoints: 0, MaxPoints: 299},
					{Name: "Soldier", MinPoints: 300, MaxPoints: 649},
					{Name: "Capo", MinPoints: 650, MaxPoints: 999},
				},
			},
			{
				ID:        "act-2",
				Title:     "Turf of the Syndicate",
				Subtitle:  "The kitchen knows your name now.",
				MinPoints: 1000,
				MaxPoints: 2500,
				Ranks: []Rank{
					{Name: "Enforcer", MinPoints: 1000, MaxPoints: 1499},
					{Name: "Consigliere", MinPoints: 1500, MaxPoints: 1999},
					{Name: "Underboss", MinPoints: 2000, MaxPoints: 2500},
				},
			},
			{
				ID:        "act-3",
				Title:     "The Don's Circle",
				Subtitle:  "A seat at the table that never empties.",
				MinPoints: 2501,
				MaxPoints: Unbounded,
				Ranks: []Rank{
					{Name: "Don", MinPoints: 2501, MaxPoints: 4999},
					{Name: "Kingpin", MinPoints: 5000, MaxPoints: 9999},
					{Name: "Legend", MinPoints: 10000, MaxPoints: Unbounded},
				},
			},
		},
	}
}
