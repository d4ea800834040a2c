package mission

// Mission is a daily practice task for one scene.
type Mission struct {
	Scene         string   `json:"scene"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	SpecificGoals []string `json:"specificGoals"`
	CulturalTip   string   `json:"culturalTip"`
}

var fallbacks = []Mission{
	{
		Scene:         "market",
		Title:         "Buy Fresh Vegetables",
		Description:   "Visit the local sabzi mandi and practice asking for seasonal vegetables in Hindi",
		SpecificGoals: []string{"Ask for 2 vegetables", "Negotiate price politely", "Ask if items are fresh"},
		CulturalTip:   "In Indian markets, gentle bargaining is expected and shows engagement",
	},
	{
		Scene:         "taxi",
		Title:         "Navigate to Temple",
		Description:   "Take a taxi to the local temple and practice giving directions in Hindi",
		SpecificGoals: []string{"Tell driver destination", "Ask about fare", "Say thank you"},
		CulturalTip:   "Always confirm the fare before starting your journey",
	},
	{
		Scene:         "neighbor",
		Title:         "Meet Your Neighbor",
		Description:   "Introduce yourself to a new neighbor and practice basic conversation",
		SpecificGoals: []string{"Share your name", "Ask about their family", "Exchange pleasantries"},
		CulturalTip:   "Indians appreciate when foreigners make an effort to speak Hindi",
	},
}

// Fallbacks returns a copy of the built-in missions.
func Fallbacks() []Mission {
	out := make([]Mission, len(fallbacks))
	for i, m := range fallbacks {
		m.SpecificGoals = append([]string(nil), m.SpecificGoals...)
		out[i] = m
	}
	return out
}

// Fallback returns the built-in mission for scene, or the market mission.
func Fallback(scene string) Mission {
	all := Fallbacks()
	for _, m := range all {
		if m.Scene == scene {
			return m
		}
	}
	return all[0]
}
