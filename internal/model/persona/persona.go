package persona

// DefaultScene is used whenever a requested scene is unknown.
const DefaultScene = "market"

// DefaultText is the tutor persona used when persona.txt cannot be read.
const DefaultText = "You are Aasha Aunty, a warm, encouraging Hindi teacher who speaks primarily in clear American English. Always speak in English first, then teach Hindi phrases."

// Scene is one teaching context exposed to the frontend.
type Scene struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// SeedScenes provides the built-in scene descriptions.
func SeedScenes() map[string]string {
	return map[string]string{
		"market":        "You are teaching Emily market vocabulary in Hindi. Use English explanations first.",
		"taxi":          "You are teaching Emily taxi phrases in Hindi. Use English explanations first.",
		"neighbor":      "You are teaching Emily neighborly conversation in Hindi. Use English explanations first.",
		"church":        "You are teaching Emily respectful Hindi phrases for church. Use English explanations first.",
		"rickshaw":      "You are teaching Emily rickshaw phrases in Hindi. Use English explanations first.",
		"introductions": "You are teaching Emily introduction phrases in Hindi. Use English explanations first.",
	}
}
