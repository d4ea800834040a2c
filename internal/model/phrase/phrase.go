package phrase

import "encoding/json"

// Phrase is one tappable Hindi phrase card.
type Phrase struct {
	HindiPhrase    string `json:"hindiPhrase" yaml:"hindiPhrase"`
	Pronunciation  string `json:"pronunciation" yaml:"pronunciation"`
	EnglishMeaning string `json:"englishMeaning" yaml:"englishMeaning"`
	EnglishIntro   string `json:"englishIntro,omitempty" yaml:"englishIntro,omitempty"`
	CulturalNote   string `json:"culturalNote,omitempty" yaml:"culturalNote,omitempty"`
	DisplayText    string `json:"displayText,omitempty" yaml:"displayText,omitempty"`
	Frequency      string `json:"frequency,omitempty" yaml:"frequency,omitempty"`
}

// UnmarshalJSON also accepts the short "hi"/"en" keys used by older phrase files.
func (p *Phrase) UnmarshalJSON(data []byte) error {
	type plain Phrase
	var raw struct {
		plain
		Hi string `json:"hi"`
		En string `json:"en"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Phrase(raw.plain)
	if p.HindiPhrase == "" {
		p.HindiPhrase = raw.Hi
	}
	if p.EnglishMeaning == "" {
		p.EnglishMeaning = raw.En
	}
	return nil
}

// Pack maps a scene id to its phrases.
type Pack map[string][]Phrase

// Lookup returns the phrases for scene, falling back to fallbackScene.
func (p Pack) Lookup(scene, fallbackScene string) (string, []Phrase) {
	if items, ok := p[scene]; ok && len(items) > 0 {
		return scene, items
	}
	return fallbackScene, p[fallbackScene]
}

// FallbackSuggestions is returned when generated suggestions cannot be used.
func FallbackSuggestions() []Phrase {
	return []Phrase{
		{
			EnglishIntro:   "Essential greeting everyone should know",
			HindiPhrase:    "नमस्ते",
			EnglishMeaning: "Hello/Goodbye",
			Pronunciation:  "Namaste",
			DisplayText:    "Namaste",
		},
		{
			EnglishIntro:   "Polite way to say thank you",
			HindiPhrase:    "धन्यवाद",
			EnglishMeaning: "Thank you",
			Pronunciation:  "Dhanyavaad",
			DisplayText:    "Dhanyavaad",
		},
	}
}

// Seed provides the built-in phrase packs used when phrases.json is unreadable.
func Seed() Pack {
	return Pack{
		"market": {
			{HindiPhrase: "यह कितने का है?", Pronunciation: "Yeh kitne ka hai?", EnglishMeaning: "How much is this?", EnglishIntro: "Ask the price of anything at the stall"},
			{HindiPhrase: "यह ताज़ा है?", Pronunciation: "Yeh taaza hai?", EnglishMeaning: "Is this fresh?", CulturalNote: "Vendors appreciate when you check freshness"},
			{HindiPhrase: "थोड़ा कम कीजिए", Pronunciation: "Thoda kam kijiye", EnglishMeaning: "Please lower the price a little"},
		},
		"taxi": {
			{HindiPhrase: "मुझे मंदिर जाना है", Pronunciation: "Mujhe mandir jaana hai", EnglishMeaning: "I need to go to the temple"},
			{HindiPhrase: "कितना किराया होगा?", Pronunciation: "Kitna kiraaya hoga?", EnglishMeaning: "What will the fare be?", CulturalNote: "Confirm the fare before the ride starts"},
			{HindiPhrase: "यहाँ रोकिए", Pronunciation: "Yahaan rokiye", EnglishMeaning: "Stop here, please"},
		},
		"rickshaw": {
			{HindiPhrase: "मीटर से चलिए", Pronunciation: "Meter se chaliye", EnglishMeaning: "Please go by the meter"},
			{HindiPhrase: "धीरे चलिए", Pronunciation: "Dheere chaliye", EnglishMeaning: "Please go slowly"},
		},
		"neighbor": {
			{HindiPhrase: "आप कैसे हैं?", Pronunciation: "Aap kaise hain?", EnglishMeaning: "How are you?"},
			{HindiPhrase: "आपका परिवार कैसा है?", Pronunciation: "Aapka parivaar kaisa hai?", EnglishMeaning: "How is your family?"},
		},
		"introductions": {
			{HindiPhrase: "मेरा नाम एमिली है", Pronunciation: "Mera naam Emily hai", EnglishMeaning: "My name is Emily"},
			{HindiPhrase: "आपसे मिलकर खुशी हुई", Pronunciation: "Aapse milkar khushi hui", EnglishMeaning: "Nice to meet you"},
		},
		"church": {
			{HindiPhrase: "नमस्ते", Pronunciation: "Namaste", EnglishMeaning: "Hello", EnglishIntro: "A respectful greeting at the door"},
			{HindiPhrase: "भगवान आपका भला करे", Pronunciation: "Bhagwaan aapka bhala kare", EnglishMeaning: "God bless you"},
		},
	}
}
