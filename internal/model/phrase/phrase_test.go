package phrase

import (
	"encoding/json"
	"testing"
)

func TestUnmarshalAcceptsShortKeys(t *testing.T) {
	var p Phrase
	if err := json.Unmarshal([]byte(`{"hi":"नमस्ते","en":"Hello","pronunciation":"Namaste"}`), &p); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if p.HindiPhrase != "नमस्ते" || p.EnglishMeaning != "Hello" || p.Pronunciation != "Namaste" {
		t.Fatalf("unexpected phrase: %+v", p)
	}
}

func TestUnmarshalPrefersLongKeys(t *testing.T) {
	var p Phrase
	if err := json.Unmarshal([]byte(`{"hindiPhrase":"धन्यवाद","hi":"x","englishMeaning":"Thank you","en":"y"}`), &p); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if p.HindiPhrase != "धन्यवाद" || p.EnglishMeaning != "Thank you" {
		t.Fatalf("unexpected phrase: %+v", p)
	}
}

func TestPackLookupFallsBack(t *testing.T) {
	pack := Seed()

	scene, items := pack.Lookup("airport", "market")
	if scene != "market" || len(items) == 0 {
		t.Fatalf("expected market fallback, got %s with %d phrases", scene, len(items))
	}

	scene, items = pack.Lookup("taxi", "market")
	if scene != "taxi" || len(items) == 0 {
		t.Fatalf("expected taxi pack, got %s", scene)
	}
}

func TestFallbackSuggestionsCarryRequiredKeys(t *testing.T) {
	data, err := json.Marshal(FallbackSuggestions())
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected two suggestions, got %d", len(decoded))
	}
	for _, item := range decoded {
		if item["hindiPhrase"] == "" || item["englishMeaning"] == "" {
			t.Fatalf("suggestion missing keys: %v", item)
		}
	}
}
