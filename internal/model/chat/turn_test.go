package chat

import "testing"

func TestSanitizeDropsInvalidTurns(t *testing.T) {
	turns := []ConversationTurn{
		{Role: RoleUser, Content: "Namaste"},
		{Role: "tool", Content: "ignored"},
		{Role: RoleAssistant, Content: "   "},
		{Role: RoleAssistant, Content: "Kaise ho?"},
	}

	kept, dropped := Sanitize(turns)
	if dropped != 2 {
		t.Fatalf("expected 2 dropped turns, got %d", dropped)
	}
	if len(kept) != 2 || kept[0].Content != "Namaste" || kept[1].Content != "Kaise ho?" {
		t.Fatalf("unexpected kept turns: %+v", kept)
	}
}

func TestSanitizeEmptyHistory(t *testing.T) {
	kept, dropped := Sanitize(nil)
	if len(kept) != 0 || dropped != 0 {
		t.Fatalf("expected empty result, got %+v (%d dropped)", kept, dropped)
	}
}
