package progress

import (
	progressmodel "github.com/namaste-emily/aasha/backend/internal/model/progress"
)

type badgeRule struct {
	id     string
	label  string
	emoji  string
	earned func(s *progressmodel.State) bool
}

// badgeRules are evaluated in order; each badge is awarded at most once.
var badgeRules = []badgeRule{
	{id: "first_talk", label: "First Conversation", emoji: "🎉", earned: func(s *progressmodel.State) bool { return s.Messages >= 2 }},
	{id: "phrase_5", label: "Phrase Explorer", emoji: "🗣️", earned: func(s *progressmodel.State) bool { return s.PhrasesTapped >= 5 }},
	{id: "explorer", label: "Scene Explorer", emoji: "🧭", earned: func(s *progressmodel.State) bool { return len(s.Scenes) >= 3 }},
	{id: "streak_3", label: "3-Day Streak", emoji: "🔥", earned: func(s *progressmodel.State) bool { return s.Streak >= 3 }},
	{id: "church_hello", label: "Church Greeter", emoji: "⛪", earned: func(s *progressmodel.State) bool { return s.Scenes["church"] >= 1 }},
	{id: "xp_100", label: "Century Club", emoji: "💯", earned: func(s *progressmodel.State) bool { return s.XP >= 100 }},
	{id: "chai_5", label: "Chai Master", emoji: "☕", earned: func(s *progressmodel.State) bool { return s.Chai >= 5 }},
}

// BadgeIDs lists every badge id in evaluation order.
func BadgeIDs() []string {
	ids := make([]string, len(badgeRules))
	for i, rule := range badgeRules {
		ids[i] = rule.id
	}
	return ids
}

// evaluateBadges awards missing badges whose predicate holds and returns the new ones.
func evaluateBadges(s *progressmodel.State, date string) []progressmodel.EarnedBadge {
	earned := []progressmodel.EarnedBadge{}
	for _, rule := range badgeRules {
		if _, ok := s.Badges[rule.id]; ok {
			continue
		}
		if !rule.earned(s) {
			continue
		}
		badge := progressmodel.Badge{Label: rule.label, Emoji: rule.emoji, Date: date}
		s.Badges[rule.id] = badge
		earned = append(earned, progressmodel.EarnedBadge{ID: rule.id, Badge: badge})
	}
	return earned
}
