package progress

// Badge is a one-time achievement stored in State.Badges.
type Badge struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Date  string `json:"date"`
}

// EarnedBadge is a badge together with its id, returned when newly unlocked.
type EarnedBadge struct {
	ID string `json:"id"`
	Badge
}

// State is the persisted learner progress for one profile.
type State struct {
	Streak                int              `json:"streak"`
	LastDay               string           `json:"lastDay"`
	XP                    int              `json:"xp"`
	Chai                  int              `json:"chai"`
	Badges                map[string]Badge `json:"badges"`
	Scenes                map[string]int   `json:"scenes"`
	PhrasesTapped         int              `json:"phrasesTapped"`
	Messages              int              `json:"messages"`
	MissionCompletedToday bool             `json:"missionCompletedToday"`
}

// Normalize fills nil maps and clamps negative counters left by hand-edited blobs.
func (s *State) Normalize() {
	if s.Badges == nil {
		s.Badges = make(map[string]Badge)
	}
	if s.Scenes == nil {
		s.Scenes = make(map[string]int)
	}
	for _, n := range []*int{&s.Streak, &s.XP, &s.Chai, &s.PhrasesTapped, &s.Messages} {
		if *n < 0 {
			*n = 0
		}
	}
}

// Clone returns a deep copy so callers never share maps with the tracker.
func (s State) Clone() State {
	out := s
	out.Badges = make(map[string]Badge, len(s.Badges))
	for k, v := range s.Badges {
		out.Badges[k] = v
	}
	out.Scenes = make(map[string]int, len(s.Scenes))
	for k, v := range s.Scenes {
		out.Scenes[k] = v
	}
	return out
}
