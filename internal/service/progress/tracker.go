package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	progressmodel "github.com/namaste-emily/aasha/backend/internal/model/progress"
)

// StorageKey is the key prefix progress blobs are stored under.
const StorageKey = "namaste_emily_progress"

const (
	dayLayout = "2006-01-02"

	missionXP   = 20
	missionChai = 1
)

var (
	ErrProfileRequired = errors.New("profile id is required")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrSceneRequired   = errors.New("scene id is required")
)

// Result is the state after an operation plus the badges it unlocked.
type Result struct {
	State     progressmodel.State         `json:"state"`
	NewBadges []progressmodel.EarnedBadge `json:"newBadges"`
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// Tracker applies streak, counter and badge transitions to stored progress.
// Mutations are serialized so concurrent requests for one profile never lose updates.
type Tracker struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time
}

// NewTracker creates a tracker over store.
func NewTracker(store Store, opts ...Option) *Tracker {
	t := &Tracker{store: store, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Key returns the storage key for a profile.
func Key(profileID string) string {
	return StorageKey + ":" + profileID
}

// Init loads or creates the profile state and rolls the streak forward.
func (t *Tracker) Init(ctx context.Context, profileID string) (*Result, error) {
	return t.mutate(ctx, profileID, false, func(*progressmodel.State) error { return nil })
}

// AwardXP adds n experience points.
func (t *Tracker) AwardXP(ctx context.Context, profileID string, n int) (*Result, error) {
	if n <= 0 {
		return nil, ErrInvalidAmount
	}
	return t.mutate(ctx, profileID, false, func(s *progressmodel.State) error {
		s.XP += n
		return nil
	})
}

// AwardChai adds n chai cups.
func (t *Tracker) AwardChai(ctx context.Context, profileID string, n int) (*Result, error) {
	if n <= 0 {
		return nil, ErrInvalidAmount
	}
	return t.mutate(ctx, profileID, false, func(s *progressmodel.State) error {
		s.Chai += n
		return nil
	})
}

// TouchScene counts a visit to scene.
func (t *Tracker) TouchScene(ctx context.Context, profileID, scene string) (*Result, error) {
	scene = strings.TrimSpace(scene)
	if scene == "" {
		return nil, ErrSceneRequired
	}
	return t.mutate(ctx, profileID, true, func(s *progressmodel.State) error {
		s.Scenes[scene]++
		return nil
	})
}

// TapPhrase counts one phrase card tap.
func (t *Tracker) TapPhrase(ctx context.Context, profileID string) (*Result, error) {
	return t.mutate(ctx, profileID, true, func(s *progressmodel.State) error {
		s.PhrasesTapped++
		return nil
	})
}

// RecordMessages counts n conversation turns.
func (t *Tracker) RecordMessages(ctx context.Context, profileID string, n int) (*Result, error) {
	if n <= 0 {
		return nil, ErrInvalidAmount
	}
	return t.mutate(ctx, profileID, true, func(s *progressmodel.State) error {
		s.Messages += n
		return nil
	})
}

// CompleteMission marks today's mission done and pays its reward.
func (t *Tracker) CompleteMission(ctx context.Context, profileID string) (*Result, error) {
	return t.mutate(ctx, profileID, true, func(s *progressmodel.State) error {
		s.MissionCompletedToday = true
		s.XP += missionXP
		s.Chai += missionChai
		return nil
	})
}

// CheckBadges re-evaluates badges without changing counters.
func (t *Tracker) CheckBadges(ctx context.Context, profileID string) (*Result, error) {
	return t.mutate(ctx, profileID, true, func(*progressmodel.State) error { return nil })
}

// mutate loads, rolls the day, applies the change and persists. Badges are only
// evaluated when checkBadges is set; plain awards never unlock anything by themselves.
func (t *Tracker) mutate(ctx context.Context, profileID string, checkBadges bool, apply func(*progressmodel.State) error) (*Result, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return nil, ErrProfileRequired
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := t.load(ctx, profileID)
	if err != nil {
		return nil, err
	}

	now := t.now().UTC()
	rollDay(state, now)

	if err := apply(state); err != nil {
		return nil, err
	}
	earned := []progressmodel.EarnedBadge{}
	if checkBadges {
		earned = evaluateBadges(state, now.Format(time.RFC3339))
	}

	if err := t.save(ctx, profileID, state); err != nil {
		return nil, err
	}
	for _, badge := range earned {
		log.Printf("[progress] profile=%s unlocked badge=%s", profileID, badge.ID)
	}

	return &Result{State: state.Clone(), NewBadges: earned}, nil
}

func (t *Tracker) load(ctx context.Context, profileID string) (*progressmodel.State, error) {
	raw, ok, err := t.store.Get(ctx, Key(profileID))
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	state := &progressmodel.State{}
	if ok {
		if err := json.Unmarshal(raw, state); err != nil {
			log.Printf("[progress] profile=%s corrupt state, starting fresh: %v", profileID, err)
			state = &progressmodel.State{}
		}
	}
	state.Normalize()
	return state, nil
}

func (t *Tracker) save(ctx context.Context, profileID string, state *progressmodel.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := t.store.Put(ctx, Key(profileID), raw); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// rollDay updates the streak for the calendar day of now (UTC). The same day
// is a no-op, the next day extends the streak, and any other gap resets it.
func rollDay(s *progressmodel.State, now time.Time) {
	today := now.Format(dayLayout)

	switch {
	case s.LastDay == "":
		s.Streak = 1
	case s.LastDay == today:
		if s.Streak < 1 {
			s.Streak = 1
		}
		return
	default:
		last, err := time.Parse(dayLayout, s.LastDay)
		current, _ := time.Parse(dayLayout, today)
		if err == nil && current.Sub(last) == 24*time.Hour {
			s.Streak++
		} else {
			s.Streak = 1
		}
		s.MissionCompletedToday = false
	}
	s.LastDay = today
}
