package persona

import (
	"sort"
	"strings"
)

// Store exposes the tutor persona and scene lookups for handlers.
type Store interface {
	Persona() string
	Scene(id string) (Scene, bool)
	Scenes() []Scene
}

// MemoryStore implements Store over an immutable scene map.
type MemoryStore struct {
	persona string
	scenes  map[string]string
}

// NewMemoryStore copies the supplied content. Empty inputs fall back to the built-ins.
func NewMemoryStore(personaText string, scenes map[string]string) *MemoryStore {
	if strings.TrimSpace(personaText) == "" {
		personaText = DefaultText
	}
	if len(scenes) == 0 {
		scenes = SeedScenes()
	}

	copied := make(map[string]string, len(scenes))
	for id, desc := range scenes {
		copied[id] = desc
	}
	if _, ok := copied[DefaultScene]; !ok {
		copied[DefaultScene] = SeedScenes()[DefaultScene]
	}

	return &MemoryStore{persona: strings.TrimSpace(personaText), scenes: copied}
}

// Persona returns the tutor persona text.
func (s *MemoryStore) Persona() string {
	return s.persona
}

// Scene resolves a scene by id. Unknown ids resolve to the market scene and
// report false.
func (s *MemoryStore) Scene(id string) (Scene, bool) {
	if desc, ok := s.scenes[id]; ok {
		return Scene{ID: id, Description: desc}, true
	}
	return Scene{ID: DefaultScene, Description: s.scenes[DefaultScene]}, false
}

// Scenes lists every scene sorted by id.
func (s *MemoryStore) Scenes() []Scene {
	items := make([]Scene, 0, len(s.scenes))
	for id, desc := range s.scenes {
		items = append(items, Scene{ID: id, Description: desc})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
