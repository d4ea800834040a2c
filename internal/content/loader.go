package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/namaste-emily/aasha/backend/internal/model/persona"
	"github.com/namaste-emily/aasha/backend/internal/model/phrase"
)

// ErrEmpty is returned when a resource file parses but holds no usable entries.
var ErrEmpty = errors.New("content: resource is empty")

// Paths locates the static resources on disk.
type Paths struct {
	Persona string
	Scenes  string
	Phrases string
}

// Bundle is the loaded static content. Fallbacks lists the resources that were
// replaced by built-ins.
type Bundle struct {
	Persona   string
	Scenes    map[string]string
	Phrases   phrase.Pack
	Fallbacks []string
}

// PersonaStore wraps the persona text and scenes into a lookup store.
func (b *Bundle) PersonaStore() *persona.MemoryStore {
	return persona.NewMemoryStore(b.Persona, b.Scenes)
}

// Load reads all three resources concurrently. A missing or malformed file
// never fails the load: that resource falls back to its built-in value and the
// cause is logged. Only context cancellation is returned as an error.
func Load(ctx context.Context, paths Paths) (*Bundle, error) {
	var (
		personaText string
		scenes      map[string]string
		phrases     phrase.Pack
		personaErr  error
		scenesErr   error
		phrasesErr  error
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		personaText, personaErr = LoadPersona(paths.Persona)
		return egCtx.Err()
	})
	eg.Go(func() error {
		scenes, scenesErr = LoadScenes(paths.Scenes)
		return egCtx.Err()
	})
	eg.Go(func() error {
		phrases, phrasesErr = LoadPhrases(paths.Phrases)
		return egCtx.Err()
	})

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("content: load: %w", err)
	}

	bundle := &Bundle{Persona: personaText, Scenes: scenes, Phrases: phrases}
	if personaErr != nil {
		log.Printf("[content] using built-in persona: %v", personaErr)
		bundle.Persona = persona.DefaultText
		bundle.Fallbacks = append(bundle.Fallbacks, "persona")
	}
	if scenesErr != nil {
		log.Printf("[content] using built-in scenes: %v", scenesErr)
		bundle.Scenes = persona.SeedScenes()
		bundle.Fallbacks = append(bundle.Fallbacks, "scenes")
	}
	if phrasesErr != nil {
		log.Printf("[content] using built-in phrases: %v", phrasesErr)
		bundle.Phrases = phrase.Seed()
		bundle.Fallbacks = append(bundle.Fallbacks, "phrases")
	}

	log.Printf("[content] loaded %d scenes, %d phrase packs", len(bundle.Scenes), len(bundle.Phrases))
	return bundle, nil
}

// LoadPersona reads the persona text file.
func LoadPersona(path string) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return text, nil
}

// LoadScenes reads a scene map from JSON, or YAML when the file ends in .yaml/.yml.
func LoadScenes(path string) (map[string]string, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	scenes := make(map[string]string)
	if err := decode(path, data, &scenes); err != nil {
		return nil, err
	}
	for id, desc := range scenes {
		if strings.TrimSpace(desc) == "" {
			delete(scenes, id)
		}
	}
	if len(scenes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return scenes, nil
}

// LoadPhrases reads phrase packs keyed by scene.
func LoadPhrases(path string) (phrase.Pack, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	pack := make(phrase.Pack)
	if err := decode(path, data, &pack); err != nil {
		return nil, err
	}
	if len(pack) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return pack, nil
}

func readFile(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("content: no path configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %q: %w", path, err)
	}
	return data, nil
}

func decode(path string, data []byte, out any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("content: decode yaml %q: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("content: decode json %q: %w", path, err)
		}
	}
	return nil
}
