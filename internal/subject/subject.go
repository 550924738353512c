// Package subject loads the practice content for each learning area and
// defines how items are identified and answered.
package subject

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var builtin embed.FS

// Kind selects key extraction and answer checking for a subject.
type Kind string

const (
	KindMath      Kind = "math"
	KindCharacter Kind = "character"
	KindIdiom     Kind = "idiom"
	KindWord      Kind = "word"
)

// Subject IDs in display order.
const (
	Math              = "math"
	ChineseCharacters = "chinese-characters"
	ChineseIdioms     = "chinese-idioms"
	EnglishWords      = "english-words"
)

var order = []string{Math, ChineseCharacters, ChineseIdioms, EnglishWords}

// Item is one unit of content to memorize.
type Item struct {
	Subject      string   `yaml:"-"`
	Text         string   `yaml:"text"`
	Prompt       string   `yaml:"prompt"`
	Answer       string   `yaml:"answer"`
	Alternatives []string `yaml:"alternatives"`
	Hint         string   `yaml:"hint"`
}

// Check reports whether answer matches the item's answer or one of its
// alternatives after normalization.
func (it Item) Check(answer string) bool {
	got := NormalizeAnswer(answer)
	if got == "" {
		return false
	}
	if got == NormalizeAnswer(it.Answer) {
		return true
	}
	for _, alt := range it.Alternatives {
		if got == NormalizeAnswer(alt) {
			return true
		}
	}
	return false
}

// Subject is a named pool of items of one kind.
type Subject struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Kind         Kind        `yaml:"kind"`
	Instructions string      `yaml:"instructions"`
	Math         *MathConfig `yaml:"math"`
	Items        []Item      `yaml:"items"`
}

// Key extracts the stable identity of an item from its content.
func (s *Subject) Key(it Item) string {
	switch s.Kind {
	case KindWord:
		return NormalizeWord(it.Text)
	case KindMath:
		return strings.Join(strings.Fields(it.Text), "")
	default:
		return NormalizeText(it.Text)
	}
}

// Find returns the item whose key matches key after normalization.
func (s *Subject) Find(key string) (Item, bool) {
	if s.Kind == KindMath {
		key = strings.NewReplacer("*", OpMul, "x", OpMul, "/", OpDiv).Replace(key)
	}
	want := s.Key(Item{Text: key})
	for _, it := range s.Items {
		if s.Key(it) == want {
			return it, true
		}
	}
	return Item{}, false
}

func (s *Subject) prepare() error {
	if s.ID == "" {
		return errors.New("subject id is required")
	}
	switch s.Kind {
	case KindMath:
		cfg := DefaultMathConfig()
		if s.Math != nil {
			cfg = *s.Math
		}
		facts, err := GenerateFacts(cfg)
		if err != nil {
			return fmt.Errorf("subject %s: %w", s.ID, err)
		}
		s.Items = make([]Item, 0, len(facts))
		for _, f := range facts {
			s.Items = append(s.Items, f.item(s.ID))
		}
	case KindCharacter, KindIdiom, KindWord:
	default:
		return fmt.Errorf("subject %s: unknown kind %q", s.ID, s.Kind)
	}

	seen := make(map[string]bool, len(s.Items))
	for i := range s.Items {
		it := &s.Items[i]
		it.Subject = s.ID
		if it.Prompt == "" {
			it.Prompt = it.Text
		}
		if it.Answer == "" {
			it.Answer = it.Text
		}
		key := s.Key(*it)
		if key == "" {
			return fmt.Errorf("subject %s: item %d has no text", s.ID, i)
		}
		if seen[key] {
			return fmt.Errorf("subject %s: duplicate item %q", s.ID, key)
		}
		seen[key] = true
	}
	if len(s.Items) == 0 {
		return fmt.Errorf("subject %s: no items", s.ID)
	}
	return nil
}

// StorageKey returns the storage namespace holding a subject's progress.
func StorageKey(id string) string {
	return "progress:" + id
}

// Registry holds the loaded subjects.
type Registry struct {
	subjects map[string]*Subject
}

// Load reads the built-in content packs. When dir is non-empty, a file in
// dir named like a built-in pack (e.g. "math.yaml") replaces it.
func Load(dir string) (*Registry, error) {
	r := &Registry{subjects: make(map[string]*Subject, len(order))}
	for _, id := range order {
		name := id + ".yaml"
		data, err := readPack(dir, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var s Subject
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if s.ID != id {
			return nil, fmt.Errorf("%s declares id %q, want %q", name, s.ID, id)
		}
		if err := s.prepare(); err != nil {
			return nil, err
		}
		r.subjects[id] = &s
	}
	return r, nil
}

func readPack(dir, name string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return builtin.ReadFile("content/" + name)
}

// All returns the subjects in display order.
func (r *Registry) All() []*Subject {
	out := make([]*Subject, 0, len(order))
	for _, id := range order {
		out = append(out, r.subjects[id])
	}
	return out
}

// IDs returns the subject IDs in display order.
func (r *Registry) IDs() []string {
	return slices.Clone(order)
}

// Get looks up a subject by ID.
func (r *Registry) Get(id string) (*Subject, error) {
	s, ok := r.subjects[id]
	if !ok {
		return nil, fmt.Errorf("unknown subject %q (choose one of %v)", id, order)
	}
	return s, nil
}
