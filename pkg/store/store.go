// Package store persists form definitions as files, one per definition.
// JSON is the canonical format; YAML is accepted and produced through a JSON
// bridge so the model's wire codec stays the single interpreter of the rules
// bag.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/builder"
	"github.com/goliatone/go-formkit/pkg/model"
)

// ErrNotFound is returned when no file exists for a definition id.
var ErrNotFound = errors.New("store: definition not found")

// Format selects the on-disk encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var extensions = []string{".json", ".yaml", ".yml"}

// Store reads and writes definitions under a single directory. The id is the
// file name; the extension picks the codec.
type Store struct {
	dir string
}

// New opens a store rooted at dir, creating the directory when missing.
func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the definition in the canonical JSON format.
func (s *Store) Save(def model.FormDefinition) error {
	return s.SaveFormat(def, FormatJSON)
}

// SaveFormat writes the definition in the given format. An existing file for
// the same id in the other format is removed so Load stays unambiguous.
func (s *Store) SaveFormat(def model.FormDefinition, format Format) error {
	if err := validID(def.ID); err != nil {
		return err
	}

	payload, err := Encode(def, format)
	if err != nil {
		return err
	}

	ext := ".json"
	if format == FormatYAML {
		ext = ".yaml"
	}

	path := filepath.Join(s.dir, def.ID+ext)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("store: write %q: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("store: replace %q: %w", path, err)
	}

	for _, other := range extensions {
		if other == ext {
			continue
		}
		os.Remove(filepath.Join(s.dir, def.ID+other))
	}
	return nil
}

// Load reads the definition with the given id, trying each known extension.
func (s *Store) Load(id string) (model.FormDefinition, error) {
	if err := validID(id); err != nil {
		return model.FormDefinition{}, err
	}
	for _, ext := range extensions {
		path := filepath.Join(s.dir, id+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return model.FormDefinition{}, fmt.Errorf("store: read %q: %w", path, err)
		}
		def, err := Decode(data)
		if err != nil {
			return model.FormDefinition{}, fmt.Errorf("store: decode %q: %w", path, err)
		}
		return def, nil
	}
	return model.FormDefinition{}, fmt.Errorf("store: load %q: %w", id, ErrNotFound)
}

// LoadOrStarter loads the definition or, when it does not exist yet, returns
// a fresh starter template. Decode failures still surface as errors.
func (s *Store) LoadOrStarter(id string) (model.FormDefinition, error) {
	def, err := s.Load(id)
	if errors.Is(err, ErrNotFound) {
		return builder.Starter(), nil
	}
	return def, err
}

// List returns the stored definition ids in sorted order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("store: list %q: %w", s.dir, err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if !knownExtension(ext) {
			continue
		}
		id := strings.TrimSuffix(name, ext)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes every file stored for the id.
func (s *Store) Delete(id string) error {
	if err := validID(id); err != nil {
		return err
	}
	removed := false
	for _, ext := range extensions {
		path := filepath.Join(s.dir, id+ext)
		err := os.Remove(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("store: delete %q: %w", path, err)
		}
		removed = true
	}
	if !removed {
		return fmt.Errorf("store: delete %q: %w", id, ErrNotFound)
	}
	return nil
}

// Encode serializes a definition. YAML output goes through the JSON codec
// first so both formats agree on the wire shape.
func Encode(def model.FormDefinition, format Format) ([]byte, error) {
	payload, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("store: encode definition: %w", err)
	}

	switch format {
	case FormatJSON, "":
		return append(payload, '\n'), nil
	case FormatYAML:
		var doc any
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("store: bridge to yaml: %w", err)
		}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("store: encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("store: unknown format %q", format)
	}
}

// Decode parses a definition from JSON or YAML content.
func Decode(data []byte) (model.FormDefinition, error) {
	var def model.FormDefinition
	if json.Valid(data) {
		if err := json.Unmarshal(data, &def); err != nil {
			return model.FormDefinition{}, fmt.Errorf("store: parse json: %w", err)
		}
		return def, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.FormDefinition{}, errors.New("store: content is neither valid JSON nor YAML")
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return model.FormDefinition{}, fmt.Errorf("store: bridge from yaml: %w", err)
	}
	if err := json.Unmarshal(payload, &def); err != nil {
		return model.FormDefinition{}, fmt.Errorf("store: parse yaml: %w", err)
	}
	return def, nil
}

func validID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("store: definition id is required")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("store: definition id %q is not a valid file name", id)
	}
	return nil
}

func knownExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
