package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TemplateStore maps presentation template names to .pptx files on disk.
// It is read-only after construction; the renderer never mutates the
// underlying assets.
type TemplateStore struct {
	templates map[string]string
}

// NewTemplateStore builds a store from a directory of .pptx files. The
// template name is the file's base name without extension; resolution is
// case-insensitive ("Professional" finds professional.pptx).
func NewTemplateStore(dir string) (*TemplateStore, error) {
	const op = "NewTemplateStore"

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, NewRenderError(op, err, fmt.Sprintf("failed to read template directory %s", dir))
	}

	templates := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pptx") {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		templates[normalizeTemplateName(base)] = filepath.Join(dir, entry.Name())
	}

	return &TemplateStore{templates: templates}, nil
}

// NewTemplateStoreWithMap builds a store from an explicit name-to-path
// mapping (for testing).
func NewTemplateStoreWithMap(templates map[string]string) *TemplateStore {
	normalized := make(map[string]string, len(templates))
	for name, path := range templates {
		normalized[normalizeTemplateName(name)] = path
	}
	return &TemplateStore{templates: normalized}
}

// Resolve returns the asset path for a template name, or ErrTemplateNotFound.
func (s *TemplateStore) Resolve(name string) (string, error) {
	const op = "Resolve"

	path, ok := s.templates[normalizeTemplateName(name)]
	if !ok {
		return "", NewRenderError(op, ErrTemplateNotFound, fmt.Sprintf("template %q", name))
	}
	return path, nil
}

// Names lists the available template names, sorted.
func (s *TemplateStore) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeTemplateName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
