package assets

import (
	"embed"
	"fmt"
	"image"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader loads templates from the embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplate loads a built-in template by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (image.Image, error) {
	if err := ValidateTemplateName(name); err != nil {
		return nil, err
	}

	for _, ext := range templateExtensions {
		data, err := templates.ReadFile("templates/" + name + ext)
		if err != nil {
			continue
		}
		return decodeTemplate(name, data)
	}

	return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
}

// Templates lists the built-in template names, sorted.
func (e *EmbeddedLoader) Templates() []string {
	entries, err := fs.ReadDir(templates, "templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
