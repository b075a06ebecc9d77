package assets

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sort"

	"github.com/alnah/go-cardsheet/internal/fileutil"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the template is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTemplate loads a template by name, trying the custom loader first.
func (r *AssetResolver) LoadTemplate(name string) (image.Image, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplate(name)
	}

	img, err := r.custom.LoadTemplate(name)
	if err == nil {
		return img, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrTemplateNotFound) {
		return nil, err
	}

	return r.embedded.LoadTemplate(name)
}

// Resolve loads a template given either a name or a file path.
// Paths (containing a separator) are read directly; names go through
// LoadTemplate.
func (r *AssetResolver) Resolve(nameOrPath string) (image.Image, error) {
	if !fileutil.IsFilePath(nameOrPath) {
		return r.LoadTemplate(nameOrPath)
	}

	data, err := os.ReadFile(nameOrPath) // #nosec G304 -- user-provided template path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, nameOrPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return decodeTemplate(nameOrPath, data)
}

// Templates lists the union of custom and embedded template names, sorted.
func (r *AssetResolver) Templates() []string {
	names := r.embedded.Templates()
	if r.custom != nil {
		seen := make(map[string]bool, len(names))
		for _, n := range names {
			seen[n] = true
		}
		for _, n := range r.custom.Templates() {
			if !seen[n] {
				names = append(names, n)
			}
		}
		sort.Strings(names)
	}
	return names
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
