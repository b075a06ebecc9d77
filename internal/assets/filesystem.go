package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FilesystemLoader loads templates from a directory on the filesystem.
// Implements AssetLoader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path for consistent containment checks
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadTemplate loads a template from the filesystem.
// Looks for {basePath}/templates/{name}.png, then .jpg and .jpeg.
func (f *FilesystemLoader) LoadTemplate(name string) (image.Image, error) {
	if err := ValidateTemplateName(name); err != nil {
		return nil, err
	}

	for _, ext := range templateExtensions {
		filePath := filepath.Join(f.basePath, "templates", name+ext)
		if err := f.verifyPathContainment(filePath); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		return decodeTemplate(name, data)
	}

	return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
}

// Templates lists template names found under {basePath}/templates, sorted.
func (f *FilesystemLoader) Templates() []string {
	entries, err := os.ReadDir(filepath.Join(f.basePath, "templates"))
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !hasTemplateExtension(entry.Name()) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// verifyPathContainment ensures the resolved file path is within basePath.
// Resolves symlinks to prevent escape via symlink pointing outside basePath.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// If EvalSymlinks fails (file doesn't exist), keep the lexical path;
	// the read fails anyway and the prefix check still applies.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}

func hasTemplateExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range templateExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
