// Package assets provides background template images for card rendering.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in templates)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides a built-in "default" template: a blank card with a
// light frame, sized for a 92x54mm card at 300 DPI.
//
// FilesystemLoader allows users to provide custom templates from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the primary loader used by the renderer. It tries the
// custom FilesystemLoader first, falling back to EmbeddedLoader if the
// template is not found. A template given as a file path bypasses both.
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    ├── {name}.png
//	    └── {name}.jpg
//
// # Security
//
// Template names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
