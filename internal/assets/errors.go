package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateDecode indicates the template exists but is not a readable image.
	ErrTemplateDecode = errors.New("template is not a readable image")

	// ErrInvalidTemplateName indicates the template name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidTemplateName = errors.New("invalid template name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
