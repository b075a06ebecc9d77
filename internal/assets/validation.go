package assets

import (
	"fmt"
	"strings"
)

// maxTemplateNameLength bounds names so they always fit a file name.
const maxTemplateNameLength = 64

// ValidateTemplateName checks that a template name maps to exactly one file
// under templates/. The extension is chosen by the loader, so names carry
// no dot; separators, NUL and over-long names are rejected.
func ValidateTemplateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTemplateName)
	}
	if len(name) > maxTemplateNameLength {
		return fmt.Errorf("%w: %d chars, max %d", ErrInvalidTemplateName, len(name), maxTemplateNameLength)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidTemplateName, name)
	}
	return nil
}
