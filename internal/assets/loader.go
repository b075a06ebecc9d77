package assets

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultTemplateName is the name of the built-in background template.
const DefaultTemplateName = "default"

// templateExtensions lists the file extensions tried, in order, for a name.
var templateExtensions = []string{".png", ".jpg", ".jpeg"}

// AssetLoader defines the contract for loading background templates.
// Implementations may load from embedded assets, filesystem, object storage, etc.
type AssetLoader interface {
	// LoadTemplate loads and decodes a template image by name (without extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidTemplateName if the name contains invalid characters.
	LoadTemplate(name string) (image.Image, error)

	// Templates lists the template names this loader can serve.
	Templates() []string
}

// decodeTemplate decodes raw image bytes, honouring EXIF orientation for
// photos exported from design tools.
func decodeTemplate(name string, data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrTemplateDecode, name, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: %q has empty bounds", ErrTemplateDecode, name)
	}
	return img, nil
}
