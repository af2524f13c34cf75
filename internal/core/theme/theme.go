package theme

import "strings"

// ResourcePrefix marks an image reference that points at a bundled asset.
const ResourcePrefix = "res:"

// Settings is the full set of values that controls the timer's look.
type Settings struct {
	Name            string `json:"name"`
	Frame           string `json:"frame"`
	Body            string `json:"body"`
	Font            string `json:"font"`
	Background      string `json:"background"`
	Inner           string `json:"inner"`
	BackgroundImage string `json:"backgroundImage"`
	Logo            string `json:"logo"`
}

// Patch is a partial update. Nil fields keep their current value and an
// empty image string clears the image.
type Patch struct {
	Name            *string
	Frame           *string
	Body            *string
	Font            *string
	Background      *string
	Inner           *string
	BackgroundImage *string
	Logo            *string
}

// Apply merges patch into a copy of settings.
func (settings Settings) Apply(patch Patch) Settings {
	merge := func(target *string, value *string) {
		if value != nil {
			*target = *value
		}
	}
	merge(&settings.Name, patch.Name)
	merge(&settings.Frame, patch.Frame)
	merge(&settings.Body, patch.Body)
	merge(&settings.Font, patch.Font)
	merge(&settings.Background, patch.Background)
	merge(&settings.Inner, patch.Inner)
	merge(&settings.BackgroundImage, patch.BackgroundImage)
	merge(&settings.Logo, patch.Logo)
	return settings
}

// Empty reports whether the patch changes nothing.
func (patch Patch) Empty() bool {
	return patch == Patch{}
}

// String returns a pointer to value, for building patches.
func String(value string) *string {
	return &value
}

// ColorField names one of the five editable colors.
type ColorField string

const (
	FieldFrame      ColorField = "Frame"
	FieldBody       ColorField = "Body"
	FieldFont       ColorField = "Font"
	FieldBackground ColorField = "Background"
	FieldInner      ColorField = "Inner"
)

// ColorFields lists the editable colors in panel order.
func ColorFields() []ColorField {
	return []ColorField{FieldFrame, FieldBody, FieldFont, FieldBackground, FieldInner}
}

// Color returns the stored value of field.
func (settings Settings) Color(field ColorField) string {
	switch field {
	case FieldFrame:
		return settings.Frame
	case FieldBody:
		return settings.Body
	case FieldFont:
		return settings.Font
	case FieldBackground:
		return settings.Background
	case FieldInner:
		return settings.Inner
	default:
		return ""
	}
}

// ColorPatch builds a single-field patch for field.
func ColorPatch(field ColorField, value string) Patch {
	switch field {
	case FieldFrame:
		return Patch{Frame: String(value)}
	case FieldBody:
		return Patch{Body: String(value)}
	case FieldFont:
		return Patch{Font: String(value)}
	case FieldBackground:
		return Patch{Background: String(value)}
	case FieldInner:
		return Patch{Inner: String(value)}
	default:
		return Patch{}
	}
}

// BundledName returns the asset name of a res: reference.
func BundledName(ref string) (string, bool) {
	if !strings.HasPrefix(ref, ResourcePrefix) {
		return "", false
	}
	return strings.TrimPrefix(ref, ResourcePrefix), true
}
