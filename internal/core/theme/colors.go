package theme

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// AlertInner is the button fill forced while alert mode is active.
	AlertInner = "#fff0f3"
	// AlertFrame is the button border forced while alert mode is active.
	AlertFrame = "#000000"
	// ClockFontColor is used for the countdown digits on every theme.
	ClockFontColor = "#000000"

	black = "#000000"
	white = "#FFFFFF"

	// darkPreset always renders light text.
	darkPreset = "AESS"
	// alertFont is the legacy red-mode font value; it is rendered black.
	alertFont = "#FF6666"
)

// EffectiveFontColor is the color used for the timer name.
//
// Rules, first match wins:
//   - the AESS preset renders white text;
//   - the legacy alert font #FF6666 renders black;
//   - anything else renders the stored font color.
func EffectiveFontColor(settings Settings) string {
	if settings.Name == darkPreset {
		return white
	}
	if strings.EqualFold(settings.Font, alertFont) {
		return black
	}
	return settings.Font
}

// ButtonFontColor is the label color of the action buttons: white on the
// AESS preset and black everywhere else.
func ButtonFontColor(settings Settings) string {
	if settings.Name == darkPreset {
		return white
	}
	return black
}

// MenuColors returns the background and font colors of the settings panel.
func MenuColors(settings Settings) (background, font string) {
	if strings.EqualFold(settings.Font, alertFont) {
		return AlertInner, black
	}
	return settings.Background, settings.Font
}

// ButtonColors returns fill and border for the action buttons.
func ButtonColors(settings Settings, alertMode bool) (fill, border string) {
	if alertMode {
		return AlertInner, AlertFrame
	}
	return settings.Inner, settings.Frame
}

// ParseColor converts a hex string to a color. Malformed values return
// fallback so rendering degrades instead of failing.
func ParseColor(hex string, fallback color.Color) color.Color {
	parsed, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return fallback
	}
	r, g, b := parsed.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// HexFromColor formats a picked color as #rrggbb.
func HexFromColor(value color.Color) string {
	converted, ok := colorful.MakeColor(value)
	if !ok {
		return black
	}
	return converted.Clamped().Hex()
}
