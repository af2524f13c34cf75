package palette

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
)

// Theme overrides selected colors of a base fyne theme.
type Theme struct {
	base      fyne.Theme
	overrides map[fyne.ThemeColorName]color.Color
}

// New returns a theme that reports overrides and defers everything else to
// base. A nil base means the default fyne theme.
func New(base fyne.Theme, overrides map[fyne.ThemeColorName]color.Color) *Theme {
	if base == nil {
		base = fynetheme.DefaultTheme()
	}
	copied := make(map[fyne.ThemeColorName]color.Color, len(overrides))
	for name, value := range overrides {
		copied[name] = value
	}
	return &Theme{base: base, overrides: copied}
}

func (palette *Theme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if value, ok := palette.overrides[name]; ok {
		return value
	}
	return palette.base.Color(name, variant)
}

func (palette *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return palette.base.Font(style)
}

func (palette *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return palette.base.Icon(name)
}

func (palette *Theme) Size(name fyne.ThemeSizeName) float32 {
	return palette.base.Size(name)
}

// Text returns a theme whose foreground is fg.
func Text(fg color.Color) *Theme {
	return New(nil, map[fyne.ThemeColorName]color.Color{
		fynetheme.ColorNameForeground:  fg,
		fynetheme.ColorNamePlaceHolder: fg,
	})
}

// Panel returns a theme for a surface with its own background and text.
func Panel(bg, fg color.Color) *Theme {
	return New(nil, map[fyne.ThemeColorName]color.Color{
		fynetheme.ColorNameBackground:        bg,
		fynetheme.ColorNameOverlayBackground: bg,
		fynetheme.ColorNameMenuBackground:    bg,
		fynetheme.ColorNameForeground:        fg,
	})
}
