package theme

// AlertBackgroundRef is the background shown only while alert mode is active.
const AlertBackgroundRef = ResourcePrefix + "alert_a.png"

const defaultPreset = "CS"

var presets = []Settings{
	{Name: "WIE", Frame: "#000000", Body: "#F3E8F1", Font: "#000000", Background: "#FCE4F3", Inner: "#FCE4F3"},
	{Name: "CIS", Frame: "#000000", Body: "#D9E8F5", Font: "#000000", Background: "#EBF4FB", Inner: "#EBF4FB"},
	{Name: "AESS", Frame: "#000000", Body: "#2E2E2E", Font: "#FFFFFF", Background: "#121212", Inner: "#121212"},
	{
		Name:            "CS",
		Frame:           "#000000",
		Body:            "#FFF4D6",
		Font:            "#000000",
		Background:      "#FFF9EB",
		Inner:           "#FFF9EB",
		BackgroundImage: ResourcePrefix + "cs_background.png",
		Logo:            ResourcePrefix + "cs_logo.png",
	},
	{Name: "PES", Frame: "#000000", Body: "#E5F4E3", Font: "#000000", Background: "#F2FAF2", Inner: "#F2FAF2"},
}

// Presets returns a copy of the built-in catalog in display order.
func Presets() []Settings {
	return append([]Settings(nil), presets...)
}

// PresetByName looks up a preset.
func PresetByName(name string) (Settings, bool) {
	for _, preset := range presets {
		if preset.Name == name {
			return preset, true
		}
	}
	return Settings{}, false
}

// Default returns the theme used when nothing was persisted.
func Default() Settings {
	preset, _ := PresetByName(defaultPreset)
	return preset
}

// AlertPatch returns the visual override applied when alert mode begins.
// Name and logo are kept.
func AlertPatch() Patch {
	return Patch{
		Frame:           String("#000000"),
		Body:            String("#d00000"),
		Font:            String("#000000"),
		Background:      String("#ffccd5"),
		Inner:           String(AlertInner),
		BackgroundImage: String(AlertBackgroundRef),
	}
}
