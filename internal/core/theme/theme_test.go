package theme

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMergesOnlySetFields(t *testing.T) {
	base := Default()
	updated := base.Apply(Patch{Frame: String("#123456")})

	assert.Equal(t, "#123456", updated.Frame)
	assert.Equal(t, base.Body, updated.Body)
	assert.Equal(t, base.Name, updated.Name)
	assert.Equal(t, base.Logo, updated.Logo)
	assert.Equal(t, "#000000", base.Frame, "receiver must not change")
}

func TestApplyEmptyStringClearsImage(t *testing.T) {
	updated := Default().Apply(Patch{BackgroundImage: String("")})
	assert.Empty(t, updated.BackgroundImage)
	assert.NotEmpty(t, updated.Logo)
}

func TestPresetsOrderAndDefault(t *testing.T) {
	names := make([]string, 0, len(Presets()))
	for _, preset := range Presets() {
		names = append(names, preset.Name)
	}
	assert.Equal(t, []string{"WIE", "CIS", "AESS", "CS", "PES"}, names)
	assert.Equal(t, "CS", Default().Name)

	_, ok := PresetByName("nope")
	assert.False(t, ok)
}

func TestPresetsReturnsCopy(t *testing.T) {
	catalog := Presets()
	catalog[0].Name = "changed"
	assert.Equal(t, "WIE", Presets()[0].Name)
}

func TestAlertPatchKeepsNameAndLogo(t *testing.T) {
	base := Default()
	alert := base.Apply(AlertPatch())

	assert.Equal(t, base.Name, alert.Name)
	assert.Equal(t, base.Logo, alert.Logo)
	assert.Equal(t, "#d00000", alert.Body)
	assert.Equal(t, AlertBackgroundRef, alert.BackgroundImage)
	assert.NotEqual(t, base.Background, alert.Background)
}

func TestColorPatchTouchesOneField(t *testing.T) {
	for _, field := range ColorFields() {
		updated := Default().Apply(ColorPatch(field, "#abcdef"))
		assert.Equal(t, "#abcdef", updated.Color(field), field)
	}
	assert.True(t, ColorPatch("Other", "#fff").Empty())
}

func TestEffectiveFontColor(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     string
	}{
		{name: "dark preset", settings: Settings{Name: "AESS", Font: "#000000"}, want: "#FFFFFF"},
		{name: "legacy alert font", settings: Settings{Name: "CS", Font: "#ff6666"}, want: "#000000"},
		{name: "stored font", settings: Settings{Name: "CS", Font: "#112233"}, want: "#112233"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveFontColor(tt.settings))
		})
	}
}

func TestButtonAndMenuColors(t *testing.T) {
	assert.Equal(t, "#FFFFFF", ButtonFontColor(Settings{Name: "AESS"}))
	assert.Equal(t, "#000000", ButtonFontColor(Settings{Name: "WIE", Font: "#FFFFFF"}))

	background, font := MenuColors(Settings{Background: "#111111", Font: "#FF6666"})
	assert.Equal(t, AlertInner, background)
	assert.Equal(t, "#000000", font)

	fill, border := ButtonColors(Settings{Inner: "#eeeeee", Frame: "#333333"}, true)
	assert.Equal(t, AlertInner, fill)
	assert.Equal(t, AlertFrame, border)
}

func TestParseColor(t *testing.T) {
	fallback := color.NRGBA{A: 0xff}
	assert.Equal(t, color.NRGBA{R: 0xd0, A: 0xff}, ParseColor("#d00000", fallback))
	assert.Equal(t, fallback, ParseColor("not-a-color", fallback))
	assert.Equal(t, "#d00000", HexFromColor(color.NRGBA{R: 0xd0, A: 0xff}))
}

func TestSettingsJSONRoundTrip(t *testing.T) {
	original := Default().Apply(Patch{Logo: String("data:image/png;base64,AAAA")})
	encoded, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"backgroundImage"`)

	var decoded Settings
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, original, decoded)
}

func TestBundledName(t *testing.T) {
	name, ok := BundledName(AlertBackgroundRef)
	assert.True(t, ok)
	assert.Equal(t, "alert_a.png", name)

	_, ok = BundledName("data:image/png;base64,AAAA")
	assert.False(t, ok)
}
