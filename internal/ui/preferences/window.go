package preferences

import (
	"fmt"
	"image/color"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stagetimer/internal/core/theme"
	"stagetimer/internal/logutil"
	"stagetimer/internal/media"
	"stagetimer/internal/ui/palette"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// Version is shown on the About tab.
const Version = "2.0.0"

const previewSide = 160

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// Actions connect the panel to the controller. Theme actions return an error
// when the change was refused.
type Actions struct {
	SelectPreset    func(name string) error
	UpdateTheme     func(patch theme.Patch) error
	SavePreferences func(settings Settings)
}

// Window is the settings panel.
type Window struct {
	window    fyne.Window
	actions   Actions
	settings  Settings
	current   theme.Settings
	alertMode bool

	tabs    *container.AppTabs
	surface *container.ThemeOverride
	notice  *widget.Label

	presetButtons map[string]*widget.Button
	colorSwatches map[theme.ColorField]*canvas.Rectangle
	colorButtons  map[theme.ColorField]*widget.Button
	slots         []*imageSlot

	alertAt *widget.Entry
	addStep *widget.Entry
	restore *widget.Entry
}

// imageSlot is one upload target on the Background tab.
type imageSlot struct {
	title   string
	value   func(theme.Settings) string
	patch   func(ref string) theme.Patch
	preview *canvas.Image
	empty   *widget.Label
	upload  *widget.Button
	remove  *widget.Button
}

// New creates the settings panel.
func New(app fyne.App, settings Settings, actions Actions) *Window {
	window := app.NewWindow("StageTimer Settings")

	prefs := &Window{
		window:        window,
		actions:       actions,
		settings:      settings,
		presetButtons: map[string]*widget.Button{},
		colorSwatches: map[theme.ColorField]*canvas.Rectangle{},
		colorButtons:  map[theme.ColorField]*widget.Button{},
		notice:        widget.NewLabel("Theme changes are locked while the alert is showing."),
	}
	prefs.notice.Wrapping = fyne.TextWrapWord
	prefs.notice.Hide()

	prefs.tabs = container.NewAppTabs(
		container.NewTabItem("Appearance", prefs.buildAppearance()),
		container.NewTabItem("Background", prefs.buildBackground()),
		container.NewTabItem("Timer", prefs.buildTimer()),
		container.NewTabItem("About", buildAbout()),
	)
	prefs.surface = container.NewThemeOverride(
		container.NewBorder(prefs.notice, nil, nil, nil, prefs.tabs),
		palette.Panel(color.White, color.Black),
	)

	window.SetContent(prefs.surface)
	window.Resize(fyne.NewSize(460, 560))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the panel.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Hide closes the panel without discarding it.
func (prefs *Window) Hide() {
	prefs.window.Hide()
}

// Refresh re-renders the panel for the current theme. Safe from any goroutine.
func (prefs *Window) Refresh(current theme.Settings, alertMode bool) {
	fyne.Do(func() {
		prefs.refreshUnsafe(current, alertMode)
	})
}

// UpdateSettings replaces the Timer tab values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.alertAt.SetText(strconv.Itoa(int(settings.AlertThreshold / time.Minute)))
	prefs.addStep.SetText(strconv.Itoa(int(settings.AddTimeStep / time.Minute)))
	prefs.restore.SetText(strconv.Itoa(int(settings.RestoreDelay / time.Second)))
}

func (prefs *Window) buildAppearance() fyne.CanvasObject {
	presetRows := container.NewVBox()
	for _, preset := range theme.Presets() {
		name := preset.Name
		button := widget.NewButton(name, func() { prefs.selectPreset(name) })
		prefs.presetButtons[name] = button

		swatch := canvas.NewRectangle(theme.ParseColor(preset.Body, color.White))
		swatch.StrokeColor = theme.ParseColor(preset.Frame, color.Black)
		swatch.StrokeWidth = 2
		swatch.CornerRadius = 4
		swatch.SetMinSize(fyne.NewSize(28, 28))
		presetRows.Add(container.NewBorder(nil, nil, swatch, nil, button))
	}

	colorRows := container.NewVBox()
	for _, field := range theme.ColorFields() {
		field := field
		swatch := canvas.NewRectangle(color.White)
		swatch.StrokeColor = color.Black
		swatch.StrokeWidth = 1
		swatch.SetMinSize(fyne.NewSize(28, 28))
		prefs.colorSwatches[field] = swatch

		button := widget.NewButton("Change", func() { prefs.pickColor(field) })
		prefs.colorButtons[field] = button
		colorRows.Add(container.NewHBox(swatch, widget.NewLabel(string(field)+" color"), layout.NewSpacer(), button))
	}

	return container.NewVScroll(container.NewVBox(
		widget.NewLabelWithStyle("Themes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		presetRows,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Custom colors", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		colorRows,
	))
}

func (prefs *Window) buildBackground() fyne.CanvasObject {
	prefs.slots = []*imageSlot{
		{
			title: "Background image",
			value: func(settings theme.Settings) string { return settings.BackgroundImage },
			patch: func(ref string) theme.Patch { return theme.Patch{BackgroundImage: theme.String(ref)} },
		},
		{
			title: "Logo",
			value: func(settings theme.Settings) string { return settings.Logo },
			patch: func(ref string) theme.Patch { return theme.Patch{Logo: theme.String(ref)} },
		},
	}

	content := container.NewVBox()
	for _, slot := range prefs.slots {
		slot := slot
		slot.preview = canvas.NewImageFromResource(nil)
		slot.preview.FillMode = canvas.ImageFillContain
		slot.preview.SetMinSize(fyne.NewSize(previewSide, previewSide))
		slot.empty = widget.NewLabel("No image")
		slot.upload = widget.NewButton("Upload", func() { prefs.pickImage(slot) })
		slot.remove = widget.NewButton("Remove", func() { prefs.apply(slot.patch("")) })

		content.Add(widget.NewLabelWithStyle(slot.title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		content.Add(container.NewStack(slot.preview, container.NewCenter(slot.empty)))
		content.Add(container.NewHBox(slot.upload, slot.remove))
		content.Add(widget.NewSeparator())
	}
	return container.NewVScroll(content)
}

func (prefs *Window) buildTimer() fyne.CanvasObject {
	prefs.alertAt = widget.NewEntry()
	prefs.addStep = widget.NewEntry()
	prefs.restore = widget.NewEntry()

	form := container.NewVBox(
		widget.NewLabelWithStyle("Countdown", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Alert when"), prefs.alertAt, widget.NewLabel("min remain")),
		container.NewHBox(widget.NewLabel("Add-time button adds"), prefs.addStep, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Restore theme after"), prefs.restore, widget.NewLabel("sec")),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	revertButton := widget.NewButton("Revert", func() { prefs.UpdateSettings(prefs.settings) })
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), revertButton)
	return container.NewBorder(nil, buttons, nil, nil, form)
}

func buildAbout() fyne.CanvasObject {
	contact, err := url.Parse("mailto:naghambarari@ieee.org")
	logutil.LogError("preferences: about link", err)

	return container.NewVBox(
		widget.NewLabelWithStyle("StageTimer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Version "+Version),
		widget.NewLabel("A themed countdown for talks, panels and stage sessions."),
		widget.NewLabel("Developed by Nagham Barari"),
		widget.NewHyperlink("naghambarari@ieee.org", contact),
	)
}

func (prefs *Window) refreshUnsafe(current theme.Settings, alertMode bool) {
	prefs.current = current
	prefs.alertMode = alertMode

	bgHex, fgHex := theme.MenuColors(current)
	prefs.surface.Theme = palette.Panel(
		theme.ParseColor(bgHex, color.White),
		theme.ParseColor(fgHex, color.Black),
	)
	prefs.surface.Refresh()

	for _, field := range theme.ColorFields() {
		swatch := prefs.colorSwatches[field]
		swatch.FillColor = theme.ParseColor(current.Color(field), color.White)
		swatch.Refresh()
	}

	for _, slot := range prefs.slots {
		resource := media.Thumbnail(media.Resource(slot.value(current)), previewSide)
		slot.preview.Resource = resource
		slot.preview.Refresh()
		if resource == nil {
			slot.empty.Show()
			slot.remove.Disable()
		} else {
			slot.empty.Hide()
			slot.remove.Enable()
		}
	}

	prefs.setLocked(alertMode)
}

func (prefs *Window) setLocked(locked bool) {
	setEnabled := func(button *widget.Button) {
		if locked {
			button.Disable()
		} else {
			button.Enable()
		}
	}
	for _, button := range prefs.presetButtons {
		setEnabled(button)
	}
	for _, button := range prefs.colorButtons {
		setEnabled(button)
	}
	for _, slot := range prefs.slots {
		setEnabled(slot.upload)
		if locked {
			slot.remove.Disable()
		}
	}
	if locked {
		prefs.notice.Show()
	} else {
		prefs.notice.Hide()
	}
}

func (prefs *Window) selectPreset(name string) {
	if prefs.actions.SelectPreset == nil {
		return
	}
	prefs.report(prefs.actions.SelectPreset(name))
}

func (prefs *Window) apply(patch theme.Patch) {
	if prefs.actions.UpdateTheme == nil {
		return
	}
	prefs.report(prefs.actions.UpdateTheme(patch))
}

func (prefs *Window) report(err error) {
	if err == nil {
		return
	}
	dialog.ShowInformation("Theme locked", err.Error(), prefs.window)
}

func (prefs *Window) pickColor(field theme.ColorField) {
	title := string(field) + " color"
	picker := dialog.NewColorPicker(title, "Pick a color", func(picked color.Color) {
		prefs.apply(theme.ColorPatch(field, theme.HexFromColor(picked)))
	}, prefs.window)
	picker.Advanced = true
	picker.SetColor(theme.ParseColor(prefs.current.Color(field), color.Black))
	picker.Show()
}

func (prefs *Window) pickImage(slot *imageSlot) {
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
		if reader == nil {
			return
		}
		go prefs.readImage(reader, slot)
	}, prefs.window)
	picker.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	picker.Show()
}

// readImage loads the picked file off the UI goroutine and applies it once
// the read has completed.
func (prefs *Window) readImage(reader io.ReadCloser, slot *imageSlot) {
	ref, err := loadImage(reader)
	fyne.Do(func() {
		if err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
		prefs.apply(slot.patch(ref))
	})
}

// loadImage reads the whole file into a data URL. No resizing or format
// validation is done.
func loadImage(reader io.ReadCloser) (string, error) {
	data, err := io.ReadAll(reader)
	logutil.LogError("preferences: close image", reader.Close())
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return media.EncodeDataURL(data), nil
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.alertAt.Text); ok {
		settings.AlertThreshold = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.addStep.Text); ok {
		settings.AddTimeStep = time.Duration(minutes) * time.Minute
	}
	if seconds, ok := parsePositiveInt(prefs.restore.Text); ok {
		settings.RestoreDelay = time.Duration(seconds) * time.Second
	}

	prefs.UpdateSettings(settings)
	if prefs.actions.SavePreferences != nil {
		prefs.actions.SavePreferences(settings)
	}
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
