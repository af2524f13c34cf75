package shell

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"stagetimer/internal/core/countdown"
	"stagetimer/internal/core/model"
	"stagetimer/internal/core/theme"
	"stagetimer/internal/media"
	"stagetimer/internal/ui/animation"
	"stagetimer/internal/ui/palette"
	"stagetimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Actions are the handlers behind the main window controls.
type Actions struct {
	OnReset      func()
	OnStartPause func()
	OnAddTime    func()
	OnToggleMute func()
	OnSettings   func()
	OnRename     func(name string)
}

// Window is the main timer window.
type Window struct {
	window  fyne.Window
	actions Actions

	background      *canvas.Rectangle
	backgroundImage *canvas.Image
	card            *canvas.Rectangle
	nameEntry       *widget.Entry
	nameTheme       *container.ThemeOverride
	clockBox        *canvas.Rectangle
	clock           *canvas.Text
	resetButton     *actionButton
	startButton     *actionButton
	addButton       *actionButton
	logo            *canvas.Image
	muteButton      *widget.Button
	settingsButton  *widget.Button

	pulse     *animation.Engine
	flash     *animation.Engine
	pulseStop context.CancelFunc
	flashStop context.CancelFunc

	settings theme.Settings
	status   countdown.Status
}

const (
	defaultWidth  = float32(960)
	defaultHeight = float32(640)
	clockTextSize = float32(96)
	logoSide      = float32(110)
	edgePadding   = float32(16)
)

var (
	fallbackBackground = color.NRGBA{R: 0xff, G: 0xf9, B: 0xeb, A: 0xff}
	fallbackBody       = color.NRGBA{R: 0xff, G: 0xf4, B: 0xd6, A: 0xff}
	clockFill          = color.White
)

// New creates the main window. Nothing is shown until Show.
func New(app fyne.App, title string, actions Actions, config animation.Config) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(fallbackBackground)

	backgroundImage := canvas.NewImageFromResource(nil)
	backgroundImage.FillMode = canvas.ImageFillStretch
	backgroundImage.Hide()

	card := canvas.NewRectangle(fallbackBody)
	card.StrokeColor = color.Black
	card.StrokeWidth = 4
	card.CornerRadius = 18

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Timer name")
	nameEntry.TextStyle = fyne.TextStyle{Bold: true}
	nameTheme := container.NewThemeOverride(nameEntry, palette.Text(color.Black))

	clockBox := canvas.NewRectangle(clockFill)
	clockBox.StrokeColor = color.Black
	clockBox.StrokeWidth = 3
	clockBox.CornerRadius = 12

	clock := canvas.NewText(model.FormatClock(0), theme.ParseColor(theme.ClockFontColor, color.Black))
	clock.Alignment = fyne.TextAlignCenter
	clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clock.TextSize = clockTextSize

	shell := &Window{
		window:          window,
		actions:         actions,
		background:      background,
		backgroundImage: backgroundImage,
		card:            card,
		nameEntry:       nameEntry,
		nameTheme:       nameTheme,
		clockBox:        clockBox,
		clock:           clock,
	}

	shell.resetButton = newActionButton("Reset", func() { call(shell.actions.OnReset) })
	shell.startButton = newActionButton("Start", func() { call(shell.actions.OnStartPause) })
	shell.addButton = newActionButton("+5 min", func() { call(shell.actions.OnAddTime) })

	shell.muteButton = widget.NewButtonWithIcon("", fynetheme.VolumeUpIcon(), func() { call(shell.actions.OnToggleMute) })
	shell.muteButton.Importance = widget.LowImportance
	shell.settingsButton = widget.NewButtonWithIcon("", fynetheme.SettingsIcon(), func() { call(shell.actions.OnSettings) })
	shell.settingsButton.Importance = widget.LowImportance

	shell.logo = canvas.NewImageFromResource(nil)
	shell.logo.FillMode = canvas.ImageFillContain
	shell.logo.Hide()

	nameEntry.OnChanged = shell.rename

	clockPanel := container.NewStack(clockBox, container.NewPadded(clock))
	buttons := container.NewGridWithColumns(3, shell.resetButton, shell.startButton, shell.addButton)
	cardContent := container.NewPadded(container.NewPadded(container.NewVBox(nameTheme, clockPanel, buttons)))
	cardPanel := container.NewStack(card, cardContent)
	toolbar := container.NewHBox(shell.muteButton, shell.settingsButton)

	root := container.New(&shellLayout{}, background, backgroundImage, cardPanel, shell.logo, toolbar)
	window.SetContent(root)
	window.Resize(fyne.NewSize(defaultWidth, defaultHeight))
	window.CenterOnScreen()

	shell.pulse = animation.New(config, shell.SetBackgroundFrame)
	shell.flash = animation.New(config, nil)
	return shell
}

// Window returns the underlying fyne window.
func (shell *Window) Window() fyne.Window {
	return shell.window
}

// Show brings the window to the front.
func (shell *Window) Show() {
	shell.window.Show()
	shell.window.RequestFocus()
}

// ApplyTheme re-renders the window for settings. Safe from any goroutine.
func (shell *Window) ApplyTheme(settings theme.Settings) {
	fyne.Do(func() {
		shell.applyThemeUnsafe(settings)
	})
}

// SetStatus re-renders the countdown. Safe from any goroutine.
func (shell *Window) SetStatus(status countdown.Status) {
	fyne.Do(func() {
		shell.setStatusUnsafe(status)
	})
}

// SetTimerName replaces the entry text without reporting a rename.
func (shell *Window) SetTimerName(name string) {
	fyne.Do(func() {
		shell.setTimerNameUnsafe(name)
	})
}

// SetAddStep relabels the add-time button.
func (shell *Window) SetAddStep(step time.Duration) {
	fyne.Do(func() {
		shell.addButton.SetText(AddTimeLabel(step))
	})
}

// SetBackgroundFrame swaps the background image while the alert pulse runs.
func (shell *Window) SetBackgroundFrame(resource fyne.Resource) {
	fyne.Do(func() {
		if shell.pulseStop == nil {
			return
		}
		shell.backgroundImage.Resource = resource
		shell.backgroundImage.Show()
		shell.backgroundImage.Refresh()
	})
}

// Stop halts every animation.
func (shell *Window) Stop() {
	shell.stopPulse()
	shell.stopFlash()
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

func (shell *Window) rename(name string) {
	if shell.actions.OnRename != nil {
		shell.actions.OnRename(name)
	}
}

func (shell *Window) setTimerNameUnsafe(name string) {
	shell.nameEntry.OnChanged = nil
	shell.nameEntry.SetText(name)
	shell.nameEntry.OnChanged = shell.rename
}

func (shell *Window) applyThemeUnsafe(settings theme.Settings) {
	shell.settings = settings

	shell.background.FillColor = theme.ParseColor(settings.Background, fallbackBackground)
	shell.background.Refresh()

	shell.applyBackgroundImage(settings.BackgroundImage)

	frame := theme.ParseColor(settings.Frame, color.Black)
	shell.card.FillColor = theme.ParseColor(settings.Body, fallbackBody)
	shell.card.StrokeColor = frame
	shell.card.Refresh()
	shell.clockBox.StrokeColor = frame
	shell.clockBox.Refresh()

	shell.nameTheme.Theme = palette.Text(theme.ParseColor(theme.EffectiveFontColor(settings), color.Black))
	shell.nameTheme.Refresh()

	logo := media.Resource(settings.Logo)
	shell.logo.Resource = logo
	if logo == nil {
		shell.logo.Hide()
	} else {
		shell.logo.Show()
	}
	shell.logo.Refresh()

	shell.styleButtons()
}

func (shell *Window) applyBackgroundImage(ref string) {
	if ref == theme.AlertBackgroundRef {
		if shell.pulseStop == nil {
			ctx, cancel := context.WithCancel(context.Background())
			shell.pulseStop = cancel
			shell.pulse.StartPulse(ctx, resources.AlertFrames())
		}
		return
	}

	shell.stopPulse()
	resource := media.Resource(ref)
	shell.backgroundImage.Resource = resource
	if resource == nil {
		shell.backgroundImage.Hide()
	} else {
		shell.backgroundImage.Show()
	}
	shell.backgroundImage.Refresh()
}

func (shell *Window) setStatusUnsafe(status countdown.Status) {
	alertChanged := status.AlertMode != shell.status.AlertMode
	shell.status = status

	shell.clock.Text = model.FormatClock(status.Remaining)
	shell.clock.Refresh()
	shell.startButton.SetText(StartLabel(status))

	if status.Muted {
		shell.muteButton.SetIcon(fynetheme.VolumeMuteIcon())
	} else {
		shell.muteButton.SetIcon(fynetheme.VolumeUpIcon())
	}

	if status.State == countdown.StateExpired {
		shell.startFlash()
	} else {
		shell.stopFlash()
	}
	if alertChanged {
		shell.styleButtons()
	}
}

func (shell *Window) styleButtons() {
	fillHex, borderHex := theme.ButtonColors(shell.settings, shell.status.AlertMode)
	fill := theme.ParseColor(fillHex, clockFill)
	border := theme.ParseColor(borderHex, color.Black)
	font := theme.ParseColor(theme.ButtonFontColor(shell.settings), color.Black)
	for _, button := range []*actionButton{shell.resetButton, shell.startButton, shell.addButton} {
		button.SetColors(fill, border, font)
	}
}

func (shell *Window) startFlash() {
	if shell.flashStop != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	shell.flashStop = cancel
	shell.flash.StartFlash(ctx, func(visible bool) {
		fyne.Do(func() {
			if visible || shell.flashStop == nil {
				shell.clock.Show()
			} else {
				shell.clock.Hide()
			}
		})
	})
}

func (shell *Window) stopFlash() {
	if shell.flashStop == nil {
		return
	}
	shell.flashStop()
	shell.flashStop = nil
	shell.flash.Stop()
	shell.clock.Show()
}

func (shell *Window) stopPulse() {
	if shell.pulseStop == nil {
		return
	}
	shell.pulseStop()
	shell.pulseStop = nil
	shell.pulse.Stop()
}

// AddTimeLabel is the caption of the add-time button.
func AddTimeLabel(step time.Duration) string {
	if step%time.Minute != 0 {
		return fmt.Sprintf("+%d sec", int(step/time.Second))
	}
	return fmt.Sprintf("+%d min", int(step/time.Minute))
}

// StartLabel is the caption of the start/pause button for status.
func StartLabel(status countdown.Status) string {
	if status.State.Running() {
		return "Pause"
	}
	return "Start"
}

// shellLayout stacks the background layers, centers the card and pins the
// logo bottom-left and the toolbar top-right.
type shellLayout struct{}

func (layout *shellLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 5 {
		return
	}
	background, backgroundImage, card, logo, toolbar := objects[0], objects[1], objects[2], objects[3], objects[4]

	for _, layer := range []fyne.CanvasObject{background, backgroundImage} {
		layer.Move(fyne.NewPos(0, 0))
		layer.Resize(size)
	}

	cardMin := card.MinSize()
	cardWidth := size.Width * 0.6
	if cardWidth < cardMin.Width {
		cardWidth = cardMin.Width
	}
	if cardWidth > size.Width {
		cardWidth = size.Width
	}
	cardHeight := cardMin.Height
	card.Resize(fyne.NewSize(cardWidth, cardHeight))
	card.Move(fyne.NewPos((size.Width-cardWidth)/2, maxFloat((size.Height-cardHeight)/2, 0)))

	side := logoSide
	if side > size.Height/4 {
		side = size.Height / 4
	}
	logo.Resize(fyne.NewSize(side, side))
	logo.Move(fyne.NewPos(edgePadding, maxFloat(size.Height-edgePadding-side, 0)))

	toolbarSize := toolbar.MinSize()
	toolbar.Resize(toolbarSize)
	toolbar.Move(fyne.NewPos(maxFloat(size.Width-edgePadding-toolbarSize.Width, 0), edgePadding))
}

func (layout *shellLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 5 {
		return fyne.NewSize(0, 0)
	}
	cardMin := objects[2].MinSize()
	toolbarMin := objects[4].MinSize()
	return fyne.NewSize(cardMin.Width+edgePadding*2, cardMin.Height+toolbarMin.Height+edgePadding*2)
}

func maxFloat(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
